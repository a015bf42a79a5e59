package timeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/matzehuels/newsreel/pkg/progress"
)

// supervisor emits synthetic progress during the blocking export, which
// reports nothing of its own. Steps are split in half: the first n steps are
// consumed by clip preparation, the ramp covers steps n+1 through 2n-1, and
// (2n, 2n) is reported only on success.
//
// The ramp estimates export time as twice the nominal video duration, caps
// the simulated ratio at 95%, and gives up silently once 1.5x the estimate
// has elapsed. Reports are cosmetic; nothing reads them back.
type supervisor struct {
	rep       progress.Reporter
	total     int // 2n
	startStep int // n+1
	estimate  time.Duration
	interval  time.Duration

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// newSupervisor builds a supervisor for n segments and a nominal video
// duration in seconds.
func newSupervisor(rep progress.Reporter, n int, nominal float64) *supervisor {
	return &supervisor{
		rep:       rep,
		total:     2 * n,
		startStep: n + 1,
		estimate:  time.Duration(nominal * 2 * float64(time.Second)),
		interval:  time.Second,
		done:      make(chan struct{}),
	}
}

// start launches the ramp goroutine.
func (s *supervisor) start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run()
	}()
}

func (s *supervisor) run() {
	if s.estimate <= 0 {
		return
	}
	deadline := time.Duration(float64(s.estimate) * 1.5)
	steps := s.total - s.startStep

	for elapsed := time.Duration(0); elapsed < deadline; elapsed += s.interval {
		ratio := float64(elapsed) / float64(s.estimate)
		if ratio > 0.95 {
			ratio = 0.95
		}
		step := s.startStep + int(ratio*float64(steps))
		s.rep.Report(step, s.total, fmt.Sprintf("正在导出视频... %d%%", int(ratio*100)))

		select {
		case <-s.done:
			return
		case <-time.After(s.interval):
		}
	}
}

// stop halts the ramp and, when the export succeeded, reports the final
// (2n, 2n) completion step. A failed export never reaches 100%.
func (s *supervisor) stop(succeeded bool) {
	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
	if succeeded {
		s.rep.Report(s.total, s.total, "视频导出完成")
	}
}
