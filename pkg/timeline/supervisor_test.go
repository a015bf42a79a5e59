package timeline

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/newsreel/pkg/progress"
)

// recorder captures progress reports for assertions.
type recorder struct {
	mu      sync.Mutex
	reports []report
}

type report struct {
	current, total int
	message        string
}

func (r *recorder) Report(current, total int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report{current, total, message})
}

func (r *recorder) snapshot() []report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]report(nil), r.reports...)
}

func runSupervisor(t *testing.T, n int, nominal float64, succeed bool, runFor time.Duration) []report {
	t.Helper()
	rec := &recorder{}
	sup := newSupervisor(rec, n, nominal)
	sup.interval = time.Millisecond
	sup.start()
	time.Sleep(runFor)
	sup.stop(succeed)
	return rec.snapshot()
}

func TestSupervisorRamp(t *testing.T) {
	const n = 3
	reports := runSupervisor(t, n, 0.01, true, 50*time.Millisecond)
	if len(reports) == 0 {
		t.Fatal("supervisor emitted no reports")
	}

	last := reports[len(reports)-1]
	if last.current != 2*n || last.total != 2*n {
		t.Errorf("final report = (%d, %d), want (%d, %d)", last.current, last.total, 2*n, 2*n)
	}

	prev := 0
	for i, r := range reports[:len(reports)-1] {
		if r.total != 2*n {
			t.Errorf("report %d total = %d, want %d", i, r.total, 2*n)
		}
		if r.current < prev {
			t.Errorf("report %d step %d went backwards from %d", i, r.current, prev)
		}
		prev = r.current
		if r.current < n+1 || r.current > 2*n-1 {
			t.Errorf("ramp report %d step %d outside [%d, %d]", i, r.current, n+1, 2*n-1)
		}
	}
}

func TestSupervisorCapsAt95(t *testing.T) {
	// A tiny estimate drives the ratio past the cap almost immediately.
	reports := runSupervisor(t, 4, 0.001, false, 30*time.Millisecond)
	for _, r := range reports {
		for _, over := range []string{"96%", "97%", "98%", "99%", "100%"} {
			if strings.Contains(r.message, over) {
				t.Errorf("ramp message passed the cap: %q", r.message)
			}
		}
		if r.current == 2*4 {
			t.Errorf("failed export reported completion step %d", r.current)
		}
	}
}

func TestSupervisorFailureNeverCompletes(t *testing.T) {
	reports := runSupervisor(t, 2, 0.01, false, 20*time.Millisecond)
	for _, r := range reports {
		if r.current == 4 && r.total == 4 {
			t.Error("failed export reached (total, total)")
		}
	}
}

func TestSupervisorStopIdempotent(t *testing.T) {
	rec := &recorder{}
	sup := newSupervisor(rec, 2, 0.01)
	sup.interval = time.Millisecond
	sup.start()
	sup.stop(true)
	sup.stop(true) // second stop must not panic

	reports := rec.snapshot()
	if len(reports) == 0 {
		t.Fatal("no reports after stop")
	}
	last := reports[len(reports)-1]
	if last.current != 4 || last.total != 4 {
		t.Errorf("final report = (%d, %d), want (4, 4)", last.current, last.total)
	}
}

var _ progress.Reporter = (*recorder)(nil)
