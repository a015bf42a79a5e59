package timeline

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/matzehuels/newsreel/pkg/config"
	"github.com/matzehuels/newsreel/pkg/errors"
	"github.com/matzehuels/newsreel/pkg/news"
	"github.com/matzehuels/newsreel/pkg/observability"
	"github.com/matzehuels/newsreel/pkg/progress"
)

// Assembler encodes planned clips and joins them into the final video.
type Assembler struct {
	cfg    config.Config
	logger *log.Logger
}

// NewAssembler builds an assembler. A nil logger discards.
func NewAssembler(cfg config.Config, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.Default()
	}
	return &Assembler{cfg: cfg, logger: logger}
}

// RenderedVideo describes a finished export.
type RenderedVideo struct {
	Path string
	// TotalDuration is the nominal duration from the clip plan; the encoded
	// file can differ by fractions of a second.
	TotalDuration float64
}

// DefaultOutputName is used when the caller passes an empty output path.
const DefaultOutputName = "news_collection.mp4"

// Assemble validates every segment, plans the timeline, encodes each clip,
// and joins them into outputPath. An empty outputPath selects
// news_collection.mp4 under the configured video directory.
//
// Validation is fail fast: any unready segment aborts before a single frame
// is encoded, so a failed call never leaves a partial output video. All
// intermediate files live in a per-call scratch directory removed on every
// exit path.
func (a *Assembler) Assemble(ctx context.Context, segments []*news.Segment, outputPath string, rep progress.Reporter) (RenderedVideo, error) {
	if rep == nil {
		rep = progress.Noop{}
	}
	if len(segments) == 0 {
		return RenderedVideo{}, errors.New(errors.ErrCodeEmptySegments, "no segments to assemble")
	}
	for _, seg := range segments {
		if err := seg.RenderReady(); err != nil {
			return RenderedVideo{}, err
		}
	}

	if outputPath == "" {
		outputPath = filepath.Join(a.cfg.Paths.VideoDir, DefaultOutputName)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return RenderedVideo{}, errors.Wrap(errors.ErrCodeEncodingFailed, err, "create video directory")
	}

	// Transition sounds degrade, never block: a failed generation means the
	// video renders without them.
	effect, _ := ParseEffect(a.cfg.Video.Transition)
	transitionPath := ""
	if fx, err := EnsureEffects(a.cfg.Paths.AudioDir); err != nil {
		a.logger.Warn("transition sounds unavailable, assembling without them",
			"code", errors.GetCode(err), "err", err)
	} else {
		transitionPath = fx.Path(effect)
	}

	clips := Plan(segments)
	nominal := NominalDuration(clips)
	n := len(segments)
	totalSteps := 2 * n

	scratch := filepath.Join(os.TempDir(), "newsreel-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return RenderedVideo{}, errors.Wrap(errors.ErrCodeEncodingFailed, err, "create scratch directory")
	}
	defer os.RemoveAll(scratch)

	a.logger.Info("assembling video",
		"segments", n, "clips", len(clips), "nominal", FormatDuration(nominal))

	// Encode each clip to an intermediate transport stream. Progress steps
	// 0..n-1 are attributed to segments, not clips, matching the reported
	// step budget.
	boundaries := segmentBoundaries(segments)
	segIdx := 0
	parts := make([]string, 0, len(clips))
	for i, clip := range clips {
		if err := ctx.Err(); err != nil {
			return RenderedVideo{}, errors.Wrap(errors.ErrCodeEncodingFailed, err, "assembly interrupted")
		}
		for segIdx < n && i >= boundaries[segIdx] {
			segIdx++
		}
		rep.Report(segIdx, totalSteps, fmt.Sprintf("准备视频片段 %d/%d", segIdx+1, n))

		part := filepath.Join(scratch, fmt.Sprintf("clip_%03d.ts", i))
		if err := a.encodeClip(clip, transitionPath, scratch, part); err != nil {
			return RenderedVideo{}, err
		}
		parts = append(parts, part)
		observability.Assembly().OnClipEncoded(ctx, i, len(clips), clip.Duration)
	}

	rep.Report(n, totalSteps, "正在拼接视频片段...")

	observability.Assembly().OnExportStart(ctx, outputPath, nominal)
	start := time.Now()

	sup := newSupervisor(rep, n, nominal)
	sup.start()
	err := a.concat(parts, scratch, outputPath)
	sup.stop(err == nil)

	observability.Assembly().OnExportComplete(ctx, outputPath, time.Since(start), err)
	if err != nil {
		return RenderedVideo{}, err
	}

	a.logger.Info("video exported", "path", outputPath, "duration", FormatDuration(nominal))
	return RenderedVideo{Path: outputPath, TotalDuration: nominal}, nil
}

// segmentBoundaries returns, per segment, the index one past its last clip
// in the flat plan.
func segmentBoundaries(segments []*news.Segment) []int {
	bounds := make([]int, len(segments))
	end := 0
	for i, seg := range segments {
		end += len(seg.PhotoPaths) + 1
		bounds[i] = end
	}
	return bounds
}

// encodeClip renders one still-image clip to an intermediate mpegts file.
// Photos are letterboxed onto the canvas first so every intermediate shares
// one resolution and the final join can stream-copy.
func (a *Assembler) encodeClip(clip Clip, transitionPath, scratch, outPath string) error {
	imagePath := clip.ImagePath
	if clip.AudioPath == "" {
		framed, err := a.letterbox(clip.ImagePath, scratch)
		if err != nil {
			return err
		}
		imagePath = framed
	}

	video := ffmpeg.Input(imagePath, ffmpeg.KwArgs{
		"loop":      1,
		"framerate": a.cfg.Video.FPS,
		"t":         fmt.Sprintf("%.3f", clip.Duration),
	})

	audio := a.audioStream(clip, transitionPath)

	err := ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outPath, ffmpeg.KwArgs{
		"c:v":     a.cfg.Video.Codec,
		"c:a":     a.cfg.Video.AudioCodec,
		"b:v":     a.cfg.Video.Bitrate,
		"preset":  a.cfg.Video.Preset,
		"pix_fmt": "yuv420p",
		"r":       a.cfg.Video.FPS,
		"t":       fmt.Sprintf("%.3f", clip.Duration),
		"f":       "mpegts",
	}).OverWriteOutput().Run()
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncodingFailed, err, "encode clip %s", filepath.Base(outPath))
	}
	return nil
}

// audioStream builds the clip's audio: narration or generated silence, with
// the transition sound mixed in at the start when planned. The mix keeps the
// base track's duration.
func (a *Assembler) audioStream(clip Clip, transitionPath string) *ffmpeg.Stream {
	var base *ffmpeg.Stream
	if clip.AudioPath != "" {
		base = ffmpeg.Input(clip.AudioPath)
	} else {
		base = ffmpeg.Input("anullsrc=channel_layout=mono:sample_rate=44100", ffmpeg.KwArgs{
			"f": "lavfi",
			"t": fmt.Sprintf("%.3f", clip.Duration),
		})
	}
	if !clip.MixTransition || transitionPath == "" {
		return base
	}
	transition := ffmpeg.Input(transitionPath)
	return ffmpeg.Filter([]*ffmpeg.Stream{base, transition}, "amix", ffmpeg.Args{}, ffmpeg.KwArgs{
		"inputs":   2,
		"duration": "first",
	})
}

// concat joins the intermediate transport streams with the concat demuxer,
// stream-copying both tracks.
func (a *Assembler) concat(parts []string, scratch, outputPath string) error {
	listPath := filepath.Join(scratch, "concat.txt")
	f, err := os.Create(listPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncodingFailed, err, "create concat list")
	}
	for _, p := range parts {
		fmt.Fprintf(f, "file '%s'\n", filepath.ToSlash(p))
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeEncodingFailed, err, "write concat list")
	}

	err = ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Output(outputPath, ffmpeg.KwArgs{
			"c":     "copy",
			"bsf:a": "aac_adtstoasc",
		}).
		OverWriteOutput().Run()
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncodingFailed, err, "join clips into %s", outputPath)
	}
	return nil
}

// letterbox fits a photo onto a canvas-sized black frame so photo clips
// match the card resolution.
func (a *Assembler) letterbox(photoPath, scratch string) (string, error) {
	img, err := imaging.Open(photoPath)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeEncodingFailed, err, "open photo %s", photoPath)
	}
	w, h := a.cfg.Layout.CanvasWidth, a.cfg.Layout.CanvasHeight
	fitted := imaging.Fit(img, w, h, imaging.Lanczos)
	framed := imaging.PasteCenter(imaging.New(w, h, color.Black), fitted)

	out := filepath.Join(scratch, "photo_"+uuid.NewString()+".png")
	if err := imaging.Save(framed, out); err != nil {
		return "", errors.Wrap(errors.ErrCodeEncodingFailed, err, "letterbox photo %s", photoPath)
	}
	return out, nil
}
