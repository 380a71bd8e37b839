package recording

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"time"

	"github.com/abhisek/sensei/internal/capture"
)

// Replayer publishes recorded frames into a cell at their recorded offsets.
type Replayer struct {
	rec           *Recording
	minConfidence float64
	loop          bool
	logger        *slog.Logger
	wait          func(ctx context.Context, d time.Duration) error
	now           func() time.Time
}

// ReplayOption configures a Replayer.
type ReplayOption func(*Replayer)

// WithMinConfidence drops frames whose pose confidence is below c.
func WithMinConfidence(c float64) ReplayOption {
	return func(r *Replayer) { r.minConfidence = c }
}

// WithLoop restarts the stream from the first frame when it ends.
func WithLoop(loop bool) ReplayOption {
	return func(r *Replayer) { r.loop = loop }
}

func WithReplayLogger(l *slog.Logger) ReplayOption {
	return func(r *Replayer) { r.logger = l }
}

// NewReplayer creates a replayer for rec.
func NewReplayer(rec *Recording, opts ...ReplayOption) *Replayer {
	r := &Replayer{
		rec:    rec,
		logger: slog.Default(),
		wait:   sleep,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run publishes frames until the stream ends or ctx is done. With looping
// enabled it only returns on ctx cancellation.
func (r *Replayer) Run(ctx context.Context, cell *capture.Cell) error {
	images := make(map[string]image.Image)
	var prev int64
	for pass := 0; ; pass++ {
		for i, f := range r.rec.Frames {
			gap := f.T - prev
			if i == 0 {
				gap = 0
				if pass > 0 {
					gap = r.loopGap()
				}
			}
			prev = f.T
			if err := r.wait(ctx, time.Duration(gap)*time.Millisecond); err != nil {
				return err
			}

			if r.minConfidence > 0 && f.Landmarks.Confidence() < r.minConfidence {
				r.logger.Debug("dropping low-confidence frame", "t", f.T, "confidence", f.Landmarks.Confidence())
				continue
			}
			cell.Store(&capture.Sample{
				Landmarks: f.Landmarks,
				Image:     r.image(images, f),
				At:        r.now(),
			})
		}
		if !r.loop {
			return nil
		}
	}
}

// loopGap is the pause between the last frame and the first when looping:
// the mean spacing of the stream.
func (r *Replayer) loopGap() int64 {
	n := len(r.rec.Frames)
	if n >= 2 {
		if gap := (r.rec.Frames[n-1].T - r.rec.Frames[0].T) / int64(n-1); gap > 0 {
			return gap
		}
	}
	return 1000
}

func (r *Replayer) image(cache map[string]image.Image, f Frame) image.Image {
	path := r.rec.ImagePath(f)
	if path == "" {
		return nil
	}
	if img, ok := cache[path]; ok {
		return img
	}
	img, err := decodeImage(path)
	if err != nil {
		r.logger.Warn("skipping frame image", "path", path, "error", err)
	}
	cache[path] = img
	return img
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
