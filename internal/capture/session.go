package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"time"

	"github.com/abhisek/sensei/internal/pose"
)

// Frame is one sampled instant.
type Frame struct {
	Index     int              `json:"index"`
	At        time.Time        `json:"at"`
	Landmarks pose.LandmarkSet `json:"landmarks"`
	Metrics   pose.Metrics     `json:"metrics"`
	Image     []byte           `json:"-"`
}

// Session is the ordered result of one capture.
type Session struct {
	Frames    []Frame
	StartedAt time.Time
	EndedAt   time.Time
	// Ticks counts sampling ticks including the ones that produced no frame.
	Ticks   int
	Skipped int
}

// Images returns the encoded images in chronological order, omitting
// frames captured without one.
func (s *Session) Images() [][]byte {
	var out [][]byte
	for _, f := range s.Frames {
		if len(f.Image) > 0 {
			out = append(out, f.Image)
		}
	}
	return out
}

// Final returns the last captured frame.
func (s *Session) Final() (Frame, bool) {
	if len(s.Frames) == 0 {
		return Frame{}, false
	}
	return s.Frames[len(s.Frames)-1], true
}

// Capturer produces a capture session.
type Capturer interface {
	Capture(ctx context.Context) (*Session, error)
}

type fixed struct {
	frames []Frame
}

// Fixed returns a Capturer that yields frames captured elsewhere.
func Fixed(frames []Frame) Capturer {
	return &fixed{frames: frames}
}

func (f *fixed) Capture(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &Session{Frames: make([]Frame, len(f.frames)), Ticks: len(f.frames)}
	copy(s.Frames, f.frames)
	for i := range s.Frames {
		s.Frames[i].Index = i
	}
	if len(s.Frames) > 0 {
		s.StartedAt = s.Frames[0].At
		s.EndedAt = s.Frames[len(s.Frames)-1].At
	}
	return s, nil
}

// EncodeJPEG encodes img at quality q in (0, 1].
func EncodeJPEG(img image.Image, q float64) ([]byte, error) {
	quality := int(math.Round(q * 100))
	quality = max(1, min(quality, 100))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
