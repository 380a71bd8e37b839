// Package capture samples the live pose stream into a chronological session
// of frames after a countdown.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/abhisek/sensei/internal/pose"
)

// State is the sampler lifecycle.
type State int32

const (
	StateIdle State = iota
	StateCountingDown
	StateRecording
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountingDown:
		return "counting-down"
	case StateRecording:
		return "recording"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// ErrBusy is returned when Capture is called while a capture is running.
var ErrBusy = errors.New("capture already running")

// StatusSink receives progress updates. Implementations must not block.
type StatusSink interface {
	CountdownTick(remaining int)
	CaptureStarted()
	RecordingTick(remaining time.Duration, frames int)
	CaptureDone(frames int)
}

// NopSink discards status updates.
type NopSink struct{}

func (NopSink) CountdownTick(int)                {}
func (NopSink) CaptureStarted()                  {}
func (NopSink) RecordingTick(time.Duration, int) {}
func (NopSink) CaptureDone(int)                  {}

// Sampler counts down and then samples the cell at a fixed rate.
type Sampler struct {
	cfg    Config
	cell   *Cell
	clock  Clock
	sink   StatusSink
	logger *slog.Logger
	state  atomic.Int32
}

// Option configures a Sampler.
type Option func(*Sampler)

func WithClock(c Clock) Option         { return func(s *Sampler) { s.clock = c } }
func WithSink(sink StatusSink) Option  { return func(s *Sampler) { s.sink = sink } }
func WithLogger(l *slog.Logger) Option { return func(s *Sampler) { s.logger = l } }

// NewSampler creates a sampler reading from cell.
func NewSampler(cfg Config, cell *Cell, opts ...Option) *Sampler {
	s := &Sampler{
		cfg:    cfg,
		cell:   cell,
		clock:  RealClock{},
		sink:   NopSink{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Sampler) State() State { return State(s.state.Load()) }

// Capture runs one countdown and capture. The sampler returns to idle
// afterwards and may be reused.
func (s *Sampler) Capture(ctx context.Context) (*Session, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("capture config: %w", err)
	}
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateCountingDown)) {
		return nil, ErrBusy
	}
	defer s.state.Store(int32(StateIdle))

	if err := s.countdown(ctx); err != nil {
		return nil, err
	}

	s.state.Store(int32(StateRecording))
	s.sink.CaptureStarted()

	var (
		session *Session
		err     error
	)
	if s.cfg.CaptureSequence {
		session, err = s.recordSequence(ctx)
	} else {
		session = s.captureOnce()
	}
	if err != nil {
		return nil, err
	}

	s.state.Store(int32(StateDone))
	s.sink.CaptureDone(len(session.Frames))
	return session, nil
}

func (s *Sampler) countdown(ctx context.Context) error {
	if s.cfg.Countdown == 0 {
		return nil
	}
	ticker := s.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for remaining := s.cfg.Countdown; remaining > 0; remaining-- {
		s.sink.CountdownTick(remaining)
		select {
		case <-ticker.C():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *Sampler) captureOnce() *Session {
	now := s.clock.Now()
	session := &Session{StartedAt: now, EndedAt: now, Ticks: 1}
	s.sample(session, now)
	return session
}

func (s *Sampler) recordSequence(ctx context.Context) (*Session, error) {
	period := s.cfg.Period()
	total := s.cfg.TotalFrames()

	start := s.clock.Now()
	session := &Session{StartedAt: start}

	ticker := s.clock.NewTicker(period)
	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			return nil, ctx.Err()
		case tick := <-ticker.C():
			session.Ticks++
			elapsed := tick.Sub(start)
			s.sample(session, tick)

			remaining := max(s.cfg.Duration-elapsed, 0)
			s.sink.RecordingTick(remaining, len(session.Frames))

			if elapsed >= s.cfg.Duration || session.Ticks >= total {
				ticker.Stop()
				session.EndedAt = tick
				s.logger.Debug("capture finished",
					"frames", len(session.Frames),
					"ticks", session.Ticks,
					"skipped", session.Skipped,
					"elapsed", elapsed)
				return session, nil
			}
		}
	}
}

// sample appends a frame built from the current cell value. An empty cell or
// an incomplete landmark set skips the tick.
func (s *Sampler) sample(session *Session, at time.Time) {
	latest := s.cell.Load()
	if latest == nil {
		session.Skipped++
		return
	}

	metrics, err := pose.Extract(latest.Landmarks)
	if err != nil {
		session.Skipped++
		s.logger.Warn("skipping frame", "tick", session.Ticks, "error", err)
		return
	}

	frame := Frame{
		Index:     len(session.Frames),
		At:        at,
		Landmarks: latest.Landmarks,
		Metrics:   metrics,
	}
	if s.cfg.IncludeImage && latest.Image != nil {
		img, err := EncodeJPEG(latest.Image, s.cfg.ImageQuality)
		if err != nil {
			s.logger.Warn("dropping frame image", "tick", session.Ticks, "error", err)
		} else {
			frame.Image = img
		}
	}
	session.Frames = append(session.Frames, frame)
}
