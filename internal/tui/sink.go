package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sensei/internal/capture"
	"github.com/abhisek/sensei/internal/coach"
)

// Sink forwards sampler status to a running program.
type Sink struct {
	send func(tea.Msg)
}

var _ capture.StatusSink = Sink{}

// NewSink returns a Sink delivering messages through send, usually
// (*tea.Program).Send.
func NewSink(send func(tea.Msg)) Sink { return Sink{send: send} }

func (s Sink) CountdownTick(remaining int) { s.send(CountdownMsg{Remaining: remaining}) }

func (s Sink) CaptureStarted() { s.send(StartedMsg{}) }

func (s Sink) RecordingTick(elapsed time.Duration, frames int) {
	s.send(RecordingMsg{Elapsed: elapsed, Frames: frames})
}

func (s Sink) CaptureDone(frames int) { s.send(CapturedMsg{Frames: frames}) }

// AnalyzeFunc runs one analysis reporting capture progress to sink.
type AnalyzeFunc func(ctx context.Context, sink capture.StatusSink) (*coach.Result, error)

// Run shows the status model while analyze executes. Quitting the program
// cancels the analysis.
func Run(ctx context.Context, m Model, analyze AnalyzeFunc) (*coach.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithContext(ctx))

	type outcome struct {
		res *coach.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := analyze(ctx, NewSink(p.Send))
		if err != nil {
			p.Send(ErrMsg{Err: err})
		} else {
			p.Send(ResultMsg{Result: res})
		}
		done <- outcome{res, err}
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return nil, err
	}
	cancel()
	out := <-done
	return out.res, out.err
}
