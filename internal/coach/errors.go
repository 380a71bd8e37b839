package coach

import (
	"errors"
	"fmt"
)

var (
	// ErrInFlight is returned when an analysis is triggered while another
	// one is running. Nothing is done for the rejected trigger.
	ErrInFlight = errors.New("analysis already in progress")

	// ErrNoPose means the capture finished without a single usable frame.
	ErrNoPose = errors.New("no pose captured")

	ErrGenerationFailed = errors.New("generation failed")
	ErrSynthesisFailed  = errors.New("synthesis failed")
)

// GenerationFailedError wraps a failed feedback generation. It aborts the
// analysis.
type GenerationFailedError struct {
	Reason string
	Err    error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerationFailedError) Unwrap() error { return e.Err }

func (e *GenerationFailedError) Is(target error) bool { return target == ErrGenerationFailed }

// SynthesisFailedError wraps a failed speech synthesis. The text feedback
// of the same analysis stays valid.
type SynthesisFailedError struct {
	Reason string
	Err    error
}

func (e *SynthesisFailedError) Error() string {
	return fmt.Sprintf("synthesis failed: %s", e.Reason)
}

func (e *SynthesisFailedError) Unwrap() error { return e.Err }

func (e *SynthesisFailedError) Is(target error) bool { return target == ErrSynthesisFailed }
