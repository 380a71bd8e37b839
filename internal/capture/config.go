package capture

import (
	"errors"
	"fmt"
	"time"
)

// Config controls countdown and sampling.
type Config struct {
	// Countdown is the number of one-second ticks before capture begins.
	Countdown       int
	CaptureSequence bool
	Duration        time.Duration
	FramesPerSecond int
	IncludeImage    bool
	// ImageQuality is the JPEG quality in (0, 1].
	ImageQuality float64
}

// DefaultConfig returns the stock capture settings.
func DefaultConfig() Config {
	return Config{
		Countdown:       3,
		CaptureSequence: true,
		Duration:        5 * time.Second,
		FramesPerSecond: 2,
		IncludeImage:    true,
		ImageQuality:    0.6,
	}
}

// Period is the interval between sampling ticks.
func (c Config) Period() time.Duration {
	return time.Second / time.Duration(c.FramesPerSecond)
}

// TotalFrames is the tick budget of a sequence capture.
func (c Config) TotalFrames() int {
	return int(c.Duration / c.Period())
}

// Validate checks the config for values the sampler cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Countdown < 0 {
		errs = append(errs, fmt.Errorf("countdown must be >= 0, got %d", c.Countdown))
	}
	if c.CaptureSequence {
		if c.FramesPerSecond <= 0 {
			errs = append(errs, fmt.Errorf("frames per second must be > 0, got %d", c.FramesPerSecond))
		}
		if c.Duration <= 0 {
			errs = append(errs, fmt.Errorf("sequence duration must be > 0, got %s", c.Duration))
		}
	}
	if c.IncludeImage && (c.ImageQuality <= 0 || c.ImageQuality > 1) {
		errs = append(errs, fmt.Errorf("image quality must be in (0, 1], got %g", c.ImageQuality))
	}
	return errors.Join(errs...)
}
