package capture

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/abhisek/sensei/internal/pose"
)

// Sample is one detector result: the landmarks and, optionally, the camera
// frame they were detected on.
type Sample struct {
	Landmarks pose.LandmarkSet
	Image     image.Image
	At        time.Time
}

// Cell holds the most recent Sample. The detector writes it at its own
// rate and the sampler reads it on each tick; the last write wins.
type Cell struct {
	p atomic.Pointer[Sample]
}

// Store publishes s, replacing any previous sample.
func (c *Cell) Store(s *Sample) { c.p.Store(s) }

// Load returns the latest sample or nil if nothing was published yet.
func (c *Cell) Load() *Sample { return c.p.Load() }

// Reset clears the cell.
func (c *Cell) Reset() { c.p.Store(nil) }
