package capture

import (
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/sensei/internal/pose"
)

var epoch = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// fakeClock hands out tickers whose ticks are queued up front, so the
// sampler runs to completion without real time passing.
type fakeClock struct {
	mu      sync.Mutex
	limit   int // ticks queued per ticker; negative queues none
	tickers []*fakeTicker
}

func (c *fakeClock) Now() time.Time { return epoch }

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.limit
	if n == 0 {
		n = 1000
	}
	t := &fakeTicker{period: d, ch: make(chan time.Time, max(n, 0))}
	for i := 1; i <= n; i++ {
		t.ch <- epoch.Add(time.Duration(i) * d)
	}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *fakeClock) Tickers() []*fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*fakeTicker(nil), c.tickers...)
}

type fakeTicker struct {
	mu      sync.Mutex
	period  time.Duration
	ch      chan time.Time
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *fakeTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type recordingSink struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingSink) add(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recordingSink) CountdownTick(n int) { r.add(fmt.Sprintf("countdown %d", n)) }
func (r *recordingSink) CaptureStarted()     { r.add("started") }
func (r *recordingSink) RecordingTick(rem time.Duration, frames int) {
	r.add(fmt.Sprintf("recording %s %d", rem, frames))
}
func (r *recordingSink) CaptureDone(frames int) { r.add(fmt.Sprintf("done %d", frames)) }

func (r *recordingSink) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func fullPose() pose.LandmarkSet {
	set := make(pose.LandmarkSet, pose.NumLandmarks)
	for i := range set {
		set[i] = &pose.Landmark{X: 0.5, Y: 0.5, Visibility: 0.9}
	}
	set[pose.LeftShoulder] = &pose.Landmark{X: 0.45, Y: 0.30, Visibility: 0.9}
	set[pose.RightShoulder] = &pose.Landmark{X: 0.55, Y: 0.30, Visibility: 0.9}
	set[pose.LeftElbow] = &pose.Landmark{X: 0.42, Y: 0.42, Visibility: 0.9}
	set[pose.RightElbow] = &pose.Landmark{X: 0.58, Y: 0.42, Visibility: 0.9}
	set[pose.LeftWrist] = &pose.Landmark{X: 0.41, Y: 0.53, Visibility: 0.9}
	set[pose.RightWrist] = &pose.Landmark{X: 0.59, Y: 0.53, Visibility: 0.9}
	set[pose.LeftHip] = &pose.Landmark{X: 0.46, Y: 0.55, Visibility: 0.9}
	set[pose.RightHip] = &pose.Landmark{X: 0.54, Y: 0.55, Visibility: 0.9}
	set[pose.LeftKnee] = &pose.Landmark{X: 0.45, Y: 0.70, Visibility: 0.9}
	set[pose.RightKnee] = &pose.Landmark{X: 0.55, Y: 0.70, Visibility: 0.9}
	set[pose.LeftAnkle] = &pose.Landmark{X: 0.40, Y: 0.85, Visibility: 0.9}
	set[pose.RightAnkle] = &pose.Landmark{X: 0.60, Y: 0.85, Visibility: 0.9}
	return set
}
