// Package feedback turns pose metrics into qualitative observations and an
// overall verdict on technique quality.
package feedback

import (
	"fmt"

	"github.com/abhisek/sensei/internal/i18n"
)

// Metric names the measurement an observation is about.
type Metric string

const (
	MetricRightElbow   Metric = "right-elbow"
	MetricLeftElbow    Metric = "left-elbow"
	MetricAlignment    Metric = "shoulder-hip-alignment"
	MetricCenter       Metric = "center"
	MetricFootDistance Metric = "foot-distance"
	MetricPosture      Metric = "posture-height"
)

// Polarity is the qualitative kind of an observation.
type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
	Neutral  Polarity = "neutral"
)

// Kind identifies the finding and selects its wording.
type Kind string

const (
	KindElbowBent       Kind = "elbow-bent"
	KindElbowLocked     Kind = "elbow-locked"
	KindElbowGood       Kind = "elbow-good"
	KindTorsoTwisted    Kind = "torso-twisted"
	KindTorsoAligned    Kind = "torso-aligned"
	KindCenterShifted   Kind = "center-shifted"
	KindCenterGood      Kind = "center-good"
	KindBaseNarrow      Kind = "base-narrow"
	KindBaseWide        Kind = "base-wide"
	KindBaseAdequate    Kind = "base-adequate"
	KindPostureHigh     Kind = "posture-high"
	KindPostureLow      Kind = "posture-low"
	KindPostureAdequate Kind = "posture-adequate"
)

// Side is a body side or a horizontal direction.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// Observation is one qualitative biomechanical remark. The polarity is
// attached at classification time so scoring never depends on wording.
type Observation struct {
	Metric   Metric   `json:"metric"`
	Polarity Polarity `json:"polarity"`
	Kind     Kind     `json:"kind"`
	// Side is the body side for elbow findings and the shift direction for
	// the center finding; empty otherwise.
	Side Side `json:"side,omitempty"`
}

// Text renders the observation in the given locale.
func (o Observation) Text(loc i18n.Locale) string {
	p := phrasebookFor(loc)
	format, ok := p.kinds[o.Kind]
	if !ok {
		return string(o.Kind)
	}
	switch o.Kind {
	case KindElbowBent, KindElbowLocked, KindElbowGood:
		return fmt.Sprintf(format, p.elbowSide[o.Side])
	case KindCenterShifted:
		return fmt.Sprintf(format, p.direction[o.Side])
	}
	return format
}

// Texts renders each observation in order.
func Texts(obs []Observation, loc i18n.Locale) []string {
	out := make([]string, len(obs))
	for i, o := range obs {
		out[i] = o.Text(loc)
	}
	return out
}
