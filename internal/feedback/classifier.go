package feedback

import "github.com/abhisek/sensei/internal/pose"

// Rule is one threshold rule. Evaluate returns the observation it emits, or
// false when the metric falls in the rule's silent band.
type Rule interface {
	Name() string
	Evaluate(m pose.Metrics) (Observation, bool)
}

// DefaultRules returns the rules in emission order: right elbow, left elbow,
// shoulder-hip alignment, center, foot distance, posture height.
func DefaultRules() []Rule {
	return []Rule{
		&ElbowRule{Side: Right},
		&ElbowRule{Side: Left},
		&AlignmentRule{},
		&CenterRule{},
		&BaseRule{},
		&PostureRule{},
	}
}

// Classify runs the default rules over m.
func Classify(m pose.Metrics) []Observation {
	return RunRules(DefaultRules(), m)
}

// RunRules evaluates every rule in order; each contributes zero or one observation.
func RunRules(rules []Rule, m pose.Metrics) []Observation {
	var out []Observation
	for _, r := range rules {
		if obs, ok := r.Evaluate(m); ok {
			out = append(out, obs)
		}
	}
	return out
}

// ElbowRule flags a closed or locked elbow and praises the 120–150° band.
type ElbowRule struct {
	Side Side
}

func (r *ElbowRule) Name() string { return string(r.metric()) }

func (r *ElbowRule) metric() Metric {
	if r.Side == Left {
		return MetricLeftElbow
	}
	return MetricRightElbow
}

func (r *ElbowRule) Evaluate(m pose.Metrics) (Observation, bool) {
	angle := m.Angles.RightElbow
	if r.Side == Left {
		angle = m.Angles.LeftElbow
	}

	obs := Observation{Metric: r.metric(), Side: r.Side}
	switch {
	case angle < 90:
		obs.Kind, obs.Polarity = KindElbowBent, Negative
	case angle > 160:
		obs.Kind, obs.Polarity = KindElbowLocked, Negative
	case angle >= 120 && angle <= 150:
		obs.Kind, obs.Polarity = KindElbowGood, Positive
	default:
		return Observation{}, false
	}
	return obs, true
}

// AlignmentRule compares the shoulder and hip midlines.
type AlignmentRule struct{}

func (r *AlignmentRule) Name() string { return string(MetricAlignment) }

func (r *AlignmentRule) Evaluate(m pose.Metrics) (Observation, bool) {
	a := m.Alignments.ShoulderHip
	switch {
	case a > 5:
		return Observation{Metric: MetricAlignment, Kind: KindTorsoTwisted, Polarity: Negative}, true
	case a < 2:
		return Observation{Metric: MetricAlignment, Kind: KindTorsoAligned, Polarity: Positive}, true
	}
	return Observation{}, false
}

// CenterRule checks how far the hip midpoint sits from the middle of the frame.
type CenterRule struct{}

func (r *CenterRule) Name() string { return string(MetricCenter) }

func (r *CenterRule) Evaluate(m pose.Metrics) (Observation, bool) {
	d := m.Center.Deviation
	switch {
	case d > 8:
		dir := Left
		if m.Center.X > 0.5 {
			dir = Right
		}
		return Observation{Metric: MetricCenter, Kind: KindCenterShifted, Polarity: Negative, Side: dir}, true
	case d < 3:
		return Observation{Metric: MetricCenter, Kind: KindCenterGood, Polarity: Positive}, true
	}
	return Observation{}, false
}

// BaseRule checks the distance between the feet.
type BaseRule struct{}

func (r *BaseRule) Name() string { return string(MetricFootDistance) }

func (r *BaseRule) Evaluate(m pose.Metrics) (Observation, bool) {
	f := m.Distances.Foot
	switch {
	case f < 15:
		return Observation{Metric: MetricFootDistance, Kind: KindBaseNarrow, Polarity: Negative}, true
	case f > 35:
		return Observation{Metric: MetricFootDistance, Kind: KindBaseWide, Polarity: Negative}, true
	case f >= 20 && f <= 30:
		return Observation{Metric: MetricFootDistance, Kind: KindBaseAdequate, Polarity: Positive}, true
	}
	return Observation{}, false
}

// PostureRule always emits exactly one observation about posture height.
type PostureRule struct{}

func (r *PostureRule) Name() string { return string(MetricPosture) }

func (r *PostureRule) Evaluate(m pose.Metrics) (Observation, bool) {
	h := m.Distances.PostureHeight
	obs := Observation{Metric: MetricPosture}
	switch {
	case h > 45:
		obs.Kind, obs.Polarity = KindPostureHigh, Negative
	case h < 35:
		obs.Kind, obs.Polarity = KindPostureLow, Negative
	default:
		obs.Kind, obs.Polarity = KindPostureAdequate, Positive
	}
	return obs, true
}
