package feedback

import "github.com/abhisek/sensei/internal/i18n"

// Verdict is the coarse overall quality of a technique execution.
type Verdict string

const (
	VerdictGood             Verdict = "good"
	VerdictNeedsImprovement Verdict = "needs-improvement"
	VerdictPartial          Verdict = "partial"
)

// Tally counts observations by polarity. Neutral observations are not counted.
type Tally struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Count tallies obs.
func Count(obs []Observation) Tally {
	var t Tally
	for _, o := range obs {
		switch o.Polarity {
		case Positive:
			t.Positive++
		case Negative:
			t.Negative++
		}
	}
	return t
}

// Verdict applies the decision rule. Ties default to partial.
func (t Tally) Verdict() Verdict {
	switch {
	case t.Negative == 0 && t.Positive > 0:
		return VerdictGood
	case t.Negative > t.Positive:
		return VerdictNeedsImprovement
	default:
		return VerdictPartial
	}
}

// Assess returns the verdict for an observation list.
func Assess(obs []Observation) Verdict {
	return Count(obs).Verdict()
}

// Guidance is the instruction line given to the generative model for v.
func (v Verdict) Guidance(loc i18n.Locale) string {
	return phrasebookFor(loc).verdicts[v]
}
