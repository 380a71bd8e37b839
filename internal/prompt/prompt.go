// Package prompt composes the coaching instruction text sent to the
// generative model.
package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/abhisek/sensei/internal/feedback"
	"github.com/abhisek/sensei/internal/i18n"
	"github.com/abhisek/sensei/internal/pose"
	"github.com/abhisek/sensei/internal/technique"
)

// Input is everything needed to compose a prompt.
type Input struct {
	TechniqueID string
	Metrics     pose.Metrics
	// FrameCount is the number of images attached to the request.
	FrameCount int
	Locale     i18n.Locale
}

// Prompt is a composed prompt together with the analysis it was built from.
type Prompt struct {
	Text         string
	Technique    technique.Technique
	Observations []feedback.Observation
	Verdict      feedback.Verdict
}

type templateData struct {
	Technique    technique.Technique
	Observations []string
	Guidance     string
	FrameClause  string
	Sequence     bool
}

// Build classifies the metrics, assesses them and renders the prompt.
func Build(in Input) (*Prompt, error) {
	loc := in.Locale
	if !loc.Valid() {
		loc = i18n.Default
	}

	tech, err := technique.Lookup(in.TechniqueID, loc)
	if err != nil {
		return nil, err
	}

	obs := feedback.Classify(in.Metrics)
	verdict := feedback.Assess(obs)

	data := templateData{
		Technique:    tech,
		Observations: feedback.Texts(obs, loc),
		Guidance:     verdict.Guidance(loc),
		FrameClause:  frameClause(loc, in.FrameCount),
		Sequence:     in.FrameCount > 1,
	}

	var buf bytes.Buffer
	if err := templates[loc].Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	return &Prompt{
		Text:         buf.String(),
		Technique:    tech,
		Observations: obs,
		Verdict:      verdict,
	}, nil
}

// Compose returns only the prompt text.
func Compose(in Input) (string, error) {
	p, err := Build(in)
	if err != nil {
		return "", err
	}
	return p.Text, nil
}

func frameClause(loc i18n.Locale, frames int) string {
	switch {
	case frames > 1:
		if loc == i18n.Portuguese {
			return fmt.Sprintf("**%d imagens em sequência do movimento foram anexadas. Analise o FLUXO COMPLETO da técnica, do início ao fim.**", frames)
		}
		return fmt.Sprintf("**%d sequential images of the movement are attached. Analyze the COMPLETE FLOW of the technique, from start to finish.**", frames)
	case frames == 1:
		if loc == i18n.Portuguese {
			return "**Uma imagem do movimento está anexada para análise visual complementar.**"
		}
		return "**One image of the movement is attached for complementary visual analysis.**"
	}
	return ""
}

var templates = map[i18n.Locale]*template.Template{
	i18n.English:    template.Must(template.New("en").Parse(englishTemplate)),
	i18n.Portuguese: template.Must(template.New("pt-BR").Parse(portugueseTemplate)),
}
