package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/sensei/internal/coach"
	"github.com/abhisek/sensei/internal/llm"
	"github.com/abhisek/sensei/internal/speech"
	"github.com/abhisek/sensei/internal/store"
)

// newAnalyzer wires the generative text provider, the synthesizer and the
// store into an analyzer. A speech setup that fails validation is logged
// and the analyzer runs text-only.
func newAnalyzer(ctx context.Context, s *store.Store) (*coach.Analyzer, error) {
	if err := cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("llm config: %w", err)
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, s.EventRepo(), logger)
	if err != nil {
		return nil, err
	}

	opts := []coach.Option{
		coach.WithRepo(s.AnalysisRepo()),
		coach.WithParams(coach.ParamsFrom(cfg.LLM)),
		coach.WithDebug(cfg.Analysis.Debug),
		coach.WithLogger(logger),
	}
	if synth := newSynthesizer(); synth != nil {
		opts = append(opts, coach.WithSynthesizer(synth))
	}
	dir, err := audioDir()
	if err != nil {
		logger.Warn("audio files will not be kept", "error", err)
	} else {
		opts = append(opts, coach.WithAudioDir(dir))
	}
	return coach.New(provider, opts...), nil
}

func newSynthesizer() speech.Synthesizer {
	if err := cfg.Speech.Validate(); err != nil {
		logger.Warn("speech disabled", "error", err)
		return nil
	}
	synth, err := speech.New(cfg.Speech, logger)
	if err != nil {
		logger.Warn("speech disabled", "error", err)
		return nil
	}
	return synth
}
