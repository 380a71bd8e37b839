package speech

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// New builds the configured Synthesizer wrapped with logging. Provider
// "none" yields a nil Synthesizer, which callers treat as audio disabled.
func New(cfg Config, logger *slog.Logger) (Synthesizer, error) {
	var base Synthesizer
	var err error

	switch cfg.Provider {
	case "elevenlabs":
		base, err = NewElevenLabs(cfg.ElevenLabs, &http.Client{Timeout: cfg.Timeout})
	case "openai":
		base, err = NewOpenAI(cfg.OpenAI)
	case "mock":
		base = NewMockSynthesizer()
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown speech provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s synthesizer: %w", cfg.Provider, err)
	}
	return WithLogging(base, cfg.Provider, logger), nil
}

type loggingSynthesizer struct {
	inner    Synthesizer
	provider string
	logger   *slog.Logger
}

// WithLogging logs every synthesis with its latency and outcome.
func WithLogging(s Synthesizer, provider string, logger *slog.Logger) Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingSynthesizer{inner: s, provider: provider, logger: logger}
}

func (l *loggingSynthesizer) Voice() string { return l.inner.Voice() }

func (l *loggingSynthesizer) Synthesize(ctx context.Context, text string) (*Audio, error) {
	start := time.Now()
	audio, err := l.inner.Synthesize(ctx, text)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		l.logger.Warn("speech synthesis failed",
			"provider", l.provider, "voice", l.inner.Voice(), "latency_ms", latency, "error", err)
		return nil, err
	}
	l.logger.Debug("speech synthesized",
		"provider", l.provider, "voice", l.inner.Voice(), "bytes", len(audio.Data), "latency_ms", latency)
	return audio, nil
}
