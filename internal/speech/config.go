package speech

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config selects and configures the speech synthesizer.
type Config struct {
	// Provider is one of "elevenlabs", "openai", "mock" or "none".
	Provider string `yaml:"provider"`

	ElevenLabs ElevenLabsConfig `yaml:"elevenlabs"`
	OpenAI     OpenAIConfig     `yaml:"openai"`

	Timeout time.Duration `yaml:"timeout"`
}

// ElevenLabsConfig holds ElevenLabs text-to-speech settings.
type ElevenLabsConfig struct {
	APIKey          string  `yaml:"api_key"`
	Voice           string  `yaml:"voice"`
	Model           string  `yaml:"model"`
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`
	OutputFormat    string  `yaml:"output_format"` // optional, e.g. "mp3_44100_128"
	BaseURL         string  `yaml:"base_url"`
}

// OpenAIConfig holds OpenAI text-to-speech settings.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Voice   string `yaml:"voice"`
	BaseURL string `yaml:"base_url"`
}

func DefaultConfig() Config {
	return Config{
		Provider: "elevenlabs",
		ElevenLabs: ElevenLabsConfig{
			Model:           "eleven_multilingual_v2",
			Stability:       0.5,
			SimilarityBoost: 0.75,
			BaseURL:         defaultElevenLabsBaseURL,
		},
		OpenAI: OpenAIConfig{
			Model: "tts-1",
			Voice: "onyx",
		},
		Timeout: 30 * time.Second,
	}
}

// ApplyEnv overrides cfg with SENSEI_SPEECH_* and ELEVENLABS_* variables.
func ApplyEnv(cfg *Config) {
	if p := os.Getenv("SENSEI_SPEECH_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("SENSEI_ELEVENLABS_API_KEY"); k != "" {
		cfg.ElevenLabs.APIKey = k
	} else if k := os.Getenv("ELEVENLABS_API_KEY"); k != "" && cfg.ElevenLabs.APIKey == "" {
		cfg.ElevenLabs.APIKey = k
	}
	if v := os.Getenv("SENSEI_ELEVENLABS_VOICE"); v != "" {
		cfg.ElevenLabs.Voice = v
	}
	if v := os.Getenv("SENSEI_ELEVENLABS_STABILITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ElevenLabs.Stability = f
		}
	}

	if k := os.Getenv("SENSEI_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	} else if k := os.Getenv("OPENAI_API_KEY"); k != "" && cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = k
	}
	if v := os.Getenv("SENSEI_OPENAI_TTS_VOICE"); v != "" {
		cfg.OpenAI.Voice = v
	}
}

// Validate checks that the selected provider is usable.
func (c Config) Validate() error {
	switch c.Provider {
	case "elevenlabs":
		if c.ElevenLabs.APIKey == "" {
			return fmt.Errorf("ELEVENLABS_API_KEY is required for the elevenlabs speech provider")
		}
		if c.ElevenLabs.Voice == "" {
			return fmt.Errorf("speech.elevenlabs.voice is required")
		}
		if c.ElevenLabs.Stability < 0 || c.ElevenLabs.Stability > 1 {
			return fmt.Errorf("speech stability must be in [0, 1], got %g", c.ElevenLabs.Stability)
		}
		if c.ElevenLabs.SimilarityBoost < 0 || c.ElevenLabs.SimilarityBoost > 1 {
			return fmt.Errorf("speech similarity_boost must be in [0, 1], got %g", c.ElevenLabs.SimilarityBoost)
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("SENSEI_OPENAI_API_KEY is required for the openai speech provider")
		}
	case "mock", "none":
	default:
		return fmt.Errorf("unknown speech provider: %q", c.Provider)
	}
	return nil
}
