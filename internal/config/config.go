// Package config loads sensei settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/sensei/internal/capture"
	"github.com/abhisek/sensei/internal/i18n"
	"github.com/abhisek/sensei/internal/llm"
	"github.com/abhisek/sensei/internal/speech"
)

// Analysis holds the capture and analysis knobs.
type Analysis struct {
	MinPoseConfidence float64 `yaml:"min_pose_confidence"`
	IncludeImage      bool    `yaml:"include_image"`
	ImageQuality      float64 `yaml:"image_quality"`
	CaptureSequence   bool    `yaml:"capture_sequence"`
	// SequenceDuration is in seconds.
	SequenceDuration int    `yaml:"sequence_duration"`
	FramesPerSecond  int    `yaml:"frames_per_second"`
	Countdown        int    `yaml:"countdown"`
	Debug            bool   `yaml:"debug"`
	Locale           string `yaml:"locale"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Store struct {
	// DB is the sqlite path. Empty means the default data dir.
	DB string `yaml:"db"`
	// AudioDir holds synthesized audio. Empty means <data dir>/audio.
	AudioDir string `yaml:"audio_dir"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Config is the root of the configuration file.
type Config struct {
	Analysis Analysis      `yaml:"analysis"`
	LLM      llm.Config    `yaml:"llm"`
	Speech   speech.Config `yaml:"speech"`
	Server   Server        `yaml:"server"`
	Store    Store         `yaml:"store"`
	Log      Log           `yaml:"log"`
}

func Default() Config {
	return Config{
		Analysis: Analysis{
			MinPoseConfidence: 0.5,
			IncludeImage:      true,
			ImageQuality:      0.6,
			CaptureSequence:   true,
			SequenceDuration:  5,
			FramesPerSecond:   2,
			Countdown:         3,
			Locale:            string(i18n.Default),
		},
		LLM:    llm.DefaultConfig(),
		Speech: speech.DefaultConfig(),
		Server: Server{Addr: ":8080"},
		Log:    Log{Level: "info"},
	}
}

// Load reads path over the defaults and then applies the environment.
// An empty path falls back to $SENSEI_CONFIG; with neither set only
// defaults and environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("SENSEI_CONFIG")
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	llm.ApplyEnv(&cfg.LLM)
	if !cfg.LLM.HasKey() {
		llm.Discover(&cfg.LLM)
	}
	speech.ApplyEnv(&cfg.Speech)

	if v := os.Getenv("SENSEI_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SENSEI_DB"); v != "" {
		cfg.Store.DB = v
	}
	if v := os.Getenv("SENSEI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SENSEI_LOCALE"); v != "" {
		cfg.Analysis.Locale = v
	}
	if v := os.Getenv("SENSEI_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Analysis.Debug = b
		}
	}
}

// Capture converts the analysis section into sampler settings.
func (a Analysis) Capture() capture.Config {
	return capture.Config{
		Countdown:       a.Countdown,
		CaptureSequence: a.CaptureSequence,
		Duration:        time.Duration(a.SequenceDuration) * time.Second,
		FramesPerSecond: a.FramesPerSecond,
		IncludeImage:    a.IncludeImage,
		ImageQuality:    a.ImageQuality,
	}
}

// Lang resolves the configured locale, falling back to the default.
func (a Analysis) Lang() i18n.Locale {
	return i18n.Match(a.Locale)
}

// LogLevel parses the log level. Debug mode forces debug.
func (c Config) LogLevel() (slog.Level, error) {
	if c.Analysis.Debug {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// Validate checks the sections every command depends on. External
// services are checked by ValidateServices.
func (c Config) Validate() error {
	var errs []error
	if err := c.Analysis.Capture().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Analysis.MinPoseConfidence < 0 || c.Analysis.MinPoseConfidence > 1 {
		errs = append(errs, fmt.Errorf("min pose confidence must be in [0, 1], got %g", c.Analysis.MinPoseConfidence))
	}
	if !i18n.Locale(c.Analysis.Locale).Valid() {
		errs = append(errs, fmt.Errorf("unsupported locale %q", c.Analysis.Locale))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateServices checks the generative text and speech settings.
func (c Config) ValidateServices() error {
	return errors.Join(c.LLM.Validate(), c.Speech.Validate())
}
