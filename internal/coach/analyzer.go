// Package coach runs one analysis end to end: capture, metrics, prompt,
// generated feedback, speech and persistence.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sensei/internal/capture"
	"github.com/abhisek/sensei/internal/feedback"
	"github.com/abhisek/sensei/internal/i18n"
	"github.com/abhisek/sensei/internal/llm"
	"github.com/abhisek/sensei/internal/pose"
	"github.com/abhisek/sensei/internal/prompt"
	"github.com/abhisek/sensei/internal/speech"
	"github.com/abhisek/sensei/internal/store"
	"github.com/abhisek/sensei/internal/technique"
)

// State of the analyzer.
type State int32

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Request triggers one analysis.
type Request struct {
	Technique string
	Locale    i18n.Locale
	// Capturer supplies the frames: a live sampler or frames captured
	// elsewhere (capture.Fixed).
	Capturer capture.Capturer
}

// Result is the outcome of a completed analysis.
type Result struct {
	SessionID        string                 `json:"session_id"`
	Technique        technique.Technique    `json:"technique"`
	Locale           i18n.Locale            `json:"locale"`
	FrameCount       int                    `json:"frame_count"`
	Metrics          pose.Metrics           `json:"metrics"`
	Observations     []feedback.Observation `json:"observations"`
	ObservationTexts []string               `json:"observation_texts"`
	Verdict          feedback.Verdict       `json:"verdict"`
	Prompt           string                 `json:"-"`
	Feedback         string                 `json:"feedback"`
	Audio            *speech.Audio          `json:"-"`
	AudioPath        string                 `json:"audio_path,omitempty"`
	// SynthesisErr is set when speech failed; Feedback is still valid.
	SynthesisErr error         `json:"-"`
	Latency      time.Duration `json:"-"`
}

// Params are the generation parameters sent with every request.
type Params struct {
	MaxTokens   int
	Temperature float64
	ImageDetail string
	Timeout     time.Duration
}

// ParamsFrom takes the generation parameters from an llm config.
func ParamsFrom(cfg llm.Config) Params {
	return Params{
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		ImageDetail: cfg.ImageDetail,
		Timeout:     cfg.Timeout,
	}
}

// Analyzer runs at most one analysis at a time.
type Analyzer struct {
	state atomic.Int32

	provider llm.Provider
	speech   speech.Synthesizer
	repo     store.AnalysisRepo
	audio    *store.AudioDir
	params   Params
	debug    bool
	logger   *slog.Logger

	newID func() string
	now   func() time.Time
}

type Option func(*Analyzer)

// WithSynthesizer enables speech. Without it results carry text only.
func WithSynthesizer(s speech.Synthesizer) Option { return func(a *Analyzer) { a.speech = s } }

// WithRepo persists every finished analysis.
func WithRepo(r store.AnalysisRepo) Option { return func(a *Analyzer) { a.repo = r } }

// WithAudioDir stores synthesized audio on disk.
func WithAudioDir(d store.AudioDir) Option { return func(a *Analyzer) { a.audio = &d } }

func WithParams(p Params) Option { return func(a *Analyzer) { a.params = p } }

// WithDebug logs composed prompts and generated feedback.
func WithDebug(on bool) Option { return func(a *Analyzer) { a.debug = on } }

func WithLogger(l *slog.Logger) Option { return func(a *Analyzer) { a.logger = l } }

// New creates an Analyzer generating feedback with p.
func New(p llm.Provider, opts ...Option) *Analyzer {
	a := &Analyzer{
		provider: p,
		params:   ParamsFrom(llm.DefaultConfig()),
		logger:   slog.Default(),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State reports whether an analysis is running.
func (a *Analyzer) State() State { return State(a.state.Load()) }

// Analyze runs one analysis. A call made while another is running returns
// ErrInFlight without side effects.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	if !a.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, ErrInFlight
	}
	defer a.state.Store(int32(StateIdle))

	start := a.now()
	loc := req.Locale
	if !loc.Valid() {
		loc = i18n.Default
	}

	tech, err := technique.Lookup(req.Technique, loc)
	if err != nil {
		return nil, err
	}

	session, err := req.Capturer.Capture(ctx)
	if err != nil {
		if errors.Is(err, capture.ErrBusy) {
			return nil, ErrInFlight
		}
		return nil, fmt.Errorf("capture: %w", err)
	}
	final, ok := session.Final()
	if !ok {
		return nil, ErrNoPose
	}

	images := session.Images()
	p, err := prompt.Build(prompt.Input{
		TechniqueID: tech.ID,
		Metrics:     final.Metrics,
		FrameCount:  len(images),
		Locale:      loc,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		SessionID:        a.newID(),
		Technique:        tech,
		Locale:           loc,
		FrameCount:       len(session.Frames),
		Metrics:          final.Metrics,
		Observations:     p.Observations,
		ObservationTexts: feedback.Texts(p.Observations, loc),
		Verdict:          p.Verdict,
		Prompt:           p.Text,
	}
	if a.debug {
		a.logger.Debug("composed prompt", "session", res.SessionID, "images", len(images), "prompt", p.Text)
	}

	text, err := a.generate(llm.WithSession(ctx, res.SessionID), p.Text, images)
	if err != nil {
		res.Latency = a.now().Sub(start)
		a.persist(ctx, res, err)
		return nil, err
	}
	res.Feedback = text
	if a.debug {
		a.logger.Debug("generated feedback", "session", res.SessionID, "feedback", text)
	}

	a.synthesize(ctx, res)
	res.Latency = a.now().Sub(start)
	a.persist(ctx, res, nil)

	a.logger.Info("analysis complete",
		"session", res.SessionID, "technique", tech.ID, "verdict", res.Verdict,
		"frames", res.FrameCount, "latency_ms", res.Latency.Milliseconds())
	return res, nil
}

func (a *Analyzer) generate(ctx context.Context, text string, images [][]byte) (string, error) {
	if a.params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.params.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "feedback")

	msg := llm.Message{Role: llm.RoleUser, Content: text}
	for _, img := range images {
		msg.Images = append(msg.Images, llm.JPEG(img))
	}

	resp, err := a.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{msg},
		MaxTokens:   a.params.MaxTokens,
		Temperature: a.params.Temperature,
		ImageDetail: a.params.ImageDetail,
	})
	if err != nil {
		return "", &GenerationFailedError{Reason: err.Error(), Err: err}
	}
	return resp.Text, nil
}

// synthesize never fails the analysis; errors land on the result.
func (a *Analyzer) synthesize(ctx context.Context, res *Result) {
	if a.speech == nil {
		return
	}
	audio, err := a.speech.Synthesize(ctx, res.Feedback)
	if err != nil {
		res.SynthesisErr = &SynthesisFailedError{Reason: err.Error(), Err: err}
		return
	}
	res.Audio = audio

	if a.audio == nil {
		return
	}
	path, err := a.audio.Save(res.SessionID, audio.Ext(), audio.Data)
	if err != nil {
		a.logger.Warn("failed to save audio", "session", res.SessionID, "error", err)
		return
	}
	res.AudioPath = path
}

func (a *Analyzer) persist(ctx context.Context, res *Result, genErr error) {
	if a.repo == nil {
		return
	}

	obs, _ := json.Marshal(res.Observations)
	metrics, _ := json.Marshal(res.Metrics)
	data := store.AnalysisEventData{
		SessionID:    res.SessionID,
		Technique:    res.Technique.ID,
		Locale:       string(res.Locale),
		Verdict:      string(res.Verdict),
		FrameCount:   res.FrameCount,
		Observations: obs,
		Metrics:      metrics,
		Prompt:       res.Prompt,
		Feedback:     res.Feedback,
		AudioPath:    res.AudioPath,
		Success:      genErr == nil,
		LatencyMs:    res.Latency.Milliseconds(),
	}
	if res.SynthesisErr != nil {
		data.SynthesisError = res.SynthesisErr.Error()
	}
	if genErr != nil {
		data.ErrorMessage = genErr.Error()
	}

	// The analysis result stands even if it could not be recorded.
	if _, err := a.repo.AppendAnalysis(context.WithoutCancel(ctx), data); err != nil {
		a.logger.Warn("failed to record analysis", "session", res.SessionID, "error", err)
	}
}
