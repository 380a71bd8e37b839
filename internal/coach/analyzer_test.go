package coach

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sensei/internal/capture"
	"github.com/abhisek/sensei/internal/feedback"
	"github.com/abhisek/sensei/internal/i18n"
	"github.com/abhisek/sensei/internal/llm"
	"github.com/abhisek/sensei/internal/pose"
	"github.com/abhisek/sensei/internal/speech"
	"github.com/abhisek/sensei/internal/store"
	"github.com/abhisek/sensei/internal/technique"
)

func mixedMetrics() pose.Metrics {
	var m pose.Metrics
	m.Angles.RightElbow = 80
	m.Angles.LeftElbow = 170
	m.Alignments.ShoulderHip = 1
	m.Center.X = 0.5
	m.Center.Deviation = 2
	m.Distances.Foot = 25
	m.Distances.PostureHeight = 40
	return m
}

func frames(n int, withImages bool) []capture.Frame {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	out := make([]capture.Frame, n)
	for i := range out {
		out[i] = capture.Frame{At: base.Add(time.Duration(i) * 500 * time.Millisecond), Metrics: mixedMetrics()}
		if withImages {
			out[i].Image = []byte{0xff, 0xd8, byte(i)}
		}
	}
	return out
}

type failingCapturer struct{ err error }

func (f failingCapturer) Capture(context.Context) (*capture.Session, error) { return nil, f.err }

type countingCapturer struct{ calls int }

func (c *countingCapturer) Capture(context.Context) (*capture.Session, error) {
	c.calls++
	return &capture.Session{}, nil
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "sensei.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAnalyze_FullFlow(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Text: "Bom alinhamento! Agora relaxe o cotovelo direito."})
	synth := speech.NewMockSynthesizer()
	st := openStore(t)
	audioDir := store.AudioDir{Root: t.TempDir()}

	a := New(provider,
		WithSynthesizer(synth),
		WithRepo(st.AnalysisRepo()),
		WithAudioDir(audioDir),
	)
	a.newID = func() string { return "session-1" }

	res, err := a.Analyze(context.Background(), Request{
		Technique: "ikkyo",
		Locale:    i18n.Portuguese,
		Capturer:  capture.Fixed(frames(3, true)),
	})
	require.NoError(t, err)

	assert.Equal(t, "session-1", res.SessionID)
	assert.Equal(t, "ikkyo", res.Technique.ID)
	assert.Equal(t, 3, res.FrameCount)
	assert.Equal(t, feedback.VerdictPartial, res.Verdict)
	assert.Len(t, res.Observations, 6)
	assert.Equal(t, "Cotovelo direito muito dobrado (fechado)", res.ObservationTexts[0])
	assert.Equal(t, "Bom alinhamento! Agora relaxe o cotovelo direito.", res.Feedback)
	assert.NoError(t, res.SynthesisErr)
	assert.Equal(t, filepath.Join(audioDir.Root, "session-1.mp3"), res.AudioPath)

	call, ok := provider.LastCall()
	require.True(t, ok)
	require.Len(t, call.Messages, 1)
	msg := call.Messages[0]
	assert.Equal(t, llm.RoleUser, msg.Role)
	require.Len(t, msg.Images, 3)
	for i, img := range msg.Images {
		assert.Equal(t, "image/jpeg", img.MIMEType)
		assert.Equal(t, byte(i), img.Data[2], "images keep capture order")
	}
	assert.Contains(t, msg.Content, "3 imagens em sequência")
	assert.Equal(t, 500, call.MaxTokens)
	assert.Equal(t, 0.7, call.Temperature)
	assert.Equal(t, "low", call.ImageDetail)

	assert.Equal(t, []string{res.Feedback}, synth.Texts)

	rec, err := st.AnalysisRepo().GetAnalysis(context.Background(), "session-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Success)
	assert.Equal(t, "partial", rec.Verdict)
	assert.Equal(t, "pt-BR", rec.Locale)
	assert.Equal(t, res.AudioPath, rec.AudioPath)
}

func TestAnalyze_NoImagesOmitsFrameClause(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	a := New(provider)

	_, err := a.Analyze(context.Background(), Request{
		Technique: "kokyu-ho",
		Capturer:  capture.Fixed(frames(2, false)),
	})
	require.NoError(t, err)

	call, _ := provider.LastCall()
	assert.Empty(t, call.Messages[0].Images)
	assert.NotContains(t, call.Messages[0].Content, "attached")
}

func TestAnalyze_UnknownTechniqueSkipsCapture(t *testing.T) {
	c := &countingCapturer{}
	a := New(llm.NewMockProvider())

	_, err := a.Analyze(context.Background(), Request{Technique: "kotegaeshi-x", Capturer: c})
	require.Error(t, err)
	assert.True(t, errors.Is(err, technique.ErrUnknownTechnique))
	assert.Zero(t, c.calls)
	assert.Equal(t, StateIdle, a.State())
}

func TestAnalyze_NoPose(t *testing.T) {
	a := New(llm.NewMockProvider())
	_, err := a.Analyze(context.Background(), Request{Technique: "ikkyo", Capturer: capture.Fixed(nil)})
	assert.ErrorIs(t, err, ErrNoPose)
}

func TestAnalyze_CaptureError(t *testing.T) {
	a := New(llm.NewMockProvider())

	_, err := a.Analyze(context.Background(), Request{Technique: "ikkyo", Capturer: failingCapturer{err: context.Canceled}})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = a.Analyze(context.Background(), Request{Technique: "ikkyo", Capturer: failingCapturer{err: capture.ErrBusy}})
	assert.ErrorIs(t, err, ErrInFlight)
}

func TestAnalyze_GenerationFailure(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	synth := speech.NewMockSynthesizer()
	st := openStore(t)

	a := New(provider, WithSynthesizer(synth), WithRepo(st.AnalysisRepo()))
	a.newID = func() string { return "failed-1" }

	res, err := a.Analyze(context.Background(), Request{Technique: "ikkyo", Capturer: capture.Fixed(frames(1, true))})
	require.Error(t, err)
	assert.Nil(t, res)

	var gen *GenerationFailedError
	require.True(t, errors.As(err, &gen))
	assert.ErrorIs(t, err, ErrGenerationFailed)
	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl))
	assert.Zero(t, synth.Calls(), "no speech without feedback")

	rec, err := st.AnalysisRepo().GetAnalysis(context.Background(), "failed-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.Success)
	assert.NotEmpty(t, rec.ErrorMessage)
}

func TestAnalyze_SynthesisFailureKeepsFeedback(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Text: "Keep your center low."})
	synth := speech.NewMockSynthesizer()
	synth.Err = &speech.APIError{Service: "elevenlabs", StatusCode: 401, Status: "401 Unauthorized"}
	st := openStore(t)

	a := New(provider, WithSynthesizer(synth), WithRepo(st.AnalysisRepo()))
	a.newID = func() string { return "s-2" }

	res, err := a.Analyze(context.Background(), Request{Technique: "irimi-nage", Capturer: capture.Fixed(frames(1, true))})
	require.NoError(t, err)
	assert.Equal(t, "Keep your center low.", res.Feedback)
	assert.Nil(t, res.Audio)
	assert.ErrorIs(t, res.SynthesisErr, ErrSynthesisFailed)

	rec, err := st.AnalysisRepo().GetAnalysis(context.Background(), "s-2")
	require.NoError(t, err)
	assert.True(t, rec.Success)
	assert.True(t, strings.Contains(rec.SynthesisError, "401"))
}

func TestAnalyze_SingleFlight(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Text: "first"}, llm.MockResponse{Text: "second"})
	provider.Block = make(chan struct{})
	a := New(provider)

	done := make(chan error, 1)
	go func() {
		_, err := a.Analyze(context.Background(), Request{Technique: "ikkyo", Capturer: capture.Fixed(frames(1, false))})
		done <- err
	}()

	require.Eventually(t, func() bool { return a.State() == StateRunning }, time.Second, time.Millisecond)

	c := &countingCapturer{}
	_, err := a.Analyze(context.Background(), Request{Technique: "ikkyo", Capturer: c})
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Zero(t, c.calls, "rejected trigger must not capture")

	close(provider.Block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, provider.CallCount())
	assert.Equal(t, StateIdle, a.State())

	res, err := a.Analyze(context.Background(), Request{Technique: "ikkyo", Capturer: capture.Fixed(frames(1, false))})
	require.NoError(t, err)
	assert.Equal(t, "second", res.Feedback)
}

func TestAnalyze_TimeoutBoundsGeneration(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Text: "never"})
	provider.Block = make(chan struct{})
	a := New(provider, WithParams(Params{MaxTokens: 500, Temperature: 0.7, Timeout: 20 * time.Millisecond}))

	_, err := a.Analyze(context.Background(), Request{Technique: "ikkyo", Capturer: capture.Fixed(frames(1, false))})
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnalyze_DefaultsLocale(t *testing.T) {
	a := New(llm.NewMockProvider(llm.MockResponse{Text: "ok"}))
	res, err := a.Analyze(context.Background(), Request{Technique: "shiho-nage", Locale: "xx", Capturer: capture.Fixed(frames(1, false))})
	require.NoError(t, err)
	assert.Equal(t, i18n.English, res.Locale)
	assert.Equal(t, "Right elbow too bent (closed)", res.ObservationTexts[0])
}
