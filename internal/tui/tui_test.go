package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sensei/internal/coach"
	"github.com/abhisek/sensei/internal/feedback"
	"github.com/abhisek/sensei/internal/i18n"
	"github.com/abhisek/sensei/internal/pose"
)

func sampleMetrics() pose.Metrics {
	var m pose.Metrics
	m.Angles.RightElbow = 80
	m.Angles.LeftElbow = 170
	m.Angles.RightShoulder = 35
	m.Angles.LeftShoulder = 40
	m.Alignments.ShoulderHip = 1.04
	m.Center.Deviation = 2
	m.Distances.Foot = 25
	m.Distances.PostureHeight = 40.25
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestModel_CaptureFlow(t *testing.T) {
	m := NewModel("Ikkyo", i18n.English, 5*time.Second)
	assert.Equal(t, PhaseWaiting, m.Phase())
	assert.Contains(t, m.Render(), "Get into position")

	m, _ = step(t, m, CountdownMsg{Remaining: 3})
	assert.Equal(t, PhaseCountdown, m.Phase())
	assert.Contains(t, m.Render(), "Get ready... 3")

	m, _ = step(t, m, StartedMsg{})
	assert.Equal(t, PhaseRecording, m.Phase())
	assert.Contains(t, m.Render(), "Capturing!")

	m, _ = step(t, m, RecordingMsg{Elapsed: 2 * time.Second, Frames: 4})
	out := m.Render()
	assert.Contains(t, out, "Recording movement... 3s")
	assert.Contains(t, out, "40%")

	m, cmd := step(t, m, CapturedMsg{Frames: 10})
	assert.Equal(t, PhaseAnalyzing, m.Phase())
	assert.NotNil(t, cmd, "spinner starts ticking")
	assert.Contains(t, m.Render(), "Recording finished (10 frames)")
}

func TestModel_Result(t *testing.T) {
	m := NewModel("Ikkyo (Primeiro Princípio)", i18n.Portuguese, 5*time.Second)
	obs := []feedback.Observation{
		{Metric: feedback.MetricRightElbow, Polarity: feedback.Negative, Kind: feedback.KindElbowBent, Side: feedback.Right},
		{Metric: feedback.MetricPosture, Polarity: feedback.Positive, Kind: feedback.KindPostureAdequate},
	}
	res := &coach.Result{
		Feedback:         "Boa postura! Relaxe o cotovelo direito.",
		Metrics:          sampleMetrics(),
		Observations:     obs,
		ObservationTexts: feedback.Texts(obs, i18n.Portuguese),
		SynthesisErr:     errors.New("401"),
	}

	m, cmd := step(t, m, ResultMsg{Result: res})
	assert.Equal(t, PhaseDone, m.Phase())
	require.NotNil(t, cmd)
	_, quit := cmd().(tea.QuitMsg)
	assert.True(t, quit)

	out := m.Render()
	assert.Contains(t, out, "Boa postura!")
	assert.Contains(t, out, "Cotovelo direito muito dobrado (fechado)")
	assert.Contains(t, out, "Dados Técnicos")
	assert.Contains(t, out, "80°")
	assert.Contains(t, out, "Erro ao gerar áudio")
}

func TestModel_Error(t *testing.T) {
	m := NewModel("Ikkyo", i18n.English, 0)
	m, _ = step(t, m, ErrMsg{Err: errors.New("generation failed: provider down")})
	assert.Equal(t, PhaseFailed, m.Phase())
	out := m.Render()
	assert.Contains(t, out, "Analysis failed")
	assert.Contains(t, out, "provider down")
}

func TestSink_ForwardsStatus(t *testing.T) {
	var got []tea.Msg
	s := NewSink(func(msg tea.Msg) { got = append(got, msg) })

	s.CountdownTick(2)
	s.CaptureStarted()
	s.RecordingTick(time.Second, 2)
	s.CaptureDone(10)

	assert.Equal(t, []tea.Msg{
		CountdownMsg{Remaining: 2},
		StartedMsg{},
		RecordingMsg{Elapsed: time.Second, Frames: 2},
		CapturedMsg{Frames: 10},
	}, got)
}

func TestFormatPanel(t *testing.T) {
	out := FormatPanel(sampleMetrics(), i18n.English)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "Technical data:", lines[0])
	assert.Equal(t, "  Right elbow:    80°", lines[1])
	assert.Contains(t, out, "Alignment:      1.0%")
	assert.Contains(t, out, "2.0% deviation")
	assert.Contains(t, out, "Posture:        40.2%")

	pt := FormatPanel(sampleMetrics(), i18n.Portuguese)
	assert.Contains(t, pt, "Dados Técnicos:")
	assert.Contains(t, pt, "2.0% desvio")
}
