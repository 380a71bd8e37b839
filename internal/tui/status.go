// Package tui shows capture and analysis progress in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sensei/internal/coach"
	"github.com/abhisek/sensei/internal/feedback"
	"github.com/abhisek/sensei/internal/i18n"
)

// Phase of the on-screen session.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseCountdown
	PhaseRecording
	PhaseAnalyzing
	PhaseDone
	PhaseFailed
)

// Messages sent into the program by Sink and Run.
type (
	CountdownMsg struct{ Remaining int }
	StartedMsg   struct{}
	RecordingMsg struct {
		Elapsed time.Duration
		Frames  int
	}
	CapturedMsg struct{ Frames int }
	ResultMsg   struct{ Result *coach.Result }
	ErrMsg      struct{ Err error }
)

type phrases struct {
	waiting, countdown, capturing, recording, captured, analyzing, done, failed, audioFailed, quit string
}

var wording = map[i18n.Locale]phrases{
	i18n.English: {
		waiting:     "Get into position",
		countdown:   "Get ready... %d",
		capturing:   "Capturing!",
		recording:   "Recording movement... %ds",
		captured:    "Recording finished (%d frames)",
		analyzing:   "Analyzing movement...",
		done:        "Analysis complete",
		failed:      "Analysis failed",
		audioFailed: "Audio unavailable (feedback shown above)",
		quit:        "q to quit",
	},
	i18n.Portuguese: {
		waiting:     "Câmera ativa - Posicione-se",
		countdown:   "Prepare-se... %d",
		capturing:   "Capturando!",
		recording:   "Gravando movimento... %ds",
		captured:    "Gravação concluída! (%d frames)",
		analyzing:   "Analisando movimento...",
		done:        "Análise concluída",
		failed:      "Erro na análise",
		audioFailed: "Erro ao gerar áudio (feedback visível acima)",
		quit:        "q para sair",
	},
}

// Model is the bubbletea model of one analysis run.
type Model struct {
	technique string
	loc       i18n.Locale
	duration  time.Duration
	words     phrases

	phase     Phase
	remaining int
	elapsed   time.Duration
	frames    int
	result    *coach.Result
	err       error

	spinner spinner.Model
	width   int
}

// NewModel creates the status model. duration is the planned recording
// length and drives the progress bar; zero hides it.
func NewModel(techniqueName string, loc i18n.Locale, duration time.Duration) Model {
	if !loc.Valid() {
		loc = i18n.Default
	}
	return Model{
		technique: techniqueName,
		loc:       loc,
		duration:  duration,
		words:     wording[loc],
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(teal))),
		width:     60,
	}
}

func (m Model) Phase() Phase { return m.phase }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 100)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		return m, nil

	case CountdownMsg:
		m.phase = PhaseCountdown
		m.remaining = msg.Remaining
		return m, nil

	case StartedMsg:
		m.phase = PhaseRecording
		return m, nil

	case RecordingMsg:
		m.phase = PhaseRecording
		m.elapsed = msg.Elapsed
		m.frames = msg.Frames
		return m, nil

	case CapturedMsg:
		m.phase = PhaseAnalyzing
		m.frames = msg.Frames
		return m, m.spinner.Tick

	case ResultMsg:
		m.phase = PhaseDone
		m.result = msg.Result
		return m, tea.Quit

	case ErrMsg:
		m.phase = PhaseFailed
		m.err = msg.Err
		return m, tea.Quit
	}

	if m.phase == PhaseAnalyzing {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() tea.View {
	return tea.NewView(m.Render())
}

// Render returns the current screen as a string.
func (m Model) Render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sensei · "+m.technique) + "\n\n")

	switch m.phase {
	case PhaseWaiting:
		b.WriteString(statusStyle.Render(m.words.waiting))
	case PhaseCountdown:
		b.WriteString(countdownStyle.Render(fmt.Sprintf(m.words.countdown, m.remaining)))
	case PhaseRecording:
		left := max(0, int((m.duration-m.elapsed).Round(time.Second)/time.Second))
		if m.elapsed == 0 {
			b.WriteString(countdownStyle.Render(m.words.capturing))
		} else {
			b.WriteString(statusStyle.Render(fmt.Sprintf(m.words.recording, left)))
		}
		if m.duration > 0 {
			b.WriteString("\n" + progressBar(float64(m.elapsed)/float64(m.duration), m.width))
		}
	case PhaseAnalyzing:
		b.WriteString(statusStyle.Render(fmt.Sprintf(m.words.captured, m.frames)) + "\n")
		b.WriteString(m.spinner.View() + " " + statusStyle.Render(m.words.analyzing))
	case PhaseDone:
		b.WriteString(m.renderResult())
	case PhaseFailed:
		b.WriteString(errorStyle.Render(m.words.failed) + "\n")
		if m.err != nil {
			b.WriteString(hintStyle.Render(m.err.Error()))
		}
	}

	if m.phase != PhaseDone && m.phase != PhaseFailed {
		b.WriteString("\n\n" + hintStyle.Render(m.words.quit))
	}
	return b.String() + "\n"
}

func (m Model) renderResult() string {
	r := m.result
	var b strings.Builder
	b.WriteString(goodStyle.Render(m.words.done) + "\n\n")
	b.WriteString(cardStyle.Width(m.width).Render(r.Feedback) + "\n\n")

	for i, o := range r.Observations {
		line := r.ObservationTexts[i]
		switch o.Polarity {
		case feedback.Positive:
			b.WriteString(goodStyle.Render("+ "+line) + "\n")
		case feedback.Negative:
			b.WriteString(badStyle.Render("- "+line) + "\n")
		default:
			b.WriteString(statusStyle.Render("· "+line) + "\n")
		}
	}

	title, rows := DataPanel(r.Metrics, m.loc)
	b.WriteString("\n" + titleStyle.Render(title) + "\n")
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.Label+": ") + statusStyle.Render(row.Value) + "\n")
	}

	if r.SynthesisErr != nil {
		b.WriteString("\n" + errorStyle.Render(m.words.audioFailed))
	}
	return b.String()
}

func progressBar(pct float64, width int) string {
	barWidth := max(width-8, 4)
	filled := min(max(int(float64(barWidth)*pct), 0), barWidth)

	bar := lipgloss.NewStyle().Background(teal).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(border).Render(strings.Repeat(" ", barWidth-filled))
	return bar + hintStyle.Render(fmt.Sprintf(" %3d%%", int(min(max(pct, 0), 1)*100)))
}
