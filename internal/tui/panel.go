package tui

import (
	"fmt"
	"strings"

	"github.com/abhisek/sensei/internal/i18n"
	"github.com/abhisek/sensei/internal/pose"
)

type panelLabels struct {
	title, rightElbow, leftElbow, rightShoulder, leftShoulder string
	alignment, center, deviation, base, posture            string
}

var labels = map[i18n.Locale]panelLabels{
	i18n.English: {
		title:         "Technical data",
		rightElbow:    "Right elbow",
		leftElbow:     "Left elbow",
		rightShoulder: "Right shoulder",
		leftShoulder:  "Left shoulder",
		alignment:     "Alignment",
		center:        "Center",
		deviation:     "deviation",
		base:          "Base",
		posture:       "Posture",
	},
	i18n.Portuguese: {
		title:         "Dados Técnicos",
		rightElbow:    "Cotovelo Dir.",
		leftElbow:     "Cotovelo Esq.",
		rightShoulder: "Ombro Dir.",
		leftShoulder:  "Ombro Esq.",
		alignment:     "Alinhamento",
		center:        "Centro",
		deviation:     "desvio",
		base:          "Base",
		posture:       "Postura",
	},
}

func labelsFor(loc i18n.Locale) panelLabels {
	if l, ok := labels[loc]; ok {
		return l
	}
	return labels[i18n.Default]
}

// PanelRow is one labelled value of the technical data panel.
type PanelRow struct {
	Label string
	Value string
}

// DataPanel lists the metrics with their units, angles first.
func DataPanel(m pose.Metrics, loc i18n.Locale) (string, []PanelRow) {
	l := labelsFor(loc)
	return l.title, []PanelRow{
		{l.rightElbow, fmt.Sprintf("%d°", m.Angles.RightElbow)},
		{l.leftElbow, fmt.Sprintf("%d°", m.Angles.LeftElbow)},
		{l.rightShoulder, fmt.Sprintf("%d°", m.Angles.RightShoulder)},
		{l.leftShoulder, fmt.Sprintf("%d°", m.Angles.LeftShoulder)},
		{l.alignment, fmt.Sprintf("%.1f%%", m.Alignments.ShoulderHip)},
		{l.center, fmt.Sprintf("%.1f%% %s", m.Center.Deviation, l.deviation)},
		{l.base, fmt.Sprintf("%.1f%%", m.Distances.Foot)},
		{l.posture, fmt.Sprintf("%.1f%%", m.Distances.PostureHeight)},
	}
}

// FormatPanel renders the data panel as plain aligned text.
func FormatPanel(m pose.Metrics, loc i18n.Locale) string {
	title, rows := DataPanel(m, loc)
	width := 0
	for _, r := range rows {
		width = max(width, len([]rune(r.Label)))
	}

	var b strings.Builder
	b.WriteString(title + ":\n")
	for _, r := range rows {
		pad := width - len([]rune(r.Label))
		fmt.Fprintf(&b, "  %s:%s %s\n", r.Label, strings.Repeat(" ", pad), r.Value)
	}
	return b.String()
}
