package feedback

import "github.com/abhisek/sensei/internal/i18n"

type phrasebook struct {
	kinds     map[Kind]string
	elbowSide map[Side]string
	direction map[Side]string
	verdicts  map[Verdict]string
}

var phrasebooks = map[i18n.Locale]phrasebook{
	i18n.English: {
		kinds: map[Kind]string{
			KindElbowBent:       "%s elbow too bent (closed)",
			KindElbowLocked:     "%s elbow too extended (locked)",
			KindElbowGood:       "%s elbow in good position",
			KindTorsoTwisted:    "Shoulders misaligned with hips (body twisted)",
			KindTorsoAligned:    "Shoulders well aligned with hips",
			KindCenterShifted:   "Center of gravity shifted to the %s",
			KindCenterGood:      "Center of gravity well positioned",
			KindBaseNarrow:      "Narrow base (feet too close together)",
			KindBaseWide:        "Base too wide (feet too far apart)",
			KindBaseAdequate:    "Adequate base for stability",
			KindPostureHigh:     "Posture too high (center may be raised too much)",
			KindPostureLow:      "Posture too low (may compromise mobility)",
			KindPostureAdequate: "Adequate posture height",
		},
		elbowSide: map[Side]string{Left: "Left", Right: "Right"},
		direction: map[Side]string{Left: "left", Right: "right"},
		verdicts: map[Verdict]string{
			VerdictGood:             "✅ Technique well executed - praise the practitioner!",
			VerdictNeedsImprovement: "⚠️ Technique needs adjustments - correct with compassion.",
			VerdictPartial:          "🟡 Technique partially correct - praise what is good and correct what is needed.",
		},
	},
	i18n.Portuguese: {
		kinds: map[Kind]string{
			KindElbowBent:       "Cotovelo %s muito dobrado (fechado)",
			KindElbowLocked:     "Cotovelo %s muito estendido (travado)",
			KindElbowGood:       "Cotovelo %s em boa posição",
			KindTorsoTwisted:    "Ombros desalinhados com quadris (corpo torcido)",
			KindTorsoAligned:    "Ombros bem alinhados com quadris",
			KindCenterShifted:   "Centro de gravidade deslocado para a %s",
			KindCenterGood:      "Centro de gravidade bem posicionado",
			KindBaseNarrow:      "Base estreita (pés muito juntos)",
			KindBaseWide:        "Base muito ampla (pés muito afastados)",
			KindBaseAdequate:    "Base adequada para estabilidade",
			KindPostureHigh:     "Postura alta (centro pode estar elevado demais)",
			KindPostureLow:      "Postura muito baixa (pode comprometer mobilidade)",
			KindPostureAdequate: "Altura da postura adequada",
		},
		elbowSide: map[Side]string{Left: "esquerdo", Right: "direito"},
		direction: map[Side]string{Left: "esquerda", Right: "direita"},
		verdicts: map[Verdict]string{
			VerdictGood:             "✅ Técnica bem executada - elogie o praticante!",
			VerdictNeedsImprovement: "⚠️ Técnica precisa de ajustes - corrija com compaixão.",
			VerdictPartial:          "🟡 Técnica parcialmente correta - elogie o que está bom e corrija o necessário.",
		},
	},
}

func phrasebookFor(loc i18n.Locale) phrasebook {
	if p, ok := phrasebooks[loc]; ok {
		return p
	}
	return phrasebooks[i18n.Default]
}
