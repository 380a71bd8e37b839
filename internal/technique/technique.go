// Package technique holds the static catalog of techniques that can be analyzed.
package technique

import (
	"errors"
	"fmt"

	"github.com/abhisek/sensei/internal/i18n"
)

// ErrUnknownTechnique is matched by every *UnknownTechniqueError.
var ErrUnknownTechnique = errors.New("unknown technique")

// UnknownTechniqueError reports a technique ID outside the catalog.
type UnknownTechniqueError struct {
	ID string
}

func (e *UnknownTechniqueError) Error() string {
	return fmt.Sprintf("unknown technique %q", e.ID)
}

func (e *UnknownTechniqueError) Is(target error) bool { return target == ErrUnknownTechnique }

// Technique is a read-only catalog entry.
type Technique struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Focus       string `json:"focus"`
}

type entry struct {
	id    string
	names map[i18n.Locale]string
	focus map[i18n.Locale]string
}

var catalog = []entry{
	{
		id: "ikkyo",
		names: map[i18n.Locale]string{
			i18n.English:    "Ikkyo (First Principle)",
			i18n.Portuguese: "Ikkyo (Primeiro Princípio)",
		},
		focus: map[i18n.Locale]string{
			i18n.English:    "Control of the elbow close to the center, body alignment, low weight and leading with the whole body.",
			i18n.Portuguese: "Controle do cotovelo junto ao centro, alinhamento do corpo, peso baixo e condução com o corpo inteiro.",
		},
	},
	{
		id: "shiho-nage",
		names: map[i18n.Locale]string{
			i18n.English:    "Shiho-nage (Four-Direction Throw)",
			i18n.Portuguese: "Shiho-nage (Projeção nas 4 Direções)",
		},
		focus: map[i18n.Locale]string{
			i18n.English:    "Raising the arm above the head, bringing uke to the center, turning the body as one unit, moving close like a sword cut.",
			i18n.Portuguese: "Elevação do braço acima da cabeça, trazer o uke para o centro, giro do corpo em bloco, movimento próximo como corte de espada.",
		},
	},
	{
		id: "irimi-nage",
		names: map[i18n.Locale]string{
			i18n.English:    "Irimi-nage (Entering Throw)",
			i18n.Portuguese: "Irimi-nage (Entrar e Projetar)",
		},
		focus: map[i18n.Locale]string{
			i18n.English:    "Entering the blind spot (true irimi), passing behind the line, controlling the head and line, throwing by dropping the weight.",
			i18n.Portuguese: "Entrada no ponto cego (irimi verdadeiro), passar atrás da linha, controle da cabeça/linha, projeção descendo o peso.",
		},
	},
	{
		id: "kokyu-ho",
		names: map[i18n.Locale]string{
			i18n.English:    "Kokyu-ho (Breath Exercise)",
			i18n.Portuguese: "Kokyu-ho (Exercício de Respiração)",
		},
		focus: map[i18n.Locale]string{
			i18n.English:    "Stability in seiza, using the center and the breath, not pushing with the shoulders, following the partner to the end.",
			i18n.Portuguese: "Estabilidade no seiza, uso do centro e respiração, não empurrar com ombros, acompanhar o parceiro até o fim.",
		},
	},
}

// Lookup returns the technique with the given ID worded for loc.
func Lookup(id string, loc i18n.Locale) (Technique, error) {
	for _, e := range catalog {
		if e.id == id {
			return e.localize(loc), nil
		}
	}
	return Technique{}, &UnknownTechniqueError{ID: id}
}

// All returns every technique in catalog order, worded for loc.
func All(loc i18n.Locale) []Technique {
	out := make([]Technique, len(catalog))
	for i, e := range catalog {
		out[i] = e.localize(loc)
	}
	return out
}

// IDs returns the catalog IDs in order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, e := range catalog {
		ids[i] = e.id
	}
	return ids
}

func (e entry) localize(loc i18n.Locale) Technique {
	name, ok := e.names[loc]
	if !ok {
		name = e.names[i18n.Default]
	}
	focus, ok := e.focus[loc]
	if !ok {
		focus = e.focus[i18n.Default]
	}
	return Technique{ID: e.id, DisplayName: name, Focus: focus}
}
