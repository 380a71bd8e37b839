// Package i18n selects the language used for observations and prompts.
package i18n

import (
	"golang.org/x/text/language"
)

// Locale identifies a supported feedback language.
type Locale string

const (
	English    Locale = "en"
	Portuguese Locale = "pt-BR"
)

// Default is used when no preference is given or nothing matches.
const Default = English

// Supported lists the locales with complete wording, in matcher priority order.
var Supported = []Locale{English, Portuguese}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.BrazilianPortuguese,
})

// Match picks the supported locale closest to a BCP 47 preference string
// such as "pt", "pt-PT" or "en-US,en;q=0.9". Unparseable input yields Default.
func Match(pref string) Locale {
	if pref == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	for _, s := range Supported {
		if l == s {
			return true
		}
	}
	return false
}
