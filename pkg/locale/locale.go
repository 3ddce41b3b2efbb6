// Package locale translates verdict codes and the known phase wordings
// of the ANJ tables into the supported answer languages. The engine
// keeps codes canonical; only the presentation layer localizes.
package locale

import (
	"fmt"

	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed translations.yaml
var translationsYAML []byte

// Kind selects which translation table Localize consults for values
// that are not verdict codes.
type Kind string

const (
	KindPhases       Kind = "phases"
	KindRestrictions Kind = "restrictions"
)

// Langs lists the supported answer languages. The first entry is the
// default.
var Langs = []string{"fr", "en", "es"}

type tables struct {
	Codes  map[string]map[string]string `yaml:"codes"`
	Phases map[string]map[string]string `yaml:"phases"`
	Emojis map[string]string            `yaml:"emojis"`
}

var tbl tables

func init() {
	if err := yaml.Unmarshal(translationsYAML, &tbl); err != nil {
		panic(fmt.Sprintf("locale: bad embedded translations: %v", err))
	}
}

// Supported reports whether lang is a known answer language.
func Supported(lang string) bool {
	for _, l := range Langs {
		if l == lang {
			return true
		}
	}
	return false
}

// Localize returns value in the requested language. Verdict codes are
// always translated; phase wordings only when kind is KindPhases. An
// unknown value or language falls back to the value itself, so free-text
// cells pass through untouched.
func Localize(value, lang string, kind Kind) string {
	if entry, ok := tbl.Codes[value]; ok {
		if t, ok := entry[lang]; ok {
			return t
		}
		return value
	}
	if kind == KindPhases {
		if entry, ok := tbl.Phases[value]; ok {
			if t, ok := entry[lang]; ok {
				return t
			}
		}
	}
	return value
}

// Emoji returns the flag or region emoji for a country name from the
// ANJ tables, with a generic map as fallback.
func Emoji(country string) string {
	if e, ok := tbl.Emojis[country]; ok {
		return e
	}
	return "🗺️"
}
