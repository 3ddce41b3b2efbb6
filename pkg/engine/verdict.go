package engine

import "strings"

// Canonical verdict codes. Anything else in Verdict.Restriction or
// Verdict.Phases is verbatim source text, rendered by the caller's
// localization layer.
const (
	RestrictionNone          = "NONE"
	RestrictionLimitedPhases = "LIMITED_PHASES"
	PhasesAll                = "ALL"
)

// The FIFA ranking carve-out is a single hard-coded regulatory exception:
// when the restriction cell equals the marker exactly (after trimming),
// the explanatory phase text below is returned verbatim, regardless of the
// row's own phase cell.
const (
	FIFARankingMarker = "Classement FIFA **"
	FIFARankingPhases = "** FIFA category A international friendly matches, between two teams both ranked in the top fifty of the FIFA rankings."
)

// Verdict is the canonical compliance classification of one resolved row.
// Allowed is always true: a name with no matching row is a distinct
// not-found outcome at the lookup layer, never a Verdict.
type Verdict struct {
	Allowed     bool   `json:"allowed"`
	Competition string `json:"competition"`
	Restriction string `json:"restriction"`
	Phases      string `json:"phases"`
	Country     string `json:"country"`
	Category    string `json:"category"`
	Discipline  string `json:"discipline,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Cell values equivalent to "no restriction" / "all phases". The source
// sheets use French and English interchangeably.
var emptyEquivalents = map[string]struct{}{
	"":       {},
	"none":   {},
	"aucune": {},
	"all":    {},
	"toutes": {},
}

func isEmptyEquivalent(s string) bool {
	_, ok := emptyEquivalents[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// NormalizeVerdict classifies the raw restriction and phase text of a
// resolved row into canonical verdict codes.
func NormalizeVerdict(rec Record, discipline, source string) Verdict {
	v := Verdict{
		Allowed:     true,
		Competition: strings.TrimSpace(rec.Name),
		Country:     strings.TrimSpace(rec.Country),
		Category:    strings.TrimSpace(rec.Category),
		Discipline:  strings.TrimSpace(discipline),
		Source:      source,
	}
	if v.Country == "" {
		v.Country = "International"
	}
	if v.Category == "" {
		v.Category = "N/A"
	}
	if v.Discipline == "" {
		v.Discipline = strings.TrimSpace(rec.Discipline)
	}

	restriction := strings.TrimSpace(rec.Restriction)
	if restriction == FIFARankingMarker {
		v.Restriction = FIFARankingMarker
		v.Phases = FIFARankingPhases
		return v
	}

	if isEmptyEquivalent(restriction) {
		v.Restriction = RestrictionNone
	} else {
		v.Restriction = restriction
	}
	phases := strings.TrimSpace(rec.Phases)
	if isEmptyEquivalent(phases) {
		v.Phases = PhasesAll
	} else {
		v.Phases = phases
	}

	// A competition can be fully allowed but only during specific phases.
	// That state must stay distinguishable from "no restriction at all".
	if v.Phases != PhasesAll && v.Restriction == RestrictionNone {
		v.Restriction = RestrictionLimitedPhases
	}
	return v
}
