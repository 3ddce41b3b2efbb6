package engine

import "strings"

// ConceptGroup is a synonym cluster keyed by a canonical term. Country
// groups additionally participate in country-aware score adjustment.
type ConceptGroup struct {
	Key     string
	Terms   []string
	Country bool
}

// defaultGroups is the static, process-wide concept table. It is read-only
// after init; Matcher never mutates it.
var defaultGroups = []ConceptGroup{
	{Key: "cup", Terms: []string{"cup", "coupe", "coppa", "copa", "taça", "taca"}},
	{Key: "olympics", Terms: []string{"olympics", "olympic", "olympique", "olympiques", "jo"}},
	{Key: "spain", Terms: []string{"spain", "spanish", "espagne", "espagnol", "españa", "rey", "roi"}, Country: true},
	{Key: "italy", Terms: []string{"italy", "italian", "italie", "italien", "italia"}, Country: true},
	{Key: "portugal", Terms: []string{"portugal", "portuguese", "portugais", "portugaise"}, Country: true},
	{Key: "france", Terms: []string{"france", "french", "français", "française"}, Country: true},
	{Key: "germany", Terms: []string{"germany", "german", "allemagne", "allemand", "deutschland"}, Country: true},
	{Key: "scotland", Terms: []string{"scotland", "scottish", "ecosse"}, Country: true},
	{Key: "switzerland", Terms: []string{"swiss", "suisse", "switzerland"}, Country: true},
}

// Matcher resolves queries against table snapshots using a fixed concept
// table. A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	groups []ConceptGroup
}

// NewMatcher builds a Matcher over the given concept groups. Group order is
// significant: it determines variation order and which group wins when a
// token appears in several.
func NewMatcher(groups []ConceptGroup) *Matcher {
	return &Matcher{groups: groups}
}

// DefaultMatcher returns a Matcher over the built-in concept table.
func DefaultMatcher() *Matcher {
	return NewMatcher(defaultGroups)
}

// group returns the first concept group containing word as key or term.
func (m *Matcher) group(word string) *ConceptGroup {
	for i := range m.groups {
		g := &m.groups[i]
		if word == g.Key {
			return g
		}
		for _, t := range g.Terms {
			if word == t {
				return g
			}
		}
	}
	return nil
}

// queryCountry returns the first country group with a term contained in the
// normalized query, or nil when the query names no recognized country.
func (m *Matcher) queryCountry(userNorm string) *ConceptGroup {
	for i := range m.groups {
		g := &m.groups[i]
		if !g.Country {
			continue
		}
		for _, t := range g.Terms {
			if strings.Contains(userNorm, t) {
				return g
			}
		}
	}
	return nil
}

// maxVariations bounds the Cartesian product of per-token synonym sets.
const maxVariations = 15

// Variations expands a query into alternative phrasings by substituting
// each recognized token with every member of its concept group. The result
// preserves natural product order (first token varies slowest) and is
// capped at maxVariations entries, so a query like "Spanish Cup" is also
// tested against "copa"/"rey"-style phrasings without a translation table.
func (m *Matcher) Variations(query string) []string {
	words := strings.Fields(Normalize(query))
	if len(words) == 0 {
		return nil
	}

	options := make([][]string, 0, len(words))
	for _, w := range words {
		g := m.group(w)
		if g == nil {
			options = append(options, []string{w})
			continue
		}
		opts := []string{w}
		seen := map[string]struct{}{w: {}}
		for _, t := range g.Terms {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			opts = append(opts, t)
		}
		options = append(options, opts)
	}

	// Incremental product. Truncating each round to maxVariations is safe:
	// entry k of the final product only ever draws on prefix k or earlier.
	combos := []string{""}
	for _, opts := range options {
		next := make([]string, 0, len(combos)*len(opts))
		for _, c := range combos {
			for _, o := range opts {
				if c == "" {
					next = append(next, o)
				} else {
					next = append(next, c+" "+o)
				}
			}
		}
		if len(next) > maxVariations {
			next = next[:maxVariations]
		}
		combos = next
	}
	return combos
}
