package engine

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

const (
	// DefaultThreshold is the minimum score a candidate must reach when the
	// caller does not supply one.
	DefaultThreshold = 60

	// scoreWindow is the fixed tolerance below the top score within which
	// candidates are retained as equally plausible.
	scoreWindow = 10

	countryBonus   = 10
	countryPenalty = 30
	superPenalty   = 15
)

// Resolve matches a query against a table snapshot and returns the ranked,
// deduplicated candidate set. An empty result means the query was not
// recognized; more than one result means the caller must disambiguate.
// Identical (query, records, threshold) inputs always yield an identically
// ordered result.
func (m *Matcher) Resolve(query string, records []Record, threshold int) []Match {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	userNorm := Normalize(query)
	if userNorm == "" {
		return nil
	}

	country := m.queryCountry(userNorm)
	variations := m.Variations(query)
	querySuper := strings.Contains(userNorm, "super")

	// Collapse the snapshot to distinct (name, category, country) triples,
	// preserving table order.
	type candidate struct {
		name     string
		category string
		score    int
	}
	seen := make(map[string]struct{}, len(records))
	var scored []candidate

	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}
		category := strings.TrimSpace(rec.Category)
		if category == "" {
			category = "N/A"
		}
		recCountry := strings.ToLower(strings.TrimSpace(rec.Country))
		if recCountry == "" {
			recCountry = "international"
		}

		tripleKey := name + "\x00" + category + "\x00" + recCountry
		if _, dup := seen[tripleKey]; dup {
			continue
		}
		seen[tripleKey] = struct{}{}

		nameNorm := Normalize(name)
		target := nameNorm + " " + recCountry

		score := 0
		for _, v := range variations {
			if s := tokenSetRatio(v, target); s > score {
				score = s
			}
		}

		// Country adjustment first, then the generic-qualifier penalty, so
		// both can stack.
		if country != nil {
			if containsAny(recCountry, country.Terms) {
				score += countryBonus
			} else if recCountry != "international" {
				score -= countryPenalty
			}
		}
		if strings.Contains(nameNorm, "super") && !querySuper {
			score -= superPenalty
		}

		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}
		if score < threshold {
			continue
		}
		scored = append(scored, candidate{name: name, category: category, score: score})
	}

	if len(scored) == 0 {
		return nil
	}

	// Score-descending, ties broken by table order.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	best := scored[0].score
	dedup := make(map[string]struct{}, len(scored))
	var matches []Match
	for _, c := range scored {
		if c.score < best-scoreWindow {
			break
		}
		key := c.name + "\x00" + c.category
		if _, dup := dedup[key]; dup {
			continue
		}
		dedup[key] = struct{}{}
		matches = append(matches, Match{Name: c.name, Score: c.score, Category: c.category})
	}
	return matches
}

// tokenSetRatio computes a symmetric, order-insensitive similarity between
// two phrases in [0,100]. Both sides are reduced to sorted token sets; the
// intersection and the two one-sided remainders are compared pairwise and
// the best ratio wins, so a phrase whose tokens are a subset of the other
// scores 100.
func tokenSetRatio(a, b string) int {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for _, t := range ta {
		if contains(tb, t) {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tb {
		if !contains(ta, t) {
			onlyB = append(onlyB, t)
		}
	}

	base := strings.Join(inter, " ")
	sa := joinTokens(base, onlyA)
	sb := joinTokens(base, onlyB)

	best := similarity(sa, sb)
	if len(inter) > 0 {
		if s := similarity(base, sa); s > best {
			best = s
		}
		if s := similarity(base, sb); s > best {
			best = s
		}
	}
	return int(best*100 + 0.5)
}

// similarity is a normalized edit-distance ratio in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	s, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(s)
}

// tokenSet returns the sorted set of unique tokens in a phrase.
func tokenSet(s string) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func joinTokens(base string, rest []string) string {
	tail := strings.Join(rest, " ")
	switch {
	case base == "":
		return tail
	case tail == "":
		return base
	default:
		return base + " " + tail
	}
}

func contains(sorted []string, s string) bool {
	i := sort.SearchStrings(sorted, s)
	return i < len(sorted) && sorted[i] == s
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
