package engine

import "strings"

// punctuation stripped from queries and table names before comparison.
var punct = strings.NewReplacer(
	"?", " ",
	"!", " ",
	".", " ",
	",", " ",
	"-", " ",
	"_", " ",
)

// filler tokens dropped after punctuation removal (articles and glue words
// that carry no signal in competition names).
var fillers = map[string]struct{}{
	"da":  {},
	"de":  {},
	"la":  {},
	"le":  {},
	"the": {},
	"du":  {},
}

// Normalize lowercases text, strips punctuation and filler tokens, and
// collapses whitespace. It is pure and idempotent; empty or
// whitespace-only input yields an empty string, never an error.
func Normalize(text string) string {
	t := punct.Replace(strings.ToLower(text))
	words := strings.Fields(t)
	kept := words[:0]
	for _, w := range words {
		if _, skip := fillers[w]; skip {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
