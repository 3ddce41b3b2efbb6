// Package engine resolves free-text competition names against the rows of a
// regulator-approved competition table, and normalizes the regulatory fields
// of a resolved row into canonical verdict codes.
//
// The engine is a pure function of its inputs: it holds no conversation
// state, performs no I/O, and may be called concurrently over independent
// table snapshots.
package engine

// Record is one immutable row of a regulator competition table.
// Missing values are represented as empty strings, never as sentinels;
// the engine substitutes "N/A" (category) and "International" (country)
// where a default is needed.
type Record struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Country     string `json:"country,omitempty"`
	Discipline  string `json:"discipline,omitempty"`
	Restriction string `json:"restriction,omitempty"`
	Phases      string `json:"phases,omitempty"`
}

// Match is a scored, deduplicated candidate row returned by Resolve.
// Score is a similarity measure in [0,100]; it is only meaningful for one
// round of caller-side resolution and is never persisted.
type Match struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Category string `json:"category"`
}
