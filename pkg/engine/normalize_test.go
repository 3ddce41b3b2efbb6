package engine

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Coupe de France", "coupe france"},
		{"Copa del Rey", "copa del rey"},
		{"The FA Cup!", "fa cup"},
		{"  Spanish   Cup? ", "spanish cup"},
		{"Champions-League", "champions league"},
		{"world_cup", "world cup"},
		{"La Liga", "liga"},
		{"", ""},
		{"   ", ""},
		{"???", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Coupe de France",
		"The Super-Cup!",
		"Jeux Olympiques",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
