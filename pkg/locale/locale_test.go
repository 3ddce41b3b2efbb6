package locale

import "testing"

func TestLocalizeCodes(t *testing.T) {
	tests := []struct {
		value, lang, want string
	}{
		{"NONE", "fr", "Aucune"},
		{"NONE", "en", "None"},
		{"NONE", "es", "Ninguna"},
		{"ALL", "en", "All phases authorised"},
		{"LIMITED_PHASES", "es", "Fases específicas autorizadas"},
		{"LIMITED_PHASES", "fr", "Phases spécifiques autorisées"},
		// Unknown language falls back to the code itself.
		{"ALL", "de", "ALL"},
	}
	for _, tt := range tests {
		if got := Localize(tt.value, tt.lang, ""); got != tt.want {
			t.Errorf("Localize(%q, %q) = %q, want %q", tt.value, tt.lang, got, tt.want)
		}
	}
}

func TestLocalizePhases(t *testing.T) {
	got := Localize("A partir des 32èmes de finale", "en", KindPhases)
	if got != "Starting from the Round of 32" {
		t.Errorf("phase en = %q", got)
	}

	// Phase wordings are only translated when asked for phases.
	got = Localize("A partir des 32èmes de finale", "en", KindRestrictions)
	if got != "A partir des 32èmes de finale" {
		t.Errorf("restriction kind should pass through, got %q", got)
	}

	// Free text passes through untouched.
	got = Localize("Sauf matchs amicaux", "en", KindPhases)
	if got != "Sauf matchs amicaux" {
		t.Errorf("unknown phase should pass through, got %q", got)
	}
}

func TestEmoji(t *testing.T) {
	if got := Emoji("France"); got != "🇫🇷" {
		t.Errorf("Emoji(France) = %q", got)
	}
	if got := Emoji("Europe"); got != "🇪🇺" {
		t.Errorf("Emoji(Europe) = %q", got)
	}
	if got := Emoji("Atlantide"); got != "🗺️" {
		t.Errorf("Emoji fallback = %q", got)
	}
}

func TestSupported(t *testing.T) {
	for _, lang := range []string{"fr", "en", "es"} {
		if !Supported(lang) {
			t.Errorf("Supported(%q) = false", lang)
		}
	}
	if Supported("de") {
		t.Error("Supported(de) = true")
	}
}
