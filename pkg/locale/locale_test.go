package locale

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"en", language.English},
		{"en-GB", language.English},
		{"ru", language.Russian},
		{"ru-RU", language.Russian},
		{"fr", language.English}, // unsupported falls back
		{"garbage", language.English},
	}
	for _, tt := range tests {
		if got := Match(tt.in); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	if got := Lookup(language.English, "diamond"); got != "Diamond" {
		t.Errorf("en diamond = %q", got)
	}
	if got := Lookup(language.Russian, "diamond"); got != "Бриллиант" {
		t.Errorf("ru diamond = %q", got)
	}
	// Unknown keys echo back rather than vanish.
	if got := Lookup(language.Russian, "no_such_key"); got != "no_such_key" {
		t.Errorf("unknown key = %q", got)
	}
}

func TestTranslationParity(t *testing.T) {
	for key := range en {
		if _, ok := ru[key]; !ok {
			t.Errorf("key %q missing from the Russian table", key)
		}
	}
	for key := range ru {
		if _, ok := en[key]; !ok {
			t.Errorf("key %q missing from the English table", key)
		}
	}
}
