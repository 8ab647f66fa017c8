package slug

import (
	"strings"
	"testing"
)

func TestGenerate_Simple(t *testing.T) {
	t.Parallel()

	got := Generate("Hello World")
	if got != "hello-world" {
		t.Errorf("Generate() = %q, want %q", got, "hello-world")
	}
}

func TestGenerate_PunctuationCollapses(t *testing.T) {
	t.Parallel()

	got := Generate("Hello, World! (2nd edition)")
	if got != "hello-world-2nd-edition" {
		t.Errorf("Generate() = %q, want %q", got, "hello-world-2nd-edition")
	}
}

func TestGenerate_AccentsDecompose(t *testing.T) {
	t.Parallel()

	// NFKD splits the accent off; the base letter survives the ASCII strip.
	got := Generate("Café")
	if got != "cafe" {
		t.Errorf("Generate() = %q, want %q", got, "cafe")
	}
}

func TestGenerate_NonASCIIDropped(t *testing.T) {
	t.Parallel()

	// The CJK word joins as a word first and is stripped after, so its
	// hyphen survives.
	got := Generate("東京 Tower")
	if got != "-tower" {
		t.Errorf("Generate() = %q, want %q", got, "-tower")
	}
}

func TestGenerate_EmptyFallsBack(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"", "!!!", "東京", "   "} {
		if got := Generate(title); got != Fallback {
			t.Errorf("Generate(%q) = %q, want %q", title, got, Fallback)
		}
	}
}

func TestGenerate_UnderscorePreserved(t *testing.T) {
	t.Parallel()

	got := Generate("snake_case title")
	if got != "snake_case-title" {
		t.Errorf("Generate() = %q, want %q", got, "snake_case-title")
	}
}

func TestGenerate_OnlyWordCharsAndHyphens(t *testing.T) {
	t.Parallel()

	titles := []string{
		"Hello World",
		"  leading and trailing  ",
		"Tabs\tand\nnewlines",
		"naïve Ürün çeşidi",
		"100% true & tested",
		"---",
	}

	for _, title := range titles {
		got := Generate(title)
		if got == "" {
			t.Errorf("Generate(%q) returned empty string", title)
			continue
		}
		if strings.ContainsAny(got, " \t\n") {
			t.Errorf("Generate(%q) = %q contains whitespace", title, got)
		}
		for _, r := range got {
			valid := r == '-' || r == '_' ||
				(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			if !valid {
				t.Errorf("Generate(%q) = %q contains invalid rune %q", title, got, r)
			}
		}
	}
}
