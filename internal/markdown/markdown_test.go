package markdown

import (
	"strings"
	"testing"
)

func TestRender_Basic(t *testing.T) {
	t.Parallel()

	r := New()
	html, err := r.Render("# Title\n\nSome *emphasis* here.")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(html, "<h1") {
		t.Errorf("expected an <h1> heading, got %q", html)
	}
	if !strings.Contains(html, "<em>emphasis</em>") {
		t.Errorf("expected <em> emphasis, got %q", html)
	}
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	r := New()
	source := "A [link](https://example.com) and a list:\n\n- one\n- two\n"

	first, err := r.Render(source)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := r.Render(source)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if first != second {
		t.Errorf("Render() is not deterministic:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestRender_RawHTMLEscaped(t *testing.T) {
	t.Parallel()

	r := New()
	html, err := r.Render(`before <script>alert("x")</script> after`)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Errorf("raw HTML was not escaped: %q", html)
	}
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	r := New()
	html, err := r.Render("")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.TrimSpace(html) != "" {
		t.Errorf("expected empty output for empty input, got %q", html)
	}
}
