package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitizeStripsScripts(t *testing.T) {
	in := `<p>hello</p><script>alert("xss")</script>`
	out := Sanitize(in)
	if strings.Contains(out, "<script") || strings.Contains(out, "alert") {
		t.Errorf("Sanitize left script content: %q", out)
	}
	if !strings.Contains(out, "<p>hello</p>") {
		t.Errorf("Sanitize removed safe markup: %q", out)
	}
}

func TestSanitizeStripsEventHandlers(t *testing.T) {
	out := Sanitize(`<img src="x.png" onerror="steal()">`)
	if strings.Contains(out, "onerror") {
		t.Errorf("Sanitize left an event handler: %q", out)
	}
}

func TestSanitizeKeepsFormatting(t *testing.T) {
	in := `<h2>Title</h2><ul><li>one</li></ul><a href="https://example.com">link</a>`
	out := Sanitize(in)
	for _, want := range []string{"<h2>", "<ul>", "<li>", "example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("Sanitize dropped %q from %q", want, out)
		}
	}
}

func TestStripTags(t *testing.T) {
	out := StripTags(`<b>bold</b> and <script>bad()</script>plain`)
	if strings.ContainsAny(out, "<>") {
		t.Errorf("StripTags left markup: %q", out)
	}
	if !strings.Contains(out, "bold") || !strings.Contains(out, "plain") {
		t.Errorf("StripTags lost text content: %q", out)
	}
}
