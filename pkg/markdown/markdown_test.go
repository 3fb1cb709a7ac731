package markdown_test

import (
	"strings"
	"testing"

	"github.com/botforge/botforge/pkg/markdown"
)

func TestRenderBoldItalicInlineCode(t *testing.T) {
	got := markdown.Render("**bold** and *italic* and `code`")
	want := `<strong>bold</strong> and <em>italic</em> and <code class="inline-code">code</code>`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	got := markdown.Render(`<script>alert("x & y")</script>`)
	if strings.Contains(got, "<script>") {
		t.Fatal("raw markup must not survive")
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup, got %q", got)
	}
	if !strings.Contains(got, "&amp;") {
		t.Fatalf("expected escaped ampersand, got %q", got)
	}
}

func TestRenderFencedCodeBlock(t *testing.T) {
	got := markdown.Render("```go\nfmt.Println(1 < 2)\n```")
	if !strings.Contains(got, `<pre class="code-block"><code class="language-go">fmt.Println(1 &lt; 2)</code></pre>`) {
		t.Fatalf("expected fenced block markup, got %q", got)
	}
	if strings.Contains(got, "<br>") {
		t.Fatalf("line breaks must not be rewritten inside code blocks, got %q", got)
	}
}

func TestRenderFencedCodeWithoutLanguage(t *testing.T) {
	got := markdown.Render("```\nplain\n```")
	if !strings.Contains(got, `<pre class="code-block"><code>plain</code></pre>`) {
		t.Fatalf("expected untagged fenced block, got %q", got)
	}
}

func TestRenderCodeCarvedOutBeforeEmphasis(t *testing.T) {
	got := markdown.Render("`**not bold**`")
	if strings.Contains(got, "<strong>") {
		t.Fatalf("emphasis must not run inside code, got %q", got)
	}
	if !strings.Contains(got, `<code class="inline-code">**not bold**</code>`) {
		t.Fatalf("expected literal markers inside code, got %q", got)
	}
}

func TestRenderHeaders(t *testing.T) {
	got := markdown.Render("# Title\n## Sub\n### Deep")
	for _, want := range []string{"<h1>Title</h1>", "<h2>Sub</h2>", "<h3>Deep</h3>"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestRenderLineBreaks(t *testing.T) {
	got := markdown.Render("one\ntwo")
	if got != "one<br>two" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderBoldBeforeItalic(t *testing.T) {
	got := markdown.Render("**bold**")
	if got != "<strong>bold</strong>" {
		t.Fatalf("italic rule consumed the bold marker: %q", got)
	}
}
