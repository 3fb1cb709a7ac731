// Package markdown renders chat message text to HTML markup for the chat
// surface. It supports the small dialect the frontend displays: fenced and
// inline code, headers, bold, italic and line breaks.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedCodeRe = regexp.MustCompile("(?s)```([a-zA-Z0-9+-]*)\n?(.*?)```")
	inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")
	h3Re         = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Re         = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Re         = regexp.MustCompile(`(?m)^# (.+)$`)
	boldRe       = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^*\n]+)\*`)
)

// escape neutralizes markup-significant characters before any markup is
// generated. Ampersand goes first so later entities survive.
func escape(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}

// Render escapes the input and applies the transforms in a fixed order:
// fenced code blocks, inline code, headers, bold, italic, line breaks.
// Code regions are carved out first so emphasis rules never run inside
// them, and bold runs before italic so the italic rule cannot consume half
// of a bold marker.
func Render(text string) string {
	out := escape(text)

	// Carve code regions out behind placeholders while the remaining
	// rules run, then restore them.
	var carved []string
	carve := func(markup string) string {
		carved = append(carved, markup)
		return fmt.Sprintf("\x00%d\x00", len(carved)-1)
	}

	out = fencedCodeRe.ReplaceAllStringFunc(out, func(match string) string {
		parts := fencedCodeRe.FindStringSubmatch(match)
		lang := parts[1]
		code := strings.TrimSuffix(parts[2], "\n")
		if lang == "" {
			return carve("<pre class=\"code-block\"><code>" + code + "</code></pre>")
		}
		return carve(fmt.Sprintf("<pre class=\"code-block\"><code class=\"language-%s\">%s</code></pre>", lang, code))
	})
	out = inlineCodeRe.ReplaceAllStringFunc(out, func(match string) string {
		parts := inlineCodeRe.FindStringSubmatch(match)
		return carve("<code class=\"inline-code\">" + parts[1] + "</code>")
	})

	out = h3Re.ReplaceAllString(out, "<h3>$1</h3>")
	out = h2Re.ReplaceAllString(out, "<h2>$1</h2>")
	out = h1Re.ReplaceAllString(out, "<h1>$1</h1>")
	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = strings.ReplaceAll(out, "\n", "<br>")

	for i, markup := range carved {
		out = strings.Replace(out, fmt.Sprintf("\x00%d\x00", i), markup, 1)
	}
	return out
}
