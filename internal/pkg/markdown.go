package pkg

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// Raw user markup is rendered as markdown, then stripped to an explicit tag
// allow-list. Posts keep structural tags; comments keep inline emphasis only.
// Raw HTML passes through the renderer untouched so the policy is the single
// place disallowed tags are dropped.
//
// The pipeline runs markdown+strip twice: a raw HTML block can hide trailing
// markdown from the first pass (CommonMark swallows the rest of a <script>
// line as raw HTML), and only stripping reveals it. The second markdown pass
// skips linkify so anchors produced by the first pass aren't wrapped again.
// Already-sanitized output is plain HTML to both passes and survives
// unchanged, which keeps sanitization idempotent.

var md = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

var mdNoLinkify = goldmark.New(
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

var postPolicy = buildPolicy([]string{
	"a", "abbr", "acronym", "b", "blockquote", "code", "em", "i",
	"li", "ol", "pre", "strong", "ul", "h1", "h2", "h3", "p",
})

var commentPolicy = buildPolicy([]string{
	"a", "abbr", "acronym", "b", "code", "em", "i", "strong",
})

func buildPolicy(tags []string) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowElements(tags...)
	return p
}

// RenderPost converts raw markup to sanitized HTML with the post allow-list.
func RenderPost(raw string) string {
	return render(raw, postPolicy)
}

// RenderComment converts raw markup to sanitized HTML with the inline-only
// comment allow-list.
func RenderComment(raw string) string {
	return render(raw, commentPolicy)
}

func render(raw string, policy *bluemonday.Policy) string {
	out := policy.Sanitize(convert(md, raw))
	return policy.Sanitize(convert(mdNoLinkify, out))
}

func convert(renderer goldmark.Markdown, s string) string {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(s), &buf); err != nil {
		// markdown failure degrades to the input; the policy still runs
		return s
	}
	return buf.String()
}
