// Package wikitext converts MediaWiki markup into plain prose.
package wikitext

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// maxNestingPasses bounds the innermost-first rewriting of templates and links.
const maxNestingPasses = 16

// Normaliser strips wiki markup.
// Templates, tables, references, files, categories and interlanguage links
// are removed. Link labels and formatted text are kept.
type Normaliser struct{}

// New creates a new wikitext normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return "wikitext"
}

// Normalise returns the plain text of page, one paragraph per line.
func (n *Normaliser) Normalise(_ context.Context, page *domain.Page) (string, error) {
	if page == nil {
		return "", domain.ErrInvalidInput
	}
	return Strip(page.Markup)
}

var (
	comments     = regexp.MustCompile(`(?s)<!--.*?-->`)
	selfClosed   = regexp.MustCompile(`(?i)<ref\b[^>]*/>`)
	refs         = regexp.MustCompile(`(?is)<ref\b[^>]*>.*?</ref\s*>`)
	templates    = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	links        = regexp.MustCompile(`\[\[([^\[\]]*)\]\]`)
	externals    = regexp.MustCompile(`\[(?:https?:)?//[^\s\]]+(?:\s+([^\]]*))?\]`)
	headings     = regexp.MustCompile(`(?m)^=+[^=\n]*=+\s*$`)
	emphasis     = regexp.MustCompile(`'{2,}`)
	listMarkers  = regexp.MustCompile(`(?m)^[*#:;]+\s*`)
	rules        = regexp.MustCompile(`(?m)^-{4,}\s*$`)
	magicWords   = regexp.MustCompile(`__[A-Z]+__`)
	leftovers    = regexp.MustCompile(`\{\{|\}\}|\[\[|\]\]`)
	spaces       = regexp.MustCompile(`[ \t\x{3000}]+`)
	languageCode = regexp.MustCompile(`^[a-z]{2,3}(-[a-z]+)*$`)
)

// dropped elements keep no text.
const dropped = "math, chem, ce, code, syntaxhighlight, source, score, timeline, " +
	"gallery, imagemap, graph, mapframe, templatedata, hiero, references"

// hiddenNamespaces are link prefixes whose links are removed entirely.
var hiddenNamespaces = map[string]bool{
	"file":     true,
	"image":    true,
	"media":    true,
	"category": true,
	"ファイル":     true,
	"画像":       true,
	"カテゴリ":     true,
}

// Strip converts wikitext to plain text.
func Strip(markup string) (string, error) {
	text := comments.ReplaceAllString(markup, "")
	text = selfClosed.ReplaceAllString(text, "")
	text = refs.ReplaceAllString(text, "")
	text = innermostFirst(templates, text, func(string) string { return "" })
	text = stripTables(text)
	text = innermostFirst(links, text, linkText)
	text = externals.ReplaceAllString(text, "$1")
	text = headings.ReplaceAllString(text, "")
	text = emphasis.ReplaceAllString(text, "")
	text = listMarkers.ReplaceAllString(text, "")
	text = rules.ReplaceAllString(text, "")
	text = magicWords.ReplaceAllString(text, "")
	text = leftovers.ReplaceAllString(text, "")

	if strings.ContainsAny(text, "<&") {
		var err error
		if text, err = stripHTML(text); err != nil {
			return "", err
		}
	}

	return collapse(norm.NFKC.String(text)), nil
}

// innermostFirst rewrites matches of re until none remain, so nested
// constructs are resolved from the inside out.
func innermostFirst(re *regexp.Regexp, text string, repl func(string) string) string {
	for i := 0; i < maxNestingPasses; i++ {
		next := re.ReplaceAllStringFunc(text, repl)
		if next == text {
			break
		}
		text = next
	}
	return text
}

// linkText renders [[target|label]] as its label, or removes it for
// files, categories and interlanguage links.
func linkText(match string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(match, "[["), "]]")
	target, label, hasLabel := strings.Cut(inner, "|")

	if prefix, _, ok := strings.Cut(target, ":"); ok && !strings.HasPrefix(target, ":") {
		p := strings.ToLower(strings.TrimSpace(prefix))
		if hiddenNamespaces[p] || languageCode.MatchString(p) {
			return ""
		}
	}

	if hasLabel {
		// A trailing pipe repeats the target.
		if i := strings.LastIndex(label, "|"); i >= 0 {
			label = label[i+1:]
		}
		if strings.TrimSpace(label) != "" {
			return label
		}
	}
	target = strings.TrimPrefix(target, ":")
	if i := strings.Index(target, "#"); i > 0 {
		target = target[:i]
	}
	return target
}

// stripTables removes {| ... |} blocks, which may nest.
func stripTables(text string) string {
	if !strings.Contains(text, "{|") {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	depth := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "{|"):
			depth++
		case depth > 0 && strings.HasPrefix(trimmed, "|}"):
			depth--
		case depth == 0:
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// stripHTML drops inline HTML tags, keeping their text, and decodes entities.
func stripHTML(text string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", err
	}
	doc.Find(dropped).Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	return doc.Text(), nil
}

// collapse trims every line, squeezes runs of spaces and drops empty lines.
func collapse(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(spaces.ReplaceAllString(line, " "))
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
