package domain

import "strings"

// Article is one page yielded by the dump reader.
type Article struct {
	// ID is the page id from the dump.
	ID uint64

	// Title is the page title.
	Title string

	// Sentences holds the plain-text sentences in document order.
	Sentences []string
}

// Text returns the sentences joined by single spaces.
func (a Article) Text() string {
	return strings.Join(a.Sentences, " ")
}

// IsEmpty returns true if the article has no sentences.
func (a Article) IsEmpty() bool {
	return len(a.Sentences) == 0
}

// MainNamespace is the namespace of encyclopedia articles.
const MainNamespace = 0

// Page is one raw page read from a dump before markup is removed.
type Page struct {
	ID        uint64
	Title     string
	Namespace uint64

	// RedirectTo is the redirect target, empty for regular pages.
	RedirectTo string

	// Markup is the wikitext of the latest revision.
	Markup string
}

// IsArticle returns true for main-namespace pages that are not redirects.
func (p Page) IsArticle() bool {
	return p.Namespace == MainNamespace && p.RedirectTo == ""
}
