// Package connectors provides readers for the corpora the pipeline can
// extract articles from. Each connector turns a source archive into a
// stream of domain.Article values through the ArticleExtractor port.
package connectors
