// Package wikidump reads MediaWiki XML dumps and yields plain-text articles.
//
// Pages are parsed with go-wikiparse, cleaned by a Normaliser and split
// into sentences by a PostProcessorPipeline. Cleaning runs on a pool of
// workers; articles are emitted in dump order.
package wikidump
