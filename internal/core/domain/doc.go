// Package domain defines the core entities of the jawikivec pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Stage: One of fetch, extract, tokenize, train
//   - PipelineConfig: File names, source URL and hyperparameters
//   - Article: Sentences yielded by the dump reader for one page
//   - Embeddings: Trained word vectors
//   - StageRecord: Manifest entry proving a stage completed
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
