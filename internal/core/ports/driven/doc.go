// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Collaborators
//
// The pipeline stages delegate all heavy computation through these seams:
//
//   - ArchiveFetcher: Downloads the dump archive (fetchArchive)
//   - ArticleExtractor: Streams articles out of the archive (extractArticles)
//   - Segmenter: Morphological segmentation into surface tokens (segmentTokens)
//   - EmbeddingTrainer: Word embedding training (trainEmbeddings)
//
// The dump reader is itself assembled from two finer seams:
//
//   - Normaliser: Wiki markup to plain text
//   - PostProcessor / PostProcessorPipeline: Plain text to sentences
//
// # Stores
//
//   - ManifestStore: Stage completion records with artifact digests
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
