package driven

import "context"

// PostProcessor turns plain article text into sentences.
// PostProcessors are chained in a pipeline (e.g., splitting, filtering).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes the article text and the sentences produced so far.
	// If the processor creates sentences (e.g., a splitter), it receives nil.
	// If it modifies them (e.g., a filter), it receives and returns them.
	Process(ctx context.Context, text string, sentences []string) ([]string, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the text through all processors in order and
	// returns the final sentences.
	Process(ctx context.Context, text string) ([]string, error)
}
