package domain

import "fmt"

// TrainParams are the hyperparameters handed to an embedding trainer.
type TrainParams struct {
	// Dim is the embedding dimensionality.
	Dim int

	// Window is the context window in tokens.
	Window int

	// MinCount excludes tokens occurring fewer times from the vocabulary.
	MinCount int

	// Workers is the number of training goroutines.
	Workers int

	// Iter is the number of passes over the corpus.
	Iter int
}

// Embeddings maps vocabulary tokens to vectors.
// Words[i] owns Vectors[i]; every vector has Dim components.
type Embeddings struct {
	Dim     int
	Words   []string
	Vectors [][]float32
}

// Len returns the vocabulary size.
func (e *Embeddings) Len() int {
	return len(e.Words)
}

// Add appends a token and its vector.
func (e *Embeddings) Add(word string, vec []float32) {
	e.Words = append(e.Words, word)
	e.Vectors = append(e.Vectors, vec)
}

// Vector returns the vector for word.
func (e *Embeddings) Vector(word string) ([]float32, bool) {
	for i, w := range e.Words {
		if w == word {
			return e.Vectors[i], true
		}
	}
	return nil, false
}

// Validate checks that words and vectors line up and match Dim.
func (e *Embeddings) Validate() error {
	if e.Dim <= 0 {
		return fmt.Errorf("%w: embedding dimension %d", ErrInvalidInput, e.Dim)
	}
	if len(e.Words) != len(e.Vectors) {
		return fmt.Errorf("%w: %d words but %d vectors", ErrInvalidInput, len(e.Words), len(e.Vectors))
	}
	for i, v := range e.Vectors {
		if len(v) != e.Dim {
			return fmt.Errorf("%w: vector for %q has %d components, want %d",
				ErrInvalidInput, e.Words[i], len(v), e.Dim)
		}
	}
	return nil
}
