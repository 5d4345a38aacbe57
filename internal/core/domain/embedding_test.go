package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddings_AddAndVector(t *testing.T) {
	e := &Embeddings{Dim: 2}
	e.Add("東京", []float32{0.1, 0.2})
	e.Add("都", []float32{0.3, 0.4})

	assert.Equal(t, 2, e.Len())
	v, ok := e.Vector("都")
	require.True(t, ok)
	assert.Equal(t, []float32{0.3, 0.4}, v)

	_, ok = e.Vector("大阪")
	assert.False(t, ok)
	require.NoError(t, e.Validate())
}

func TestEmbeddings_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Embeddings{Dim: 0}).Validate(), ErrInvalidInput)

	short := &Embeddings{Dim: 3}
	short.Add("a", []float32{1, 2})
	assert.ErrorIs(t, short.Validate(), ErrInvalidInput)

	misaligned := &Embeddings{Dim: 1, Words: []string{"a", "b"}, Vectors: [][]float32{{1}}}
	assert.ErrorIs(t, misaligned.Validate(), ErrInvalidInput)
}

func TestArticle_Text(t *testing.T) {
	a := Article{Sentences: []string{"a", "b"}}

	assert.Equal(t, "a b", a.Text())
	assert.False(t, a.IsEmpty())
	assert.True(t, Article{}.IsEmpty())
}

func TestStageRecord_Artifact(t *testing.T) {
	r := &StageRecord{
		Stage: StageExtract,
		Artifacts: []ArtifactDigest{
			{Path: "a.txt", Size: 3, SHA256: "abc"},
		},
	}

	got, ok := r.Artifact("a.txt")
	require.True(t, ok)
	assert.Equal(t, int64(3), got.Size)

	_, ok = r.Artifact("b.txt")
	assert.False(t, ok)
}

func TestPage_IsArticle(t *testing.T) {
	assert.True(t, Page{Namespace: MainNamespace, Markup: "x"}.IsArticle())
	assert.False(t, Page{Namespace: 14}.IsArticle())
	assert.False(t, Page{RedirectTo: "東京都"}.IsArticle())
}
