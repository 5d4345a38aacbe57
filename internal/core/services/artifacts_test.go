package services

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

func testConfig(t *testing.T) domain.PipelineConfig {
	t.Helper()
	cfg := domain.DefaultPipelineConfig()
	cfg.WorkDir = t.TempDir()
	return cfg
}

func TestArtifactSet_CommitRenamesAndDigests(t *testing.T) {
	cfg := testConfig(t)

	set, err := createArtifacts(cfg, "one.txt", "sub/two.txt")
	require.NoError(t, err)

	_, err = set[0].WriteString("hello\n")
	require.NoError(t, err)
	_, err = set[1].Write([]byte("world"))
	require.NoError(t, err)

	// Nothing is visible before commit.
	_, err = os.Stat(cfg.Path("one.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	digests, err := set.commit()
	require.NoError(t, err)
	require.Len(t, digests, 2)

	sum := sha256.Sum256([]byte("hello\n"))
	assert.Equal(t, domain.ArtifactDigest{
		Path:   "one.txt",
		Size:   6,
		SHA256: hex.EncodeToString(sum[:]),
	}, digests[0])
	assert.Equal(t, "sub/two.txt", digests[1].Path)

	data, err := os.ReadFile(cfg.Path("sub/two.txt"))
	require.NoError(t, err)
	assert.Equal(t, "world", string(data))

	size, digest, err := hashFile(cfg.Path("one.txt"))
	require.NoError(t, err)
	assert.Equal(t, int64(6), size)
	assert.Equal(t, digests[0].SHA256, digest)

	// Abort after commit leaves the committed files alone.
	set.abort()
	_, err = os.Stat(cfg.Path("one.txt"))
	assert.NoError(t, err)
}

func TestArtifactSet_AbortRemovesTemporaries(t *testing.T) {
	cfg := testConfig(t)

	set, err := createArtifacts(cfg, "a.txt", "b.txt")
	require.NoError(t, err)
	_, _ = set[0].WriteString("partial")
	set.abort()

	entries, err := os.ReadDir(cfg.WorkDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArtifactSet_CommitRenamesGateLast(t *testing.T) {
	cfg := testConfig(t)
	// The gating output cannot be renamed over a directory.
	require.NoError(t, os.Mkdir(cfg.Path("gate.bin"), 0755))

	set, err := createArtifacts(cfg, "gate.bin", "side.txt")
	require.NoError(t, err)
	_, _ = set[0].WriteString("model")
	_, _ = set[1].WriteString("vectors")

	_, err = set.commit()
	require.Error(t, err)

	// side.txt was renamed first and is rolled back.
	_, err = os.Stat(cfg.Path("side.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	entries, err := os.ReadDir(cfg.WorkDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "gate.bin", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestArtifact_CommitOverwritesExisting(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Path("x.txt"), []byte("old contents"), 0644))

	set, err := createArtifacts(cfg, "x.txt")
	require.NoError(t, err)
	_, _ = set[0].WriteString("new")
	_, err = set.commit()
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Path("x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	size, exists, err := fileSize(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(3), size)

	_, exists, err = fileSize(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)

	_, _, err = fileSize(dir)
	assert.Error(t, err)
}

func TestRemovePartials(t *testing.T) {
	dir := t.TempDir()
	final := filepath.Join(dir, "out.txt")
	for _, name := range []string{"out.txt.1.part", "out.txt.2.part", "other.txt.1.part"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	require.NoError(t, removePartials(final))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "other.txt.1.part", entries[0].Name())
}
