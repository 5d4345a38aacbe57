package services

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

// artifact writes one stage output to a temporary sibling file and only
// renames it into place on commit. Size and SHA-256 are computed while
// writing.
type artifact struct {
	name  string // relative to the work directory
	final string
	file  *os.File
	buf   *bufio.Writer
	hash  hash.Hash
	size  int64
	done  bool

	committed bool
}

func createArtifact(cfg domain.PipelineConfig, name string) (*artifact, error) {
	final := cfg.Path(name)
	dir := filepath.Dir(final)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", name, err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(final)+".*.part")
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}

	return &artifact{
		name:  name,
		final: final,
		file:  f,
		buf:   bufio.NewWriterSize(f, 1<<20),
		hash:  sha256.New(),
	}, nil
}

// Write implements io.Writer.
func (a *artifact) Write(p []byte) (int, error) {
	n, err := a.buf.Write(p)
	a.hash.Write(p[:n])
	a.size += int64(n)
	return n, err
}

// WriteString implements io.StringWriter.
func (a *artifact) WriteString(s string) (int, error) {
	return a.Write([]byte(s))
}

// finish flushes and syncs the temporary file and closes it.
func (a *artifact) finish() error {
	if err := a.buf.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", a.name, err)
	}
	if err := a.file.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", a.name, err)
	}
	if err := a.file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", a.name, err)
	}
	return nil
}

func (a *artifact) digest() domain.ArtifactDigest {
	return domain.ArtifactDigest{
		Path:   a.name,
		Size:   a.size,
		SHA256: hex.EncodeToString(a.hash.Sum(nil)),
	}
}

// abort discards the temporary file. Safe to call after commit.
func (a *artifact) abort() {
	if a.done {
		return
	}
	a.done = true
	_ = a.file.Close()
	_ = os.Remove(a.file.Name())
}

// artifactSet commits several outputs together: every file is flushed and
// synced before any of them is renamed into place. The first output gates
// its stage, so it is renamed last.
type artifactSet []*artifact

func createArtifacts(cfg domain.PipelineConfig, names ...string) (artifactSet, error) {
	set := make(artifactSet, 0, len(names))
	for _, name := range names {
		a, err := createArtifact(cfg, name)
		if err != nil {
			set.abort()
			return nil, err
		}
		set = append(set, a)
	}
	return set, nil
}

func (s artifactSet) commit() ([]domain.ArtifactDigest, error) {
	for _, a := range s {
		if err := a.finish(); err != nil {
			s.abort()
			return nil, err
		}
	}

	for i := len(s) - 1; i >= 0; i-- {
		a := s[i]
		if err := os.Rename(a.file.Name(), a.final); err != nil {
			s.rollback()
			return nil, fmt.Errorf("commit %s: %w", a.name, err)
		}
		a.committed = true
		a.done = true
	}

	digests := make([]domain.ArtifactDigest, 0, len(s))
	for _, a := range s {
		digests = append(digests, a.digest())
	}
	return digests, nil
}

// rollback removes the outputs already renamed into place and discards
// the remaining temporary files.
func (s artifactSet) rollback() {
	for _, a := range s {
		if a.committed {
			_ = os.Remove(a.final)
			a.committed = false
		}
	}
	s.abort()
}

func (s artifactSet) abort() {
	for _, a := range s {
		a.abort()
	}
}

// hashFile returns the size and hex SHA-256 of a file on disk.
func hashFile(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, "", fmt.Errorf("hash %s: %w", path, err)
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}

// fileSize returns the size of path and whether it exists as a regular file.
func fileSize(path string) (int64, bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if info.IsDir() {
		return 0, false, fmt.Errorf("%s is a directory", path)
	}
	return info.Size(), true, nil
}

// removePartials deletes temporary files left behind by an interrupted run.
func removePartials(final string) error {
	matches, err := filepath.Glob(final + ".*.part")
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
