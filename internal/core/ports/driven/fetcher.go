package driven

import (
	"context"
	"io"
)

// ArchiveFetcher downloads a remote archive.
type ArchiveFetcher interface {
	// Fetch streams the resource at url into w and returns the byte count.
	// A single attempt is made; there is no retry or resume.
	Fetch(ctx context.Context, url string, w io.Writer) (int64, error)
}
