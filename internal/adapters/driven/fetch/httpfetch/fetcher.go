// Package httpfetch provides an archive fetcher over plain HTTP(S).
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.ArchiveFetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultUserAgent     = "jawikivec (+https://github.com/custodia-labs/jawikivec)"
	DefaultHeaderTimeout = 60 * time.Second
	maxErrorBodyBytes    = 512
)

// ProgressFunc receives the bytes written so far and the expected total.
// total is -1 when the server does not send a length.
type ProgressFunc func(done, total int64)

// Config holds configuration for the Fetcher.
type Config struct {
	// UserAgent is sent with every request (default: DefaultUserAgent).
	UserAgent string

	// Timeout bounds the whole download. Zero means no limit, which
	// suits multi-gigabyte dumps.
	Timeout time.Duration

	// HeaderTimeout bounds the wait for response headers (default: 60s).
	HeaderTimeout time.Duration

	// Progress is called after every chunk written. Optional.
	Progress ProgressFunc
}

// Fetcher downloads archives with a single GET request.
type Fetcher struct {
	client    *http.Client
	userAgent string
	progress  ProgressFunc
}

// New creates a new Fetcher.
func New(cfg Config) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.HeaderTimeout == 0 {
		cfg.HeaderTimeout = DefaultHeaderTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.HeaderTimeout

	return &Fetcher{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		userAgent: cfg.UserAgent,
		progress:  cfg.Progress,
	}
}

// Fetch streams the resource at url into w and returns the byte count.
func (f *Fetcher) Fetch(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return 0, fmt.Errorf("unexpected status %s: %s", resp.Status, string(body))
	}

	if f.progress != nil {
		w = &progressWriter{w: w, total: resp.ContentLength, report: f.progress}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("download: %w", err)
	}
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		return n, fmt.Errorf("download: got %d of %d bytes: %w", n, resp.ContentLength, io.ErrUnexpectedEOF)
	}
	return n, nil
}

type progressWriter struct {
	w      io.Writer
	done   int64
	total  int64
	report ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.done += int64(n)
	p.report(p.done, p.total)
	return n, err
}
