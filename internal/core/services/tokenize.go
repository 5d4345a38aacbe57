package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/logger"
)

// tokenize segments the article file, and optionally the sentence file,
// into space-separated surface forms.
func (p *Pipeline) tokenize(ctx context.Context) ([]domain.ArtifactDigest, error) {
	if p.segmenter == nil {
		return nil, fmt.Errorf("segmenter not configured")
	}

	outputs := p.cfg.Outputs(domain.StageTokenize)
	out, err := createArtifacts(p.cfg, outputs...)
	if err != nil {
		return nil, err
	}

	if p.cfg.Tokenize.LegacyJoin {
		logger.Debug("legacy join enabled: %s is written without line separators", p.cfg.Files.Tokens)
	}
	err = p.tokenizeFile(ctx, p.cfg.Files.Text, out[0], "articles", p.cfg.Tokenize.LegacyJoin)
	if err == nil && p.cfg.Tokenize.Sentences {
		// Training reads this file line by line, so it is never joined.
		err = p.tokenizeFile(ctx, p.cfg.Files.Sentences, out[1], "sentences", false)
	}
	if err != nil {
		out.abort()
		return nil, err
	}
	return out.commit()
}

func (p *Pipeline) tokenizeFile(ctx context.Context, input string, out *artifact, label string, join bool) error {
	f, err := os.Open(p.cfg.Path(input))
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer f.Close()

	counter := newLineCounter(p.cfg.Tokenize.LogEvery, label)
	n := 0
	err = eachLine(f, func(line string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		tokens, err := p.segmenter.Segment(line)
		if err != nil {
			return fmt.Errorf("%w: segment %s line %d: %w", domain.ErrCollaborator, input, n, err)
		}

		joined := strings.Join(tokens, " ")
		if join {
			joined = legacyLine(tokens)
		} else {
			joined += "\n"
		}
		if _, err := out.WriteString(joined); err != nil {
			return fmt.Errorf("write tokens: %w", err)
		}
		counter.add()
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Tokenized %d %s in %s.", n, label, input)
	return nil
}

// legacyLine renders tokens the way a BOS/EOS-bracketed analysis joins
// them: the empty marker surfaces leave a space on each side, so tokens of
// adjacent lines stay separated without a newline.
func legacyLine(tokens []string) string {
	if len(tokens) == 0 {
		return " "
	}
	return " " + strings.Join(tokens, " ") + " "
}

// eachLine calls fn for every line of r without its terminator. Lines may
// be arbitrarily long: a whole article sits on one line.
func eachLine(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReaderSize(r, 1<<20)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if ferr := fn(strings.TrimRight(line, "\r\n")); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
	}
}
