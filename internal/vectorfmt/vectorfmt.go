// Package vectorfmt reads and writes word vectors in the word2vec text and
// binary formats.
//
// Text: one "token f1 ... fN" line per token, optionally preceded by a
// "<count> <dim>" header line.
//
// Binary: a "<count> <dim>\n" header, then per token the token bytes, a
// space, N little-endian float32 values and a newline.
package vectorfmt

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

// ErrFormat indicates malformed vector data.
var ErrFormat = errors.New("malformed vector data")

// WriteText writes e as text with six decimals per component.
func WriteText(w io.Writer, e *domain.Embeddings, header bool) error {
	if err := e.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if header {
		if _, err := fmt.Fprintf(bw, "%d %d\n", e.Len(), e.Dim); err != nil {
			return err
		}
	}

	buf := make([]byte, 0, 16*e.Dim)
	for i, word := range e.Words {
		buf = append(buf[:0], word...)
		for _, v := range e.Vectors[i] {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, float64(v), 'f', 6, 32)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadText parses text vectors of dimension dim. A "<count> <dim>" header is
// skipped, as is every line whose field count is not dim+1.
func ReadText(r io.Reader, dim int) (*domain.Embeddings, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrFormat, dim)
	}
	e := &domain.Embeddings{Dim: dim}
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			fields := strings.Fields(line)
			if lineNo == 1 && isHeader(fields, dim) {
				fields = nil
			}
			if len(fields) == dim+1 {
				vec, perr := parseFloats(fields[1:])
				if perr != nil {
					return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, lineNo, perr)
				}
				e.Add(fields[0], vec)
			}
		}
		if errors.Is(err, io.EOF) {
			return e, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func isHeader(fields []string, dim int) bool {
	if len(fields) != 2 || fields[1] != strconv.Itoa(dim) {
		return false
	}
	_, err := strconv.Atoi(fields[0])
	return err == nil
}

func parseFloats(fields []string) ([]float32, error) {
	vec := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		vec[i] = float32(v)
	}
	return vec, nil
}

// WriteBinary writes e in the word2vec binary format.
func WriteBinary(w io.Writer, e *domain.Embeddings) error {
	if err := e.Validate(); err != nil {
		return err
	}
	for _, word := range e.Words {
		if word == "" || strings.ContainsAny(word, " \n") {
			return fmt.Errorf("%w: token %q cannot be stored", ErrFormat, word)
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", e.Len(), e.Dim); err != nil {
		return err
	}
	raw := make([]byte, 4*e.Dim)
	for i, word := range e.Words {
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := bw.WriteByte(' '); err != nil {
			return err
		}
		for j, v := range e.Vectors[i] {
			binary.LittleEndian.PutUint32(raw[4*j:], math.Float32bits(v))
		}
		if _, err := bw.Write(raw); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadBinary loads vectors written by WriteBinary.
func ReadBinary(r io.Reader) (*domain.Embeddings, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrFormat, err)
	}
	var count, dim int
	if _, err := fmt.Sscanf(header, "%d %d", &count, &dim); err != nil || count < 0 || dim <= 0 {
		return nil, fmt.Errorf("%w: header %q", ErrFormat, strings.TrimSpace(header))
	}

	e := &domain.Embeddings{Dim: dim}
	raw := make([]byte, 4*dim)
	for i := 0; i < count; i++ {
		word, err := br.ReadString(' ')
		if err != nil {
			return nil, fmt.Errorf("%w: token %d: %w", ErrFormat, i, err)
		}
		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, fmt.Errorf("%w: vector %d: %w", ErrFormat, i, err)
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*j:]))
		}
		if b, err := br.ReadByte(); err != nil || b != '\n' {
			return nil, fmt.Errorf("%w: vector %d is not newline terminated", ErrFormat, i)
		}
		e.Add(strings.TrimSuffix(word, " "), vec)
	}
	return e, nil
}
