package wikidump

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"io"
)

// bzip2Magic is the stream header of a bzip2 archive.
var bzip2Magic = []byte("BZh")

// Decompress returns a reader over the uncompressed dump. Archives that
// start with the bzip2 magic are decompressed; anything else is returned
// as is so plain XML dumps can be read too.
func Decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	head, err := br.Peek(len(bzip2Magic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if bytes.Equal(head, bzip2Magic) {
		return bzip2.NewReader(br), nil
	}
	return br, nil
}
