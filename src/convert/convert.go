package convert

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/schollz/bin2hex/src/models"
)

// Convert reads r in 4-byte words and writes each word to w as its
// little-endian uint32 value in 8 lowercase hex digits followed by a
// line-feed. A final partial word is zero-extended on its high-order side.
// Errors from r (other than io.EOF) and from w are returned unchanged.
// Convert does not flush w.
func Convert(r io.Reader, w io.Writer) error {
	var (
		word [models.WORD_SIZE]byte
		be   [models.WORD_SIZE]byte
		line [models.LINE_SIZE]byte
	)
	line[models.LINE_SIZE-1] = '\n'

	for {
		n, eof, err := fill(r, word[:])
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		for i := n; i < len(word); i++ {
			word[i] = 0
		}

		binary.BigEndian.PutUint32(be[:], binary.LittleEndian.Uint32(word[:]))
		hex.Encode(line[:], be[:])
		written, err := w.Write(line[:])
		if err != nil {
			return err
		}
		if written != len(line) {
			return io.ErrShortWrite
		}

		if eof || n < len(word) {
			return nil
		}
	}
}

// fill reads into buf until it is full or the stream ends. A read of zero
// bytes with no error counts as the end of the stream, as does io.EOF.
func fill(r io.Reader, buf []byte) (n int, eof bool, err error) {
	for n < len(buf) {
		nr, er := r.Read(buf[n:])
		n += nr
		if er == io.EOF {
			return n, true, nil
		}
		if er != nil {
			return n, false, er
		}
		if nr == 0 {
			return n, true, nil
		}
	}
	return n, false, nil
}

// Words returns the number of lines Convert emits for size input bytes.
func Words(size int64) int64 {
	if size <= 0 {
		return 0
	}
	return (size + models.WORD_SIZE - 1) / models.WORD_SIZE
}

// OutputSize returns the number of bytes Convert writes for size input bytes.
func OutputSize(size int64) int64 {
	return Words(size) * models.LINE_SIZE
}
