package utils

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/kalafut/imohash"
	"github.com/minio/highwayhash"
	log "github.com/schollz/logger"
	"github.com/schollz/progressbar/v3"
)

// HashAlgorithms lists the names accepted by HashFileCtx
var HashAlgorithms = []string{"xxhash", "imohash", "highway", "md5"}

var imopartial = imohash.New()

const highwayKey = "1553c5383fb0b86578c3310da665b4f6e0521acf22eb58a99532ffed02a6b115"

// ctxReader wraps a reader with context cancellation support.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

// NewCtxReader returns a reader that fails with the context error once ctx
// is done. Cancellation only takes effect on the next Read.
func NewCtxReader(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

// Read implements io.Reader interface with context cancellation.
func (c *ctxReader) Read(p []byte) (n int, err error) {
	select {
	case <-c.ctx.Done():
		return 0, c.ctx.Err()
	default:
		n, err = c.r.Read(p)
		if c.ctx.Err() != nil {
			return 0, c.ctx.Err()
		}
		return n, err
	}
}

// ctxReaderAt is the io.ReaderAt counterpart of ctxReader, used for hashing.
type ctxReaderAt struct {
	ctx context.Context
	f   *os.File
}

func (c *ctxReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	if err = c.ctx.Err(); err != nil {
		return 0, err
	}
	n, err = c.f.ReadAt(p, off)
	if c.ctx.Err() != nil {
		return 0, c.ctx.Err()
	}
	return n, err
}

// ValidHashAlgorithm reports whether algorithm is supported by HashFileCtx
func ValidHashAlgorithm(algorithm string) bool {
	for _, a := range HashAlgorithms {
		if a == algorithm {
			return true
		}
	}
	return false
}

// HashFileCtx returns the hash of a file with context cancellation support.
// A symlink is hashed as the SHA256 of its target.
func HashFileCtx(ctx context.Context, fname string, algorithm string, showProgress ...bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidHashAlgorithm(algorithm) {
		return nil, fmt.Errorf("unsupported algorithm: %s", algorithm)
	}

	fstats, err := os.Lstat(fname)
	if err != nil {
		return nil, err
	}
	if fstats.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(fname)
		if err != nil {
			return nil, err
		}
		return []byte(SHA256(target)), nil
	}

	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	sr := io.NewSectionReader(&ctxReaderAt{ctx: ctx, f: f}, 0, fi.Size())

	var bar *progressbar.ProgressBar
	if len(showProgress) > 0 && showProgress[0] {
		bar = newHashBar(fname, algorithm, fi.Size())
	}

	start := time.Now()
	defer func() {
		log.Debugf("hashed %s using %s in %s", fname, algorithm, time.Since(start))
	}()

	switch algorithm {
	case "imohash":
		return IMOHashReader(sr, bar)
	case "md5":
		return hashReader(md5.New(), sr, bar)
	case "xxhash":
		return hashReader(xxhash.New(), sr, bar)
	default:
		key, err := hex.DecodeString(highwayKey)
		if err != nil {
			return nil, err
		}
		h, err := highwayhash.New(key)
		if err != nil {
			return nil, fmt.Errorf("could not create highwayhash: %w", err)
		}
		return hashReader(h, sr, bar)
	}
}

func newHashBar(fname, algorithm string, size int64) *progressbar.ProgressBar {
	if algorithm == "imohash" {
		// sampling has no meaningful total
		return progressbar.NewOptions64(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetDescription(fmt.Sprintf("Sampling %s", ShortName(fname, 20))),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetSpinnerChangeInterval(100*time.Millisecond),
		)
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription(fmt.Sprintf("Hashing %s", ShortName(fname, 20))),
		progressbar.OptionClearOnFinish(),
	)
}

// hashReader streams sr through h, and through bar when it is set.
func hashReader(h hash.Hash, sr *io.SectionReader, bar *progressbar.ProgressBar) ([]byte, error) {
	if _, err := sr.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var w io.Writer = h
	if bar != nil {
		w = io.MultiWriter(h, bar)
	}
	if _, err := io.Copy(w, sr); err != nil {
		if bar != nil {
			bar.Exit()
		}
		return nil, err
	}
	if bar != nil {
		bar.Finish()
	}
	return h.Sum(nil), nil
}

// IMOHashReader returns the sampled imohash for a SectionReader.
func IMOHashReader(sr *io.SectionReader, bar *progressbar.ProgressBar) ([]byte, error) {
	if bar != nil {
		bar.Add(0)
	}
	b, err := imopartial.SumSectionReader(sr)
	if err != nil {
		if bar != nil {
			bar.Exit()
		}
		return nil, err
	}
	if bar != nil {
		bar.Finish()
	}
	return b[:], nil
}
