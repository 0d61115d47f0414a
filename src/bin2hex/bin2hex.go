package bin2hex

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/schollz/logger"
	"github.com/schollz/progressbar/v3"

	"github.com/schollz/bin2hex/src/convert"
	"github.com/schollz/bin2hex/src/diskusage"
	"github.com/schollz/bin2hex/src/models"
	"github.com/schollz/bin2hex/src/utils"
)

func init() {
	log.SetLevel("warn")
}

// Debug toggles debug mode
func Debug(debug bool) {
	if debug {
		log.SetLevel("debug")
	} else {
		log.SetLevel("warn")
	}
}

// Options specifies user specific options
type Options struct {
	Debug         bool
	NoPrompt      bool
	NoClobber     bool
	ShowProgress  bool
	HashAlgorithm string
	IgnoreFile    string
	BufferSize    int
}

// Stats describes one finished conversion
type Stats struct {
	Input    string
	Output   string
	BytesIn  int64
	BytesOut int64
	Words    int64
	Hash     []byte
	Duration time.Duration
}

// Client converts files and directories
type Client struct {
	Options Options

	// confirm asks whether an existing output may be replaced
	confirm func(prompt string) bool
}

// New returns a client for the given options.
func New(ops Options) (c *Client, err error) {
	c = new(Client)
	c.Options = ops
	Debug(c.Options.Debug)
	log.Debugf("options: %+v", c.Options)

	if c.Options.HashAlgorithm != "" && !utils.ValidHashAlgorithm(c.Options.HashAlgorithm) {
		return nil, fmt.Errorf("unsupported hash algorithm: %s", c.Options.HashAlgorithm)
	}
	if c.Options.BufferSize < 0 {
		return nil, fmt.Errorf("invalid buffer size: %d", c.Options.BufferSize)
	}
	if c.Options.BufferSize == 0 {
		c.Options.BufferSize = models.DEFAULT_BUFFER_SIZE
	}
	if c.Options.IgnoreFile == "" {
		c.Options.IgnoreFile = models.DEFAULT_IGNORE_FILE
	}
	c.confirm = utils.Confirm
	return c, nil
}

// ConvertFile writes the hex listing of input to output. The output is
// created or truncated, and flushed before ConvertFile returns.
func (c *Client) ConvertFile(ctx context.Context, input, output string) (stats Stats, err error) {
	start := time.Now()
	stats.Input = input
	stats.Output = output

	fin, err := os.Open(input)
	if err != nil {
		return stats, err
	}
	defer fin.Close()
	fi, err := fin.Stat()
	if err != nil {
		return stats, err
	}
	if fi.IsDir() {
		return stats, fmt.Errorf("%s is a directory", input)
	}

	if err = c.checkOutput(fi, output); err != nil {
		return stats, err
	}

	fout, err := os.Create(output)
	if err != nil {
		return stats, err
	}

	var in io.Reader = utils.NewCtxReader(ctx, fin)
	var bar *progressbar.ProgressBar
	if c.Options.ShowProgress {
		bar = c.newBar(input, fi.Size())
		in = io.TeeReader(in, bar)
	}
	w := bufio.NewWriterSize(fout, c.Options.BufferSize)
	r := bufio.NewReaderSize(in, c.Options.BufferSize)

	log.Debugf("converting %s (%s) to %s", input, utils.ByteCountDecimal(fi.Size()), output)
	err = convert.Convert(r, w)
	if err == nil {
		err = w.Flush()
	}
	if errClose := fout.Close(); err == nil {
		err = errClose
	}
	if bar != nil {
		if err != nil {
			bar.Exit()
		} else {
			bar.Finish()
		}
	}
	if err != nil {
		return stats, fmt.Errorf("could not convert %s: %w", input, err)
	}

	stats.BytesIn = fi.Size()
	stats.Words = convert.Words(fi.Size())
	stats.BytesOut = convert.OutputSize(fi.Size())

	if c.Options.HashAlgorithm != "" {
		stats.Hash, err = utils.HashFileCtx(ctx, input, c.Options.HashAlgorithm, c.Options.ShowProgress)
		if err != nil {
			return stats, fmt.Errorf("could not hash %s: %w", input, err)
		}
		log.Debugf("hashed %s to %x using %s", input, stats.Hash, c.Options.HashAlgorithm)
	}
	stats.Duration = time.Since(start)
	log.Debugf("converted %s in %s", input, stats.Duration)
	return stats, nil
}

// checkOutput refuses to convert a file onto itself, to fill up the output
// volume and, with NoClobber, to replace an existing output without
// confirmation.
func (c *Client) checkOutput(in os.FileInfo, output string) error {
	need := convert.OutputSize(in.Size())
	fo, err := os.Stat(output)
	if errors.Is(err, os.ErrNotExist) {
		return checkRoom(output, need)
	} else if err != nil {
		return err
	}
	if os.SameFile(in, fo) {
		return ErrSameFile
	}
	if fo.IsDir() {
		return fmt.Errorf("%s is a directory", output)
	}
	if c.Options.NoClobber &&
		(c.Options.NoPrompt || !c.confirm(fmt.Sprintf("Overwrite '%s'? (y/N) ", output))) {
		return fmt.Errorf("%w: %s", ErrOutputExists, output)
	}
	// the old contents are truncated away
	return checkRoom(output, need-fo.Size())
}

func checkRoom(output string, need int64) error {
	if !diskusage.HasRoom(filepath.Dir(output), need) {
		return fmt.Errorf("%w: %s needs %s", ErrNotEnoughSpace, output, utils.ByteCountDecimal(need))
	}
	return nil
}

func (c *Client) newBar(input string, size int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(utils.ShortName(input, 20)),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetVisibility(utils.IsTerminal(os.Stderr)),
	)
}
