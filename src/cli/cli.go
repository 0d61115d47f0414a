package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/cli/v2"
	log "github.com/schollz/logger"

	"github.com/schollz/bin2hex/src/bin2hex"
	"github.com/schollz/bin2hex/src/models"
	"github.com/schollz/bin2hex/src/server"
	"github.com/schollz/bin2hex/src/utils"
)

// Version specifies the version
var Version string

// ErrUsage is returned when the arguments do not name an input and an output
var ErrUsage = errors.New("usage: bin2hex [options] <input> <output>")

// Run will run the command line interface
func Run() (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newApp().RunContext(ctx, os.Args)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bin2hex"
	if Version == "" {
		Version = "v1.0.0-dev"
	}
	app.Version = Version
	app.Compiled = time.Now()
	app.Usage = "write a binary file as little-endian 32-bit hex words, one per line"
	app.UsageText = `Convert a file:
      bin2hex firmware.bin firmware.hex

   Convert every file in a folder (honors .bin2hexignore):
      bin2hex ./blobs ./listings

   Serve conversions over HTTP:
      bin2hex serve --port 9019`
	app.ArgsUsage = "<input> <output>"
	app.Commands = []*cli.Command{
		{
			Name:        "serve",
			Usage:       "start a conversion server",
			Description: "POST a binary body to /convert and get the hex listing back",
			HelpName:    "bin2hex serve",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "host", Value: models.DEFAULT_HOST, Usage: "host to listen on"},
				&cli.StringFlag{Name: "port", Value: models.DEFAULT_PORT, Usage: "port to listen on"},
				&cli.Float64Flag{Name: "rate", Value: models.DEFAULT_RATE, Usage: "conversions per second, 0 disables the limit"},
				&cli.IntFlag{Name: "burst", Value: models.DEFAULT_BURST, Usage: "conversions allowed in a burst"},
				&cli.IntFlag{Name: "max-body", Value: models.DEFAULT_MAX_BODY, Usage: "largest accepted body in bytes"},
			},
			Action: serve,
		},
	}
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Usage: "toggle debug mode"},
		&cli.BoolFlag{Name: "yes", Usage: "automatically agree to all prompts"},
		&cli.BoolFlag{Name: "no-clobber", Usage: "ask before replacing an existing output"},
		&cli.BoolFlag{Name: "progress", Usage: "show a progress bar"},
		&cli.StringFlag{Name: "hash", Usage: "also hash the input (xxhash, imohash, highway, md5)", EnvVars: []string{"BIN2HEX_HASH"}},
		&cli.StringFlag{Name: "ignore", Value: models.DEFAULT_IGNORE_FILE, Usage: "ignore file used when converting a folder"},
		&cli.IntFlag{Name: "buffer", Value: models.DEFAULT_BUFFER_SIZE, Usage: "read and write buffer size in bytes", EnvVars: []string{"BIN2HEX_BUFFER"}},
	}
	app.EnableBashCompletion = true
	app.HideHelp = false
	app.HideVersion = false
	app.Action = convert
	return app
}

func convert(c *cli.Context) (err error) {
	if c.Args().Len() != 2 {
		return ErrUsage
	}
	input, output := c.Args().Get(0), c.Args().Get(1)

	cr, err := bin2hex.New(bin2hex.Options{
		Debug:         c.Bool("debug"),
		NoPrompt:      c.Bool("yes"),
		NoClobber:     c.Bool("no-clobber"),
		ShowProgress:  c.Bool("progress"),
		HashAlgorithm: c.String("hash"),
		IgnoreFile:    c.String("ignore"),
		BufferSize:    c.Int("buffer"),
	})
	if err != nil {
		return
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var stats []bin2hex.Stats
	if utils.IsDir(input) {
		stats, err = cr.ConvertDir(ctx, input, output)
	} else {
		var s bin2hex.Stats
		s, err = cr.ConvertFile(ctx, input, output)
		stats = append(stats, s)
	}
	if err != nil {
		return
	}

	for _, s := range stats {
		log.Debugf("%s: %s in, %s out, %d words", s.Input, utils.ByteCountDecimal(s.BytesIn), utils.ByteCountDecimal(s.BytesOut), s.Words)
		if s.Hash != nil {
			fmt.Fprintf(c.App.Writer, "%x  %s\n", s.Hash, s.Input)
		}
	}
	fmt.Fprintf(c.App.Writer, "Successfully converted %s to %s\n", input, output)
	return nil
}

func serve(c *cli.Context) (err error) {
	logLevel := "info"
	if c.Bool("debug") {
		logLevel = "debug"
	}
	s, err := server.New(
		server.WithLogLevel(logLevel),
		server.WithRateLimit(c.Float64("rate"), c.Int("burst")),
		server.WithMaxBodySize(c.Int("max-body")),
	)
	if err != nil {
		return
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Run(c.String("host"), c.String("port"))
	}()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case err = <-errChan:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		if err = s.Shutdown(); err != nil {
			return
		}
		return <-errChan
	}
}
