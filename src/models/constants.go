package models

import "os"

// WORD_SIZE is the number of input bytes rendered on one line
const WORD_SIZE = 4

// LINE_SIZE is the size of one rendered line: 8 hex digits and a line-feed
const LINE_SIZE = 2*WORD_SIZE + 1

// DEFAULT_BUFFER_SIZE is the bufio size used for input and output files
const DEFAULT_BUFFER_SIZE = 1024 * 64

// Defaults that can be overridden with flags or environment variables
var (
	DEFAULT_HOST        = "127.0.0.1"
	DEFAULT_PORT        = "9019"
	DEFAULT_IGNORE_FILE = ".bin2hexignore"
	DEFAULT_EXTENSION   = ".hex"
	DEFAULT_MAX_BODY    = 32 * 1024 * 1024
	DEFAULT_RATE        = 10.0
	DEFAULT_BURST       = 20
)

func init() {
	if port, ok := os.LookupEnv("BIN2HEX_PORT"); ok && port != "" {
		DEFAULT_PORT = port
	}
}
