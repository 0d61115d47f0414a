package server

import (
	"fmt"
)

var availableLogLevels = []string{"info", "error", "warn", "debug", "trace"}

type serverOptsFunc func(s *Server) error

func WithLogLevel(level string) serverOptsFunc {
	return func(s *Server) error {
		if !containsSlice(availableLogLevels, level) {
			return fmt.Errorf("invalid log level specified: %s", level)
		}
		s.logLevel = level
		return nil
	}
}

// WithRateLimit limits conversions to rps requests per second with the
// given burst. A non-positive rps disables the limit.
func WithRateLimit(rps float64, burst int) serverOptsFunc {
	return func(s *Server) error {
		if rps > 0 && burst < 1 {
			return fmt.Errorf("invalid burst: %d", burst)
		}
		s.rate = rps
		s.burst = burst
		return nil
	}
}

func WithMaxBodySize(maxBytes int) serverOptsFunc {
	return func(s *Server) error {
		if maxBytes < 1 {
			return fmt.Errorf("invalid max body size: %d", maxBytes)
		}
		s.maxBody = maxBytes
		return nil
	}
}

func containsSlice(s []string, e string) bool {
	for _, ss := range s {
		if e == ss {
			return true
		}
	}
	return false
}
