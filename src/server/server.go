package server

import (
	"bytes"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v3"
	log "github.com/schollz/logger"
	"golang.org/x/time/rate"

	"github.com/schollz/bin2hex/src/convert"
)

// Server converts request bodies into hex listings over HTTP
type Server struct {
	logLevel string
	rate     float64
	burst    int
	maxBody  int

	limiter *rate.Limiter
	app     *fiber.App
}

// New returns a server with the routes registered.
func New(opts ...serverOptsFunc) (*Server, error) {
	s := &Server{
		logLevel: DEFAULT_LOG_LEVEL,
		rate:     DEFAULT_RATE,
		burst:    DEFAULT_BURST,
		maxBody:  DEFAULT_MAX_BODY,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("could not apply optional configurations: %w", err)
		}
	}
	log.SetLevel(s.logLevel)

	if s.rate > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(s.rate), s.burst)
	}

	s.app = fiber.New(fiber.Config{
		AppName: "bin2hex",
		// one byte of slack so oversized bodies reach the handler and get a 413
		BodyLimit: s.maxBody + 1,
	})
	s.app.Use(s.logRequest)
	s.app.Get("/healthz", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	s.app.Post("/convert", s.limit, s.handleConvert)
	return s, nil
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on host:port until Shutdown is called
func (s *Server) Run(host, port string) error {
	addr := net.JoinHostPort(host, port)
	log.Infof("listening on %s", addr)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the listener and waits for active requests
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) logRequest(c fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Debugf("%s %s %d %s", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
	return err
}

func (s *Server) limit(c fiber.Ctx) error {
	if s.limiter != nil && !s.limiter.Allow() {
		return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
	}
	return c.Next()
}

func (s *Server) handleConvert(c fiber.Ctx) error {
	body := c.Body()
	if len(body) > s.maxBody {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", s.maxBody))
	}

	var buf bytes.Buffer
	buf.Grow(int(convert.OutputSize(int64(len(body)))))
	if err := convert.Convert(bytes.NewReader(body), &buf); err != nil {
		log.Errorf("could not convert body: %v", err)
		return err
	}
	log.Debugf("converted %d bytes into %d words", len(body), convert.Words(int64(len(body))))

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(buf.Bytes())
}
