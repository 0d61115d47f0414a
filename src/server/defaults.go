package server

import "github.com/schollz/bin2hex/src/models"

const DEFAULT_LOG_LEVEL = "info"

var (
	DEFAULT_RATE     = models.DEFAULT_RATE
	DEFAULT_BURST    = models.DEFAULT_BURST
	DEFAULT_MAX_BODY = models.DEFAULT_MAX_BODY
)
