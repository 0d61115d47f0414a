package main

//go:generate go run src/install/updateversion.go

import (
	"os"

	log "github.com/schollz/logger"

	"github.com/schollz/bin2hex/src/cli"
)

func main() {
	if err := cli.Run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
