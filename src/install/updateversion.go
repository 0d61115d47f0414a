package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const versionFile = "src/cli/cli.go"

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() (err error) {
	version := os.Getenv("VERSION")
	if version == "" {
		return fmt.Errorf("VERSION is not set")
	}
	version = "v" + strings.TrimPrefix(version, "v")
	hash, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return
	}
	version += "-" + strings.TrimSpace(string(hash))

	b, err := os.ReadFile(versionFile)
	if err != nil {
		return
	}
	updated, ok := replaceBetween(string(b), `Version = "`, `"`, version)
	if !ok {
		return fmt.Errorf("no version found in %s", versionFile)
	}
	if err = os.WriteFile(versionFile, []byte(updated), 0o644); err != nil {
		return
	}
	fmt.Printf("updated %s to version %s\n", versionFile, version)
	return
}

// replaceBetween replaces the first text enclosed by start and end.
func replaceBetween(s, start, end, replacement string) (string, bool) {
	i := strings.Index(s, start)
	if i == -1 {
		return s, false
	}
	i += len(start)
	j := strings.Index(s[i:], end)
	if j == -1 {
		return s, false
	}
	return s[:i] + replacement + s[i+j:], true
}
