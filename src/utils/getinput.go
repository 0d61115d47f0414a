package utils

import (
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// GetInput returns the input with a given prompt
func GetInput(prompt string) string {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
		Stdout: os.Stderr,
	})
	if err != nil {
		return ""
	}
	defer rl.Close()
	text, _ := rl.Readline()
	return strings.TrimSpace(text)
}

// Confirm asks a yes/no question and reports whether the answer was yes
func Confirm(prompt string) bool {
	switch strings.ToLower(GetInput(prompt)) {
	case "y", "yes":
		return true
	}
	return false
}
