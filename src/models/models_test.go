package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, 4, WORD_SIZE)
	assert.Equal(t, 9, LINE_SIZE)
	assert.Equal(t, 1024*64, DEFAULT_BUFFER_SIZE)
	assert.Equal(t, ".hex", DEFAULT_EXTENSION)
	assert.NotEmpty(t, DEFAULT_PORT)
}
