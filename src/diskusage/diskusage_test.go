package diskusage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiskUsage(t *testing.T) {
	usage := NewDiskUsage(".")
	require.NotNil(t, usage)
	assert.True(t, usage.Size() > 0)
	assert.True(t, usage.Free() <= usage.Size())
	assert.True(t, usage.Available() <= usage.Free())
	assert.Equal(t, usage.Size()-usage.Free(), usage.Used())
	assert.True(t, usage.Usage() >= 0 && usage.Usage() <= 1)
}

func TestNewDiskUsageMissing(t *testing.T) {
	assert.Nil(t, NewDiskUsage("./does/not/exist"))
}

func TestHasRoom(t *testing.T) {
	assert.True(t, HasRoom(".", 0))
	assert.True(t, HasRoom(".", 1))
	assert.False(t, HasRoom(".", 1<<62))
	assert.True(t, HasRoom("./does/not/exist", 1<<62))
}
