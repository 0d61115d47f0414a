package bin2hex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, ops Options) *Client {
	t.Helper()
	c, err := New(ops)
	require.Nil(t, err)
	return c
}

func writeFile(t *testing.T, fname string, data []byte) {
	t.Helper()
	require.Nil(t, os.MkdirAll(filepath.Dir(fname), 0o755))
	require.Nil(t, os.WriteFile(fname, data, 0o644))
}

func readFile(t *testing.T, fname string) string {
	t.Helper()
	b, err := os.ReadFile(fname)
	require.Nil(t, err)
	return string(b)
}

func TestNew(t *testing.T) {
	c, err := New(Options{})
	require.Nil(t, err)
	assert.Equal(t, 1024*64, c.Options.BufferSize)
	assert.Equal(t, ".bin2hexignore", c.Options.IgnoreFile)

	_, err = New(Options{HashAlgorithm: "sha1"})
	assert.NotNil(t, err)
	_, err = New(Options{BufferSize: -1})
	assert.NotNil(t, err)
	_, err = New(Options{HashAlgorithm: "xxhash", BufferSize: 16})
	assert.Nil(t, err)
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.hex")
	writeFile(t, in, []byte{0x01, 0x02, 0x03, 0x04, 0xAA})

	// a tiny buffer makes the writer flush between lines
	c := newTestClient(t, Options{BufferSize: 16, HashAlgorithm: "md5"})
	stats, err := c.ConvertFile(context.Background(), in, out)
	require.Nil(t, err)
	assert.Equal(t, "04030201\n000000aa\n", readFile(t, out))
	assert.Equal(t, int64(5), stats.BytesIn)
	assert.Equal(t, int64(18), stats.BytesOut)
	assert.Equal(t, int64(2), stats.Words)
	assert.Len(t, stats.Hash, 16)
}

func TestConvertFileEmpty(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.bin")
	out := filepath.Join(dir, "empty.hex")
	writeFile(t, in, nil)

	c := newTestClient(t, Options{})
	_, err := c.ConvertFile(context.Background(), in, out)
	require.Nil(t, err)
	assert.True(t, fileExists(out))
	assert.Equal(t, "", readFile(t, out))
}

func TestConvertFileTruncatesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.hex")
	writeFile(t, in, []byte{0xFF})
	writeFile(t, out, []byte("previous contents that are much longer\n"))

	c := newTestClient(t, Options{})
	_, err := c.ConvertFile(context.Background(), in, out)
	require.Nil(t, err)
	assert.Equal(t, "000000ff\n", readFile(t, out))
}

func TestConvertFileNoClobber(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.hex")
	writeFile(t, in, []byte{0xFF})
	writeFile(t, out, []byte("keep\n"))

	c := newTestClient(t, Options{NoClobber: true, NoPrompt: true})
	_, err := c.ConvertFile(context.Background(), in, out)
	assert.True(t, errors.Is(err, ErrOutputExists))
	assert.Equal(t, "keep\n", readFile(t, out))

	c = newTestClient(t, Options{NoClobber: true})
	var asked string
	c.confirm = func(prompt string) bool {
		asked = prompt
		return false
	}
	_, err = c.ConvertFile(context.Background(), in, out)
	assert.True(t, errors.Is(err, ErrOutputExists))
	assert.Contains(t, asked, out)

	c.confirm = func(string) bool { return true }
	_, err = c.ConvertFile(context.Background(), in, out)
	require.Nil(t, err)
	assert.Equal(t, "000000ff\n", readFile(t, out))
}

func TestConvertFileSameFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	writeFile(t, in, []byte{1, 2, 3, 4})

	c := newTestClient(t, Options{})
	_, err := c.ConvertFile(context.Background(), in, in)
	assert.Equal(t, ErrSameFile, err)
	assert.Equal(t, string([]byte{1, 2, 3, 4}), readFile(t, in))
}

func TestConvertFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.hex")

	c := newTestClient(t, Options{})
	_, err := c.ConvertFile(context.Background(), filepath.Join(dir, "missing.bin"), out)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, fileExists(out))
}

func TestConvertFileCanceled(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.hex")
	writeFile(t, in, []byte{1, 2, 3, 4})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestClient(t, Options{})
	_, err := c.ConvertFile(ctx, in, out)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestConvertDir(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "listings")
	writeFile(t, filepath.Join(src, "a.bin"), []byte{1, 2, 3, 4})
	writeFile(t, filepath.Join(src, "sub", "b.bin"), []byte{0xDE, 0xAD, 0xBE})
	writeFile(t, filepath.Join(src, "sub", "skip.tmp"), []byte{0})
	writeFile(t, filepath.Join(src, "build", "c.bin"), []byte{0})
	writeFile(t, filepath.Join(src, ".bin2hexignore"), []byte("*.tmp\nbuild/\n"))

	c := newTestClient(t, Options{})
	files, err := c.FilesToConvert(src, dst)
	require.Nil(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.bin", "sub/b.bin"}, names)

	stats, err := c.ConvertDir(context.Background(), src, dst)
	require.Nil(t, err)
	assert.Len(t, stats, 2)
	assert.Equal(t, "04030201\n", readFile(t, filepath.Join(dst, "a.bin.hex")))
	assert.Equal(t, "00beadde\n", readFile(t, filepath.Join(dst, "sub", "b.bin.hex")))
	assert.False(t, fileExists(filepath.Join(dst, "sub", "skip.tmp.hex")))
	assert.False(t, fileExists(filepath.Join(dst, "build")))
}

func TestConvertDirSkipsOutputInsideInput(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(src, "out")
	writeFile(t, filepath.Join(src, "a.bin"), []byte{1})
	writeFile(t, filepath.Join(dst, "old.hex"), []byte("00000001\n"))

	c := newTestClient(t, Options{})
	stats, err := c.ConvertDir(context.Background(), src, dst)
	require.Nil(t, err)
	assert.Len(t, stats, 1)
	assert.Equal(t, "00000001\n", readFile(t, filepath.Join(dst, "a.bin.hex")))
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
