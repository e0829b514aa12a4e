package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadFileReadsNamedFileBinarySafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.unv")
	raw := []byte{0x00, 'T', 'a', 'b', 'l', 'e', 's', ';', 0x0d, 0x0a, 0xff}
	assert.NoError(t, os.WriteFile(path, raw, 0o644))

	got, err := readFile(path)
	assert.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestReadFileMissingFileErrors(t *testing.T) {
	_, err := readFile(filepath.Join(t.TempDir(), "does-not-exist.unv"))
	assert.Error(t, err)
}
