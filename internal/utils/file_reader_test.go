package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHTMLContentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "about.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>About us</p>"), 0o644))

	content, err := LoadHTMLContentFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>About us</p>", string(content))

	_, err = LoadHTMLContentFromFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
