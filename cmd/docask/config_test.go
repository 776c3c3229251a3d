package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docask"
	main "github.com/fwojciec/docask/cmd/docask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSources(t *testing.T) {
	t.Parallel()

	t.Run("empty path loads nothing", func(t *testing.T) {
		t.Parallel()

		sources, err := main.LoadSources("")
		require.NoError(t, err)
		assert.Empty(t, sources)
	})

	t.Run("parses sources with renderers", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "sources.yaml", `sources:
  - name: Zeotap
    root_url: https://docs.zeotap.com/home/en-us
    renderer: browser
  - name: Hightouch
    root_url: https://hightouch.com/docs
`)

		sources, err := main.LoadSources(path)
		require.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Equal(t, docask.RendererBrowser, sources[0].Renderer)
		assert.Equal(t, "https://hightouch.com/docs", sources[1].RootURL)
	})

	t.Run("rejects invalid sources", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "sources.yaml", `sources:
  - name: Broken
    root_url: docs
`)

		_, err := main.LoadSources(path)
		assert.Equal(t, docask.EINVALID, docask.ErrorCode(err))
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "sources.yaml", "sources: [")

		_, err := main.LoadSources(path)
		assert.Equal(t, docask.EINVALID, docask.ErrorCode(err))
	})
}
