package docask_test

import (
	"testing"

	"github.com/fwojciec/docask"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("lower-cases text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "audience builder", docask.Normalize("Audience Builder"))
	})

	t.Run("collapses internal whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "create a new source", docask.Normalize("Create  a\n\tnew   source"))
	})

	t.Run("trims leading and trailing whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "identity resolution", docask.Normalize("\n  Identity Resolution \n"))
	})

	t.Run("returns empty string for whitespace only", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docask.Normalize(" \n\t "))
	})
}

func TestWordCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, docask.WordCount(""))
	assert.Equal(t, 3, docask.WordCount("  set up   tracking "))
}
