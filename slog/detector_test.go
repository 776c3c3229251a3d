package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/docask"
	"github.com/fwojciec/docask/mock"
	dslog "github.com/fwojciec/docask/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingDetector(t *testing.T) {
	t.Parallel()

	t.Run("logs detected framework", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FrameworkDetector{
			DetectFn: func(string) docask.Framework { return docask.FrameworkDocusaurus },
		}

		framework := dslog.NewLoggingDetector(inner, logger).Detect("<html></html>")

		assert.Equal(t, docask.FrameworkDocusaurus, framework)
		assert.Contains(t, buf.String(), "framework=docusaurus")
	})

	t.Run("logs unknown framework by placeholder", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FrameworkDetector{
			DetectFn: func(string) docask.Framework { return docask.FrameworkUnknown },
		}

		dslog.NewLoggingDetector(inner, logger).Detect("<html></html>")

		assert.Contains(t, buf.String(), "framework=(unknown)")
	})

	t.Run("delegates RequiresJS", func(t *testing.T) {
		t.Parallel()

		inner := &mock.FrameworkDetector{
			RequiresJSFn: func(docask.Framework) (bool, bool) { return true, true },
		}

		requires, known := dslog.NewLoggingDetector(inner, slog.Default()).RequiresJS(docask.FrameworkGitBook)

		assert.True(t, requires)
		assert.True(t, known)
	})
}
