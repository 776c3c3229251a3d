package goquery_test

import (
	"testing"

	"github.com/fwojciec/docask"
	"github.com/fwojciec/docask/goquery"
	"github.com/stretchr/testify/assert"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want docask.Framework
	}{
		{
			name: "detects Docusaurus from skip-to-content fallback",
			html: `<html><body><a id="__docusaurus_skipToContent_fallback" href="#x">Skip</a></body></html>`,
			want: docask.FrameworkDocusaurus,
		},
		{
			name: "detects Docusaurus from data-rh and data-theme attributes",
			html: `<html data-theme="light" data-rh="lang"><body></body></html>`,
			want: docask.FrameworkDocusaurus,
		},
		{
			name: "detects MkDocs Material from data-md-color-scheme",
			html: `<html><body data-md-color-scheme="default"></body></html>`,
			want: docask.FrameworkMkDocs,
		},
		{
			name: "detects Sphinx from ReadTheDocs sidebar",
			html: `<html><body><nav class="wy-nav-side"></nav></body></html>`,
			want: docask.FrameworkSphinx,
		},
		{
			name: "detects VitePress before VuePress",
			html: `<html><body><div id="VPContent"><div class="theme-default-content"></div></div></body></html>`,
			want: docask.FrameworkVitePress,
		},
		{
			name: "detects VuePress from default theme content",
			html: `<html><body><div class="theme-default-content"></div></body></html>`,
			want: docask.FrameworkVuePress,
		},
		{
			name: "detects GitBook from sidebar test id",
			html: `<html><body><aside data-testid="space.sidebar"></aside></body></html>`,
			want: docask.FrameworkGitBook,
		},
		{
			name: "detects GitBook from html classes",
			html: `<html class="circular-corners theme-clean"><body></body></html>`,
			want: docask.FrameworkGitBook,
		},
		{
			name: "ignores a single GitBook class",
			html: `<html class="tint"><body></body></html>`,
			want: docask.FrameworkUnknown,
		},
		{
			name: "detects Nextra from navbar",
			html: `<html><body><div class="nextra-navbar"></div></body></html>`,
			want: docask.FrameworkNextra,
		},
		{
			name: "prefers meta generator over markers",
			html: `<html><head><meta name="generator" content="Sphinx 7.2.6"></head><body><div class="nextra-toc"></div></body></html>`,
			want: docask.FrameworkSphinx,
		},
		{
			name: "matches generator case-insensitively",
			html: `<html><head><meta name="generator" content="Docusaurus v3.1.0"></head></html>`,
			want: docask.FrameworkDocusaurus,
		},
		{
			name: "returns unknown for generic site",
			html: `<html><body><nav><a href="/about">About</a></nav><main>Some content</main></body></html>`,
			want: docask.FrameworkUnknown,
		},
		{
			name: "returns unknown for empty HTML",
			html: "",
			want: docask.FrameworkUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := goquery.NewDetector()
			assert.Equal(t, tt.want, d.Detect(tt.html))
		})
	}
}

func TestDetector_RequiresJS(t *testing.T) {
	t.Parallel()

	d := goquery.NewDetector()

	t.Run("server-rendered frameworks are known and need no JS", func(t *testing.T) {
		t.Parallel()

		for _, f := range []docask.Framework{docask.FrameworkDocusaurus, docask.FrameworkMkDocs, docask.FrameworkSphinx} {
			requires, known := d.RequiresJS(f)
			assert.False(t, requires, f)
			assert.True(t, known, f)
		}
	})

	t.Run("client-rendered frameworks need JS", func(t *testing.T) {
		t.Parallel()

		requires, known := d.RequiresJS(docask.FrameworkGitBook)
		assert.True(t, requires)
		assert.True(t, known)
	})

	t.Run("unknown framework is not known", func(t *testing.T) {
		t.Parallel()

		requires, known := d.RequiresJS(docask.FrameworkUnknown)
		assert.False(t, requires)
		assert.False(t, known)
	})
}
