// Package fs exports query history as markdown files.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/fwojciec/docask"
	"gopkg.in/yaml.v3"
)

// maxSlugLen bounds the query-derived part of a file name.
const maxSlugLen = 60

// frontmatter is the YAML header of an exported entry.
type frontmatter struct {
	ID      string    `yaml:"id"`
	Session string    `yaml:"session"`
	Query   string    `yaml:"query"`
	Sources []string  `yaml:"sources"`
	Created time.Time `yaml:"created"`
}

// Exporter writes history entries as markdown files with atomic update
// semantics: files are written to baseDir/name.tmp and moved to
// baseDir/name once every entry has been written.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates an Exporter writing into baseDir/name.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{baseDir: baseDir, name: name}
}

func (x *Exporter) tempDir() string {
	return filepath.Join(x.baseDir, x.name+".tmp")
}

// Dir returns the directory the entries end up in.
func (x *Exporter) Dir() string {
	return filepath.Join(x.baseDir, x.name)
}

// Export replaces the output directory with one file per entry.
func (x *Exporter) Export(ctx context.Context, entries []*docask.HistoryEntry) error {
	if err := os.RemoveAll(x.tempDir()); err != nil {
		return err
	}
	if err := os.MkdirAll(x.tempDir(), 0755); err != nil {
		return err
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			_ = x.abort()
			return err
		}
		if err := x.save(e); err != nil {
			_ = x.abort()
			return err
		}
	}
	return x.commit()
}

func (x *Exporter) save(e *docask.HistoryEntry) error {
	content, err := FormatEntry(e)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(x.tempDir(), EntryPath(e)), []byte(content), 0644)
}

func (x *Exporter) commit() error {
	if err := os.RemoveAll(x.Dir()); err != nil {
		return err
	}
	return os.Rename(x.tempDir(), x.Dir())
}

func (x *Exporter) abort() error {
	return os.RemoveAll(x.tempDir())
}

// EntryPath returns the file name for an entry: its UTC creation time, a
// slug of the query and the ID prefix, so names sort chronologically and
// never collide.
// Example: 20260102-030405-how-to-create-a-source-1b4e28ba.md
func EntryPath(e *docask.HistoryEntry) string {
	id := e.ID
	if len(id) > 8 {
		id = id[:8]
	}
	name := e.CreatedAt.UTC().Format("20060102-150405")
	if slug := Slug(e.Query); slug != "" {
		name += "-" + slug
	}
	if id != "" {
		name += "-" + id
	}
	return name + ".md"
}

// Slug lower-cases s and joins its letter and digit runs with dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	slug := []rune(b.String())
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return strings.TrimRight(string(slug), "-")
}

// FormatEntry formats an entry with YAML frontmatter followed by its answer.
func FormatEntry(e *docask.HistoryEntry) (string, error) {
	fm, err := yaml.Marshal(frontmatter{
		ID:      e.ID,
		Session: e.SessionID,
		Query:   e.Query,
		Sources: e.Sources,
		Created: e.CreatedAt.UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(e.Answer)
	b.WriteString("\n")
	return b.String(), nil
}
