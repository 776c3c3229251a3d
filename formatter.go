package docask

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ListStyle selects how found fragments are rendered.
type ListStyle string

// List styles.
const (
	// ListNumbered renders fragments as a 1-indexed numbered list.
	ListNumbered ListStyle = "numbered"

	// ListBullets renders a section header followed by markdown bullets.
	ListBullets ListStyle = "bullets"
)

// FormatAnswer renders an answer as markdown text.
// Answers without fragments render their status message, falling back to
// MessageNoRelevantContent.
func FormatAnswer(a *Answer, style ListStyle) string {
	if a == nil || !a.Found() {
		if a != nil && a.Message != "" {
			return a.Message
		}
		return MessageNoRelevantContent
	}

	var sb strings.Builder
	if style == ListBullets {
		title := a.Source
		if a.Section != nil && a.Section.Text != "" {
			title = capitalize(a.Section.Text)
		}
		sb.WriteString("### " + title + "\n")
		for i, f := range a.Fragments {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString("- " + indent(fragmentBody(f.Fragment), "  "))
		}
		return sb.String()
	}

	for i, f := range a.Fragments {
		if i > 0 {
			sb.WriteString("\n")
		}
		prefix := fmt.Sprintf("%d. ", i+1)
		sb.WriteString(prefix + indent(fragmentBody(f.Fragment), strings.Repeat(" ", len(prefix))))
	}
	return sb.String()
}

// FormatComparison renders two answers under per-source headings.
func FormatComparison(c *Comparison, style ListStyle) string {
	if c == nil || c.First == nil || c.Second == nil {
		return MessageNoRelevantContent
	}
	parts := []string{
		fmt.Sprintf("### Comparison: %s vs. %s", c.First.Source, c.Second.Source),
		fmt.Sprintf("**%s:**", c.First.Source),
		FormatAnswer(c.First, style),
		"",
		fmt.Sprintf("**%s:**", c.Second.Source),
		FormatAnswer(c.Second, style),
	}
	return strings.Join(parts, "\n")
}

// fragmentBody returns the markdown of code fragments when available and
// the plain text otherwise.
func fragmentBody(f Fragment) string {
	if f.Kind == KindCode && f.Markdown != "" {
		return f.Markdown
	}
	return f.Text
}

// indent prefixes every line after the first with pad.
func indent(s, pad string) string {
	return strings.ReplaceAll(s, "\n", "\n"+pad)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
