// Package huh collects chat requests with interactive terminal forms.
package huh

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fwojciec/docask"
)

// filterThreshold enables type-to-filter on selects with more options.
const filterThreshold = 5

var _ docask.Prompter = (*Prompter)(nil)

// Prompter implements docask.Prompter with a huh form: a query input, a
// source chooser and an optional second source for comparison.
type Prompter struct {
	// Input and Output override the terminal when set.
	Input  io.Reader
	Output io.Writer

	// Accessible renders plain line prompts instead of the TUI.
	Accessible bool
}

// NewPrompter returns a Prompter on the process terminal.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Prompt runs the form. Aborting it or submitting an empty query ends the session.
func (p *Prompter) Prompt(ctx context.Context, sources []string) (*docask.ChatRequest, bool, error) {
	if len(sources) == 0 {
		return nil, false, docask.Errorf(docask.EINVALID, "no sources to choose from")
	}

	req := &docask.ChatRequest{Source: sources[0]}
	var compare bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Ask a how-to question").
				Description("Leave empty to quit.").
				Placeholder("How do I set up a new source in Segment?").
				Value(&req.Query),
			selectSource("Documentation", sources, &req.Source),
			huh.NewConfirm().
				Title("Compare with another platform?").
				Affirmative("Yes").
				Negative("No").
				Value(&compare),
		),
		huh.NewGroup(
			selectSource("Compare with", sources, &req.CompareWith).
				Validate(func(s string) error {
					if s == req.Source {
						return errors.New("choose a different platform")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return !compare }),
	).WithShowHelp(true).WithAccessible(p.Accessible)

	if p.Input != nil {
		form = form.WithInput(p.Input)
	}
	if p.Output != nil {
		form = form.WithOutput(p.Output)
	}

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, false, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, ctxErr
		}
		return nil, false, err
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return nil, false, nil
	}
	if !compare {
		req.CompareWith = ""
	}
	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	return req, true, nil
}

func selectSource(title string, sources []string, value *string) *huh.Select[string] {
	sel := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(sources...)...).
		Value(value)
	if len(sources) > filterThreshold {
		sel = sel.Filtering(true)
	}
	return sel
}
