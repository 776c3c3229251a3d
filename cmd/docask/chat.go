package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/docask"
)

// Run executes the chat command: prompt, answer and print the session
// transcript until the user quits. The session history is cleared on exit.
func (c *ChatCmd) Run(deps *Dependencies) (err error) {
	defer func() {
		if deps.Session == nil {
			return
		}
		if derr := deps.Session.DeleteEntries(deps.Ctx, deps.SessionID); derr != nil && err == nil {
			err = derr
		}
	}()

	names := docask.SourceNames(deps.Sources)
	for {
		req, ok, err := deps.Prompter.Prompt(deps.Ctx, names)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(deps.Stdout, "Bye.")
			return nil
		}

		if err := answerRequest(deps, req); err != nil {
			if docask.ErrorCode(err) == docask.EINTERNAL {
				return err
			}
			fmt.Fprintf(deps.Stderr, "error: %s\n", docask.ErrorMessage(err))
			continue
		}
		if err := printTranscript(deps); err != nil {
			return err
		}
	}
}

// answerRequest answers one chat request and records it in the history.
// The answer itself is shown through the transcript.
func answerRequest(deps *Dependencies, req *docask.ChatRequest) error {
	quiet := *deps
	quiet.Stdout = io.Discard
	quiet.Stderr = io.Discard
	if req.CompareWith != "" {
		return (&CompareCmd{First: req.Source, Second: req.CompareWith, Query: []string{req.Query}}).Run(&quiet)
	}
	return (&AskCmd{Source: req.Source, Query: []string{req.Query}}).Run(&quiet)
}

// printTranscript prints the session as You/Bot pairs, oldest first.
func printTranscript(deps *Dependencies) error {
	entries, err := deps.Session.FindEntries(deps.Ctx, docask.HistoryFilter{SessionID: &deps.SessionID})
	if err != nil {
		return err
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "You: %s\nBot:\n%s\n", e.Query, e.Answer)
	}
	fmt.Fprint(deps.Stdout, b.String())
	return nil
}
