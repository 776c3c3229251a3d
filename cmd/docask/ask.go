package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docask"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	query := strings.TrimSpace(strings.Join(c.Query, " "))
	if query == "" {
		return docask.Errorf(docask.EINVALID, "query required")
	}

	answer, err := deps.Asker.Ask(deps.Ctx, c.Source, query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docask.ErrorMessage(err))
		if docask.ErrorCode(err) == docask.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "Available: %s\n", strings.Join(docask.SourceNames(deps.Sources), ", "))
		}
		return err
	}

	text := docask.FormatAnswer(answer, deps.Style)
	fmt.Fprintln(deps.Stdout, text)
	return record(deps, query, []string{answer.Source}, text)
}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	query := strings.TrimSpace(strings.Join(c.Query, " "))
	if query == "" {
		return docask.Errorf(docask.EINVALID, "query required")
	}
	if strings.EqualFold(c.First, c.Second) {
		return docask.Errorf(docask.EINVALID, "cannot compare %s with itself", c.First)
	}

	cmp, err := deps.Asker.Compare(deps.Ctx, query, c.First, c.Second)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docask.ErrorMessage(err))
		return err
	}

	text := docask.FormatComparison(cmp, deps.Style)
	fmt.Fprintln(deps.Stdout, text)
	return record(deps, query, []string{cmp.First.Source, cmp.Second.Source}, text)
}

// record appends a query and its rendered answer to the session history and,
// when enabled, the persistent history.
func record(deps *Dependencies, query string, sources []string, answer string) error {
	entry := &docask.HistoryEntry{
		SessionID: deps.SessionID,
		Query:     query,
		Sources:   sources,
		Answer:    answer,
	}
	if deps.Session != nil {
		if err := deps.Session.CreateEntry(deps.Ctx, entry); err != nil {
			return fmt.Errorf("recording session history: %w", err)
		}
	}
	if deps.History != nil {
		persisted := *entry
		persisted.ID = ""
		if err := deps.History.CreateEntry(deps.Ctx, &persisted); err != nil {
			return fmt.Errorf("saving history: %w", err)
		}
	}
	return nil
}
