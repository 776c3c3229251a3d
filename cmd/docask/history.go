package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/docask"
	"github.com/fwojciec/docask/fs"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := docask.HistoryFilter{NewestFirst: true, Limit: c.Limit}
	if c.Session != "" {
		filter.SessionID = &c.Session
	}

	entries, err := deps.History.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docask.ErrorMessage(err))
		return err
	}

	if c.Export != "" {
		slices.Reverse(entries)
		x := fs.NewExporter(filepath.Dir(c.Export), filepath.Base(c.Export))
		if err := x.Export(deps.Ctx, entries); err != nil {
			return fmt.Errorf("exporting history: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "Exported %d entries to %s\n", len(entries), x.Dir())
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No history found. Use --persist-history to save queries.")
		return nil
	}

	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  [%s]\n%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Query,
			strings.Join(e.Sources, ", "),
			e.Answer,
		)
	}
	return nil
}
