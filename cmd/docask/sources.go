package main

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	if !c.Check {
		for _, s := range deps.Sources {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", s.Name, s.RootURL)
		}
		return nil
	}

	accessible := make([]bool, len(deps.Sources))
	g, ctx := errgroup.WithContext(deps.Ctx)
	for i, s := range deps.Sources {
		g.Go(func() error {
			accessible[i] = deps.Prober.Accessible(ctx, s.RootURL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, s := range deps.Sources {
		status := "ok"
		if !accessible[i] {
			status = "unreachable"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.Name, s.RootURL, status)
	}
	return deps.Ctx.Err()
}
