package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docask"
	main "github.com/fwojciec/docask/cmd/docask"
	"github.com/fwojciec/docask/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter returns requests in order and then reports the user quit.
func scriptedPrompter(requests ...*docask.ChatRequest) *mock.Prompter {
	return &mock.Prompter{
		PromptFn: func(_ context.Context, _ []string) (*docask.ChatRequest, bool, error) {
			if len(requests) == 0 {
				return nil, false, nil
			}
			req := requests[0]
			requests = requests[1:]
			return req, true, nil
		},
	}
}

func TestChatCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the transcript after each answer", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(_ context.Context, source, query string) (*docask.Answer, error) {
				return foundAnswer(source, "Answer to "+query+"."), nil
			},
			CompareFn: func(_ context.Context, query, first, second string) (*docask.Comparison, error) {
				return &docask.Comparison{Query: query, First: foundAnswer(first, "A."), Second: foundAnswer(second, "B.")}, nil
			},
		}
		deps, stdout, _ := newDeps(asker)
		deps.Prompter = scriptedPrompter(
			&docask.ChatRequest{Query: "sources", Source: "Segment"},
			&docask.ChatRequest{Query: "audiences", Source: "Lytics", CompareWith: "Zeotap"},
		)

		require.NoError(t, (&main.ChatCmd{}).Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "You: sources\nBot:\n1. Answer to sources.\n")
		assert.Contains(t, out, "You: audiences\nBot:\n### Comparison: Lytics vs. Zeotap\n")
		assert.Contains(t, out, "Bye.")
	})

	t.Run("clears the session on exit", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(_ context.Context, source, _ string) (*docask.Answer, error) {
				return foundAnswer(source, "Yes."), nil
			},
		}
		deps, _, _ := newDeps(asker)
		deps.Prompter = scriptedPrompter(&docask.ChatRequest{Query: "q", Source: "Segment"})

		require.NoError(t, (&main.ChatCmd{}).Run(deps))

		entries, err := deps.Session.FindEntries(context.Background(), docask.HistoryFilter{})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("reports a failed request and keeps going", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(_ context.Context, source, _ string) (*docask.Answer, error) {
				if source == "Tealium" {
					return nil, docask.Errorf(docask.ENOTFOUND, "unknown source %q", source)
				}
				return foundAnswer(source, "Found it."), nil
			},
		}
		deps, stdout, stderr := newDeps(asker)
		deps.Prompter = scriptedPrompter(
			&docask.ChatRequest{Query: "tags", Source: "Tealium"},
			&docask.ChatRequest{Query: "tags", Source: "Segment"},
		)

		require.NoError(t, (&main.ChatCmd{}).Run(deps))

		assert.Contains(t, stderr.String(), `error: unknown source "Tealium"`)
		assert.Contains(t, stdout.String(), "1. Found it.")
	})

	t.Run("returns prompt errors", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(&mock.Asker{})
		deps.Prompter = &mock.Prompter{
			PromptFn: func(context.Context, []string) (*docask.ChatRequest, bool, error) {
				return nil, false, context.Canceled
			},
		}

		err := (&main.ChatCmd{}).Run(deps)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
