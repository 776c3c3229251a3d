package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/docask"
	main "github.com/fwojciec/docask/cmd/docask"
	"github.com/fwojciec/docask/memory"
	"github.com/fwojciec/docask/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(asker docask.Asker) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Sources:   docask.DefaultSources(),
		Asker:     asker,
		Session:   memory.NewHistoryService(0),
		SessionID: "session-1",
		Style:     docask.ListNumbered,
	}, stdout, stderr
}

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints answer and records it in the session", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(_ context.Context, source, query string) (*docask.Answer, error) {
				if source == "mParticle" && query == "how to create a user profile" {
					return foundAnswer("mParticle", "Profiles are created on first event.", "Use the Profile API."), nil
				}
				return nil, docask.Errorf(docask.EINTERNAL, "unexpected call")
			},
		}
		deps, stdout, _ := newDeps(asker)

		cmd := &main.AskCmd{Source: "mParticle", Query: []string{"how", "to", "create", "a", "user", "profile"}}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "1. Profiles are created on first event.\n2. Use the Profile API.\n", stdout.String())

		entries, err := deps.Session.FindEntries(context.Background(), docask.HistoryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "session-1", entries[0].SessionID)
		assert.Equal(t, []string{"mParticle"}, entries[0].Sources)
		assert.Equal(t, "how to create a user profile", entries[0].Query)
	})

	t.Run("prints status message when nothing was found", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(_ context.Context, source, _ string) (*docask.Answer, error) {
				return &docask.Answer{
					Source:  source,
					Status:  docask.StatusUnreachable,
					Message: docask.CannotAccessMessage("https://docs.lytics.com"),
				}, nil
			},
		}
		deps, stdout, _ := newDeps(asker)

		cmd := &main.AskCmd{Source: "Lytics", Query: []string{"segments"}}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "https://docs.lytics.com")
	})

	t.Run("lists available sources for an unknown source", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(_ context.Context, source, _ string) (*docask.Answer, error) {
				return nil, docask.Errorf(docask.ENOTFOUND, "unknown source %q", source)
			},
		}
		deps, stdout, stderr := newDeps(asker)

		cmd := &main.AskCmd{Source: "Tealium", Query: []string{"tags"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docask.ENOTFOUND, docask.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), `unknown source "Tealium"`)
		assert.Contains(t, stderr.String(), "Available: Segment, mParticle, Lytics, Zeotap")
	})

	t.Run("rejects a blank query", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(&mock.Asker{})

		cmd := &main.AskCmd{Source: "Segment", Query: []string{" "}}
		err := cmd.Run(deps)

		assert.Equal(t, docask.EINVALID, docask.ErrorCode(err))
	})

	t.Run("persists the entry when history is enabled", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AskFn: func(_ context.Context, source, _ string) (*docask.Answer, error) {
				return foundAnswer(source, "Open Destinations."), nil
			},
		}
		deps, _, _ := newDeps(asker)
		var persisted []*docask.HistoryEntry
		deps.History = &mock.HistoryService{
			CreateEntryFn: func(_ context.Context, entry *docask.HistoryEntry) error {
				persisted = append(persisted, entry)
				return nil
			},
		}

		cmd := &main.AskCmd{Source: "Segment", Query: []string{"add", "a", "destination"}}
		require.NoError(t, cmd.Run(deps))

		require.Len(t, persisted, 1)
		assert.Empty(t, persisted[0].ID)
		assert.Equal(t, "1. Open Destinations.", persisted[0].Answer)
	})
}

func TestCompareCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints both answers under their headings", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			CompareFn: func(_ context.Context, query, first, second string) (*docask.Comparison, error) {
				return &docask.Comparison{
					Query:  query,
					First:  foundAnswer(first, "Segment audiences live in Engage."),
					Second: foundAnswer(second, "Zeotap audiences live in Audience Builder."),
				}, nil
			},
		}
		deps, stdout, _ := newDeps(asker)

		cmd := &main.CompareCmd{First: "Segment", Second: "Zeotap", Query: []string{"audiences"}}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "### Comparison: Segment vs. Zeotap\n"+
			"**Segment:**\n"+
			"1. Segment audiences live in Engage.\n"+
			"\n"+
			"**Zeotap:**\n"+
			"1. Zeotap audiences live in Audience Builder.\n", stdout.String())

		entries, err := deps.Session.FindEntries(context.Background(), docask.HistoryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, []string{"Segment", "Zeotap"}, entries[0].Sources)
	})

	t.Run("rejects comparing a source with itself", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(&mock.Asker{})

		cmd := &main.CompareCmd{First: "Segment", Second: "segment", Query: []string{"audiences"}}
		err := cmd.Run(deps)

		assert.Equal(t, docask.EINVALID, docask.ErrorCode(err))
	})
}
