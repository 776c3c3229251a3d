package main_test

import (
	"context"
	"testing"

	main "github.com/fwojciec/docask/cmd/docask"
	"github.com/fwojciec/docask/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists sources in order", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil)

		require.NoError(t, (&main.SourcesCmd{}).Run(deps))

		assert.Equal(t, "Segment  https://segment.com/docs\n"+
			"mParticle  https://docs.mparticle.com\n"+
			"Lytics  https://docs.lytics.com\n"+
			"Zeotap  https://docs.zeotap.com/home/en-us\n", stdout.String())
	})

	t.Run("checks every root", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil)
		deps.Prober = &mock.Prober{
			AccessibleFn: func(_ context.Context, url string) bool {
				return url != "https://docs.lytics.com"
			},
		}

		require.NoError(t, (&main.SourcesCmd{Check: true}).Run(deps))

		assert.Equal(t, "Segment  https://segment.com/docs  ok\n"+
			"mParticle  https://docs.mparticle.com  ok\n"+
			"Lytics  https://docs.lytics.com  unreachable\n"+
			"Zeotap  https://docs.zeotap.com/home/en-us  ok\n", stdout.String())
	})
}
