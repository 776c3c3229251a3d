package docask_test

import (
	"testing"

	"github.com/fwojciec/docask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     docask.ChatRequest
		wantErr bool
	}{
		{"single source", docask.ChatRequest{Query: "q", Source: "Segment"}, false},
		{"comparison", docask.ChatRequest{Query: "q", Source: "Segment", CompareWith: "Lytics"}, false},
		{"missing query", docask.ChatRequest{Source: "Segment"}, true},
		{"missing source", docask.ChatRequest{Query: "q"}, true},
		{"compare with itself", docask.ChatRequest{Query: "q", Source: "Segment", CompareWith: "Segment"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, docask.EINVALID, docask.ErrorCode(err))
				return
			}
			require.NoError(t, err)
		})
	}
}
