package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKeys  int
		wantDepth int
	}{
		{
			name:      "nested object",
			input:     `{"a":{"b":1,"c":2}}`,
			wantKeys:  3,
			wantDepth: 2,
		},
		{
			name:      "flat object",
			input:     `{"a": 1, "b": 2}`,
			wantKeys:  2,
			wantDepth: 1,
		},
		{
			name:      "array of objects",
			input:     `[{"a": 1}, {"b": 2}]`,
			wantKeys:  2,
			wantDepth: 2,
		},
		{
			name:      "scalar root",
			input:     `42`,
			wantKeys:  0,
			wantDepth: 0,
		},
		{
			name:      "empty input",
			input:     "",
			wantKeys:  0,
			wantDepth: 0,
		},
		{
			name:      "invalid input",
			input:     `{"a": }`,
			wantKeys:  0,
			wantDepth: 0,
		},
		{
			name:      "deep nesting",
			input:     `{"a": [[{"b": null}]]}`,
			wantKeys:  2,
			wantDepth: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Compute(tt.input)
			assert.Equal(t, tt.wantKeys, st.Keys, "keys")
			assert.Equal(t, tt.wantDepth, st.Depth, "depth")
			assert.NotEmpty(t, st.Size)
		})
	}
}

func TestCompute_SizeFromRawInput(t *testing.T) {
	// size reflects the raw byte length even when the document is invalid
	st := Compute(strings.Repeat("x", 2048))
	assert.Equal(t, "2.0 KB", st.Size)
	assert.Zero(t, st.Keys)
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1048576, "5.0 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanSize(tt.n))
	}
}
