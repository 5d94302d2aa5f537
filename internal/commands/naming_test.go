package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Cube Speed", "cube-speed"},
		{"SetTargetSpeed", "set-target-speed"},
		{"cube-speed", "cube-speed"},
		{"list_commands", "list-commands"},
		{"  padded  ", "padded"},
		{"multiple   spaces here", "multiple-spaces-here"},
		{"Time Scale!", "time-scale"},
		{"snake_Case", "snake-case"},
		{"a--b", "a-b"},
		{"-edge-", "edge"},
		{"café mode", "caf-mode"},
		{"spawn(Object)", "spawn-object"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeName_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "!?", "éè"} {
		_, err := NormalizeName(input)
		assert.Error(t, err, "input %q", input)
	}
}
