package shell

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelPositionalResults(t *testing.T) {
	runner := NewLocalRunner()

	n := 8
	commands := make([][]string, n)
	for i := range commands {
		commands[i] = []string{"echo", fmt.Sprintf("slot-%d", i)}
	}

	results, err := Parallel(context.Background(), runner, commands, Options{})
	require.NoError(t, err)
	require.Len(t, results, n)

	// Slot i always belongs to command i, whatever order they finished in.
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("slot-%d\n", i), res.Output)
	}
}

func TestParallelFailureIsolated(t *testing.T) {
	runner := NewLocalRunner()

	commands := [][]string{
		{"echo", "first"},
		{"sh", "-c", "exit 7"},
		{"echo", "third"},
	}

	results, err := Parallel(context.Background(), runner, commands, Options{})
	require.Error(t, err)
	require.Len(t, results, 3)

	// The failing slot carries its own error; siblings are untouched.
	assert.True(t, results[0].Ok())
	assert.Equal(t, "first\n", results[0].Output)
	assert.False(t, results[1].Ok())
	assert.Equal(t, 7, results[1].ExitCode)
	assert.True(t, results[2].Ok())
	assert.Equal(t, "third\n", results[2].Output)
}

func TestParallelEmpty(t *testing.T) {
	results, err := Parallel(context.Background(), NewLocalRunner(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}
