package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.sh")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadScriptStripsComments(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		prefix   string
		expected string
	}{
		{
			name:     "hash comments dropped",
			script:   "# install deps\npip install -e .\n# run\npython train.py\n",
			prefix:   "#",
			expected: "pip install -e .\npython train.py",
		},
		{
			name:     "indented comments dropped",
			script:   "python train.py\n    # trailing note\n",
			prefix:   "#",
			expected: "python train.py",
		},
		{
			name:     "empty prefix keeps everything",
			script:   "# kept\npython train.py\n",
			prefix:   "",
			expected: "# kept\npython train.py\n",
		},
		{
			name:     "custom prefix",
			script:   "// note\npython train.py\n",
			prefix:   "//",
			expected: "python train.py",
		},
		{
			name:     "mid-line hash survives",
			script:   "echo 'step #1'\n",
			prefix:   "#",
			expected: "echo 'step #1'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := readScript(writeScript(t, tt.script), tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, script)
		})
	}
}

func TestReadScriptMissingFile(t *testing.T) {
	_, err := readScript(filepath.Join(t.TempDir(), "nope.sh"), "#")
	require.Error(t, err)
}
