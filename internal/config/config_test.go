package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configFixture = `state_file: /tmp/tpupod-test/state.json
projects:
  llama:
    tpu_project: my-gcp-project
    tpu_zone: europe-west4-a
    tpu_name: llama-pod
    user: charlie
    key_path: ~/.ssh/general_key
    working_dir: ~/llama_train
    copy_dirs:
      - local: ~/llama_train/
        remote: ~/llama_train
    copy_excludes:
      - .git
      - __pycache__
    kill_commands:
      - pkill -9 python
    setup_script: ~/scripts/setup.sh
  strict:
    tpu_project: other-project
    tpu_zone: us-central1-a
    tpu_name: strict-pod
    strict_host_key_checking: true
    known_hosts_file: ""
    working_dir: ~/work
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadProjects(t *testing.T) {
	cfg, err := Load(writeConfig(t, configFixture))
	require.NoError(t, err)
	require.Len(t, cfg.Projects, 2)

	home, err := homedir.Dir()
	require.NoError(t, err)

	llama := cfg.Projects["llama"]
	assert.Equal(t, "my-gcp-project", llama.TPUProject)
	assert.Equal(t, "europe-west4-a", llama.TPUZone)
	assert.Equal(t, "llama-pod", llama.TPUName)
	assert.Equal(t, "charlie", llama.User)
	assert.Equal(t, filepath.Join(home, ".ssh", "general_key"), llama.KeyPath)
	assert.Equal(t, filepath.Join(home, "scripts", "setup.sh"), llama.SetupScript)
	assert.False(t, llama.StrictHostKeyChecking)

	require.Len(t, llama.CopyDirs, 1)
	assert.Equal(t, filepath.Join(home, "llama_train")+"/", llama.CopyDirs[0].Local)
	assert.Equal(t, "~/llama_train", llama.CopyDirs[0].Remote)

	assert.Equal(t, []string{".git", "__pycache__"}, llama.CopyExcludes)
	assert.Equal(t, []string{"pkill -9 python"}, llama.KillCommands)

	assert.Equal(t, "/tmp/tpupod-test/state.json", cfg.StateFile)
}

func TestKnownHostsDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, configFixture))
	require.NoError(t, err)

	// Not set: trust-on-first-use default.
	llama := cfg.Projects["llama"]
	assert.Equal(t, "/dev/null", llama.EffectiveKnownHosts())

	// Explicit empty string disables the override.
	strict := cfg.Projects["strict"]
	assert.True(t, strict.StrictHostKeyChecking)
	assert.Equal(t, "", strict.EffectiveKnownHosts())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Projects)
	assert.NotEmpty(t, cfg.StateFile)
}

func TestConfigDir(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".tpupod"), dir)
}
