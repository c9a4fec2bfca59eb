package tpu

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/shell"
)

// fakeRunner records every argv it sees and answers from a caller-supplied
// function. Safe for concurrent use; fan-out calls Run from many
// goroutines.
type fakeRunner struct {
	mu       sync.Mutex
	commands [][]string
	respond  func(argv []string) shell.Result
}

func (f *fakeRunner) Run(ctx context.Context, argv []string, opts shell.Options) shell.Result {
	f.mu.Lock()
	f.commands = append(f.commands, argv)
	f.mu.Unlock()
	if f.respond != nil {
		return f.respond(argv)
	}
	return shell.Result{Command: argv, ExitCode: 0}
}

func (f *fakeRunner) recorded() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.commands))
	copy(out, f.commands)
	return out
}

// count returns how many recorded commands start with binary.
func (f *fakeRunner) count(binary string) int {
	n := 0
	for _, argv := range f.recorded() {
		if len(argv) > 0 && argv[0] == binary {
			n++
		}
	}
	return n
}

const describeFixture = `acceleratorType: v3-32
networkEndpoints:
- accessConfig:
    externalIp: 1.2.3.4
  ipAddress: 10.164.0.2
- accessConfig:
    externalIp: 1.2.3.5
  ipAddress: 10.164.0.3
state: READY
`

func describeResponder(out string) func(argv []string) shell.Result {
	return func(argv []string) shell.Result {
		if argv[0] == "gcloud" {
			return shell.Result{Command: argv, Output: out, ExitCode: 0}
		}
		return shell.Result{Command: argv, ExitCode: 0}
	}
}

func testIdentity() Identity {
	return Identity{Project: "my-project", Zone: "europe-west4-a"}
}

func TestClientIdentity(t *testing.T) {
	client := NewClient(testIdentity(), Credentials{}, &fakeRunner{})
	assert.Equal(t, testIdentity(), client.Identity())
}

func TestGcloudArgs(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(testIdentity(), Credentials{}, runner)

	_, err := client.List(context.Background(), shell.Options{})
	require.NoError(t, err)

	cmds := runner.recorded()
	require.Len(t, cmds, 1)
	assert.Equal(t, []string{
		"gcloud", "alpha", "compute", "tpus", "tpu-vm", "list",
		"--zone", "europe-west4-a", "--project", "my-project",
	}, cmds[0])
}

func TestCreateDefaults(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(testIdentity(), Credentials{}, runner)

	_, err := client.Create(context.Background(), "podA", "v3-32", "", shell.Options{})
	require.NoError(t, err)

	argv := runner.recorded()[0]
	assert.Contains(t, argv, "--accelerator-type=v3-32")
	assert.Contains(t, argv, "--version="+DefaultSoftwareVersion)
}

func TestDeleteIsQuiet(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(testIdentity(), Credentials{}, runner)

	_, err := client.Delete(context.Background(), "podA", shell.Options{})
	require.NoError(t, err)
	assert.Contains(t, runner.recorded()[0], "--quiet")
}

func TestSimulateMaintenanceAllWorkers(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(testIdentity(), Credentials{}, runner)

	_, err := client.SimulateMaintenance(context.Background(), "podA", shell.Options{})
	require.NoError(t, err)
	assert.Contains(t, runner.recorded()[0], "--workers=all")
}

func TestRunErrorIncludesOutput(t *testing.T) {
	runner := &fakeRunner{respond: func(argv []string) shell.Result {
		return shell.Result{
			Command:  argv,
			Output:   "ERROR: (gcloud) not found",
			ExitCode: 1,
			Err:      assert.AnError,
		}
	}}
	client := NewClient(testIdentity(), Credentials{}, runner)

	_, err := client.Describe(context.Background(), "missing", shell.Options{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not found"))
}
