package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of a single command invocation. Output holds
// combined stdout and stderr. ExitCode is -1 when the process could not
// be started at all.
type Result struct {
	Command  []string `json:"command"`
	Output   string   `json:"output"`
	ExitCode int      `json:"exit_code"`
	Err      error    `json:"-"`
}

// Ok reports whether the command ran and exited zero.
func (r Result) Ok() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Options control how commands are run.
type Options struct {
	Verbose bool   // echo each command and its output
	Dir     string // working directory override, empty for inherited
}

// Runner runs one command given as an argument vector. Implementations
// must be safe for concurrent use; fan-out calls Run from many goroutines.
type Runner interface {
	Run(ctx context.Context, argv []string, opts Options) Result
}

// LocalRunner executes commands as local subprocesses.
type LocalRunner struct{}

func NewLocalRunner() *LocalRunner {
	return &LocalRunner{}
}

func (LocalRunner) Run(ctx context.Context, argv []string, opts Options) Result {
	res := Result{Command: argv, ExitCode: -1}
	if len(argv) == 0 {
		res.Err = fmt.Errorf("empty command")
		return res
	}

	log := logrus.WithField("run", uuid.NewString()[:8])
	if opts.Verbose {
		log.Infof("+ %s", strings.Join(argv, " "))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	res.Output = buf.String()
	switch {
	case err == nil:
		res.ExitCode = 0
	default:
		if ee, ok := err.(*exec.ExitError); ok {
			res.ExitCode = ee.ExitCode()
			res.Err = fmt.Errorf("%s exited with code %d", argv[0], res.ExitCode)
		} else {
			res.Err = fmt.Errorf("failed to run %s: %w", argv[0], err)
		}
	}

	if opts.Verbose && res.Output != "" {
		log.Info(res.Output)
	}
	return res
}
