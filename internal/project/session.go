package project

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/shell"
)

// DefaultSession is the tmux session name used when the caller does not
// pick one. Override it to run several jobs per host side by side.
const DefaultSession = "launch"

// defaultSyncDelay spaces out the sync attempts of CopyLaunch, giving the
// remote filesystem a moment to settle between retries.
const defaultSyncDelay = time.Second

func (p *Project) copyLaunchDelay() time.Duration {
	if p.SyncDelay > 0 {
		return p.SyncDelay
	}
	return defaultSyncDelay
}

// LaunchReport carries the outcome of CopyLaunch: the launch itself plus
// every sync attempt, kept for diagnostics.
type LaunchReport struct {
	Launch       map[string]shell.Result
	SyncAttempts [][]map[string]shell.Result
}

// Launch starts a detached named tmux session on every worker and types
// the command into it, so the job keeps running after this process and
// its SSH connections are gone. The command is implicitly prefixed with a
// change into the project working directory.
//
// Launching over a session name that already exists is not handled
// specially: tmux rejects it and the error lands in that host's result
// slot. Stop first (or use CopyLaunch, which does) to relaunch.
func (p *Project) Launch(ctx context.Context, command, session string, opts shell.Options) (map[string]shell.Result, error) {
	if session == "" {
		session = DefaultSession
	}
	inner := "cd " + p.WorkingDir + "\n" + command
	// The payload is quoted as one token so tmux receives it as literal
	// keystrokes; C-m then executes it inside the session.
	remote := "tmux new-session -d -s " + session + "\n" +
		"tmux send-keys -t " + session + " " + shellescape.Quote(inner) + " C-m"
	return p.SSH(ctx, remote, opts)
}

// CopyLaunch stops any session with the same name, syncs the copy dirs a
// fixed number of times (retries guard against transient rsync failures
// before first use), then launches the command.
func (p *Project) CopyLaunch(ctx context.Context, command, session string, retries int, opts shell.Options) (*LaunchReport, error) {
	if retries < 1 {
		retries = 1
	}
	// Best effort: a missing session is fine.
	_, _ = p.Stop(ctx, session, nil, opts)

	report := &LaunchReport{}
	for i := 0; i < retries; i++ {
		res, _ := p.Copy(ctx, nil, opts)
		report.SyncAttempts = append(report.SyncAttempts, res)
		time.Sleep(p.copyLaunchDelay())
	}
	launch, err := p.Launch(ctx, command, session, opts)
	report.Launch = launch
	return report, err
}

// Check captures the visible pane contents of the session on every worker.
// Unless silent, the captures are printed host by host with banners; the
// return value is the same either way.
func (p *Project) Check(ctx context.Context, session string, silent bool, opts shell.Options) (map[string]shell.Result, error) {
	if session == "" {
		session = DefaultSession
	}
	results, err := p.SSH(ctx, "tmux capture-pane -pt "+session, opts)
	if !silent {
		PrintResults(os.Stdout, results)
	}
	return results, err
}

// Stop kills the session and then runs the project's auxiliary kill
// commands on every worker. The commands are joined with ";" so a missing
// session never blocks the rest; teardown is best effort by design.
func (p *Project) Stop(ctx context.Context, session string, kills []string, opts shell.Options) (map[string]shell.Result, error) {
	if session == "" {
		session = DefaultSession
	}
	if kills == nil {
		kills = p.KillCommands
	}
	commands := append([]string{"tmux kill-session -t " + session}, kills...)
	return p.SSH(ctx, strings.Join(commands, "; "), opts)
}

// PrintResults writes per-host outputs with delimiter banners, hosts in
// sorted order for stable display.
func PrintResults(w io.Writer, results map[string]shell.Result) {
	hosts := make([]string, 0, len(results))
	for host := range results {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	banner := color.New(color.FgCyan, color.Bold)
	for _, host := range hosts {
		_, _ = banner.Fprintf(w, "============== Checking host: %s ==============\n", host)
		fmt.Fprintln(w, results[host].Output)
		_, _ = banner.Fprintf(w, "============== End of host: %s ==============\n", host)
	}
}
