// Package project binds a TPU client to one experiment: the pod it runs
// on, the directories shipped to it, and the tmux session that carries
// the long-running job.
package project

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/shell"
	"github.com/Sea-Snell/tpu-pod-launcher/internal/tpu"
)

// CopyDir is one local-to-remote sync pair.
type CopyDir struct {
	Local  string
	Remote string
}

// Project is the immutable per-experiment configuration. One instance per
// logical project; it lives for the controller process, not the remote
// session.
type Project struct {
	Client       *tpu.Client
	TPUName      string
	WorkingDir   string
	CopyDirs     []CopyDir
	CopyExcludes []string
	KillCommands []string

	// SyncDelay overrides the pause between CopyLaunch sync attempts.
	// Zero means the default of one second.
	SyncDelay time.Duration
}

// SSH runs a command on every pod worker, after changing into the
// project's working directory.
func (p *Project) SSH(ctx context.Context, command string, opts shell.Options) (map[string]shell.Result, error) {
	return p.Client.SSH(ctx, p.TPUName, "cd "+p.WorkingDir+"\n"+command, opts)
}

// SCP copies a local path to every pod worker.
func (p *Project) SCP(ctx context.Context, localPath, remotePath string, recursive bool, opts shell.Options) (map[string]shell.Result, error) {
	return p.Client.SCP(ctx, p.TPUName, localPath, remotePath, recursive, opts)
}

// Copy syncs every configured copy dir to the pod. A nil excludes slice
// means the project's configured excludes. One result map per copy dir,
// in configuration order; failures are aggregated but never truncate the
// returned results.
func (p *Project) Copy(ctx context.Context, excludes []string, opts shell.Options) ([]map[string]shell.Result, error) {
	if excludes == nil {
		excludes = p.CopyExcludes
	}
	var merr *multierror.Error
	results := make([]map[string]shell.Result, 0, len(p.CopyDirs))
	for _, dir := range p.CopyDirs {
		res, err := p.Client.Sync(ctx, p.TPUName, dir.Local, dir.Remote, excludes, opts)
		results = append(results, res)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return results, merr.ErrorOrNil()
}
