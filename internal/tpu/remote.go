package tpu

import (
	"context"
	"strings"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/shell"
)

// quiet strips the verbose echo for the host-resolution leg of a
// multi-host operation; only the per-host commands themselves are echoed.
func quiet(opts shell.Options) shell.Options {
	opts.Verbose = false
	return opts
}

// sshFlags returns the transport flags shared by ssh, scp and the rsync
// transport command, derived from the client credentials.
func (c *Client) sshFlags() []string {
	var flags []string
	if !c.creds.StrictHostKeyChecking {
		flags = append(flags, "-o", "StrictHostKeyChecking=no")
	}
	if c.creds.KnownHostsFile != "" {
		flags = append(flags, "-o", "UserKnownHostsFile="+c.creds.KnownHostsFile)
	}
	if c.creds.KeyPath != "" {
		flags = append(flags, "-i", c.creds.KeyPath)
	}
	return flags
}

// fanOut runs one command per host in parallel and keys the results by
// host. Exactly one entry per host, even for hosts whose command failed;
// the returned error aggregates those failures.
func (c *Client) fanOut(ctx context.Context, hosts []string, commands [][]string, opts shell.Options) (map[string]shell.Result, error) {
	results, err := shell.Parallel(ctx, c.runner, commands, opts)
	byHost := make(map[string]shell.Result, len(hosts))
	for i, host := range hosts {
		byHost[host] = results[i]
	}
	return byHost, err
}

// SSH runs a shell command on every host of the pod. The command is passed
// to ssh as a single argument-vector element, so embedded quotes, dollar
// signs and newlines reach the remote shell untouched by any local shell.
func (c *Client) SSH(ctx context.Context, name, command string, opts shell.Options) (map[string]shell.Result, error) {
	hosts, err := c.Hosts(ctx, name, quiet(opts))
	if err != nil {
		return nil, err
	}
	commands := make([][]string, len(hosts))
	for i, host := range hosts {
		argv := append([]string{"ssh"}, c.sshFlags()...)
		commands[i] = append(argv, host, command)
	}
	return c.fanOut(ctx, hosts, commands, opts)
}

// SCP copies a local file or directory to the same remote path on every
// host of the pod.
func (c *Client) SCP(ctx context.Context, name, localPath, remotePath string, recursive bool, opts shell.Options) (map[string]shell.Result, error) {
	hosts, err := c.Hosts(ctx, name, quiet(opts))
	if err != nil {
		return nil, err
	}
	commands := make([][]string, len(hosts))
	for i, host := range hosts {
		argv := append([]string{"scp"}, c.sshFlags()...)
		if recursive {
			argv = append(argv, "-r")
		}
		commands[i] = append(argv, localPath, host+":"+remotePath)
	}
	return c.fanOut(ctx, hosts, commands, opts)
}

// Sync mirrors a local directory to every host with rsync, skipping the
// exclude patterns. Delta transfer keeps repeated invocations cheap.
func (c *Client) Sync(ctx context.Context, name, localPath, remotePath string, excludes []string, opts shell.Options) (map[string]shell.Result, error) {
	hosts, err := c.Hosts(ctx, name, quiet(opts))
	if err != nil {
		return nil, err
	}
	// rsync splits its -e value itself, so the transport command is one
	// argv element. Plain "ssh" with no flags is omitted entirely.
	transport := strings.Join(append([]string{"ssh"}, c.sshFlags()...), " ")
	commands := make([][]string, len(hosts))
	for i, host := range hosts {
		argv := []string{"rsync", "-avPI"}
		if transport != "ssh" {
			argv = append(argv, "-e", transport)
		}
		for _, ex := range excludes {
			argv = append(argv, "--exclude="+ex)
		}
		commands[i] = append(argv, localPath, host+":"+remotePath)
	}
	return c.fanOut(ctx, hosts, commands, opts)
}
