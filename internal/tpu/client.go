// Package tpu wraps the gcloud TPU VM surface and the per-host SSH/rsync
// transport used to reach every worker of a pod.
package tpu

import (
	"context"
	"fmt"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/shell"
)

// DefaultSoftwareVersion is the TPU VM image used when none is given.
const DefaultSoftwareVersion = "tpu-vm-base"

// Identity locates TPU resources within a GCP project and zone.
// Immutable once constructed.
type Identity struct {
	Project string
	Zone    string
}

// Credentials configure how pod workers are reached over SSH. Strict
// host-key checking is off by default and known hosts go to /dev/null:
// pod IPs rotate across recreations, so trust-on-first-use is the only
// workable default for unattended runs. Opt in to tighten.
type Credentials struct {
	User                  string
	KeyPath               string
	StrictHostKeyChecking bool
	KnownHostsFile        string // empty omits the override entirely
}

// DefaultCredentials returns the automation-friendly credential set.
func DefaultCredentials(user, keyPath string) Credentials {
	return Credentials{
		User:           user,
		KeyPath:        keyPath,
		KnownHostsFile: "/dev/null",
	}
}

// Client drives gcloud and the SSH transport for one project/zone pair.
type Client struct {
	identity Identity
	creds    Credentials
	runner   shell.Runner
}

// NewClient builds a client. A nil runner means local subprocess execution.
func NewClient(identity Identity, creds Credentials, runner shell.Runner) *Client {
	if runner == nil {
		runner = shell.NewLocalRunner()
	}
	return &Client{identity: identity, creds: creds, runner: runner}
}

func (c *Client) Identity() Identity {
	return c.identity
}

// gcloudArgs assembles a gcloud tpu-vm invocation with the zone and
// project flags appended.
func (c *Client) gcloudArgs(args ...string) []string {
	argv := []string{"gcloud", "alpha", "compute", "tpus", "tpu-vm"}
	argv = append(argv, args...)
	return append(argv, "--zone", c.identity.Zone, "--project", c.identity.Project)
}

func (c *Client) run(ctx context.Context, argv []string, opts shell.Options) (string, error) {
	res := c.runner.Run(ctx, argv, opts)
	if res.Err != nil {
		return res.Output, fmt.Errorf("%s: %w\n%s", argv[0], res.Err, res.Output)
	}
	return res.Output, nil
}

// List returns the raw listing of TPU VMs in the zone.
func (c *Client) List(ctx context.Context, opts shell.Options) (string, error) {
	return c.run(ctx, c.gcloudArgs("list"), opts)
}

// Describe returns the raw description of a TPU VM.
func (c *Client) Describe(ctx context.Context, name string, opts shell.Options) (string, error) {
	return c.run(ctx, c.gcloudArgs("describe", name), opts)
}

// Create provisions a TPU VM. acceleratorType is e.g. "v3-32"; an empty
// softwareVersion falls back to DefaultSoftwareVersion.
func (c *Client) Create(ctx context.Context, name, acceleratorType, softwareVersion string, opts shell.Options) (string, error) {
	if softwareVersion == "" {
		softwareVersion = DefaultSoftwareVersion
	}
	argv := c.gcloudArgs("create", name,
		"--accelerator-type="+acceleratorType,
		"--version="+softwareVersion)
	return c.run(ctx, argv, opts)
}

// Delete tears down a TPU VM without prompting.
func (c *Client) Delete(ctx context.Context, name string, opts shell.Options) (string, error) {
	return c.run(ctx, c.gcloudArgs("delete", name, "--quiet"), opts)
}

// SimulateMaintenance triggers a maintenance event on all workers.
func (c *Client) SimulateMaintenance(ctx context.Context, name string, opts shell.Options) (string, error) {
	return c.run(ctx, c.gcloudArgs("simulate-maintenance-event", name, "--workers=all"), opts)
}
