package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/project"
)

var stopSession string

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Kill the launch session on every pod worker",
	Long: `Kill the tmux session on every worker, then run the project's configured
kill commands (e.g. pkill -9 python). Teardown is best effort: a session
that is already gone does not stop the remaining kill commands.`,
	Args: cobra.NoArgs,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
	stopCmd.Flags().StringVar(&stopSession, "session", project.DefaultSession, "tmux session name to kill")
}

func runStop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	proj, _, name, err := currentProject(cfg)
	if err != nil {
		return err
	}
	fmt.Println("Using project:", name)

	return stopProject(cmd.Context(), proj, stopSession)
}

// stopProject kills the session on every worker. A nil result map means
// host resolution failed and nothing was attempted — that is fatal. Once
// the kill commands have run, per-host teardown status is ignored: they
// may "fail" (nothing to kill) and that is fine.
func stopProject(ctx context.Context, proj *project.Project, session string) error {
	results, err := proj.Stop(ctx, session, nil, runOpts())
	if results == nil {
		return fmt.Errorf("failed to stop session %q: %w", session, err)
	}
	fmt.Printf("Stopped session %q on %d host(s).\n", session, len(results))
	return nil
}
