package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/project"
)

var (
	launchSession string
	launchRetries int
)

var launchCmd = &cobra.Command{
	Use:   "launch <script> [comment-prefix]",
	Short: "Copy the project and run a script on the pod",
	Long: `Read a shell script, strip comment lines, and run it inside a detached
tmux session on every pod worker. Any session with the same name is
stopped first, then the project's copy dirs are synced (with retries)
before the script starts.

The optional comment-prefix argument changes which lines are stripped
(default "#"); pass an empty string to ship the script verbatim.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchCmd.Flags().StringVar(&launchSession, "session", project.DefaultSession, "tmux session name to launch into")
	launchCmd.Flags().IntVar(&launchRetries, "retries", 2, "number of sync attempts before launching")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	proj, _, name, err := currentProject(cfg)
	if err != nil {
		return err
	}
	fmt.Println("Using project:", name)

	commentPrefix := "#"
	if len(args) == 2 {
		commentPrefix = args[1]
	}

	script, err := readScript(args[0], commentPrefix)
	if err != nil {
		return err
	}

	report, err := proj.CopyLaunch(cmd.Context(), script, launchSession, launchRetries, runOpts())
	if err != nil {
		return fmt.Errorf("launch failed: %w", err)
	}
	fmt.Printf("Launched session %q on %d host(s) after %d sync attempt(s).\n",
		launchSession, len(report.Launch), len(report.SyncAttempts))
	return nil
}

// readScript loads a script file, dropping lines that start with the
// comment prefix. An empty prefix keeps the file as is.
func readScript(path, commentPrefix string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	if commentPrefix == "" {
		return string(data), nil
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
