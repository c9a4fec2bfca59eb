package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/project"
)

var sshCmd = &cobra.Command{
	Use:   "ssh <command>",
	Short: "Run a command on every pod worker",
	Long: `Run an arbitrary shell command on every worker of the pod, inside the
project working directory, and print each host's output. The command is
delivered to the remote shell exactly as given; quote it once for your
local shell and embedded quotes, $ and newlines survive intact.`,
	Args: cobra.ExactArgs(1),
	RunE: runSSH,
}

func init() {
	rootCmd.AddCommand(sshCmd)
}

func runSSH(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	proj, _, name, err := currentProject(cfg)
	if err != nil {
		return err
	}
	fmt.Println("Using project:", name)

	results, err := proj.SSH(cmd.Context(), args[0], runOpts())
	if results != nil {
		project.PrintResults(os.Stdout, results)
	}
	if err != nil {
		return fmt.Errorf("ssh failed on one or more hosts: %w", err)
	}
	return nil
}
