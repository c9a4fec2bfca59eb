package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	projectFlag string
	verbose     bool
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "tpupod",
	Short: "tpupod - launch experiments on TPU pods",
	Long: `tpupod copies code to every worker of a TPU pod and runs experiments
in detached tmux sessions that outlive the launcher.

Launch an experiment script:
  tpupod launch train.sh

See what it's doing:
  tpupod check
  tpupod check-forever

Tear it down:
  tpupod stop

Select the active project:
  tpupod set-project my_project
  tpupod list-projects`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
		if debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tpupod/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&projectFlag, "project", "", "project to operate on (default is the persisted selection)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", true, "echo every shell command and its output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}
