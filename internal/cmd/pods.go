package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/tpu"
)

var (
	podsAcceleratorType string
	podsSoftwareVersion string
)

var podsCmd = &cobra.Command{
	Use:   "pods",
	Short: "Manage the TPU pods behind the projects",
}

var podsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List TPU VMs in the project's zone",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := podClient()
		if err != nil {
			return err
		}
		out, err := client.List(cmd.Context(), runOpts())
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var podsDescribeCmd = &cobra.Command{
	Use:   "describe [name]",
	Short: "Describe a TPU VM (defaults to the project's pod)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, name, err := podClientAndName(args)
		if err != nil {
			return err
		}
		out, err := client.Describe(cmd.Context(), name, runOpts())
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var podsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a TPU VM (defaults to the project's pod name)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, name, err := podClientAndName(args)
		if err != nil {
			return err
		}
		out, err := client.Create(cmd.Context(), name, podsAcceleratorType, podsSoftwareVersion, runOpts())
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var podsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a TPU VM (defaults to the project's pod)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, name, err := podClientAndName(args)
		if err != nil {
			return err
		}
		out, err := client.Delete(cmd.Context(), name, runOpts())
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var podsMaintainCmd = &cobra.Command{
	Use:   "maintain [name]",
	Short: "Simulate a maintenance event on all workers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, name, err := podClientAndName(args)
		if err != nil {
			return err
		}
		out, err := client.SimulateMaintenance(cmd.Context(), name, runOpts())
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(podsCmd)
	podsCmd.AddCommand(podsListCmd)
	podsCmd.AddCommand(podsDescribeCmd)
	podsCmd.AddCommand(podsCreateCmd)
	podsCmd.AddCommand(podsDeleteCmd)
	podsCmd.AddCommand(podsMaintainCmd)

	podsCreateCmd.Flags().StringVar(&podsAcceleratorType, "accelerator-type", "", "accelerator type, e.g. v3-32")
	podsCreateCmd.Flags().StringVar(&podsSoftwareVersion, "version", tpu.DefaultSoftwareVersion, "TPU software version")
	_ = podsCreateCmd.MarkFlagRequired("accelerator-type")
}

func podClient() (*tpu.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	proj, _, name, err := currentProject(cfg)
	if err != nil {
		return nil, err
	}
	printPodTarget(name, proj.Client)
	return proj.Client, nil
}

func podClientAndName(args []string) (*tpu.Client, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	proj, _, name, err := currentProject(cfg)
	if err != nil {
		return nil, "", err
	}
	printPodTarget(name, proj.Client)

	podName := proj.TPUName
	if len(args) == 1 {
		podName = args[0]
	}
	return proj.Client, podName, nil
}

// printPodTarget echoes which gcloud project/zone the pod operation will
// hit, since that differs per project entry.
func printPodTarget(name string, client *tpu.Client) {
	id := client.Identity()
	fmt.Printf("Using project: %s (%s, zone %s)\n", name, id.Project, id.Zone)
}
