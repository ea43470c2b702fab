package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vyorkin/patchbay/internal/controller"
)

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show scene.yaml...",
		Short: "Show a summary of scene files",
		Long:  "Validate scene files and print their nodes, pins and links.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := controller.NewSimpleUI(cmd)

			for _, path := range args {
				scene, err := sceneStore.LoadScene(path)
				if err != nil {
					return err
				}

				if err := ui.DisplayScene(scene); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
