package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vyorkin/patchbay/internal/controller"
)

// editCmd represents the edit command.
var editCmd = newEditCmd()

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit scene.yaml",
		Short: "Open a scene in the interactive terminal editor",
		Long: `Open a scene in an interactive terminal editor. Keyboard input is
translated into simulated pointer interaction and the scene is redrawn
through the scope protocol after every keypress.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			scene, err := sceneStore.LoadScene(args[0])
			if err != nil {
				return err
			}

			return controller.RunTUI(scene)
		},
	}
}

func init() {
	rootCmd.AddCommand(editCmd)
}
