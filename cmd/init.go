package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "github.com/vyorkin/patchbay/internal/model"
)

var initExampleFlag string

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default patchbay.yaml configuration file",
		Long: `Create a patchbay.yaml in the current working directory populated with
the current CLI defaults so it can be edited manually. With --example, an
example scene file is written as well.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			if initExampleFlag == "" {
				return nil
			}

			if err := sceneStore.WriteScene(initExampleFlag, exampleScene()); err != nil {
				return err
			}

			cmd.Printf("example scene written to %s\n", initExampleFlag)

			return nil
		},
	}

	cmd.Flags().StringVar(&initExampleFlag, "example", "", "also write an example scene to the given path")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func exampleScene() *m.Scene {
	return &m.Scene{
		Name: "example",
		Nodes: []m.SceneNode{
			{
				ID:    1,
				Title: "oscillator",
				Outputs: []m.ScenePin{
					{ID: 10, Label: "wave", Shape: "circle-filled"},
				},
				Attributes: []m.SceneAttribute{
					{ID: 11, Label: "frequency"},
				},
			},
			{
				ID:    2,
				Title: "speaker",
				Inputs: []m.ScenePin{
					{ID: 20, Label: "signal", Shape: "triangle-filled"},
				},
			},
		},
		Links: []m.SceneLink{
			{ID: 100, From: 10, To: 20},
		},
	}
}
