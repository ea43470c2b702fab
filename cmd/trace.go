package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vyorkin/patchbay/internal/adapter"
	"github.com/vyorkin/patchbay/internal/controller"
	"github.com/vyorkin/patchbay/internal/domain"
	m "github.com/vyorkin/patchbay/internal/model"
)

var traceFramesFlag int

// traceCmd represents the trace command.
var traceCmd = newTraceCmd()

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace scene.yaml[:script.yaml]",
		Short: "Print the backend call order for a replayed scene",
		Long: `Draw a scene through the scope layer with every backend primitive
recorded, then print the full call log with its nesting depth. Useful for
seeing exactly which begin/end sequence a scene produces.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenePath, scriptPath, _ := strings.Cut(args[0], ":")

			scene, err := sceneStore.LoadScene(scenePath)
			if err != nil {
				return err
			}

			var script *m.FrameScript
			if scriptPath != "" {
				script, err = sceneStore.LoadScript(scriptPath)
				if err != nil {
					return err
				}
			}

			sim := adapter.NewSim()
			trace := adapter.NewTrace(sim)
			runner := domain.NewRunner(trace, sim.Context())

			frames := traceFramesFlag
			if script != nil && len(script.Frames) > frames {
				frames = len(script.Frames)
			}

			for frame := 0; frame < frames; frame++ {
				if script != nil && frame < len(script.Frames) {
					domain.ApplyEvents(sim, script.Frames[frame])
				}

				runner.RunFrame(scene)
			}

			return controller.NewSimpleUI(cmd).DisplayTrace(trace.Calls())
		},
	}

	cmd.Flags().IntVarP(&traceFramesFlag, framesFlagName, "f", 1, "number of frames to trace")

	return cmd
}

func init() {
	rootCmd.AddCommand(traceCmd)
}
