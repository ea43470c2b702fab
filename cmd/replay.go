package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vyorkin/patchbay/internal/controller"
	"github.com/vyorkin/patchbay/internal/domain"
	m "github.com/vyorkin/patchbay/internal/model"
	"github.com/vyorkin/patchbay/pkg"
)

var replayParallelFlag int
var replayFramesFlag int
var replayJournalFlag bool

// replayCmd represents the replay command.
var replayCmd = newReplayCmd()

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay scene.yaml[:script.yaml]...",
		Short: "Replay scenes through the editor protocol",
		Long: `Replay one or more scenes, each on its own simulated backend. A scene
argument may carry a frame script after a colon; without one the scene is
drawn for the configured number of idle frames.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			replays, err := loadReplays(args, viper.GetInt(framesConfigKey))
			if err != nil {
				return err
			}

			results, err := replayer.ReplayAll(context.Background(), replays, viper.GetInt(parallelConfigKey))
			if err != nil {
				return err
			}

			ui := controller.NewSimpleUI(cmd)

			for _, result := range results {
				if err := ui.DisplayReports(result.Scene, result.Reports); err != nil {
					return err
				}
			}

			if viper.GetBool(journalConfigKey) {
				return journalResults(cmd, results)
			}

			return nil
		},
	}

	configureReplayFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func configureReplayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&replayParallelFlag, parallelFlagName, "p", defaultParallel, "number of scenes replayed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().IntVarP(&replayFramesFlag, framesFlagName, "f", defaultFrames, "minimum number of frames to draw per scene")
	bindFlagToConfig(cmd.Flags().Lookup(framesFlagName), framesConfigKey)

	cmd.Flags().BoolVarP(&replayJournalFlag, journalFlagName, "j", defaultJournal, "persist frame reports to a journal in the output directory")
	bindFlagToConfig(cmd.Flags().Lookup(journalFlagName), journalConfigKey)
}

func loadReplays(args []string, frames int) ([]domain.ReplayArgs, error) {
	replays := make([]domain.ReplayArgs, 0, len(args))

	for _, arg := range args {
		scenePath, scriptPath, _ := strings.Cut(arg, ":")

		scene, err := sceneStore.LoadScene(scenePath)
		if err != nil {
			return nil, err
		}

		var script *m.FrameScript
		if scriptPath != "" {
			script, err = sceneStore.LoadScript(scriptPath)
			if err != nil {
				return nil, err
			}
		}

		replays = append(replays, domain.ReplayArgs{
			Scene:  scene,
			Script: script,
			Frames: frames,
		})
	}

	return replays, nil
}

func journalResults(cmd *cobra.Command, results []domain.ReplayResult) error {
	journal, err := pkg.NewJournal[m.FrameReport](viper.GetString(outputFlagName), "replay-*.gob")
	if err != nil {
		return err
	}

	for _, result := range results {
		if err := journal.AppendBatch(result.Reports); err != nil {
			return fmt.Errorf("journal %s: %w", result.Scene, err)
		}
	}

	if err := journal.Close(); err != nil {
		return err
	}

	cmd.Printf("reports journaled to %s\n", journal.Path())

	return nil
}
