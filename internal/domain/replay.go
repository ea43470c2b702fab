package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vyorkin/patchbay/internal/adapter"
	m "github.com/vyorkin/patchbay/internal/model"
)

// ReplayArgs describes one replay: a scene, an optional frame script, and
// a minimum number of frames to draw. At least one frame is always drawn
// so the scene's declarations exist before any scripted interaction.
type ReplayArgs struct {
	Scene  *m.Scene
	Script *m.FrameScript
	Frames int
}

// ReplayResult pairs a replayed scene with its frame reports.
type ReplayResult struct {
	Scene   string
	Reports []m.FrameReport
}

// Replayer runs scripted replays against fresh simulated backends.
type Replayer interface {
	Replay(ctx context.Context, args ReplayArgs) ([]m.FrameReport, error)
	ReplayAll(ctx context.Context, args []ReplayArgs, parallel int) ([]ReplayResult, error)
}

type replayer struct{}

// NewReplayer creates a Replayer.
func NewReplayer() Replayer {
	return &replayer{}
}

// Replay implements Replayer. Each call owns a fresh Sim, so the
// single-threaded protocol discipline holds per replay.
func (r *replayer) Replay(ctx context.Context, args ReplayArgs) ([]m.FrameReport, error) {
	if args.Scene == nil {
		return nil, fmt.Errorf("replay: no scene")
	}

	sim := adapter.NewSim()
	runner := NewRunner(sim, sim.Context())

	return replayOn(ctx, sim, runner, args)
}

func replayOn(ctx context.Context, sim *adapter.Sim, runner Runner, args ReplayArgs) ([]m.FrameReport, error) {
	var scripted []m.FrameEvents
	if args.Script != nil {
		scripted = args.Script.Frames
	}

	total := len(scripted)
	if args.Frames > total {
		total = args.Frames
	}

	if total == 0 {
		total = 1
	}

	reports := make([]m.FrameReport, 0, total)

	for frame := 0; frame < total; frame++ {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		if frame < len(scripted) {
			ApplyEvents(sim, scripted[frame])
		}

		reports = append(reports, runner.RunFrame(args.Scene))
	}

	slog.Info("replay finished", "scene", args.Scene.Name, "frames", total)

	return reports, nil
}

// ReplayAll implements Replayer, replaying each args entry on its own
// backend with at most parallel replays in flight.
func (r *replayer) ReplayAll(ctx context.Context, args []ReplayArgs, parallel int) ([]ReplayResult, error) {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]ReplayResult, len(args))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for i, a := range args {
		group.Go(func() error {
			reports, err := r.Replay(groupCtx, a)
			if err != nil {
				return fmt.Errorf("replay %s: %w", a.Scene.Name, err)
			}

			results[i] = ReplayResult{Scene: a.Scene.Name, Reports: reports}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// ApplyEvents injects one batch of scripted interactions into the
// simulated backend, in the order a pointer would produce them.
func ApplyEvents(sim *adapter.Sim, ev m.FrameEvents) {
	if ev.HoverNode != nil {
		sim.HoverNode(*ev.HoverNode)
	}

	if ev.HoverPin != nil {
		sim.HoverPin(*ev.HoverPin)
	}

	if ev.HoverLink != nil {
		sim.HoverLink(*ev.HoverLink)
	}

	if ev.SelectNodes != nil {
		sim.SelectNodes(ev.SelectNodes...)
	}

	if ev.SelectLinks != nil {
		sim.SelectLinks(ev.SelectLinks...)
	}

	if ev.StartDrag != nil {
		sim.StartDrag(*ev.StartDrag)
	}

	if ev.DropDrag != nil {
		sim.DropDrag(*ev.DropDrag)
	}

	if ev.Connect != nil {
		sim.CompleteDrag(ev.Connect.From, ev.Connect.To, ev.Connect.Snap)
	}

	if ev.DestroyLink != nil {
		sim.DestroyLink(*ev.DestroyLink)
	}

	if ev.Activate != nil {
		sim.ActivateAttribute(*ev.Activate)
	}
}
