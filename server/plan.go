package server

import (
	"context"

	"github.com/pkg/errors"

	"go.viam.com/photonav/command"
	"go.viam.com/photonav/config"
	"go.viam.com/photonav/gridspace"
	"go.viam.com/photonav/logging"
	"go.viam.com/photonav/motionplan/primitive"
	"go.viam.com/photonav/motionplan/stitch"
	"go.viam.com/photonav/motionplan/tour"
)

// PlanResult is everything a caller needs to render or replay a finished
// plan: the token stream, the stitched pose sequence it was derived from,
// and the winning tour.
type PlanResult struct {
	Tokens []string
	Poses  []gridspace.Pose
	Tour   tour.Result
}

// Plan runs the full pipeline (§ data flow in SPEC_FULL.md §1-9): builds
// the grid from the request, runs the tour optimiser over every obstacle,
// stitches the legs into one pose sequence, and synthesises the command
// stream. Every error it returns is, or wraps, one of the sentinel errors
// in errors.go; check them with errors.Is.
//
// If ctx carries a deadline, Plan races the optimiser against it and
// returns ErrTimeout on expiry, per spec.md §5's "cooperative check
// between permutations is acceptable" -- the in-flight search is
// abandoned rather than cancelled, consistent with "partial paths are
// not emitted".
func Plan(ctx context.Context, cfg config.Config, req Request, logger logging.Logger) (PlanResult, error) {
	if req.Type != "START_TASK" || req.Data.Task != "EXPLORATION" {
		return PlanResult{}, errors.Wrapf(ErrBadRequest, "unsupported request type %q/%q", req.Type, req.Data.Task)
	}

	startDir, err := gridspace.ParseDirection(req.Data.Robot.Dir)
	if err != nil {
		return PlanResult{}, errors.Wrap(ErrBadRequest, err.Error())
	}
	start := gridspace.NewPose(req.Data.Robot.X, req.Data.Robot.Y, startDir)

	grid := gridspace.NewGrid(cfg.GridWidth, cfg.GridHeight)
	grid = grid.WithMargins(cfg.Margins())

	obstacles := make([]gridspace.Obstacle, 0, len(req.Data.Obstacles))
	for _, ow := range req.Data.Obstacles {
		dir, err := gridspace.ParseDirection(ow.Dir)
		if err != nil {
			return PlanResult{}, errors.Wrap(ErrBadRequest, err.Error())
		}
		o := gridspace.Obstacle{ID: ow.ID.Int(), X: ow.X, Y: ow.Y, FaceDir: dir}
		if err := grid.AddObstacle(o); err != nil {
			return PlanResult{}, errors.Wrap(ErrBadRequest, err.Error())
		}
		obstacles = append(obstacles, o)
	}

	if !grid.IsInBounds(start.GeometricPose) {
		return PlanResult{}, errors.Wrapf(ErrBadRequest, "robot start %v out of bounds", start)
	}

	opts := tour.Options{
		Primitive:     primitive.Set{BigTurn: cfg.BigTurn},
		OffsetK:       cfg.StandoffOffsetK,
		MaxCandidates: cfg.MaxCandidates,
	}

	res, err := runWithDeadline(ctx, grid, start, obstacles, opts, logger)
	if err != nil {
		if errors.Is(err, tour.ErrUnreachable) {
			return PlanResult{}, ErrUnreachable
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return PlanResult{}, ErrTimeout
		}
		return PlanResult{}, errors.Wrap(ErrInternalInvariant, err.Error())
	}

	poses := stitch.Stitch(start.GeometricPose, res.Legs)
	tokens, err := command.Synthesize(poses, opts.Primitive)
	if err != nil {
		return PlanResult{}, errors.Wrap(ErrInternalInvariant, err.Error())
	}

	return PlanResult{Tokens: tokens, Poses: poses, Tour: res}, nil
}

// runWithDeadline calls tour.Optimize directly when ctx carries no
// deadline, and otherwise races it against ctx's expiry. The search
// itself has no cancellation hook (spec.md §5: "the planner runs to
// completion"), so a fired deadline abandons, rather than stops, the
// background attempt.
func runWithDeadline(
	ctx context.Context,
	grid *gridspace.Grid,
	start gridspace.Pose,
	obstacles []gridspace.Obstacle,
	opts tour.Options,
	logger logging.Logger,
) (tour.Result, error) {
	if _, ok := ctx.Deadline(); !ok {
		return tour.Optimize(grid, start, obstacles, opts, logger)
	}

	type outcome struct {
		res tour.Result
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		res, err := tour.Optimize(grid, start, obstacles, opts, logger)
		ch <- outcome{res, err}
	}()

	select {
	case out := <-ch:
		return out.res, out.err
	case <-ctx.Done():
		return tour.Result{}, ctx.Err()
	}
}
