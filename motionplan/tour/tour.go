// Package tour implements C5, the tour optimiser: given a start pose and a
// set of obstacles each with its own candidate standoff poses (C4), choose
// the visiting order and per-obstacle candidate that minimises total A*
// leg cost. It enumerates every order exactly rather than using an
// approximate heuristic: spec.md bounds N at roughly 8, where N!
// enumeration plus per-pair memoisation is both correct and fast enough.
package tour

import (
	"github.com/pkg/errors"

	"go.viam.com/photonav/gridspace"
	"go.viam.com/photonav/logging"
	"go.viam.com/photonav/motionplan/primitive"
	"go.viam.com/photonav/motionplan/search"
	"go.viam.com/photonav/motionplan/standoff"
)

// ErrUnreachable is returned when no permutation of obstacles, even after
// the single allowed retry pass, admits a fully-connected tour.
var ErrUnreachable = errors.New("tour: no permutation reaches every obstacle")

// Options bundles the tunables Optimize needs beyond the grid and
// obstacle list.
type Options struct {
	Primitive     primitive.Set
	OffsetK       int
	MaxCandidates int
}

// DefaultOptions matches spec.md's defaults: standoff offset 2, up to 8
// candidates per obstacle, small-radius turns.
func DefaultOptions() Options {
	return Options{OffsetK: standoff.DefaultOffsetK, MaxCandidates: standoff.DefaultMaxCandidates}
}

// Leg is one A*-planned hop in the chosen tour, from the previous stop (or
// the robot's start pose) to the selected standoff pose for one obstacle.
type Leg struct {
	ObstacleID int
	Candidate  gridspace.Pose
	Path       []gridspace.GeometricPose
	Cost       int
}

// Result is the winning tour: the obstacle visiting order, the leg plan
// for each hop, and the total accumulated cost.
type Result struct {
	Legs      []Leg
	TotalCost int
}

// memoKey implements spec.md §9's bounded memoisation key: geometric
// source pose crossed with obstacle id, not candidate -- keeping the memo
// O(|poses| x N) instead of O(|poses| x N x |candidates|).
type memoKey struct {
	source gridspace.GeometricPose
	obstID int
}

type memoEntry struct {
	ok           bool
	candidateIdx int
	path         []gridspace.GeometricPose
	cost         int
}

// Optimize runs the brute-force permutation search described in spec.md
// §4.5. On first failure it retries exactly once with margins relaxed via
// gridspace.Margins.Retry; a second failure is surfaced as ErrUnreachable.
func Optimize(
	grid *gridspace.Grid,
	start gridspace.Pose,
	obstacles []gridspace.Obstacle,
	opts Options,
	logger logging.Logger,
) (Result, error) {
	if len(obstacles) == 0 {
		return Result{}, nil
	}

	res, err := attempt(grid, start, obstacles, opts, logger)
	if err == nil {
		return res, nil
	}
	logger.Infow("tour unreachable on first attempt, retrying with relaxed margins", "err", err.Error())

	relaxed := grid.WithMargins(grid.Margins.Retry())
	res, err = attempt(relaxed, start, obstacles, opts, logger)
	if err != nil {
		return Result{}, ErrUnreachable
	}
	return res, nil
}

func attempt(
	grid *gridspace.Grid,
	start gridspace.Pose,
	obstacles []gridspace.Obstacle,
	opts Options,
	logger logging.Logger,
) (Result, error) {
	candidates := make([][]gridspace.Pose, len(obstacles))
	for i, o := range obstacles {
		candidates[i] = standoff.Candidates(grid, o, opts.OffsetK, opts.MaxCandidates)
		if len(candidates[i]) == 0 {
			return Result{}, errors.Errorf("obstacle %d has no feasible standoff pose", o.ID)
		}
	}

	memo := map[memoKey]memoEntry{}
	leg := func(source gridspace.GeometricPose, obstacleIdx int) (memoEntry, bool) {
		key := memoKey{source: source, obstID: obstacles[obstacleIdx].ID}
		if cached, ok := memo[key]; ok {
			return cached, cached.ok
		}
		entry := computeLeg(grid, source, candidates[obstacleIdx], opts.Primitive, logger)
		memo[key] = entry
		return entry, entry.ok
	}

	n := len(obstacles)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var best Result
	bestCost := -1
	var bestErr error = errors.New("no permutation produced a complete tour")

	permute(perm, 0, func(order []int) {
		legs := make([]Leg, 0, n)
		total := 0
		source := start.GeometricPose
		ok := true
		for _, idx := range order {
			entry, found := leg(source, idx)
			if !found {
				ok = false
				break
			}
			cand := candidates[idx][entry.candidateIdx]
			legs = append(legs, Leg{
				ObstacleID: obstacles[idx].ID,
				Candidate:  cand,
				Path:       entry.path,
				Cost:       entry.cost,
			})
			total += entry.cost
			source = cand.GeometricPose
		}
		if !ok {
			return
		}
		if bestCost == -1 || total < bestCost {
			bestCost = total
			best = Result{Legs: legs, TotalCost: total}
			bestErr = nil
		}
	})

	return best, bestErr
}

// computeLeg tries each candidate standoff pose in its enumeration order
// (spec.md §4.5) and keeps the cheapest reachable one.
func computeLeg(
	grid *gridspace.Grid,
	source gridspace.GeometricPose,
	candidates []gridspace.Pose,
	cfg primitive.Set,
	logger logging.Logger,
) memoEntry {
	best := memoEntry{}
	for i, c := range candidates {
		res, err := search.Search(grid, source, []gridspace.GeometricPose{c.GeometricPose}, cfg, logger)
		if err != nil {
			continue
		}
		if !best.ok || res.Cost < best.cost {
			best = memoEntry{ok: true, candidateIdx: i, path: res.Path, cost: res.Cost}
		}
	}
	return best
}

// permute calls visit once per permutation of perm[k:], built in place by
// recursive swapping (swap each later element into position k, recurse,
// swap back), in a fixed deterministic generation order so tied-cost
// tours resolve the same way every run.
func permute(perm []int, k int, visit func([]int)) {
	if k == len(perm)-1 {
		out := make([]int, len(perm))
		copy(out, perm)
		visit(out)
		return
	}
	for i := k; i < len(perm); i++ {
		perm[k], perm[i] = perm[i], perm[k]
		permute(perm, k+1, visit)
		perm[k], perm[i] = perm[i], perm[k]
	}
}
