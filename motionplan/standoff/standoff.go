// Package standoff implements C4: for each obstacle, the ordered set of
// acceptable photo poses a tour leg may terminate at. The primary
// candidate is the canonical standoff position directly facing the
// obstacle at a fixed offset; secondary candidates perturb that offset to
// recover reachability when the primary is blocked or off-grid (spec.md
// §4.4).
package standoff

import "go.viam.com/photonav/gridspace"

// DefaultOffsetK is the canonical standoff distance, in cells, between the
// robot's anchor and the obstacle along the obstacle's face direction.
const DefaultOffsetK = 2

// DefaultMaxCandidates caps how many candidate poses Candidates emits per
// obstacle.
const DefaultMaxCandidates = 8

// perturbation describes one offset from the canonical standoff position:
// `along` shifts toward/away from the obstacle along its face direction,
// `lateral` shifts perpendicular to it.
type perturbation struct {
	along, lateral int
}

// order lists perturbations as (along, lateral) pairs: the canonical (0, 0)
// position first, then the four single-axis +-1 shifts, then three of the
// four diagonal combinations. (-1, +1) is not in the table, so it is
// never generated; the table has DefaultMaxCandidates (8) entries.
var order = []perturbation{
	{0, 0},
	{1, 0}, {-1, 0},
	{0, 1}, {0, -1},
	{1, 1}, {1, -1},
	{-1, -1},
}

// Candidates returns, in priority order, the feasible standoff poses for
// visiting obstacle o: the robot's camera-facing edge aligned with the
// obstacle's face at offset k, heading directly at it. The primary
// candidate (if feasible) is always first; infeasible candidates
// (out-of-bounds or colliding, per g's current margins) are dropped
// entirely rather than reordered.
func Candidates(g *gridspace.Grid, o gridspace.Obstacle, k, maxCandidates int) []gridspace.Pose {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	heading := o.FaceDir.Opposite()
	alongDX, alongDY := o.FaceDir.Delta()
	var latDX, latDY int
	switch o.FaceDir {
	case gridspace.North, gridspace.South:
		latDX, latDY = 1, 0
	default:
		latDX, latDY = 0, 1
	}

	out := make([]gridspace.Pose, 0, maxCandidates)
	seen := map[gridspace.GeometricPose]bool{}
	for _, pert := range order {
		if len(out) >= maxCandidates {
			break
		}
		dist := k + pert.along
		if dist < 1 {
			continue
		}
		x := o.X + alongDX*dist + latDX*pert.lateral
		y := o.Y + alongDY*dist + latDY*pert.lateral
		gp := gridspace.GeometricPose{X: x, Y: y, D: heading}
		if seen[gp] {
			continue
		}
		seen[gp] = true
		if !g.IsInBounds(gp) || !g.IsCollisionFree(gp) {
			continue
		}
		out = append(out, gridspace.NewPose(x, y, heading).WithScreenshot(o.ID))
	}
	return out
}
