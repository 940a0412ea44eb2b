package gridspace

import "github.com/pkg/errors"

// FootprintSize is the robot's footprint, a FootprintSize x FootprintSize
// block anchored at its bottom-left cell.
const FootprintSize = 3

// DefaultSafeMargin is the Chebyshev distance, in cells, within which the
// robot's footprint may never approach an obstacle cell.
const DefaultSafeMargin = 2

// DefaultDangerMargin is the additional Chebyshev distance beyond the safe
// margin within which a traversal-cost penalty (rather than an outright
// rejection) applies.
const DefaultDangerMargin = 1

// DefaultObstaclePenalty is the additive edge cost charged for ending a
// primitive inside the danger margin of an obstacle.
const DefaultObstaclePenalty = 10

// Margins bundles the safe/danger margins and the danger-zone penalty
// constant, since the tour optimiser's retry policy (spec.md 4.5) derives
// a new set from them in one step (see Retry).
type Margins struct {
	Safe          int
	Danger        int
	DangerPenalty int
}

// DefaultMargins returns the baseline margin configuration used on the
// first planning attempt.
func DefaultMargins() Margins {
	return Margins{Safe: DefaultSafeMargin, Danger: DefaultDangerMargin, DangerPenalty: DefaultObstaclePenalty}
}

// Retry returns the margin configuration used for the single allowed
// retry pass (spec.md 4.5): the safe margin shrinks by one cell (floored
// at zero) and the danger penalty doubles, trading collision conservatism
// for reachability while still discouraging close approaches.
func (m Margins) Retry() Margins {
	safe := m.Safe - 1
	if safe < 0 {
		safe = 0
	}
	return Margins{Safe: safe, Danger: m.Danger, DangerPenalty: m.DangerPenalty * 2}
}

// Grid is the bounded arena the robot plans within, together with the
// obstacles registered on it and the margins governing collision and
// penalty checks.
type Grid struct {
	Width, Height int
	Margins       Margins

	obstacles   map[int]Obstacle
	obstacleIDs []int // insertion order, for deterministic iteration
}

// NewGrid constructs an empty Grid of the given dimensions with default
// margins.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:     width,
		Height:    height,
		Margins:   DefaultMargins(),
		obstacles: make(map[int]Obstacle),
	}
}

// AddObstacle registers an obstacle on the grid. It fails if the id is
// already taken or the obstacle cell itself is out of bounds.
func (g *Grid) AddObstacle(o Obstacle) error {
	if _, exists := g.obstacles[o.ID]; exists {
		return errors.Wrapf(errDuplicateObstacleID, "id %d", o.ID)
	}
	if o.X < 0 || o.X >= g.Width || o.Y < 0 || o.Y >= g.Height {
		return errors.Errorf("obstacle %d at (%d,%d) lies outside the %dx%d grid", o.ID, o.X, o.Y, g.Width, g.Height)
	}
	if !o.FaceDir.Valid() {
		return errors.Errorf("obstacle %d has invalid face direction %d", o.ID, int(o.FaceDir))
	}
	g.obstacles[o.ID] = o
	g.obstacleIDs = append(g.obstacleIDs, o.ID)
	return nil
}

// Obstacle returns the registered obstacle for id, if any.
func (g *Grid) Obstacle(id int) (Obstacle, bool) {
	o, ok := g.obstacles[id]
	return o, ok
}

// Obstacles returns all registered obstacles in the order they were added,
// which the tour optimiser relies on for deterministic output.
func (g *Grid) Obstacles() []Obstacle {
	out := make([]Obstacle, 0, len(g.obstacleIDs))
	for _, id := range g.obstacleIDs {
		out = append(out, g.obstacles[id])
	}
	return out
}

// Footprint returns the FootprintSize x FootprintSize set of cells the
// robot occupies at the given geometric pose.
func Footprint(p GeometricPose) [FootprintSize * FootprintSize][2]int {
	var cells [FootprintSize * FootprintSize][2]int
	i := 0
	for dx := 0; dx < FootprintSize; dx++ {
		for dy := 0; dy < FootprintSize; dy++ {
			cells[i] = [2]int{p.X + dx, p.Y + dy}
			i++
		}
	}
	return cells
}

// IsInBounds reports whether the pose's whole footprint lies within
// [0, Width-1] x [0, Height-1].
func (g *Grid) IsInBounds(p GeometricPose) bool {
	return p.X >= 0 && p.Y >= 0 &&
		p.X+FootprintSize-1 < g.Width &&
		p.Y+FootprintSize-1 < g.Height
}

// CellInBounds reports whether a single grid cell (as opposed to a full
// footprint) lies on the grid. Used to validate the swept footprint of arc
// primitives, cell by cell.
func (g *Grid) CellInBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// InnerReachableMin and InnerReachableMax bound the inner reachable anchor
// region [1, Width-2] x [1, Height-2]. This region is not the set IsInBounds
// accepts: with the footprint anchored at its bottom-left cell, IsInBounds
// accepts anchors in [0, Width-3] x [0, Height-3].
func (g *Grid) InnerReachableMin() (int, int) {
	return 1, 1
}

// InnerReachableMax returns the upper corner (Width-2, Height-2) of the
// inner reachable anchor region.
func (g *Grid) InnerReachableMax() (int, int) {
	return g.Width - 2, g.Height - 2
}

// chebyshev returns the Chebyshev (king-move) distance between two cells.
func chebyshev(ax, ay, bx, by int) int {
	dx, dy := abs(ax-bx), abs(ay-by)
	if dx > dy {
		return dx
	}
	return dy
}

// footprintMinDistance returns the minimum Chebyshev distance from any
// cell of p's footprint to (ox, oy).
func footprintMinDistance(p GeometricPose, ox, oy int) int {
	min := -1
	for _, c := range Footprint(p) {
		d := chebyshev(c[0], c[1], ox, oy)
		if min == -1 || d < min {
			min = d
		}
	}
	return min
}

// IsCollisionFree reports whether p's footprint stays strictly outside the
// configured safe margin of every obstacle.
func (g *Grid) IsCollisionFree(p GeometricPose) bool {
	for _, id := range g.obstacleIDs {
		o := g.obstacles[id]
		if footprintMinDistance(p, o.X, o.Y) <= g.Margins.Safe {
			return false
		}
	}
	return true
}

// CellCollisionFree reports whether a single cell stays strictly outside
// the safe margin of every obstacle. Used to validate every cell an arc
// primitive's swept footprint touches, not just its start/end footprints.
func (g *Grid) CellCollisionFree(x, y int) bool {
	for _, id := range g.obstacleIDs {
		o := g.obstacles[id]
		if chebyshev(x, y, o.X, o.Y) <= g.Margins.Safe {
			return false
		}
	}
	return true
}

// ObstaclePenalty returns the additive traversal cost charged for a pose
// that lies within the danger margin of some obstacle, 0 otherwise.
func (g *Grid) ObstaclePenalty(p GeometricPose) int {
	for _, id := range g.obstacleIDs {
		o := g.obstacles[id]
		d := footprintMinDistance(p, o.X, o.Y)
		if d > g.Margins.Safe && d <= g.Margins.Safe+g.Margins.Danger {
			return g.Margins.DangerPenalty
		}
	}
	return 0
}

// IsFeasible is shorthand for the conjunction of in-bounds and
// collision-free, the two hard constraints every primitive endpoint and
// intermediate footprint must satisfy.
func (g *Grid) IsFeasible(p GeometricPose) bool {
	return g.IsInBounds(p) && g.IsCollisionFree(p)
}

// WithMargins returns a shallow copy of g using the given margins. The
// tour optimiser's retry pass uses this to re-plan under relaxed
// constraints without mutating the grid shared with the first attempt.
func (g *Grid) WithMargins(m Margins) *Grid {
	clone := *g
	clone.Margins = m
	return &clone
}
