// Package primitive enumerates the six atomic motions a differential-drive
// robot can execute on the grid (spec.md §4.2): straight forward/backward
// steps and four quarter-circle arc turns. Each primitive is a pure
// function from a starting gridspace.GeometricPose to the resulting pose,
// its base cost, and the swept footprint cells that must all be
// collision-free for the move to be legal -- the same shape the teacher's
// tpspace PTGs use (Transform + a cost/velocity profile), specialized from
// continuous arc-length integration down to an explicit integer-grid
// footprint table, since our configuration space is discrete.
package primitive

import "go.viam.com/photonav/gridspace"

// Kind identifies one of the six primitives.
type Kind int

const (
	Forward Kind = iota
	Backward
	ForwardLeft
	ForwardRight
	BackwardLeft
	BackwardRight
)

func (k Kind) String() string {
	switch k {
	case Forward:
		return "FWD"
	case Backward:
		return "BWD"
	case ForwardLeft:
		return "FWD_LEFT"
	case ForwardRight:
		return "FWD_RIGHT"
	case BackwardLeft:
		return "BWD_LEFT"
	case BackwardRight:
		return "BWD_RIGHT"
	default:
		return "UNKNOWN"
	}
}

// IsArc reports whether k is one of the four turning primitives, as
// opposed to a straight run.
func (k Kind) IsArc() bool {
	return k != Forward && k != Backward
}

// IsForward reports whether executing k moves the robot's camera-facing
// edge in the direction it currently faces (as opposed to reversing).
func (k Kind) IsForward() bool {
	return k == Forward || k == ForwardLeft || k == ForwardRight
}

// All lists every primitive, in the fixed order the search expands them in
// -- expansion order does not affect correctness, but a fixed order keeps
// the A* tie-break counter (spec.md §4.3) reproducible across runs.
var All = []Kind{Forward, Backward, ForwardLeft, ForwardRight, BackwardLeft, BackwardRight}

// StraightCost is the base edge cost of a single-cell FWD/BWD move.
const StraightCost = 10

// DefaultTurnFactor approximates sqrt(2) scaled so the arc cost stays an
// integer, matching spec.md's "10 x turn_factor (implementation-defined
// integer), default ~=15".
const DefaultTurnFactor = 15

// BigTurnFactor is used instead of DefaultTurnFactor when Set.BigTurn is
// enabled: a wider turning radius costs more per primitive.
const BigTurnFactor = 20

// Set bundles the configuration that changes a primitive's footprint and
// cost: whether the wide-radius "big turn" mode is active.
type Set struct {
	BigTurn bool
}

// TurnCost returns the base cost of an arc primitive under this Set.
func (s Set) TurnCost() int {
	if s.BigTurn {
		return BigTurnFactor
	}
	return DefaultTurnFactor
}

// Endpoint returns the geometric pose reached by applying k from p, without
// regard to feasibility. big selects the wide-turn offsets for arcs.
func Endpoint(p gridspace.GeometricPose, k Kind, big bool) gridspace.GeometricPose {
	dx, dy := p.D.Delta()
	switch k {
	case Forward:
		return gridspace.GeometricPose{X: p.X + dx, Y: p.Y + dy, D: p.D}
	case Backward:
		return gridspace.GeometricPose{X: p.X - dx, Y: p.Y - dy, D: p.D}
	case ForwardLeft:
		return arcEndpoint(p, -1, true, big)
	case ForwardRight:
		return arcEndpoint(p, 1, true, big)
	case BackwardLeft:
		return arcEndpoint(p, 1, false, big)
	case BackwardRight:
		return arcEndpoint(p, -1, false, big)
	default:
		return p
	}
}

// arcEndpoint computes the pose reached by a quarter-circle arc. turn is -1
// for a left quarter turn and +1 for a right quarter turn (in heading-delta
// terms, matching gridspace.Direction.Rotate); forward selects whether the
// robot is driving into the turn or reversing through it.
func arcEndpoint(p gridspace.GeometricPose, turn int, forward, big bool) gridspace.GeometricPose {
	radius := smallRadius
	if big {
		radius = bigRadius
	}
	newD := p.D.Rotate(turn)

	// The arc displaces the anchor by `radius` along the original heading
	// and `radius` along the new heading, the standard quarter-circle
	// composition for a robot pivoting about a point offset to its
	// turning side.
	fdx, fdy := p.D.Delta()
	ndx, ndy := newD.Delta()

	sign := 1
	if !forward {
		sign = -1
	}

	x := p.X + sign*radius*fdx + sign*radius*ndx
	y := p.Y + sign*radius*fdy + sign*radius*ndy
	return gridspace.GeometricPose{X: x, Y: y, D: newD}
}

const (
	smallRadius = 2
	bigRadius   = 3
)
