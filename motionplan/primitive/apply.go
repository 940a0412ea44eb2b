package primitive

import "go.viam.com/photonav/gridspace"

// Edge is a feasible primitive application: the resulting pose and the
// cost of the edge, including the destination's obstacle-proximity
// penalty (spec.md §4.2: "The A* edge cost is the primitive cost plus
// obstacle_penalty(endpoint)").
type Edge struct {
	Prim Kind
	To   gridspace.GeometricPose
	Cost int
}

// Apply attempts primitive k from p against grid g, returning the
// resulting Edge and true if every constraint in spec.md §4.2 is
// satisfied: (a) the endpoint footprint is in bounds, (b) every swept
// footprint cell is collision-free, (c) for arcs, every swept cell
// individually stays on the grid (catching the edge-of-grid case where
// an intermediate position would require leaving the grid even though
// start and end do not).
func Apply(g *gridspace.Grid, p gridspace.GeometricPose, k Kind, cfg Set) (Edge, bool) {
	end := Endpoint(p, k, cfg.BigTurn)
	if !g.IsInBounds(end) {
		return Edge{}, false
	}
	if !g.IsCollisionFree(end) {
		return Edge{}, false
	}
	for _, c := range SweptFootprint(p, k, cfg.BigTurn) {
		if !g.CellInBounds(c[0], c[1]) {
			return Edge{}, false
		}
		if !g.CellCollisionFree(c[0], c[1]) {
			return Edge{}, false
		}
	}

	cost := StraightCost
	if k.IsArc() {
		cost = cfg.TurnCost()
	}
	cost += g.ObstaclePenalty(end)

	return Edge{Prim: k, To: end, Cost: cost}, true
}

// Successors returns every feasible primitive application from p, in the
// fixed order of All, for the A* search to expand.
func Successors(g *gridspace.Grid, p gridspace.GeometricPose, cfg Set) []Edge {
	edges := make([]Edge, 0, len(All))
	for _, k := range All {
		if e, ok := Apply(g, p, k, cfg); ok {
			edges = append(edges, e)
		}
	}
	return edges
}
