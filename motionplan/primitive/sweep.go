package primitive

import "go.viam.com/photonav/gridspace"

// sweptSteps is how many equal intervals an arc's chord is divided into,
// matching the chosen turning radius; SweptFootprint samples one
// intermediate footprint at each interior division point (sweptSteps-1 of
// them), so the wider big-turn radius gets more samples.
func sweptSteps(big bool) int {
	if big {
		return bigRadius
	}
	return smallRadius
}

// bulgeSide returns the unit offset (in cells) perpendicular to the
// primitive's direction of travel, toward the side the arc bulges outward
// on its way from start to end. It is the teacher's equivalent of a PTG's
// `Trajectory` sample: rather than integrating continuous velocities, we
// pick the single cell an arc displaces into besides the straight-line
// chord between its endpoints.
func bulgeSide(p gridspace.GeometricPose, k Kind) (int, int) {
	switch k {
	case ForwardLeft:
		return p.D.Right().Delta()
	case ForwardRight:
		return p.D.Left().Delta()
	case BackwardLeft:
		return p.D.Right().Delta()
	case BackwardRight:
		return p.D.Left().Delta()
	default:
		return 0, 0
	}
}

// SweptFootprint returns every footprint cell the robot's body passes
// through executing primitive k from p, including the start and end
// footprints. Straight primitives sweep exactly the two endpoint
// footprints (trivially collision-free in between, since the footprint
// moves one cell at a time along its own heading); arcs sample
// intermediate anchors along the chord plus the outward bulge cell, per
// the design note in spec.md §9 that "the swept footprint for arc
// primitives must be enumerated explicitly."
func SweptFootprint(p gridspace.GeometricPose, k Kind, big bool) [][2]int {
	end := Endpoint(p, k, big)
	seen := map[[2]int]bool{}
	var cells [][2]int
	add := func(gp gridspace.GeometricPose) {
		for _, c := range gridspace.Footprint(gp) {
			if !seen[c] {
				seen[c] = true
				cells = append(cells, c)
			}
		}
	}
	add(p)
	add(end)
	if !k.IsArc() {
		return cells
	}

	steps := sweptSteps(big)
	bx, by := bulgeSide(p, k)
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		ix := roundLerp(p.X, end.X, t) + bx
		iy := roundLerp(p.Y, end.Y, t) + by
		add(gridspace.GeometricPose{X: ix, Y: iy, D: p.D})
	}
	return cells
}

func roundLerp(a, b int, t float64) int {
	v := float64(a) + t*float64(b-a)
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}
