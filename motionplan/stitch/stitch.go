// Package stitch implements C6: concatenating the tour optimiser's
// per-leg A* paths into one ordered pose sequence ready for command
// synthesis.
package stitch

import (
	"go.viam.com/photonav/gridspace"
	"go.viam.com/photonav/motionplan/tour"
)

// Stitch concatenates start and every leg's path into one pose sequence.
// The join pose between consecutive legs -- the last anchor of leg k,
// which equals the first anchor of leg k+1's path -- appears exactly
// once. Each leg's terminal pose is tagged with that leg's obstacle id;
// every other pose, including the robot's own start, carries no tag
// (spec.md §4.6).
func Stitch(start gridspace.GeometricPose, legs []tour.Leg) []gridspace.Pose {
	if len(legs) == 0 {
		return []gridspace.Pose{gridspace.NewPose(start.X, start.Y, start.D)}
	}

	out := make([]gridspace.Pose, 0, estimateLen(legs))
	out = append(out, gridspace.NewPose(start.X, start.Y, start.D))

	for _, leg := range legs {
		path := leg.Path
		if len(path) == 0 {
			continue
		}
		// path[0] is the source pose, already present as the previous
		// leg's terminal entry (or the robot start, for the first leg):
		// skip it so the join cell is not duplicated.
		for i := 1; i < len(path); i++ {
			out = append(out, gridspace.NewPose(path[i].X, path[i].Y, path[i].D))
		}
		term := path[len(path)-1]
		if len(path) == 1 {
			// Zero-length leg: the standoff pose equals the source pose
			// itself. Append a fresh tagged entry rather than mutate
			// whatever is already at out's tail, which may carry an
			// earlier leg's tag or be the untagged robot start.
			out = append(out, gridspace.NewPose(term.X, term.Y, term.D).WithScreenshot(leg.ObstacleID))
		} else {
			out[len(out)-1] = out[len(out)-1].WithScreenshot(leg.ObstacleID)
		}
	}
	return out
}

func estimateLen(legs []tour.Leg) int {
	n := 1
	for _, leg := range legs {
		n += len(leg.Path)
	}
	return n
}
