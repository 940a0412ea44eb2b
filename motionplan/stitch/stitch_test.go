package stitch_test

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/photonav/gridspace"
	"go.viam.com/photonav/motionplan/stitch"
	"go.viam.com/photonav/motionplan/tour"
)

func TestStitchSingleLegTagsTerminalOnly(t *testing.T) {
	start := gridspace.GeometricPose{X: 1, Y: 1, D: gridspace.North}
	path := []gridspace.GeometricPose{
		start,
		{X: 1, Y: 2, D: gridspace.North},
		{X: 1, Y: 3, D: gridspace.North},
	}
	legs := []tour.Leg{{ObstacleID: 7, Path: path, Cost: 20}}

	out := stitch.Stitch(start, legs)
	test.That(t, len(out), test.ShouldEqual, 3)
	test.That(t, out[0].HasScreenshot(), test.ShouldBeFalse)
	test.That(t, out[1].HasScreenshot(), test.ShouldBeFalse)
	test.That(t, out[2].HasScreenshot(), test.ShouldBeTrue)
	test.That(t, out[2].ScreenshotID, test.ShouldEqual, 7)
	test.That(t, out[2].GeometricPose, test.ShouldResemble, path[2])
}

func TestStitchJoinPoseAppearsOnce(t *testing.T) {
	start := gridspace.GeometricPose{X: 1, Y: 1, D: gridspace.North}
	mid := gridspace.GeometricPose{X: 1, Y: 3, D: gridspace.North}
	end := gridspace.GeometricPose{X: 3, Y: 3, D: gridspace.East}

	legA := tour.Leg{ObstacleID: 1, Path: []gridspace.GeometricPose{start, mid}}
	legB := tour.Leg{ObstacleID: 2, Path: []gridspace.GeometricPose{mid, end}}

	out := stitch.Stitch(start, []tour.Leg{legA, legB})
	// start, mid(tagged 1), end(tagged 2) -- mid appears exactly once.
	test.That(t, len(out), test.ShouldEqual, 3)
	test.That(t, out[1].GeometricPose, test.ShouldResemble, mid)
	test.That(t, out[1].ScreenshotID, test.ShouldEqual, 1)
	test.That(t, out[2].GeometricPose, test.ShouldResemble, end)
	test.That(t, out[2].ScreenshotID, test.ShouldEqual, 2)
}

func TestStitchZeroLengthLegStillEmitsSnap(t *testing.T) {
	start := gridspace.GeometricPose{X: 5, Y: 5, D: gridspace.North}
	legs := []tour.Leg{{ObstacleID: 9, Path: []gridspace.GeometricPose{start}}}

	out := stitch.Stitch(start, legs)
	test.That(t, len(out), test.ShouldEqual, 2)
	test.That(t, out[0].HasScreenshot(), test.ShouldBeFalse)
	test.That(t, out[1].GeometricPose, test.ShouldResemble, start)
	test.That(t, out[1].ScreenshotID, test.ShouldEqual, 9)
}

func TestStitchNoLegsReturnsBareStart(t *testing.T) {
	start := gridspace.GeometricPose{X: 2, Y: 2, D: gridspace.East}
	out := stitch.Stitch(start, nil)
	test.That(t, len(out), test.ShouldEqual, 1)
	test.That(t, out[0].HasScreenshot(), test.ShouldBeFalse)
}
