package command_test

import (
	"errors"
	"testing"

	"go.viam.com/test"

	"go.viam.com/photonav/command"
	"go.viam.com/photonav/gridspace"
	"go.viam.com/photonav/motionplan/primitive"
)

func straightPoses(startX, startY int, d gridspace.Direction, cells int) []gridspace.Pose {
	dx, dy := d.Delta()
	out := make([]gridspace.Pose, 0, cells+1)
	for i := 0; i <= cells; i++ {
		out = append(out, gridspace.NewPose(startX+dx*i, startY+dy*i, d))
	}
	return out
}

func TestSynthesizeAggregatesStraightRun(t *testing.T) {
	poses := straightPoses(1, 1, gridspace.North, 3)
	tokens, err := command.Synthesize(poses, primitive.Set{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tokens, test.ShouldResemble, []string{"FW30", "FIN"})
}

func TestSynthesizeEmitsSnapAfterMotion(t *testing.T) {
	poses := straightPoses(1, 1, gridspace.North, 2)
	poses[len(poses)-1] = poses[len(poses)-1].WithScreenshot(5)
	tokens, err := command.Synthesize(poses, primitive.Set{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tokens, test.ShouldResemble, []string{"FW20", "SNAP5", "FIN"})
}

func TestSynthesizeArcNeverAggregates(t *testing.T) {
	from := gridspace.GeometricPose{X: 5, Y: 5, D: gridspace.North}
	to := primitive.Endpoint(from, primitive.ForwardRight, false)
	to2 := primitive.Endpoint(to, primitive.ForwardRight, false)
	poses := []gridspace.Pose{
		gridspace.NewPose(from.X, from.Y, from.D),
		gridspace.NewPose(to.X, to.Y, to.D),
		gridspace.NewPose(to2.X, to2.Y, to2.D),
	}
	tokens, err := command.Synthesize(poses, primitive.Set{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tokens, test.ShouldResemble, []string{"FR", "FR", "FIN"})
}

func TestSynthesizeMixedRunThenArc(t *testing.T) {
	straight := straightPoses(1, 1, gridspace.North, 2)
	last := straight[len(straight)-1].GeometricPose
	turned := primitive.Endpoint(last, primitive.ForwardLeft, false)
	poses := append(straight, gridspace.NewPose(turned.X, turned.Y, turned.D).WithScreenshot(3))

	tokens, err := command.Synthesize(poses, primitive.Set{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tokens, test.ShouldResemble, []string{"FW20", "FL", "SNAP3", "FIN"})
}

func TestSynthesizeLeadingSnapAtStart(t *testing.T) {
	poses := straightPoses(1, 1, gridspace.North, 1)
	poses[0] = poses[0].WithScreenshot(9)
	tokens, err := command.Synthesize(poses, primitive.Set{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tokens, test.ShouldResemble, []string{"SNAP9", "FW10", "FIN"})
}

func TestReconstructRoundTrip(t *testing.T) {
	poses := straightPoses(1, 1, gridspace.North, 3)
	poses[len(poses)-1] = poses[len(poses)-1].WithScreenshot(1)
	tokens, err := command.Synthesize(poses, primitive.Set{})
	test.That(t, err, test.ShouldBeNil)

	replay, err := command.Reconstruct(poses, tokens)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(replay), test.ShouldEqual, 1)
	test.That(t, replay[0], test.ShouldResemble, poses[len(poses)-1])
}

func TestReconstructDecomposesRunIntoUnitSteps(t *testing.T) {
	poses := straightPoses(1, 1, gridspace.North, 3)
	// FW30 should land on the same terminal pose as three FW10 steps.
	whole, err := command.Reconstruct(poses, []string{"FW30", "FIN"})
	test.That(t, err, test.ShouldBeNil)

	stepwise, err := command.Reconstruct(poses, []string{"FW10", "FW10", "FW10", "FIN"})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, whole[len(whole)-1], test.ShouldResemble, stepwise[len(stepwise)-1])
}

func TestReconstructRejectsUnknownToken(t *testing.T) {
	poses := straightPoses(1, 1, gridspace.North, 1)
	_, err := command.Reconstruct(poses, []string{"ZZ", "FIN"})
	test.That(t, errors.Is(err, command.ErrInvalidToken), test.ShouldBeTrue)
}

func TestJoinFormatsCommaSeparated(t *testing.T) {
	test.That(t, command.Join([]string{"FW10", "SNAP1", "FIN"}), test.ShouldEqual, "FW10,SNAP1,FIN")
}
