package gridspace

import (
	"testing"

	"go.viam.com/test"
)

func TestObstacleIDFromLabelIsDeterministic(t *testing.T) {
	a := ObstacleIDFromLabel("north-pillar")
	b := ObstacleIDFromLabel("north-pillar")
	test.That(t, a, test.ShouldEqual, b)
}

func TestObstacleIDFromLabelDiffersAcrossLabels(t *testing.T) {
	a := ObstacleIDFromLabel("pillar-1")
	b := ObstacleIDFromLabel("pillar-2")
	test.That(t, a, test.ShouldNotEqual, b)
}

func TestObstacleIDFromLabelIsNonNegative(t *testing.T) {
	test.That(t, ObstacleIDFromLabel("anything"), test.ShouldBeGreaterThanOrEqualTo, 0)
}
