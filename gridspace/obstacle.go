package gridspace

import (
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Obstacle is a single-cell directional target: it occupies (X, Y) and
// carries a camera target on its FaceDir side. Ids are caller-assigned
// and must be unique within a Grid.
type Obstacle struct {
	ID      int
	X, Y    int
	FaceDir Direction
}

// errDuplicateObstacleID is returned by Grid.AddObstacle when an id has
// already been registered.
var errDuplicateObstacleID = errors.New("duplicate obstacle id")

// obstacleIDNamespace roots the deterministic UUIDv3 derivation below. Its
// value doesn't matter beyond being fixed, since NewMD5 only needs a
// stable namespace to make the same label always map to the same id.
var obstacleIDNamespace = uuid.MustParse("6f6e9c1e-7e4a-4b8a-9c3e-8f6b1a2e9d4f")

// ObstacleIDFromLabel deterministically derives an integer obstacle id
// from a non-numeric wire label (spec.md §6's `id: <int|str>`). The same
// label always maps to the same id, and collisions are left to
// Grid.AddObstacle's duplicate check.
func ObstacleIDFromLabel(label string) int {
	sum := uuid.NewMD5(obstacleIDNamespace, []byte(label))
	return int(binary.BigEndian.Uint32(sum[:4]) & 0x7fffffff)
}
