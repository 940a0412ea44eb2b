package server

import "github.com/pkg/errors"

// The error taxonomy from spec.md §7. Handlers check these with
// errors.Is rather than string matching.
var (
	// ErrBadRequest covers malformed JSON, unknown direction labels, and
	// out-of-bounds robot/obstacle coordinates.
	ErrBadRequest = errors.New("server: bad request")
	// ErrUnreachable means every permutation of obstacles had at least
	// one failed leg, even after the tour optimiser's retry.
	ErrUnreachable = errors.New("server: unreachable")
	// ErrInternalInvariant marks a condition the planner's own
	// invariants should have made impossible, e.g. an invalid direction
	// encoding surfacing this late.
	ErrInternalInvariant = errors.New("server: internal invariant violated")
	// ErrTimeout is raised when a request exceeds its wall-clock budget;
	// spec.md §7 treats it identically to ErrUnreachable downstream.
	ErrTimeout = errors.New("server: timed out")
)
