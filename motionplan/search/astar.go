// Package search implements the C3 component of the planner: an A* search
// from a single start pose to any pose in a goal set, over the motion
// primitives in motionplan/primitive. The shape mirrors the teacher's
// armplanning planner (a struct wrapping search state plus a reusable
// "plan" entry point, grounded on motionplan/armplanning/cBiRRT.go) cut
// down from RRT's randomized tree growth to a deterministic priority-queue
// search, since spec.md §4.3 requires byte-identical output across runs.
package search

import (
	"container/heap"

	"github.com/pkg/errors"

	"go.viam.com/photonav/gridspace"
	"go.viam.com/photonav/logging"
	"go.viam.com/photonav/motionplan/primitive"
)

// ErrUnreachable is returned when the open set empties without finding any
// goal pose, matching spec.md §4.3's "Failure" case.
var ErrUnreachable = errors.New("no path to any goal pose")

// Result is a successful search outcome: the pose sequence from start
// (inclusive) to the goal actually reached (inclusive), and its total
// accumulated primitive + penalty cost.
type Result struct {
	Path []gridspace.GeometricPose
	Cost int
}

// node is one entry in the open/closed sets.
type node struct {
	pose   gridspace.GeometricPose
	g      int
	f      int
	parent *node
	seq    int // insertion counter, for deterministic tie-breaking
}

// openQueue is a container/heap.Interface ordered by (f, seq) exactly as
// spec.md §4.3 requires: "Strictly by (f, g_insertion_counter)".
type openQueue []*node

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}
func (q openQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *openQueue) Push(x interface{}) {
	*q = append(*q, x.(*node))
}
func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// heuristic implements spec.md §4.3's h(p): the minimum over the goal set
// of Manhattan distance plus the turn penalty between headings. It is
// admissible because no primitive can reduce Manhattan distance by more
// than one cell per 10-cost straight step, nor change heading for less
// than the matching turn penalty.
func heuristic(p gridspace.GeometricPose, goals []gridspace.GeometricPose) int {
	best := -1
	for _, g := range goals {
		h := gridspace.ManhattanDistance(p, g) + gridspace.TurnPenalty(p.D, g.D)
		if best == -1 || h < best {
			best = h
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

func isGoal(p gridspace.GeometricPose, goals []gridspace.GeometricPose) bool {
	for _, g := range goals {
		if p == g {
			return true
		}
	}
	return false
}

// Search runs A* from start to the nearest (by accumulated cost) pose in
// goals. cfg selects the primitive set (straight/turn costs, big-turn
// mode); logger receives debug traces of expansion counts.
func Search(
	grid *gridspace.Grid,
	start gridspace.GeometricPose,
	goals []gridspace.GeometricPose,
	cfg primitive.Set,
	logger logging.Logger,
) (Result, error) {
	if len(goals) == 0 {
		return Result{}, errors.New("search: empty goal set")
	}
	if isGoal(start, goals) {
		return Result{Path: []gridspace.GeometricPose{start}, Cost: 0}, nil
	}

	bestG := map[gridspace.GeometricPose]int{start: 0}
	startNode := &node{pose: start, g: 0, f: heuristic(start, goals), seq: 0}

	open := &openQueue{startNode}
	heap.Init(open)
	seq := 1
	expansions := 0

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		expansions++

		// A node may be pushed multiple times with stale g-scores; skip
		// any that no longer match the best known cost for this pose.
		if best, ok := bestG[current.pose]; ok && current.g > best {
			continue
		}

		if isGoal(current.pose, goals) {
			logger.Debugw("search succeeded", "expansions", expansions, "cost", current.g)
			return Result{Path: reconstruct(current), Cost: current.g}, nil
		}

		for _, edge := range primitive.Successors(grid, current.pose, cfg) {
			tentativeG := current.g + edge.Cost
			if existing, ok := bestG[edge.To]; ok && existing <= tentativeG {
				continue
			}
			bestG[edge.To] = tentativeG
			n := &node{
				pose:   edge.To,
				g:      tentativeG,
				f:      tentativeG + heuristic(edge.To, goals),
				parent: current,
				seq:    seq,
			}
			seq++
			heap.Push(open, n)
		}
	}

	logger.Debugw("search exhausted open set", "expansions", expansions)
	return Result{}, ErrUnreachable
}

func reconstruct(n *node) []gridspace.GeometricPose {
	var path []gridspace.GeometricPose
	for cur := n; cur != nil; cur = cur.parent {
		path = append([]gridspace.GeometricPose{cur.pose}, path...)
	}
	return path
}
