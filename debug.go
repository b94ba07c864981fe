package cardstack

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int
}

// debugLog reports frame timings through the scene logger at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		"traverse", stats.traverseTime,
		"sort", stats.sortTime,
		"submit", stats.submitTime,
		"total", stats.traverseTime+stats.sortTime+stats.submitTime,
		"commands", stats.commandCount,
		"tweens", s.anim.Len(),
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Callers skip this unless debug mode is on.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("cardstack debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxTreeDepth is the depth beyond which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 32

// debugScene returns the scene whose tree n belongs to when that scene is in
// debug mode, or nil.
func debugScene(n *Node) *Scene {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	if root.scene != nil && root.scene.debug {
		return root.scene
	}
	return nil
}

// treeDepth counts n and its ancestors.
func treeDepth(n *Node) int {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// debugCheckTreeDepth logs a warning when n sits deeper than debugMaxTreeDepth.
func (s *Scene) debugCheckTreeDepth(n *Node) {
	if depth := treeDepth(n); depth > debugMaxTreeDepth {
		s.logger.Warn("tree depth exceeds limit", "node", n.Name, "depth", depth, "limit", debugMaxTreeDepth)
	}
}
