package lumen

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and command metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
}

// debugLog writes draw timing and command stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("draw",
		zap.Duration("traverse", stats.traverseTime),
		zap.Duration("submit", stats.submitTime),
		zap.Duration("total", stats.traverseTime+stats.submitTime),
		zap.Int("commands", stats.commandCount))
}

// debugLogger receives tree warnings from node operations, which have no
// scene pointer. It follows the logger of the scene that last enabled debug
// mode.
var debugLogger = zap.NewNop()

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("lumen debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if tree depth exceeds debugMaxTreeDepth.
func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			zap.String("node", n.Name),
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth))
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns if a node has more than debugMaxChildCount children.
func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("child count exceeds threshold",
			zap.String("node", n.Name),
			zap.Int("children", len(n.children)),
			zap.Int("threshold", debugMaxChildCount))
	}
}
