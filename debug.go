package adorn

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
	overlayCount int
}

// debugLogger receives tree warnings from node operations, which have no
// Scene pointer. Set by SetDebugMode.
var debugLogger = zap.NewNop()

// debugLog logs timing and draw stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		zap.Duration("traverse", stats.traverseTime),
		zap.Duration("submit", stats.submitTime),
		zap.Duration("total", stats.traverseTime+stats.submitTime),
		zap.Int("commands", stats.commandCount),
		zap.Int("overlays", stats.overlayCount))
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("adorn debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugMaxTreeDepth is the depth above which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = logicalParent(p) {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree too deep",
			zap.Int("depth", depth), zap.Int("threshold", debugMaxTreeDepth), zap.String("node", n.Name))
	}
}

// debugMaxChildCount is the child count above which debugCheckChildCount warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("too many children",
			zap.String("node", n.Name), zap.Int("children", len(n.children)), zap.Int("threshold", debugMaxChildCount))
	}
}

// countOverlays counts the wrappers attached to the given layers.
func countOverlays(layers []*AdornerLayer) int {
	n := 0
	for _, l := range layers {
		n += l.Len()
	}
	return n
}
