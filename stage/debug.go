package stage

import (
	"fmt"
	"os"
)

// globalDebug gates the tree-depth check in Actor.AddChild, mirroring the
// teacher's globalDebug/SetDebugMode switch.
var globalDebug bool

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold,
// adapted from the teacher's debugCheckTreeDepth.
func debugCheckTreeDepth(a *Actor) {
	depth := 0
	for p := a; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		fmt.Fprintf(os.Stderr, "[stage] warning: tree depth %d exceeds %d (actor %q)\n",
			depth, debugMaxTreeDepth, a.Name)
	}
}

// debugLogHit reports a hit-test result when the owning Stage is in debug
// mode, adapted from the teacher's debugLog.
func (s *Stage) debugLogHit(x, y float64, a *Actor) {
	if !s.debug {
		return
	}
	name := "<none>"
	if a != nil {
		name = a.Name
	}
	fmt.Fprintf(os.Stderr, "[stage] hit test (%.1f, %.1f) -> %s\n", x, y, name)
}
