package solver

import (
	"fmt"

	"github.com/funvibe/coraline/internal/graph"
)

// UnboundError reports a use of a term variable with no binding in scope.
type UnboundError struct {
	Name string
	Rng  Range
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("unbound identifier %q", e.Name)
}

// UnifyError reports a structural mismatch between two variables' types.
// V1 and V2 are raw graph variables; the coraline package decodes them
// (with the cyclic decoder, since the graph may still contain cycles even
// when this solve ultimately fails) before handing the error to a caller.
type UnifyError struct {
	V1, V2 *graph.Var
	Rng    Range
}

func (e *UnifyError) Error() string {
	return "type mismatch"
}

// CycleError reports that the occurs check rejected a cyclic type.
type CycleError struct {
	V   *graph.Var
	Rng Range
}

func (e *CycleError) Error() string {
	return "cyclic type"
}

// MaxUnifyDepthError reports that unification recursed past the Graph's
// configured MaxUnifyDepth.
type MaxUnifyDepthError struct {
	Depth int
	Rng   Range
}

func (e *MaxUnifyDepthError) Error() string {
	return fmt.Sprintf("unification recursion depth %d exceeds configured maximum", e.Depth)
}

// wrapRange lifts a graph-level error into its solver-level counterpart,
// attaching the range active when it was raised. Any other error (there
// are none today, but a front end's onUnify callback inside a custom
// structure.Shape could in principle return one) passes through
// unchanged.
func wrapRange(rng Range, err error) error {
	switch e := err.(type) {
	case *graph.UnifyError:
		return &UnifyError{V1: e.V1, V2: e.V2, Rng: rng}
	case *graph.CycleError:
		return &CycleError{V: e.V, Rng: rng}
	case *graph.MaxUnifyDepthError:
		return &MaxUnifyDepthError{Depth: e.Depth, Rng: rng}
	default:
		return err
	}
}
