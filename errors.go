package coraline

import (
	"errors"
	"fmt"

	"github.com/funvibe/coraline/internal/decode"
	"github.com/funvibe/coraline/internal/solver"
	"github.com/funvibe/coraline/output"
)

// UnboundError reports a use of a term variable with no binding in scope.
// Mirrors the shape of the teacher's own typed errors
// (internal/typesystem/error.go's SymbolNotFoundError): a small struct
// implementing error.
type UnboundError struct {
	Name  string
	Range Range
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("unbound identifier %q", e.Name)
}

// UnifyError reports a structural mismatch between two decoded types.
type UnifyError struct {
	Left, Right output.Ty
	Range       Range
}

func (e *UnifyError) Error() string {
	return "type mismatch"
}

// CycleError reports that the occurs check rejected a cyclic type. Type
// is decoded with the cyclic decoder regardless of the graph's own
// rectypes setting, since the mismatch is precisely that a cycle was
// found while rectypes was off.
type CycleError struct {
	Type  output.Ty
	Range Range
}

func (e *CycleError) Error() string {
	return "cyclic type"
}

// MaxUnifyDepthError reports that unification recursed past the Graph's
// configured MaxUnifyDepth (see config.SolverOptions.MaxUnifyDepth).
type MaxUnifyDepthError struct {
	Depth int
	Range Range
}

func (e *MaxUnifyDepthError) Error() string {
	return fmt.Sprintf("unification recursion depth %d exceeds configured maximum", e.Depth)
}

// ProtocolError is the error type for misuse of the combinator API itself
// rather than a front end's input program, and is never returned from
// Solve. No code path in this module panics with a ProtocolError value:
// hook misuse and a constraint not built with Let0 panic with plain
// strings, and neither solving a graph twice nor a custom structure.Shape
// whose Children/Rebuild disagree in length is detected.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "coraline: protocol error: " + e.Reason
}

// decodeSolveError translates a solver-level error (carrying raw graph
// variables) into its public, decoded counterpart. solver.Solve wraps its
// errors with a correlation id via fmt.Errorf's %w, so this unwraps with
// errors.As rather than a direct type switch. Errors are always decoded
// with the cyclic decoder: the graph may still contain a cycle introduced
// by the very unification that failed, even when the overall Graph's
// rectypes setting is false.
func decodeSolveError(b output.Builder, err error) error {
	var unbound *solver.UnboundError
	if errors.As(err, &unbound) {
		return &UnboundError{Name: unbound.Name, Range: unbound.Rng}
	}
	var unify *solver.UnifyError
	if errors.As(err, &unify) {
		return &UnifyError{
			Left:  decode.Cyclic(b, unify.V1),
			Right: decode.Cyclic(b, unify.V2),
			Range: unify.Rng,
		}
	}
	var cycle *solver.CycleError
	if errors.As(err, &cycle) {
		return &CycleError{
			Type:  decode.Cyclic(b, cycle.V),
			Range: cycle.Rng,
		}
	}
	var maxDepth *solver.MaxUnifyDepthError
	if errors.As(err, &maxDepth) {
		return &MaxUnifyDepthError{Depth: maxDepth.Depth, Range: maxDepth.Rng}
	}
	return err
}
