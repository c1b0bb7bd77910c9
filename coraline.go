// Package coraline is the public combinator API over the constraint
// solver: building a Co[T] value describes a piece of a constraint
// together with how to decode the solver's result into a T, and Solve
// runs it.
//
// This is the applicative surface a front end is expected to use
// directly; internal/solver and internal/decode are implementation detail
// reached only through this package and output/structure. Combinator
// callbacks receive internal/graph's *Var values, so code that names that
// type imports internal/graph as well.
package coraline

import (
	"github.com/funvibe/coraline/internal/decode"
	"github.com/funvibe/coraline/internal/graph"
	"github.com/funvibe/coraline/internal/solver"
	"github.com/funvibe/coraline/output"
)

// Graph is the mutable session a front end builds one Co[T] tree against
// and eventually passes to Solve. Re-exported from internal/graph; the
// variables it allocates are internal/graph's *Var, which combinator
// callbacks name directly.
type Graph = graph.Graph

// NewGraph creates a session. rectypes selects whether the occurs check
// rejects cyclic types (false) or tolerates them, producing mu-types at
// decode time (true). A Graph is good for exactly one Solve call.
func NewGraph(rectypes bool) *Graph {
	return graph.New(rectypes)
}

// TermVar is the abstract key of the typing environment a front end binds
// term variables under.
type TermVar = solver.TermVar

// Range is an opaque source-location marker threaded through solving and
// attached to errors, never interpreted by the solver.
type Range = solver.Range

// Decoder is handed to a Co[T]'s continuation once solving succeeds; it
// decodes internal graph state into front-end output.Ty/output.Scheme
// values via the Builder supplied to Solve.
type Decoder struct {
	b        output.Builder
	rectypes bool
}

// DecodeVar decodes a solved variable into the front end's Ty
// representation, using the cyclic or acyclic decoder depending on the
// Graph's rectypes setting.
func (d Decoder) DecodeVar(v *graph.Var) output.Ty {
	if d.rectypes {
		return decode.Cyclic(d.b, v)
	}
	return decode.Acyclic(d.b, v)
}

// DecodeScheme decodes a solved scheme into the front end's Scheme
// representation.
func (d Decoder) DecodeScheme(s graph.Scheme) output.Scheme {
	return decode.Scheme(d.b, d.rectypes, s)
}

// Co pairs a constraint fragment with the continuation that decodes the
// solver's result into a T once it succeeds. There is deliberately no
// Bind: a continuation never observes solved values while the tree is
// being built, only afterward, through a Decoder — the combinator API is
// applicative, not monadic, exactly spec'd in terms of "the constraint's
// shape must be knowable before solving starts".
type Co[T any] struct {
	c    *solver.Constraint
	cont func(Decoder) T
}
