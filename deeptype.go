package coraline

import (
	"github.com/funvibe/coraline/internal/graph"
	"github.com/funvibe/coraline/structure"
)

// DeepType is a finite, user-supplied tree describing a type without
// building it up through nested Exist/Construct calls by hand: a leaf is
// an already-existing variable, an interior node is a structure.Shape
// whose children are themselves DeepType values. Build turns one into a
// chain of fresh variables and hands the root to its continuation.
type DeepType interface {
	isDeepType()
}

// DeepVar is a DeepType leaf wrapping an already-allocated variable
// (typically one bound by an enclosing Exist, LetN, or Def).
type DeepVar struct {
	V *graph.Var
}

func (DeepVar) isDeepType() {}

// DeepStruct is a DeepType interior node: Shape's Children() must all be
// DeepType values, which are recursively materialized into fresh
// variables before Shape is rebuilt with them.
type DeepStruct struct {
	Shape structure.Shape
}

func (DeepStruct) isDeepType() {}

// Var builds a DeepType leaf from an existing variable.
func Var(v *graph.Var) DeepType { return DeepVar{V: v} }

// Ctor builds a DeepType interior node from a shape whose children are
// themselves DeepType values.
func Ctor(shape structure.Shape) DeepType { return DeepStruct{Shape: shape} }

// Build materializes deep into a chain of fresh variables (one per
// DeepStruct node, each carrying its Shape rebuilt with its children's
// materialized variables) and calls k with the root.
func Build[T any](g *Graph, deep DeepType, k func(v *graph.Var) Co[T]) Co[T] {
	return k(materialize(g, deep))
}

func materialize(g *Graph, deep DeepType) *graph.Var {
	switch d := deep.(type) {
	case DeepVar:
		return d.V
	case DeepStruct:
		children := d.Shape.Children()
		newChildren := make([]any, len(children))
		for i, c := range children {
			dc, ok := c.(DeepType)
			if !ok {
				panic("coraline: DeepStruct child must be a DeepType")
			}
			newChildren[i] = materialize(g, dc)
		}
		return g.Fresh(d.Shape.Rebuild(newChildren))
	default:
		panic("coraline: unknown DeepType implementation")
	}
}
