// Package decode converts solved graph.Var values into front-end
// output.Ty/output.Scheme values, in the two modes spec'd for the
// solver's result: acyclic (assumes no cycle is reachable, as guaranteed
// by the occurs check) and cyclic (detects back-edges and closes them
// with a Mu binder).
package decode

import (
	"github.com/funvibe/coraline/internal/graph"
	"github.com/funvibe/coraline/output"
	"github.com/funvibe/coraline/structure"
)

// Acyclic decodes v assuming its structure contains no cycle. Shared
// substructure is decoded once and reused (memoized by representative),
// but nothing is done to detect or close a cycle — calling this on a
// cyclic graph recurses without bound until the goroutine's stack is
// exhausted, which is the caller's bug, not this
// function's concern (rectypes must be false, and the occurs check relied
// upon, for that invariant to hold).
func Acyclic(b output.Builder, v *graph.Var) output.Ty {
	memo := map[*graph.Var]output.Ty{}
	var walk func(v *graph.Var) output.Ty
	walk = func(v *graph.Var) output.Ty {
		r := graph.Find(v)
		if ty, ok := memo[r]; ok {
			return ty
		}
		var ty output.Ty
		if graph.ShapeOf(r) == nil {
			ty = b.Variable(b.TyVar(r.ID()))
		} else {
			mapped := structure.Map(func(c any) any {
				if cv, ok := c.(*graph.Var); ok {
					return walk(cv)
				}
				return c
			}, graph.ShapeOf(r))
			ty = b.Structure(mapped)
		}
		memo[r] = ty
		return ty
	}
	return walk(v)
}

// Cyclic decodes v, detecting back-edges via a tri-color walk and closing
// each one with a Mu binder around a fresh tyvar. Safe to call whether or
// not v actually contains a cycle; it is the decoder error payloads are
// always run through (spec: "error arguments are always decoded with the
// cyclic decoder", since an ill-typed program's partially-solved graph may
// still contain cycles even when the overall solve ultimately fails).
func Cyclic(b output.Builder, v *graph.Var) output.Ty {
	const (
		white = iota
		grey
		black
	)
	color := map[*graph.Var]int{}
	memo := map[*graph.Var]output.Ty{}
	muVar := map[*graph.Var]output.TyVar{}

	var walk func(v *graph.Var) output.Ty
	walk = func(v *graph.Var) output.Ty {
		r := graph.Find(v)
		if ty, ok := memo[r]; ok {
			return ty
		}
		if color[r] == grey {
			tv, ok := muVar[r]
			if !ok {
				tv = b.TyVar(r.ID())
				muVar[r] = tv
			}
			return b.Variable(tv)
		}

		color[r] = grey
		var ty output.Ty
		if graph.ShapeOf(r) == nil {
			ty = b.Variable(b.TyVar(r.ID()))
		} else {
			mapped := structure.Map(func(c any) any {
				if cv, ok := c.(*graph.Var); ok {
					return walk(cv)
				}
				return c
			}, graph.ShapeOf(r))
			ty = b.Structure(mapped)
		}
		color[r] = black

		if tv, ok := muVar[r]; ok {
			ty = b.Mu(tv, ty)
		}
		memo[r] = ty
		return ty
	}
	return walk(v)
}

// Scheme decodes a graph.Scheme into an output.Scheme, using Cyclic for
// the body when rectypes is true and Acyclic otherwise. Quantifiers are
// always bare variables (graph.ExitPool's invariant), so they are decoded
// directly into tyvars without going through a full structural decode.
func Scheme(b output.Builder, rectypes bool, s graph.Scheme) output.Scheme {
	qs := make([]output.TyVar, len(s.Quantifiers))
	for i, q := range s.Quantifiers {
		qs[i] = b.TyVar(graph.Find(q).ID())
	}
	var body output.Ty
	if rectypes {
		body = Cyclic(b, s.Root)
	} else {
		body = Acyclic(b, s.Root)
	}
	return output.Scheme{Quantifiers: qs, Body: body}
}
