// Command coraline-demo exercises the solver end to end: each scenario in
// this package builds a Constraint directly through the combinator API,
// the way a real front end would after elaborating its own surface
// syntax, without this module providing (or needing) a parser of its own.
package main

import (
	"fmt"

	"github.com/funvibe/coraline/internal/config"
	"github.com/funvibe/coraline/output"
	"github.com/funvibe/coraline/structure"
)

// arrowShape is a function type a -> b, the only non-nullary constructor
// this demo needs.
type arrowShape struct {
	Param, Result any
}

func (s arrowShape) Children() []any { return []any{s.Param, s.Result} }

func (s arrowShape) Rebuild(children []any) structure.Shape {
	return arrowShape{Param: children[0], Result: children[1]}
}

func (s arrowShape) SameHead(other structure.Shape) bool {
	_, ok := other.(arrowShape)
	return ok
}

// constShape is a nullary type constant such as Int or Bool.
type constShape struct {
	Name string
}

func (s constShape) Children() []any { return nil }

func (s constShape) Rebuild([]any) structure.Shape { return s }

func (s constShape) SameHead(other structure.Shape) bool {
	o, ok := other.(constShape)
	return ok && o.Name == s.Name
}

// tyVar is this demo's TyVar representation: just the descriptor id,
// printed as t<id>.
type tyVar struct {
	ID uint64
}

// String normalizes auto-generated variable names (t0, t1, t14, ...) to a
// stable placeholder in test mode, so scenario output is deterministic to
// compare against regardless of allocation order.
func (v tyVar) String() string {
	if config.IsTestMode {
		return "t?"
	}
	return fmt.Sprintf("t%d", v.ID)
}

// ty is this demo's Ty representation.
type ty interface {
	fmt.Stringer
}

type varTy struct{ V tyVar }

func (t varTy) String() string { return t.V.String() }

type arrowTy struct{ Param, Result output.Ty }

func (t arrowTy) String() string { return fmt.Sprintf("(%v -> %v)", t.Param, t.Result) }

type constTy struct{ Name string }

func (t constTy) String() string { return t.Name }

type muTy struct {
	V    tyVar
	Body output.Ty
}

func (t muTy) String() string { return fmt.Sprintf("(mu %v. %v)", t.V, t.Body) }

// builder is this demo's output.Builder: it knows only about arrowShape
// and constShape, the two constructors this demo's scenarios use.
type builder struct{}

func (builder) TyVar(id uint64) output.TyVar { return tyVar{ID: id} }

func (builder) Variable(tv output.TyVar) output.Ty { return varTy{V: tv.(tyVar)} }

func (builder) Structure(shape structure.Shape) output.Ty {
	switch s := shape.(type) {
	case arrowShape:
		return arrowTy{Param: s.Param, Result: s.Result}
	case constShape:
		return constTy{Name: s.Name}
	default:
		panic(fmt.Sprintf("coraline-demo: unknown shape %T", shape))
	}
}

func (builder) Mu(tv output.TyVar, body output.Ty) output.Ty {
	return muTy{V: tv.(tyVar), Body: body}
}

// name is this demo's TermVar: term variables are just identifier
// strings.
type name string

func (n name) String() string { return string(n) }
