// Package solver implements the low-level constraint solver: the rawco
// constraint tree and the walk that applies it to a graph.Graph,
// destructively unifying and generalizing as it goes.
//
// The tree is a single flat, tagged struct rather than an interface with
// one concrete type per node kind, the way this repository's teacher
// shapes its own constraint type
// (internal/analyzer/constraints.go's Constraint{Kind, Left, Right,
// Trait, Args, Node}): one Kind field selects which of the other fields
// are meaningful, and the combinator API (the only code that builds these
// nodes) always populates exactly the right subset.
package solver

import "github.com/funvibe/coraline/internal/graph"

// TermVar is the abstract key of the typing environment a front end binds
// term variables under. Any comparable, stringable type works; the demo
// client uses a plain string wrapper.
type TermVar interface {
	String() string
}

// Range is an opaque source-location marker threaded through solving and
// attached to errors, but never interpreted by the solver itself. Any
// value works; nil means "unknown".
type Range any

// NodeKind tags which of Constraint's fields are populated.
type NodeKind int

const (
	KindTrue NodeKind = iota
	KindConj
	KindEq
	KindExist
	KindInstance
	KindDef
	KindLet
	KindRange
)

// Constraint is one node of the rawco tree built by the combinator API.
type Constraint struct {
	Kind NodeKind

	// Conj
	Left, Right *Constraint

	// Eq
	V1, V2 *graph.Var

	// Exist
	ExistVar *graph.Var
	Body     *Constraint

	// Instance
	TermVarKey  TermVar
	InstVar     *graph.Var
	WitnessHook *Hook[[]*graph.Var]

	// Def
	DefVar *graph.Var
	DefKey TermVar

	// Let
	Bindings []LetBinding
	C1, C2   *Constraint
	GenHook  *Hook[[]*graph.Var]

	// Range
	Rng Range
}

// LetBinding is one binding of a Let node: the term-variable key it binds,
// the fresh variable allocated for its body, and the hook its scheme is
// written to once Exit generalizes it.
type LetBinding struct {
	Key        TermVar
	Var        *graph.Var
	SchemeHook *Hook[graph.Scheme]
}

// True builds the trivially-satisfied constraint.
func True() *Constraint { return &Constraint{Kind: KindTrue} }

// Conj builds the conjunction of two constraints.
func Conj(c1, c2 *Constraint) *Constraint {
	return &Constraint{Kind: KindConj, Left: c1, Right: c2}
}

// Eq builds an equality constraint between two already-allocated
// variables.
func Eq(v1, v2 *graph.Var) *Constraint {
	return &Constraint{Kind: KindEq, V1: v1, V2: v2}
}

// Exist builds an existential binder around an already-allocated
// variable.
func Exist(v *graph.Var, body *Constraint) *Constraint {
	return &Constraint{Kind: KindExist, ExistVar: v, Body: body}
}

// Instance builds a use-site instantiation of key, unifying the
// instantiated scheme's root with v and recording the witness (the fresh
// variables substituted for the scheme's quantifiers) in hook.
func Instance(key TermVar, v *graph.Var, hook *Hook[[]*graph.Var]) *Constraint {
	return &Constraint{Kind: KindInstance, TermVarKey: key, InstVar: v, WitnessHook: hook}
}

// Def builds a monomorphic (non-generalizing) binding of key to v, scoped
// to body.
func Def(key TermVar, v *graph.Var, body *Constraint) *Constraint {
	return &Constraint{Kind: KindDef, DefKey: key, DefVar: v, Body: body}
}

// Let builds a generalizing binding: c1 is solved at a fresh, deeper rank
// with bindings registered, then each binding is generalized into a
// scheme (written to its SchemeHook) before c2 is solved with those
// schemes in scope. An empty bindings list opens no new rank scope at
// all; it merely sequences c1 then c2, which is what the combinator
// API's Let0 relies on to give a let-free program the shape Solve's
// entry point requires.
func Let(bindings []LetBinding, c1, c2 *Constraint, genHook *Hook[[]*graph.Var]) *Constraint {
	return &Constraint{Kind: KindLet, Bindings: bindings, C1: c1, C2: c2, GenHook: genHook}
}

// WithRange attaches a source range to body, used to annotate any error
// raised while solving it.
func WithRange(rng Range, body *Constraint) *Constraint {
	return &Constraint{Kind: KindRange, Rng: rng, Body: body}
}
