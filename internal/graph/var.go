// Package graph implements the destructive union-find graph that backs
// the solver: descriptors carrying a generalization rank and an optional
// structural shape, linked by path-compressed union-find, plus the
// Rémy-style rank-based generalization engine built on top of them.
//
// Variables are heap-allocated descriptors reached through a pointer
// rather than indices into a side array: this is the way the teacher
// represents its own mutable graph nodes (internal/typesystem.TVar / TApp
// / ... are plain Go values linked by pointers, not indices into a side
// table). Aliasing hazards during recursive walks are avoided the same
// way the teacher avoids them for cyclic substitution: a local
// visited-set threaded through each walk
// (internal/typesystem/types.go's ApplyWithCycleCheck), never by
// forbidding mutation.
package graph

import "github.com/funvibe/coraline/structure"

// Var is a node in the union-find graph: a mutable descriptor carrying an
// id, an optional structural shape, and the generalization rank at which
// it currently lives.
type Var struct {
	id     uint64
	parent *Var // nil when this Var is its class's representative
	rank   int  // generalization rank (Rémy level); meaningless unless this Var is a representative
	shape  structure.Shape
}

// Find returns the canonical representative of v's class, compressing the
// path from v to its root as it goes.
func Find(v *Var) *Var {
	if v.parent == nil {
		return v
	}
	root := Find(v.parent)
	v.parent = root
	return root
}

// Same reports whether a and b are already in the same equivalence class.
func Same(a, b *Var) bool {
	return Find(a) == Find(b)
}

// ID returns the representative's allocation id, used by the decoder to
// mint a stable tyvar via output.Builder.TyVar.
func (v *Var) ID() uint64 {
	return Find(v).id
}

// Rank returns the representative's current generalization rank.
func Rank(v *Var) int {
	return Find(v).rank
}

// ShapeOf returns the representative's structure, or nil if the variable
// is still unbound.
func ShapeOf(v *Var) structure.Shape {
	return Find(v).shape
}
