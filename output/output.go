// Package output defines the capability a front end implements to receive
// decoded types back from the solver: TyVar and Ty are opaque to the
// solver, and a Builder mints them from decoded shapes without the solver
// ever knowing their concrete representation.
package output

import "github.com/funvibe/coraline/structure"

// TyVar is a front-end's representation of a decoded type variable. The
// solver never inspects it; it only ever holds what Builder.TyVar
// returned.
type TyVar any

// Ty is a front-end's representation of a decoded type.
type Ty any

// Scheme is the user-facing decoded type scheme: a front end sees this
// instead of the solver's internal graph.Scheme once a Let binding has
// been generalized and decoded.
type Scheme struct {
	Quantifiers []TyVar
	Body        Ty
}

// Builder lets the decoder construct front-end Ty/TyVar values without
// knowing their concrete representation.
type Builder interface {
	// TyVar mints a tyvar for the descriptor id. Called with the same id
	// for the same underlying variable is expected to (though is not
	// required to) return an equal tyvar, so that decoding shared
	// variables twice reads naturally as "the same variable".
	TyVar(id uint64) TyVar

	// Variable builds the decoded type for a bare, unstructured variable.
	Variable(tv TyVar) Ty

	// Structure builds the decoded type for a shape whose children have
	// already been decoded into Ty values (or, for a Mu back-edge, a
	// Variable(tv) standing in for the cycle).
	Structure(shape structure.Shape) Ty

	// Mu closes a cycle detected during cyclic decoding: tv is bound
	// within body, which contains at least one Variable(tv).
	Mu(tv TyVar, body Ty) Ty
}
