// Package structure defines the capability a front end must implement for
// its first-order type constructors ("arrow(a,a)", "tuple[a...]", and so
// on) so the solver can unify and decode them without knowing their shape
// in advance.
package structure

// Shape is the capability interface for one type constructor.
//
// The solver never type-switches on a concrete constructor. It only asks a
// Shape for its children, asks for a rebuilt copy with new children, and
// asks whether two shapes agree on their head constructor and arity. This
// realizes a type-constructor functor's map and conjunction the way this
// repository's teacher realizes its own Type variants (TApp, TFunc, TTuple,
// ...): a flat interface whose children are carried as `any` and recovered
// by the concrete implementation's own accessors, rather than by a second
// Go generic type parameter (interface methods can't introduce new type
// parameters, so a literal `map : (a -> b) -> S[a] -> S[b]` signature isn't
// expressible as a Shape method; Rebuild plays that role instead, called
// once per phase with that phase's own child values).
type Shape interface {
	// Children returns the shape's child slots in the canonical order used
	// by Rebuild and by SameHead's pairwise comparison. During unification
	// children are *graph.Var; during decoding they are whatever concrete
	// payload the decoder's Map call is currently switching children to
	// (e.g. a freshly decoded output.Ty).
	Children() []any

	// Rebuild returns a copy of the shape with Children() replaced in
	// order. It must not mutate the receiver.
	Rebuild(children []any) Shape

	// SameHead reports whether other has the same head constructor and
	// arity as the receiver, ignoring children. A false result means the
	// two shapes can never unify regardless of their children.
	SameHead(other Shape) bool
}

// Map applies f to every child of s and rebuilds s from the results. This
// is the structure functor's `map : (a -> b) -> S[a] -> S[b]`.
func Map(f func(any) any, s Shape) Shape {
	children := s.Children()
	mapped := make([]any, len(children))
	for i, c := range children {
		mapped[i] = f(c)
	}
	return s.Rebuild(mapped)
}

// Conjunction merges two shapes with the same head by unifying their
// children pairwise through onUnify, in the order returned by Children.
// It reports a head/arity mismatch via ok=false without invoking onUnify.
//
// The caller (the unifier) supplies onUnify; Conjunction's job is purely
// structural matching: recursively demand unify(child_i_of_s1,
// child_i_of_s2), and fail if the top constructors disagree.
func Conjunction(s1, s2 Shape, onUnify func(c1, c2 any) error) (ok bool, err error) {
	if !s1.SameHead(s2) {
		return false, nil
	}
	c1, c2 := s1.Children(), s2.Children()
	if len(c1) != len(c2) {
		return false, nil
	}
	for i := range c1 {
		if err := onUnify(c1[i], c2[i]); err != nil {
			return true, err
		}
	}
	return true, nil
}
