package graph

import (
	"fmt"

	"github.com/funvibe/coraline/structure"
)

// UnifyError reports that two variables carry structures with disagreeing
// head constructors or arities. The solver wraps this with a source range
// before it reaches a caller; the coraline package decodes V1/V2 into
// output.Ty before surfacing it.
type UnifyError struct {
	V1, V2 *Var
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify variable %d with variable %d", e.V1.id, e.V2.id)
}

// CycleError reports that unifying two variables would create a cyclic
// type while the graph's occurs check is enabled (Rectypes() == false).
type CycleError struct {
	V *Var
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic type at variable %d", e.V.id)
}

// MaxUnifyDepthError reports that unification recursed past the Graph's
// configured MaxUnifyDepth. Mirrors the parser's own recursion guard
// (internal/parser/expressions_core.go's `p.depth > MaxRecursionDepth`
// check): a depth counter compared against a configured bound, guarding
// against pathologically deep or wide input shapes rather than letting the
// recursive descent run unbounded.
type MaxUnifyDepthError struct {
	Depth int
}

func (e *MaxUnifyDepthError) Error() string {
	return fmt.Sprintf("unification recursion depth %d exceeds configured maximum", e.Depth)
}

// Unify merges a's and b's classes, recursively unifying their structures
// if both have one. It is idempotent: unifying a variable with itself (or
// with another already in its class) always succeeds without effect.
//
// The representative of the merged class is always the operand with the
// smaller generalization rank (ties broken by allocation id, lower id
// wins, for a deterministic survivor); this keeps the new class's rank at
// min(rank(a), rank(b)) for free, without a separate rank-lowering step
// at union time — lowering driven purely by structural reachability is
// still handled later, at Exit.
func (g *Graph) Unify(a, b *Var) error {
	return g.unify(a, b, 0)
}

func (g *Graph) unify(a, b *Var, depth int) error {
	if g.maxUnifyDepth > 0 && depth > g.maxUnifyDepth {
		return &MaxUnifyDepthError{Depth: depth}
	}

	ra, rb := Find(a), Find(b)
	if ra == rb {
		return nil
	}

	parent, child := ra, rb
	if rb.rank < ra.rank || (rb.rank == ra.rank && rb.id < ra.id) {
		parent, child = rb, ra
	}

	parentShape, childShape := parent.shape, child.shape

	// The union-find link itself is deferred until after a structure
	// mismatch is ruled out: linking first would mean Find(ra) == Find(rb)
	// by the time a UnifyError is built, so both operands would decode to
	// the same (already-merged) shape instead of their two conflicting
	// ones. Only the occurs-check path below needs the link already made,
	// since a cyclic type is only visible by walking the post-merge graph.
	switch {
	case parentShape != nil && childShape != nil:
		ok, err := structure.Conjunction(parentShape, childShape, func(c1, c2 any) error {
			v1, ok1 := c1.(*Var)
			v2, ok2 := c2.(*Var)
			if !ok1 || !ok2 {
				panic("graph: structure children must be *graph.Var")
			}
			return g.unify(v1, v2, depth+1)
		})
		if err != nil {
			return err
		}
		if !ok {
			return &UnifyError{V1: ra, V2: rb}
		}
	case childShape != nil:
		parent.shape = childShape
	}

	child.parent = parent

	if !g.rectypes && hasCycle(parent) {
		return &CycleError{V: parent}
	}
	return nil
}

// hasCycle reports whether a structural self-reference is reachable from
// start, via a tri-color DFS over the shape graph (white/unvisited,
// grey/on the current path, black/finished). Mirrors the visited-set
// cycle guard of internal/typesystem.ApplyWithCycleCheck, but as a local
// map rather than a threaded parameter, since no caller needs partial
// results mid-walk.
func hasCycle(start *Var) bool {
	const (
		white = iota
		grey
		black
	)
	color := map[*Var]int{}

	var visit func(v *Var) bool
	visit = func(v *Var) bool {
		r := Find(v)
		switch color[r] {
		case grey:
			return true
		case black:
			return false
		}
		color[r] = grey
		if s := r.shape; s != nil {
			for _, c := range s.Children() {
				if cv, ok := c.(*Var); ok {
					if visit(cv) {
						return true
					}
				}
			}
		}
		color[r] = black
		return false
	}
	return visit(start)
}
