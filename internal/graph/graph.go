package graph

import "github.com/funvibe/coraline/structure"

// Graph owns every descriptor created during one constraint-construction-
// and-solve session: the id counter, the rectypes flag, and the two
// mechanisms that track scope nesting.
//
// Scope nesting is tracked twice, deliberately, because it serves two
// different phases:
//
//   - depth is a plain counter bumped by EnterDepth/ExitDepth while the
//     combinator API is *building* a Constraint tree. It stamps each
//     freshly allocated Var with the rank it is lexically nested at, the
//     moment it is allocated.
//   - pools is populated later, while the low-level solver *walks* the
//     already-built tree: BeginSolve/EnterPool/Register/ExitPool
//     reconstruct, one rank at a time, which variables are still live
//     candidates for generalization once their rank (possibly lowered by
//     unification in the meantime) is known for certain.
//
// The split exists because Exit's generalization decision needs each
// variable's *post-unification* rank, which isn't settled until the
// solver actually walks and unifies the tree — long after the tree was
// built. Folding both into one "current rank" counter would make Exit
// see ranks that haven't been unified yet.
type Graph struct {
	nextID   uint64
	rectypes bool

	depth int

	pools [][]*Var

	maxUnifyDepth int
}

// New creates a Graph. rectypes selects whether the occurs check rejects
// cyclic types (false) or allows them, producing mu-types at decode time
// (true).
func New(rectypes bool) *Graph {
	return &Graph{rectypes: rectypes}
}

// Rectypes reports whether this graph tolerates cyclic types.
func (g *Graph) Rectypes() bool { return g.rectypes }

// SetMaxUnifyDepth bounds how deeply Unify may recurse into nested
// structures before giving up with a MaxUnifyDepthError, guarding against
// pathological input shapes. Zero (the default) means unbounded.
func (g *Graph) SetMaxUnifyDepth(n int) { g.maxUnifyDepth = n }

// Fresh allocates a new singleton class at the current construction
// depth, with the given (possibly nil) structure.
func (g *Graph) Fresh(shape structure.Shape) *Var {
	v := &Var{id: g.nextID, rank: g.depth, shape: shape}
	g.nextID++
	return v
}

// EnterDepth records that the combinator API is about to build the
// bindings of a new Let scope; fresh variables allocated until the
// matching ExitDepth are stamped with the deeper rank.
func (g *Graph) EnterDepth() { g.depth++ }

// ExitDepth restores the construction depth after a Let scope's bindings
// have been built.
func (g *Graph) ExitDepth() { g.depth-- }

// CurrentDepth returns the construction-time nesting depth.
func (g *Graph) CurrentDepth() int { return g.depth }

// BeginSolve initializes the solve-time pool stack. Called once, by
// solver.Solve, before walking the root constraint.
func (g *Graph) BeginSolve() {
	g.pools = [][]*Var{nil}
}

// EnterPool pushes a new, empty pool, mirroring a Let node's scope as the
// solver walks into it.
func (g *Graph) EnterPool() {
	g.pools = append(g.pools, nil)
}

// CurrentPoolRank returns the solve-time pool stack's depth.
func (g *Graph) CurrentPoolRank() int { return len(g.pools) - 1 }

// Register records v as a live candidate in the pool matching its
// current rank, called by the solver whenever it walks an Exist node or a
// Let binding.
func (g *Graph) Register(v *Var) {
	r := Find(v).rank
	for r >= len(g.pools) {
		g.pools = append(g.pools, nil)
	}
	g.pools[r] = append(g.pools[r], v)
}
