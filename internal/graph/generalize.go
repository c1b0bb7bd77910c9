package graph

// Scheme is the internal, not-yet-decoded representation of a
// let-generalized type: the root of its body graph, plus the subset of
// variables reachable from that root that are quantified (bound) by this
// scheme rather than shared with an enclosing scope.
//
// Only bare (structureless) variables become Quantifiers. A variable that
// already carries a structure is never itself a quantifier — it is part
// of the scheme's skeleton, decoded in place as part of Root — but it is
// still walked during generalization and instantiation so that the bare
// variables nested beneath it are found. This is the classical
// Hindley-Milner reading of "generalizable": a concrete type constructor
// doesn't get universally quantified, only the variables occurring in it
// do.
type Scheme struct {
	Quantifiers []*Var
	Root        *Var
}

// ExitPool pops the current (topmost) pool, generalizing each of roots
// into a Scheme, and returns the union of all variables quantified across
// every scheme — the set a front end may want to report to its caller
// (e.g. to elaborate explicit type abstractions).
//
// This implements the generalization engine's exit algorithm:
//  1. Adjust: walk every variable reachable from the pool, memoized, and
//     lower each one's rank to the max rank of its structural children
//     (never raising it). A variable whose rank drops below the rank
//     being exited is transferred into the pool at its new, lower rank —
//     it has escaped this scope and belongs to an enclosing one.
//  2. Partition: after adjustment, the variables still at the rank being
//     exited are this scope's generalization candidates.
//  3. For each root, walk outward from it (stopping at any variable that
//     is not a candidate, since by the invariant restored in step 1
//     nothing reachable beyond it could be a candidate either) and
//     collect the bare-variable candidates reachable from it into that
//     root's Quantifiers.
//  4. Collect the union of all per-root Quantifiers as the reported
//     generalizable set.
//  5. Pop the pool.
func (g *Graph) ExitPool(roots []*Var) (schemes []Scheme, generalizable []*Var) {
	currentRank := g.CurrentPoolRank()
	pool := g.pools[currentRank]

	adjusted := map[*Var]bool{}
	var adjust func(v *Var) int
	adjust = func(v *Var) int {
		r := Find(v)
		if adjusted[r] {
			return r.rank
		}
		adjusted[r] = true
		if r.shape != nil {
			maxChild := -1
			for _, c := range r.shape.Children() {
				cv, ok := c.(*Var)
				if !ok {
					continue
				}
				if cr := adjust(cv); cr > maxChild {
					maxChild = cr
				}
			}
			if maxChild >= 0 && maxChild < r.rank {
				r.rank = maxChild
			}
		}
		if r.rank < currentRank {
			g.pools[r.rank] = append(g.pools[r.rank], r)
		}
		return r.rank
	}

	seen := map[*Var]bool{}
	for _, v := range pool {
		r := Find(v)
		if !seen[r] {
			seen[r] = true
			adjust(r)
		}
	}

	candidates := map[*Var]bool{}
	for v := range adjusted {
		r := Find(v)
		if r.rank == currentRank {
			candidates[r] = true
		}
	}

	genSet := map[*Var]bool{}
	schemes = make([]Scheme, len(roots))
	for i, root := range roots {
		qs := reachableQuantifiers(root, candidates)
		schemes[i] = Scheme{Quantifiers: qs, Root: root}
		for _, q := range qs {
			genSet[q] = true
		}
	}
	for v := range genSet {
		generalizable = append(generalizable, v)
	}

	g.pools = g.pools[:currentRank]
	return schemes, generalizable
}

// reachableQuantifiers walks the structure reachable from root and
// collects the bare variables among candidates. It stops descending past
// any variable absent from candidates: such a variable has already
// escaped to an enclosing rank, and the rank invariant guarantees nothing
// reachable only through it could belong to the rank being exited.
func reachableQuantifiers(root *Var, candidates map[*Var]bool) []*Var {
	visited := map[*Var]bool{}
	var qs []*Var
	var walk func(v *Var)
	walk = func(v *Var) {
		r := Find(v)
		if visited[r] {
			return
		}
		visited[r] = true
		if !candidates[r] {
			return
		}
		if r.shape == nil {
			qs = append(qs, r)
			return
		}
		for _, c := range r.shape.Children() {
			if cv, ok := c.(*Var); ok {
				walk(cv)
			}
		}
	}
	walk(root)
	return qs
}

// Instantiate copies the part of scheme's skeleton that transitively
// contains a quantified variable, substituting a fresh variable for each
// quantifier, and sharing everything else verbatim. It returns the
// instantiated root and the list of fresh substitutes, in the same order as
// scheme.Quantifiers (the "witness" of spec-level Instance constraints).
//
// Instantiate always runs during solving, never during construction, so its
// fresh variables are stamped with the current solve-time pool rank
// (CurrentPoolRank) rather than the construction-time depth Fresh would
// otherwise use — by the time any KindInstance node is walked, depth has
// long since unwound back to its resting value, which would wrongly stamp
// every instantiation as belonging to the outermost scope regardless of how
// deeply the Instance itself is nested. Each fresh variable, and each copied
// node (including a copied root), is registered into that rank's pool so
// that an enclosing Let's own ExitPool sees them as live candidates rather
// than as already escaped to an outer scope. A root with no quantifier
// beneath it is returned uncopied, keeps its own rank, and is registered
// in the pool of that rank.
func (g *Graph) Instantiate(scheme Scheme) (*Var, []*Var) {
	rank := g.CurrentPoolRank()

	quantSet := map[*Var]bool{}
	subst := map[*Var]*Var{}
	fresh := make([]*Var, len(scheme.Quantifiers))
	for i, q := range scheme.Quantifiers {
		r := Find(q)
		quantSet[r] = true
		fv := g.Fresh(nil)
		fv.rank = rank
		g.Register(fv)
		subst[r] = fv
		fresh[i] = fv
	}

	contains := schemeContainsQuantifier(scheme.Root, quantSet)

	copied := map[*Var]*Var{}
	var copyVar func(v *Var) *Var
	copyVar = func(v *Var) *Var {
		r := Find(v)
		if nv, ok := subst[r]; ok {
			return nv
		}
		if !contains[r] {
			return r
		}
		if nv, ok := copied[r]; ok {
			return nv
		}
		placeholder := g.Fresh(nil)
		placeholder.rank = rank
		g.Register(placeholder)
		copied[r] = placeholder
		children := r.shape.Children()
		newChildren := make([]any, len(children))
		for i, c := range children {
			if cv, ok := c.(*Var); ok {
				newChildren[i] = copyVar(cv)
			} else {
				newChildren[i] = c
			}
		}
		placeholder.shape = r.shape.Rebuild(newChildren)
		return placeholder
	}

	root := copyVar(scheme.Root)
	g.Register(root)
	return root, fresh
}

// schemeContainsQuantifier marks, for every variable reachable from root,
// whether a quantified variable occurs somewhere beneath it (or is it).
// Memoized so cyclic structures (rectypes mode) terminate.
func schemeContainsQuantifier(root *Var, quantSet map[*Var]bool) map[*Var]bool {
	contains := map[*Var]bool{}
	visiting := map[*Var]bool{}
	var walk func(v *Var) bool
	walk = func(v *Var) bool {
		r := Find(v)
		if done, ok := contains[r]; ok {
			return done
		}
		if visiting[r] {
			// Back-edge in a recursive type: assume no new quantifier is
			// introduced along it: its contribution is already pending in
			// an enclosing call.
			return false
		}
		visiting[r] = true
		if quantSet[r] {
			contains[r] = true
			return true
		}
		found := false
		if r.shape != nil {
			for _, c := range r.shape.Children() {
				if cv, ok := c.(*Var); ok {
					if walk(cv) {
						found = true
					}
				}
			}
		}
		contains[r] = found
		return found
	}
	walk(root)
	return contains
}
