package graph

import "testing"

// TestExitPoolGeneralizesBareVariable models `let id = fun x -> x in ...`:
// x is allocated at the deeper rank, unified with itself on both sides of
// the arrow (giving Arrow(x, x)), registered at the deeper rank, and
// should be generalized into id's scheme's sole quantifier.
func TestExitPoolGeneralizesBareVariable(t *testing.T) {
	g := New(false)
	g.EnterDepth()
	x := g.Fresh(nil)
	root := g.Fresh(pairShape{A: x, B: x})
	g.ExitDepth()

	g.BeginSolve()
	g.EnterPool()
	g.Register(x)
	g.Register(root)

	schemes, generalizable := g.ExitPool([]*Var{root})
	if len(schemes) != 1 {
		t.Fatalf("len(schemes) = %d, want 1", len(schemes))
	}
	if len(schemes[0].Quantifiers) != 1 || Find(schemes[0].Quantifiers[0]) != Find(x) {
		t.Fatalf("scheme quantifiers = %v, want [x]", schemes[0].Quantifiers)
	}
	if len(generalizable) != 1 || Find(generalizable[0]) != Find(x) {
		t.Fatalf("generalizable = %v, want [x]", generalizable)
	}
}

// TestExitPoolNeverQuantifiesStructuredVariables checks that a candidate
// variable carrying a shape is walked through but never itself added as a
// quantifier — only the bare variables reachable beneath it are.
func TestExitPoolNeverQuantifiesStructuredVariables(t *testing.T) {
	g := New(false)
	g.EnterDepth()
	inner := g.Fresh(nil)
	intLeaf := g.Fresh(leafShape{Name: "Int"})
	structured := g.Fresh(pairShape{A: inner, B: intLeaf})
	root := g.Fresh(pairShape{A: structured, B: structured})
	g.ExitDepth()

	g.BeginSolve()
	g.EnterPool()
	g.Register(inner)
	g.Register(structured)
	g.Register(root)

	schemes, _ := g.ExitPool([]*Var{root})
	qs := schemes[0].Quantifiers
	if len(qs) != 1 || Find(qs[0]) != Find(inner) {
		t.Fatalf("quantifiers = %v, want [inner]; structured must not be quantified itself", qs)
	}
}

// TestExitPoolDoesNotGeneralizeVariableFromEnclosingScope models a variable
// allocated deep whose structure reaches only a bare variable of an
// enclosing scope: adjust must lower it to that scope's rank, so nothing
// is generalized at the rank being exited.
func TestExitPoolDoesNotGeneralizeVariableFromEnclosingScope(t *testing.T) {
	g := New(false)
	outer := g.Fresh(nil) // rank 0, belongs to an enclosing scope

	g.EnterDepth()
	root := g.Fresh(pairShape{A: outer, B: outer})
	g.ExitDepth()

	g.BeginSolve()
	g.EnterPool()
	g.Register(root)
	// outer is NOT registered at this pool: it belongs to rank 0, the
	// enclosing scope, even though root (which references it) was built
	// at rank 1. adjust must discover this through root's structure and
	// lower root's own rank to match, transferring it out of this pool.

	schemes, generalizable := g.ExitPool([]*Var{root})
	if len(schemes[0].Quantifiers) != 0 {
		t.Fatalf("quantifiers = %v, want none: outer belongs to an enclosing scope", schemes[0].Quantifiers)
	}
	if len(generalizable) != 0 {
		t.Fatalf("generalizable = %v, want none", generalizable)
	}
}

// TestExitPoolSharesQuantifierAcrossSiblingRoots models two sibling
// let-bindings in one LetN call whose bodies both reach the same bare
// variable: it must be generalized once, and both schemes' quantifier
// lists should refer to it.
func TestExitPoolSharesQuantifierAcrossSiblingRoots(t *testing.T) {
	g := New(false)
	g.EnterDepth()
	shared := g.Fresh(nil)
	rootA := g.Fresh(pairShape{A: shared, B: g.Fresh(leafShape{Name: "Int"})})
	rootB := g.Fresh(pairShape{A: shared, B: g.Fresh(leafShape{Name: "Bool"})})
	g.ExitDepth()

	g.BeginSolve()
	g.EnterPool()
	g.Register(shared)
	g.Register(rootA)
	g.Register(rootB)

	schemes, generalizable := g.ExitPool([]*Var{rootA, rootB})
	if len(schemes) != 2 {
		t.Fatalf("len(schemes) = %d, want 2", len(schemes))
	}
	if len(schemes[0].Quantifiers) != 1 || len(schemes[1].Quantifiers) != 1 {
		t.Fatalf("expected exactly one quantifier per sibling scheme, got %v and %v", schemes[0].Quantifiers, schemes[1].Quantifiers)
	}
	if Find(schemes[0].Quantifiers[0]) != Find(schemes[1].Quantifiers[0]) {
		t.Fatal("both siblings should share the same generalized variable")
	}
	if len(generalizable) != 1 {
		t.Fatalf("generalizable = %v, want exactly one shared variable", generalizable)
	}
}

// TestInstantiateProducesIndependentFreshCopies covers the K-combinator
// scenario: instantiating the same scheme twice must not let the two
// instantiations' fresh variables cross-contaminate.
func TestInstantiateProducesIndependentFreshCopies(t *testing.T) {
	g := New(false)
	g.EnterDepth()
	x := g.Fresh(nil)
	root := g.Fresh(pairShape{A: x, B: x})
	g.ExitDepth()

	g.BeginSolve()
	g.EnterPool()
	g.Register(x)
	g.Register(root)
	schemes, _ := g.ExitPool([]*Var{root})
	scheme := schemes[0]

	r1, fresh1 := g.Instantiate(scheme)
	r2, fresh2 := g.Instantiate(scheme)

	if Find(r1) == Find(r2) {
		t.Fatal("two instantiations of the same scheme must produce independent roots")
	}
	if Find(fresh1[0]) == Find(fresh2[0]) {
		t.Fatal("two instantiations must substitute independent fresh variables")
	}

	if err := g.Unify(fresh1[0], g.Fresh(leafShape{Name: "Int"})); err != nil {
		t.Fatalf("unify: %v", err)
	}
	if Same(fresh2[0], fresh1[0]) {
		t.Fatal("constraining the first instantiation must not affect the second")
	}
}

// TestInstantiateRegistersFreshVarsAtCurrentPoolRank guards the
// construction-time-vs-solve-time rank confusion directly: Instantiate
// always runs during solving, by which point CurrentDepth has long since
// unwound back to 0, so stamping fresh substitutes with CurrentDepth
// would always mark them rank 0 regardless of how deeply the Instance
// itself is actually nested. Simulates an Instance sitting inside a
// second, nested Let's own binding construction (the case solver.solveLet
// exercises for `let g = f in ...`) and checks the fresh copies land in,
// and are registered into, that nested rank instead.
func TestInstantiateRegistersFreshVarsAtCurrentPoolRank(t *testing.T) {
	g := New(false)
	g.EnterDepth()
	x := g.Fresh(nil)
	root := g.Fresh(pairShape{A: x, B: x})
	g.ExitDepth()

	g.BeginSolve()
	g.EnterPool()
	g.Register(x)
	g.Register(root)
	schemes, _ := g.ExitPool([]*Var{root})
	scheme := schemes[0]

	// CurrentDepth is back to 0 here, exactly as it is by the time any
	// real KindInstance node is walked during solving. Nest two solve-time
	// pools to simulate instantiating from within an enclosing Let's own
	// binding construction.
	g.EnterPool()
	g.EnterPool()
	nestedRank := g.CurrentPoolRank()
	if nestedRank != 2 {
		t.Fatalf("nestedRank = %d, want 2", nestedRank)
	}

	instRoot, fresh := g.Instantiate(scheme)
	if Rank(instRoot) != nestedRank {
		t.Fatalf("instantiated root rank = %d, want %d (the current solve-time pool rank, not construction depth)", Rank(instRoot), nestedRank)
	}
	if Rank(fresh[0]) != nestedRank {
		t.Fatalf("fresh substitute rank = %d, want %d", Rank(fresh[0]), nestedRank)
	}

	registered := false
	for _, v := range g.pools[nestedRank] {
		if Find(v) == Find(fresh[0]) {
			registered = true
		}
	}
	if !registered {
		t.Fatal("Instantiate must register its fresh substitutes into the current pool, or an enclosing Let's own ExitPool would see them as already escaped to an outer scope")
	}
}

// TestInstantiateSharesGroundStructureVerbatim checks that parts of a
// scheme's skeleton with no quantifier beneath them are shared, not
// copied, across instantiations.
func TestInstantiateSharesGroundStructureVerbatim(t *testing.T) {
	g := New(false)
	g.EnterDepth()
	x := g.Fresh(nil)
	ground := g.Fresh(leafShape{Name: "Int"})
	root := g.Fresh(pairShape{A: x, B: ground})
	g.ExitDepth()

	g.BeginSolve()
	g.EnterPool()
	g.Register(x)
	g.Register(root)
	schemes, _ := g.ExitPool([]*Var{root})

	r1, _ := g.Instantiate(schemes[0])
	r2, _ := g.Instantiate(schemes[0])

	b1 := ShapeOf(r1).(pairShape).B.(*Var)
	b2 := ShapeOf(r2).(pairShape).B.(*Var)
	if Find(b1) != Find(ground) || Find(b2) != Find(ground) {
		t.Fatal("the ground Int component should be shared verbatim, not copied")
	}
}
