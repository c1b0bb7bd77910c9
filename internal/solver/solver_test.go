package solver

import (
	"errors"
	"testing"

	"github.com/funvibe/coraline/internal/graph"
)

type strVar string

func (s strVar) String() string { return string(s) }

func TestEnvLookupAndExtend(t *testing.T) {
	var e *Env
	if _, ok := e.Lookup(strVar("x")); ok {
		t.Fatal("empty env should not find anything")
	}

	e1 := e.Extend(strVar("x"), graph.Scheme{})
	if _, ok := e1.Lookup(strVar("x")); !ok {
		t.Fatal("extended env should find x")
	}
	if _, ok := e.Lookup(strVar("x")); ok {
		t.Fatal("Extend must not mutate the receiver")
	}

	e2 := e1.Extend(strVar("x"), graph.Scheme{})
	if _, ok := e2.Lookup(strVar("y")); ok {
		t.Fatal("e2 should not find an unbound name")
	}
}

func TestHookWriteOnceReadOnce(t *testing.T) {
	h := NewHook[int]()
	h.Write(42)
	if got := h.Read(); got != 42 {
		t.Fatalf("Read() = %d, want 42", got)
	}
}

func TestHookPanicsOnDoubleWrite(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on double write")
		}
	}()
	h := NewHook[int]()
	h.Write(1)
	h.Write(2)
}

func TestHookPanicsOnReadBeforeWrite(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on read before write")
		}
	}()
	NewHook[int]().Read()
}

func TestSolveEqUnifiesVariables(t *testing.T) {
	g := graph.New(false)
	a := g.Fresh(nil)
	b := g.Fresh(nil)

	root := Let(nil, Eq(a, b), True(), NewHook[[]*graph.Var]())
	if err := Solve(g, root); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !graph.Same(a, b) {
		t.Fatal("a and b should be unified")
	}
}

func TestSolveInstanceReportsUnbound(t *testing.T) {
	g := graph.New(false)
	v := g.Fresh(nil)

	root := Let(nil, Instance(strVar("nope"), v, NewHook[[]*graph.Var]()), True(), NewHook[[]*graph.Var]())
	err := Solve(g, root)
	var unbound *UnboundError
	if !errors.As(err, &unbound) {
		t.Fatalf("Solve = %v, want *UnboundError", err)
	}
	if unbound.Name != "nope" {
		t.Fatalf("UnboundError.Name = %q, want nope", unbound.Name)
	}
}

func TestSolveLetGeneralizesAndInstanceInstantiatesIndependently(t *testing.T) {
	g := graph.New(false)

	idKey := strVar("id")
	g.EnterDepth()
	idVar := g.Fresh(nil)
	g.ExitDepth()

	use1 := g.Fresh(nil)
	witness1 := NewHook[[]*graph.Var]()
	use2 := g.Fresh(nil)
	witness2 := NewHook[[]*graph.Var]()

	c2 := Conj(
		Exist(use1, Instance(idKey, use1, witness1)),
		Exist(use2, Instance(idKey, use2, witness2)),
	)

	binding := LetBinding{Key: idKey, Var: idVar, SchemeHook: NewHook[graph.Scheme]()}
	letNode := Let([]LetBinding{binding}, Exist(idVar, True()), c2, NewHook[[]*graph.Var]())
	root := Let(nil, letNode, True(), NewHook[[]*graph.Var]())

	if err := Solve(g, root); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	w1 := witness1.Read()
	w2 := witness2.Read()
	if len(w1) != 1 || len(w2) != 1 {
		t.Fatalf("a bare variable's scheme should have exactly one quantifier: got %v, %v", w1, w2)
	}
	if graph.Same(w1[0], w2[0]) {
		t.Fatal("each Instance should substitute its own fresh variable for the quantifier, not share one across sites")
	}
	if graph.Same(use1, use2) {
		t.Fatal("each Instance should unify its own use-site variable, not share one across sites")
	}
}

func TestSolveDefBindsMonomorphically(t *testing.T) {
	g := graph.New(false)
	xKey := strVar("x")
	xVar := g.Fresh(nil)

	use := g.Fresh(nil)
	witness := NewHook[[]*graph.Var]()

	body := Def(xKey, xVar, Instance(xKey, use, witness))
	root := Let(nil, body, True(), NewHook[[]*graph.Var]())

	if err := Solve(g, root); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !graph.Same(xVar, use) {
		t.Fatal("a Def-bound (monomorphic) use must unify directly with the bound variable")
	}
	if len(witness.Read()) != 0 {
		t.Fatal("a monomorphic scheme has no quantifiers")
	}
}

func TestSolvePanicsOnMalformedRoot(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic: root is not a Let0-shaped constraint")
		}
	}()
	g := graph.New(false)
	_ = Solve(g, True())
}
