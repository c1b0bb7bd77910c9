package coraline

import (
	"testing"

	"github.com/funvibe/coraline/internal/graph"
	"github.com/funvibe/coraline/output"
)

func TestBuildMaterializesNestedShape(t *testing.T) {
	g := NewGraph(false)

	leaf := g.Fresh(nil)
	deep := Ctor(arrowShape{Param: Var(leaf), Result: Ctor(constShape{Name: "Int"})})

	co := Let0(g, Build(g, deep, func(v *graph.Var) Co[output.Ty] {
		return Observe(v)
	}))
	got, err := Solve(g, testBuilder{}, co)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	arrow, ok := got.(arrowTy)
	if !ok {
		t.Fatalf("decoded root = %T, want arrowTy", got)
	}
	if _, ok := arrow.Result.(constTy); !ok {
		t.Fatalf("decoded Result = %T, want constTy", arrow.Result)
	}
}

func TestBuildSharesLeafVariableAcrossOccurrences(t *testing.T) {
	g := NewGraph(false)

	shared := g.Fresh(nil)
	deep := Ctor(arrowShape{Param: Var(shared), Result: Var(shared)})

	co := Let0(g, Build(g, deep, func(v *graph.Var) Co[output.Ty] {
		return Observe(v)
	}))
	got, err := Solve(g, testBuilder{}, co)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	arrow, ok := got.(arrowTy)
	if !ok {
		t.Fatalf("decoded root = %T, want arrowTy", got)
	}
	if arrow.Param != arrow.Result {
		t.Fatal("both occurrences of a shared DeepVar should decode to the same type")
	}
}

func TestBuildPanicsOnNonDeepTypeChild(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic: shape child is not a DeepType")
		}
	}()
	g := NewGraph(false)
	deep := Ctor(arrowShape{Param: "not a DeepType", Result: Ctor(constShape{Name: "Int"})})
	Build(g, deep, func(v *graph.Var) Co[struct{}] { return Pure(struct{}{}) })
}
