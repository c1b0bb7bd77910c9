package graph

import "testing"

func TestFreshStampsCurrentDepth(t *testing.T) {
	g := New(false)
	v0 := g.Fresh(nil)
	if Rank(v0) != 0 {
		t.Fatalf("rank at depth 0 = %d, want 0", Rank(v0))
	}

	g.EnterDepth()
	v1 := g.Fresh(nil)
	if Rank(v1) != 1 {
		t.Fatalf("rank at depth 1 = %d, want 1", Rank(v1))
	}
	g.ExitDepth()

	v2 := g.Fresh(nil)
	if Rank(v2) != 0 {
		t.Fatalf("rank after ExitDepth = %d, want 0", Rank(v2))
	}
}

func TestFindPathCompression(t *testing.T) {
	g := New(false)
	a := g.Fresh(nil)
	b := g.Fresh(nil)
	c := g.Fresh(nil)

	// Chain b -> a, c -> b by hand (Unify would pick its own survivor, so
	// this test drives the union-find machinery directly).
	b.parent = a
	c.parent = b

	if got := Find(c); got != a {
		t.Fatalf("Find(c) = %v, want %v", got, a)
	}
	if c.parent != a {
		t.Fatalf("Find did not compress c's parent pointer to the root")
	}
}

func TestSame(t *testing.T) {
	g := New(false)
	a := g.Fresh(nil)
	b := g.Fresh(nil)

	if Same(a, b) {
		t.Fatal("distinct singleton classes should not be Same")
	}
	b.parent = a
	if !Same(a, b) {
		t.Fatal("a and b should be Same once unioned")
	}
}

func TestRegisterGrowsPoolsAsNeeded(t *testing.T) {
	g := New(false)
	g.EnterDepth()
	g.EnterDepth()
	v := g.Fresh(nil) // rank 2

	g.BeginSolve()
	g.Register(v)

	if g.CurrentPoolRank() < 2 {
		t.Fatalf("pools did not grow to cover rank 2: CurrentPoolRank() = %d", g.CurrentPoolRank())
	}
	if len(g.pools[2]) != 1 || g.pools[2][0] != v {
		t.Fatalf("v was not registered at pool rank 2")
	}
}
