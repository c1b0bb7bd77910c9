package coraline

import (
	"github.com/funvibe/coraline/internal/graph"
	"github.com/funvibe/coraline/internal/solver"
	"github.com/funvibe/coraline/output"
	"github.com/funvibe/coraline/structure"
)

// Pure wraps a value in a trivially-satisfied constraint. Satisfies the
// applicative identity law together with MapCo: MapCo(id, Pure(v)) decodes
// to v for any v.
func Pure[T any](v T) Co[T] {
	return Co[T]{c: solver.True(), cont: func(Decoder) T { return v }}
}

// Pair is the result of And: the decoded results of both operands, kept
// distinct rather than merged, so neither combinator needs to know
// anything about the other's type.
type Pair[A, B any] struct {
	First  A
	Second B
}

// And conjoins two constraints, decoding to both operands' results.
func And[A, B any](a Co[A], b Co[B]) Co[Pair[A, B]] {
	return Co[Pair[A, B]]{
		c: solver.Conj(a.c, b.c),
		cont: func(d Decoder) Pair[A, B] {
			return Pair[A, B]{First: a.cont(d), Second: b.cont(d)}
		},
	}
}

// MapCo transforms a Co's decoded result without touching its constraint.
// Named MapCo rather than Map to avoid shadowing structure.Map when both
// packages are dot-imported, and because a bare Map here would collide
// with the eventual demo code's own map-over-slice usage.
func MapCo[A, B any](f func(A) B, a Co[A]) Co[B] {
	return Co[B]{c: a.c, cont: func(d Decoder) B { return f(a.cont(d)) }}
}

// Exist introduces a fresh, unstructured variable at the current
// construction depth and builds its body with it in scope. The decoded
// result pairs the variable's eventual decoded type with the body's
// result.
func Exist[T any](g *Graph, build func(v *graph.Var) Co[T]) Co[Pair[output.Ty, T]] {
	v := g.Fresh(nil)
	inner := build(v)
	return Co[Pair[output.Ty, T]]{
		c: solver.Exist(v, inner.c),
		cont: func(d Decoder) Pair[output.Ty, T] {
			return Pair[output.Ty, T]{First: d.DecodeVar(v), Second: inner.cont(d)}
		},
	}
}

// Construct introduces a fresh variable with structure shape (whose
// children must already be *graph.Var values, typically obtained from
// nested Exist/Construct calls) and builds its body with it in scope.
// Sugar for Exist around a variable allocated with a known shape, the way
// spec's combinator table derives construct from exist.
func Construct[T any](g *Graph, shape structure.Shape, build func(v *graph.Var) Co[T]) Co[Pair[output.Ty, T]] {
	v := g.Fresh(shape)
	inner := build(v)
	return Co[Pair[output.Ty, T]]{
		c: solver.Exist(v, inner.c),
		cont: func(d Decoder) Pair[output.Ty, T] {
			return Pair[output.Ty, T]{First: d.DecodeVar(v), Second: inner.cont(d)}
		},
	}
}

// Observe decodes an already-allocated variable once solving succeeds,
// without adding any constraint of its own or allocating anything new.
// Useful for reporting an intermediate variable introduced by an earlier
// combinator (e.g. the result of an application built by hand from
// Exist/Construct) as part of a larger decoded result.
func Observe(v *graph.Var) Co[output.Ty] {
	return Co[output.Ty]{c: solver.True(), cont: func(d Decoder) output.Ty { return d.DecodeVar(v) }}
}

// ShapeEq demands the two variables' structures agree, unifying them.
func ShapeEq(v1, v2 *graph.Var) Co[struct{}] {
	return Co[struct{}]{c: solver.Eq(v1, v2), cont: func(Decoder) struct{} { return struct{}{} }}
}

// Witness is the outcome of instantiating a polymorphic term-variable
// use: the fresh variables substituted for its scheme's quantifiers,
// decoded in the order they were quantified.
type Witness struct {
	Fresh []output.Ty
}

// Instance builds a use of key at v, recording the fresh variables
// substituted for its bound scheme's quantifiers so the front end can,
// for instance, elaborate explicit type application in a System-F
// target.
func Instance(key TermVar, v *graph.Var) Co[Witness] {
	hook := solver.NewHook[[]*graph.Var]()
	return Co[Witness]{
		c: solver.Instance(key, v, hook),
		cont: func(d Decoder) Witness {
			fresh := hook.Read()
			tys := make([]output.Ty, len(fresh))
			for i, fv := range fresh {
				tys[i] = d.DecodeVar(fv)
			}
			return Witness{Fresh: tys}
		},
	}
}

// Def binds key monomorphically to v for the extent of body: no
// generalization happens, so every use of key inside body shares exactly
// v's type.
func Def[T any](key TermVar, v *graph.Var, body Co[T]) Co[T] {
	return Co[T]{c: solver.Def(key, v, body.c), cont: body.cont}
}

// LetResult is the decoded outcome of a LetN binding group: each bound
// name's generalized scheme, the union of variables generalized across
// all of them, the bindings' own continuation result, and the body's.
type LetResult[T1, T2 any] struct {
	Schemes       []output.Scheme
	Generalizable []output.TyVar
	Bound         T1
	Body          T2
}

// LetN binds len(xs) term variables simultaneously: f is called with one
// fresh variable per name (at a deeper construction rank than the
// surrounding scope) to build their shared constraint; c2 is built
// independently, in the surrounding scope, and typically uses Instance to
// look the names back up once they've been generalized. c2 must not
// itself depend on the generalized schemes at construction time — only
// Decoder, after solving, reveals them, which is what keeps this
// combinator applicative rather than monadic.
func LetN[T1, T2 any](g *Graph, xs []TermVar, f func(vs []*graph.Var) Co[T1], c2 Co[T2]) Co[LetResult[T1, T2]] {
	g.EnterDepth()
	vs := make([]*graph.Var, len(xs))
	for i := range xs {
		vs[i] = g.Fresh(nil)
	}
	bound := f(vs)
	g.ExitDepth()

	bindings := make([]solver.LetBinding, len(xs))
	hooks := make([]*solver.Hook[graph.Scheme], len(xs))
	for i, x := range xs {
		h := solver.NewHook[graph.Scheme]()
		hooks[i] = h
		bindings[i] = solver.LetBinding{Key: x, Var: vs[i], SchemeHook: h}
	}
	genHook := solver.NewHook[[]*graph.Var]()

	node := solver.Let(bindings, bound.c, c2.c, genHook)
	return Co[LetResult[T1, T2]]{
		c: node,
		cont: func(d Decoder) LetResult[T1, T2] {
			schemes := make([]output.Scheme, len(hooks))
			for i, h := range hooks {
				schemes[i] = d.DecodeScheme(h.Read())
			}
			gen := genHook.Read()
			genTv := make([]output.TyVar, len(gen))
			for i, v := range gen {
				genTv[i] = d.b.TyVar(graph.Find(v).ID())
			}
			return LetResult[T1, T2]{
				Schemes:       schemes,
				Generalizable: genTv,
				Bound:         bound.cont(d),
				Body:          c2.cont(d),
			}
		},
	}
}

// Let1 binds a single term variable; convenience wrapper over LetN.
func Let1[T1, T2 any](g *Graph, x TermVar, f func(v *graph.Var) Co[T1], c2 Co[T2]) Co[LetResult[T1, T2]] {
	return LetN(g, []TermVar{x}, func(vs []*graph.Var) Co[T1] { return f(vs[0]) }, c2)
}

// Let0 binds no term variables; it exists purely to give c the Let shape
// the low-level solver's entry point requires (a no-binding Let whose
// continuation is True), so it is also what Solve's callers use to wrap
// their whole program.
func Let0[T any](g *Graph, c Co[T]) Co[T] {
	wrapped := LetN(g, nil, func([]*graph.Var) Co[T] { return c }, Pure(struct{}{}))
	return MapCo(func(r LetResult[T, struct{}]) T { return r.Bound }, wrapped)
}

// Correlate attaches rng to every error raised while solving c.
func Correlate[T any](rng Range, c Co[T]) Co[T] {
	return Co[T]{c: solver.WithRange(rng, c.c), cont: c.cont}
}

// Solve runs co's constraint against g (which must not have been solved
// before) and, on success, decodes co's result using b. On failure it
// returns a decoded UnboundError, UnifyError, CycleError, or
// MaxUnifyDepthError. co must have
// been built with Let0 as its outermost combinator; anything else is a
// protocol misuse panic from the low-level solver.
func Solve[T any](g *Graph, b output.Builder, co Co[T]) (T, error) {
	var zero T
	if err := solver.Solve(g, co.c); err != nil {
		return zero, decodeSolveError(b, err)
	}
	d := Decoder{b: b, rectypes: g.Rectypes()}
	return co.cont(d), nil
}
