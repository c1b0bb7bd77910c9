package main

import (
	"github.com/funvibe/coraline"
	"github.com/funvibe/coraline/internal/config"
	"github.com/funvibe/coraline/internal/graph"
	"github.com/funvibe/coraline/output"
)

// solverOpts holds the ambient SolverOptions main loaded (from a config
// file, or DefaultSolverOptions if none was given); every scenario that
// doesn't itself demonstrate a specific rectypes setting builds its Graph
// through newGraph so it stays driven by that shared configuration.
var solverOpts = config.DefaultSolverOptions()

// newGraph builds a Graph using the host's configured rectypes default and
// unify-recursion bound, the way an embedding host would rather than
// hard-coding a setting into every call site.
func newGraph() *coraline.Graph {
	g := coraline.NewGraph(solverOpts.RectypesDefault)
	g.SetMaxUnifyDepth(solverOpts.MaxUnifyDepth)
	return g
}

// --- small helpers shared across scenarios, built only from the public
// combinator API, the way a real front end would assemble them. ---

// dropSecond discards the newly-introduced variable's own decoded type
// from an Exist/Construct result, keeping only its body's result.
func dropSecond[T any](co coraline.Co[coraline.Pair[output.Ty, T]]) coraline.Co[T] {
	return coraline.MapCo(func(p coraline.Pair[output.Ty, T]) T { return p.Second }, co)
}

// existTy introduces a fresh variable and decodes that variable itself,
// discarding its body's own result.
func existTy(g *coraline.Graph, build func(v *graph.Var) coraline.Co[struct{}]) coraline.Co[output.Ty] {
	return coraline.MapCo(func(p coraline.Pair[output.Ty, struct{}]) output.Ty { return p.First }, coraline.Exist(g, build))
}

// discard collapses any Co's decoded result down to struct{}.
func discard[T any](co coraline.Co[T]) coraline.Co[struct{}] {
	return coraline.MapCo(func(T) struct{} { return struct{}{} }, co)
}

// decodeAfter runs c for its constraint alone, then decodes v.
func decodeAfter(c coraline.Co[struct{}], v *graph.Var) coraline.Co[output.Ty] {
	return dropSecond(coraline.And(c, coraline.Observe(v)))
}

// decodePair runs c for its constraint alone, then decodes v1 and v2.
func decodePair(c coraline.Co[struct{}], v1, v2 *graph.Var) coraline.Co[coraline.Pair[output.Ty, output.Ty]] {
	return dropSecond(coraline.And(c, coraline.And(coraline.Observe(v1), coraline.Observe(v2))))
}

// instantiate builds a fresh use of key, returning its raw variable for
// further chaining alongside the constraint that binds it.
func instantiate(g *coraline.Graph, key coraline.TermVar) (*graph.Var, coraline.Co[struct{}]) {
	var v *graph.Var
	c := dropSecond(coraline.Exist(g, func(useVar *graph.Var) coraline.Co[struct{}] {
		v = useVar
		return discard(coraline.Instance(key, useVar))
	}))
	return v, c
}

// apply builds "fn argName": argName is instantiated fresh and fn is
// unified with the arrow from that fresh use to a fresh result, which is
// returned raw for further chaining (e.g. applying the result again).
func apply(g *coraline.Graph, fn *graph.Var, fnConstraint coraline.Co[struct{}], argName coraline.TermVar) (*graph.Var, coraline.Co[struct{}]) {
	var resultVar *graph.Var
	c := dropSecond(coraline.Exist(g, func(useArg *graph.Var) coraline.Co[struct{}] {
		return dropSecond(coraline.Exist(g, func(result *graph.Var) coraline.Co[struct{}] {
			resultVar = result
			return dropSecond(coraline.Construct(g, arrowShape{Param: useArg, Result: result}, func(arrowVar *graph.Var) coraline.Co[struct{}] {
				return discard(coraline.And(
					fnConstraint,
					discard(coraline.And(
						coraline.Instance(argName, useArg),
						coraline.ShapeEq(fn, arrowVar),
					)),
				))
			}))
		}))
	}))
	return resultVar, c
}

// applySelfResult builds "fnName fnName": fnName applied to its own use.
func applySelfResult(g *coraline.Graph, fnName coraline.TermVar) (*graph.Var, coraline.Co[struct{}]) {
	useFn, c := instantiate(g, fnName)
	return apply(g, useFn, c, fnName)
}

// buildIdentity constrains idVar to be the arrow type a -> a for a fresh a.
func buildIdentity(g *coraline.Graph, idVar *graph.Var) coraline.Co[struct{}] {
	return dropSecond(coraline.Exist(g, func(p *graph.Var) coraline.Co[struct{}] {
		return dropSecond(coraline.Construct(g, arrowShape{Param: p, Result: p}, func(fnVar *graph.Var) coraline.Co[struct{}] {
			return coraline.ShapeEq(fnVar, idVar)
		}))
	}))
}

func asTy(t output.Ty) ty { return t.(ty) }

// --- scenarios ---

// scenarioSelfAppliedIdentity infers the type of `let id = fun x -> x in
// id id`, the classic demonstration that a let-bound polymorphic function
// can be applied to itself: both uses of id get independent
// instantiations, so the result is again a -> a for a fresh a.
func scenarioSelfAppliedIdentity() (ty, error) {
	g := newGraph()
	idName := name("id")

	whole := coraline.LetN(g, []coraline.TermVar{idName},
		func(vs []*graph.Var) coraline.Co[struct{}] { return buildIdentity(g, vs[0]) },
		func() coraline.Co[output.Ty] {
			appVar, c := applySelfResult(g, idName)
			return decodeAfter(c, appVar)
		}(),
	)
	program := coraline.Let0(g, whole)

	result, err := coraline.Solve(g, builder{}, program)
	if err != nil {
		return nil, err
	}
	return asTy(result.Body), nil
}

// scenarioSelfApplicationCycle infers the type of the un-let-bound lambda
// `fun x -> x x`: x is monomorphic (bound by Def, not LetN), so applying
// it to itself forces x's own type to equal x's-type -> result, a cyclic
// equation. With rectypes off this is a CycleError; with rectypes on the
// solver accepts it and decodes a mu-type.
func scenarioSelfApplicationCycle(rectypes bool) (ty, error) {
	g := coraline.NewGraph(rectypes)
	g.SetMaxUnifyDepth(solverOpts.MaxUnifyDepth)
	xName := name("x")

	program := coraline.Let0(g, existTy(g, func(paramVar *graph.Var) coraline.Co[struct{}] {
		return discard(coraline.Def(xName, paramVar, func() coraline.Co[struct{}] {
			_, c := applySelfResult(g, xName)
			return c
		}()))
	}))

	result, err := coraline.Solve(g, builder{}, program)
	if err != nil {
		return nil, err
	}
	return asTy(result), nil
}

// scenarioKCombinator infers the type of
// `let k = fun x -> fun y -> x in let id = fun z -> z in (k id) id`,
// demonstrating a single let-bound name (id) instantiated twice at two
// independent applications: k picks its first argument's type and
// discards its second, so the result equals id's own (fresh) type.
func scenarioKCombinator() (ty, error) {
	g := newGraph()
	kName := name("k")
	idName := name("id")

	buildK := func(vs []*graph.Var) coraline.Co[struct{}] {
		kVar := vs[0]
		return dropSecond(coraline.Exist(g, func(xVar *graph.Var) coraline.Co[struct{}] {
			return dropSecond(coraline.Exist(g, func(yVar *graph.Var) coraline.Co[struct{}] {
				return dropSecond(coraline.Construct(g, arrowShape{Param: yVar, Result: xVar}, func(innerVar *graph.Var) coraline.Co[struct{}] {
					return dropSecond(coraline.Construct(g, arrowShape{Param: xVar, Result: innerVar}, func(kFnVar *graph.Var) coraline.Co[struct{}] {
						return coraline.ShapeEq(kFnVar, kVar)
					}))
				}))
			}))
		}))
	}

	program := coraline.Let0(g, coraline.LetN(g, []coraline.TermVar{kName}, buildK,
		coraline.LetN(g, []coraline.TermVar{idName},
			func(vs []*graph.Var) coraline.Co[struct{}] { return buildIdentity(g, vs[0]) },
			func() coraline.Co[output.Ty] {
				useK, c1 := instantiate(g, kName)
				app1, c2 := apply(g, useK, c1, idName)
				app2, c3 := apply(g, app1, c2, idName)
				return decodeAfter(c3, app2)
			}(),
		),
	))

	result, err := coraline.Solve(g, builder{}, program)
	if err != nil {
		return nil, err
	}
	return asTy(result.Body.Body), nil
}

// scenarioUnbound looks up a term variable with no enclosing binding at
// all, producing an UnboundError.
func scenarioUnbound() (ty, error) {
	g := newGraph()
	nope := name("nope")

	program := coraline.Let0(g, func() coraline.Co[output.Ty] {
		useNope, c := instantiate(g, nope)
		return decodeAfter(c, useNope)
	}())

	result, err := coraline.Solve(g, builder{}, program)
	if err != nil {
		return nil, err
	}
	return asTy(result), nil
}

// scenarioPolyLet infers `let id = fun x -> x in (id used at Int, id used
// at Bool)`, standing in for two applications `id 0` and `id true`
// without needing actual literal terms: each instantiation of id is
// unified directly with the arrow its application site would produce.
func scenarioPolyLet() (ty, ty, error) {
	g := newGraph()
	idName := name("id")

	program := coraline.Let0(g, coraline.LetN(g, []coraline.TermVar{idName},
		func(vs []*graph.Var) coraline.Co[struct{}] { return buildIdentity(g, vs[0]) },
		func() coraline.Co[coraline.Pair[output.Ty, output.Ty]] {
			useInt, cInt := instantiate(g, idName)
			useBool, cBool := instantiate(g, idName)

			intArrow := discard(coraline.Construct(g, constShape{Name: "Int"}, func(intVar *graph.Var) coraline.Co[struct{}] {
				return dropSecond(coraline.Construct(g, arrowShape{Param: intVar, Result: intVar}, func(arrowVar *graph.Var) coraline.Co[struct{}] {
					return coraline.ShapeEq(useInt, arrowVar)
				}))
			}))
			boolArrow := discard(coraline.Construct(g, constShape{Name: "Bool"}, func(boolVar *graph.Var) coraline.Co[struct{}] {
				return dropSecond(coraline.Construct(g, arrowShape{Param: boolVar, Result: boolVar}, func(arrowVar *graph.Var) coraline.Co[struct{}] {
					return coraline.ShapeEq(useBool, arrowVar)
				}))
			}))

			combined := discard(coraline.And(cInt, coraline.And(cBool, coraline.And(intArrow, boolArrow))))
			return decodePair(combined, useInt, useBool)
		}(),
	))

	result, err := coraline.Solve(g, builder{}, program)
	if err != nil {
		return nil, nil, err
	}
	return asTy(result.Body.First), asTy(result.Body.Second), nil
}

// scenarioLetAlias infers `let f = fun x -> x in let g = f in (g used at
// Bool, g used at Int)`: g is bound to an instantiation of f rather than
// its own lambda, nested one Let deeper than f itself. g must still
// generalize independently, so its two uses diverge instead of both
// collapsing onto whatever single monomorphic type the first use picked.
func scenarioLetAlias() (ty, ty, error) {
	g := newGraph()
	fName := name("f")
	gName := name("g")

	program := coraline.Let0(g, coraline.LetN(g, []coraline.TermVar{fName},
		func(vs []*graph.Var) coraline.Co[struct{}] { return buildIdentity(g, vs[0]) },
		coraline.LetN(g, []coraline.TermVar{gName},
			func(vs []*graph.Var) coraline.Co[struct{}] {
				return discard(coraline.Instance(fName, vs[0]))
			},
			func() coraline.Co[coraline.Pair[output.Ty, output.Ty]] {
				useBool, cBool := instantiate(g, gName)
				useInt, cInt := instantiate(g, gName)

				boolArrow := discard(coraline.Construct(g, constShape{Name: "Bool"}, func(boolVar *graph.Var) coraline.Co[struct{}] {
					return dropSecond(coraline.Construct(g, arrowShape{Param: boolVar, Result: boolVar}, func(arrowVar *graph.Var) coraline.Co[struct{}] {
						return coraline.ShapeEq(useBool, arrowVar)
					}))
				}))
				intArrow := discard(coraline.Construct(g, constShape{Name: "Int"}, func(intVar *graph.Var) coraline.Co[struct{}] {
					return dropSecond(coraline.Construct(g, arrowShape{Param: intVar, Result: intVar}, func(arrowVar *graph.Var) coraline.Co[struct{}] {
						return coraline.ShapeEq(useInt, arrowVar)
					}))
				}))

				combined := discard(coraline.And(cBool, coraline.And(cInt, coraline.And(boolArrow, intArrow))))
				return decodePair(combined, useBool, useInt)
			}(),
		),
	))

	result, err := coraline.Solve(g, builder{}, program)
	if err != nil {
		return nil, nil, err
	}
	return asTy(result.Body.Body.First), asTy(result.Body.Body.Second), nil
}

// scenarioTypeMismatch unifies two incompatible nullary constructors
// directly, producing a UnifyError.
func scenarioTypeMismatch() error {
	g := newGraph()

	program := coraline.Let0(g, discard(coraline.Construct(g, constShape{Name: "Int"}, func(intVar *graph.Var) coraline.Co[struct{}] {
		return dropSecond(coraline.Construct(g, constShape{Name: "Bool"}, func(boolVar *graph.Var) coraline.Co[struct{}] {
			return coraline.ShapeEq(intVar, boolVar)
		}))
	})))

	_, err := coraline.Solve(g, builder{}, program)
	return err
}
