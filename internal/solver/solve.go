package solver

import (
	"fmt"

	"github.com/funvibe/coraline/internal/graph"
	"github.com/google/uuid"
)

// state threads the owning graph, the ambient typing environment, and the
// currently active source range through the recursive walk. Mirrors the
// way the teacher's own constraint solver threads a GlobalSubst and
// environment through SolveConstraints
// (internal/analyzer/inference_solver.go), adapted from an iterative
// fixpoint loop over a flat constraint list into a structural recursion
// over a tree, since this module's constraints nest scopes (Def/Let) that
// funxy's flat trait-constraint list never needed to.
type state struct {
	g   *graph.Graph
	env *Env
	rng Range
}

// Solve walks root, applying its constraints to g. root must be the
// Let0-shaped constraint produced by the combinator API's entry point
// (Let with no bindings, wrapping True as its continuation); anything
// else means a front end bypassed the combinator API and is a protocol
// misuse.
//
// g.BeginSolve is called here, so a Graph must not have had BeginSolve
// called on it already — solving the same graph twice is unsupported (a
// solver is consumed by one Solve call, successful or not).
func Solve(g *graph.Graph, root *Constraint) error {
	if root.Kind != KindLet || len(root.Bindings) != 0 || root.C2 == nil || root.C2.Kind != KindTrue {
		panic("solver: top-level constraint must be produced by the combinator API's Solve entry point")
	}
	id := uuid.New()
	g.BeginSolve()
	st := &state{g: g}
	if err := st.solve(root); err != nil {
		return fmt.Errorf("solve %s: %w", id, err)
	}
	return nil
}

func (st *state) solve(c *Constraint) error {
	switch c.Kind {
	case KindTrue:
		return nil

	case KindConj:
		if err := st.solve(c.Left); err != nil {
			return err
		}
		return st.solve(c.Right)

	case KindEq:
		if err := st.g.Unify(c.V1, c.V2); err != nil {
			return wrapRange(st.rng, err)
		}
		return nil

	case KindExist:
		st.g.Register(c.ExistVar)
		return st.solve(c.Body)

	case KindInstance:
		scheme, ok := st.env.Lookup(c.TermVarKey)
		if !ok {
			return &UnboundError{Name: c.TermVarKey.String(), Rng: st.rng}
		}
		root, witnesses := st.g.Instantiate(scheme)
		if err := st.g.Unify(root, c.InstVar); err != nil {
			return wrapRange(st.rng, err)
		}
		c.WitnessHook.Write(witnesses)
		return nil

	case KindDef:
		inner := &state{g: st.g, env: st.env.Extend(c.DefKey, graph.Scheme{Root: c.DefVar}), rng: st.rng}
		return inner.solve(c.Body)

	case KindLet:
		return st.solveLet(c)

	case KindRange:
		inner := &state{g: st.g, env: st.env, rng: c.Rng}
		return inner.solve(c.Body)

	default:
		panic(fmt.Sprintf("solver: unknown constraint kind %d", c.Kind))
	}
}

func (st *state) solveLet(c *Constraint) error {
	// A binding-less Let introduces no rank scope of its own: it exists
	// only as the shape Solve's entry point requires (see Let0 in the
	// combinator API), not as a real generalization boundary. Opening a
	// pool for it anyway would consume a pool-stack slot no
	// construction-time EnterDepth ever matches, shifting every real
	// Let nested beneath it one rank off from the pool ExitPool actually
	// reads — silently generalizing nothing. So it just sequences C1
	// then C2 in the current scope.
	if len(c.Bindings) == 0 {
		inner := &state{g: st.g, env: st.env, rng: st.rng}
		if err := inner.solve(c.C1); err != nil {
			return err
		}
		c.GenHook.Write(nil)
		return inner.solve(c.C2)
	}

	st.g.EnterPool()
	for _, b := range c.Bindings {
		st.g.Register(b.Var)
	}

	inner := &state{g: st.g, env: st.env, rng: st.rng}
	if err := inner.solve(c.C1); err != nil {
		return err
	}

	roots := make([]*graph.Var, len(c.Bindings))
	for i, b := range c.Bindings {
		roots[i] = b.Var
	}
	schemes, generalizable := st.g.ExitPool(roots)

	env := st.env
	for i, b := range c.Bindings {
		b.SchemeHook.Write(schemes[i])
		env = env.Extend(b.Key, schemes[i])
	}
	c.GenHook.Write(generalizable)

	cont := &state{g: st.g, env: env, rng: st.rng}
	return cont.solve(c.C2)
}
