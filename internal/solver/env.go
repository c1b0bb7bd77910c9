package solver

import "github.com/funvibe/coraline/internal/graph"

// Env is a persistent (cons-cell) typing environment: extending it never
// mutates the receiver, so a caller that holds on to an outer Env is
// unaffected by anything a callee does with an extended one. This is how
// Def and Let's "restore the environment on exit, including on error"
// requirement falls out for free: the extended *Env is simply a local
// variable in the Def/Let case of solve, discarded (by virtue of Go's own
// call stack unwinding) the moment that case returns, whether normally or
// via a propagated error.
type Env struct {
	parent *Env
	key    TermVar
	scheme graph.Scheme
}

// Lookup searches e and its ancestors for key, innermost binding first.
func (e *Env) Lookup(key TermVar) (graph.Scheme, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.key == key {
			return cur.scheme, true
		}
	}
	return graph.Scheme{}, false
}

// Extend returns a new environment that binds key to scheme in front of
// e, without modifying e.
func (e *Env) Extend(key TermVar, scheme graph.Scheme) *Env {
	return &Env{parent: e, key: key, scheme: scheme}
}
