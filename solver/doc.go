/*
Package solver implements a CDCL SAT solver core: two-watched-literal
Boolean constraint propagation, an activity-ordered decision heap,
restart control, first-UIP conflict analysis, a resolution-DAG proof
substrate, and an assumption layer for incremental solving.

The solver is polymorphic over an abstract Formula type: callers intern
arbitrary hashable, negatable propositions into atoms and build clauses
over them. A Theory implementation may be bound to the solver to
interleave a background decision procedure with BCP, turning the core
into a DPLL(T)-style engine; without one it behaves as a plain CNF SAT
solver.

Describing and solving a problem

A problem is a set of clauses over Formula literals. Symbolic atoms
(Name) or DIMACS-style signed ints (IntAtom, built with Ints) both work:

	s := solver.New(0)
	a, b := solver.Name("a"), solver.Name("b")
	err := s.Assume([][]solver.Formula{
		{a, b},
		{a.Negate(), b.Negate()},
	}, true, "xor-ish")
	if err != nil {
		panic(err)
	}
	status, err := s.Solve()
	if err != nil {
		panic(err)
	}
	if status == solver.Sat {
		v, _ := s.Eval(a)
		_ = v
	}

Assumption-based incremental solving

Local hypotheses can be pushed for a single Solve call without being
asserted permanently, and cleared automatically before the next Solve:

	aAtom := s.AtomOf(a)
	status, _ = s.Solve(aAtom)

If the result is Unsat, the caller can walk the proof:

	proof, _ := s.Proof()
	core, _ := proof.UnsatCore()
	for _, cid := range core {
		step, _ := proof.Expand(cid)
		_ = step
	}

Theory interleaving

A Theory is bound once, before solving, and driven to fixpoint between
every round of BCP:

	th := mytheory.New(s.Actions())
	s.BindTheory(th)

See Theory and TheoryActions for the callback and action-side interfaces
respectively.
*/
package solver
