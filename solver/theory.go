package solver

import "fmt"

// Theory is the callback interface a background decision procedure
// implements to be interleaved with BCP, turning the core into a
// DPLL(T)-style engine. There is no gophersat analogue for this boundary;
// it is new, shaped directly from spec's theory-callback description and
// expressed as a Go interface per "accept interfaces, return structs".
//
// A Theory instance is created already bound to the TheoryActions handle it
// will use (via Solver.Actions), so implementations typically look like:
//
//	func New(actions solver.TheoryActions) *MyTheory { ... }
//	s.BindTheory(mytheory.New(s.Actions()))
type Theory interface {
	// Assume is called once for every batch of newly assigned atoms since
	// the last call (a TrailSlice over that batch). It may use the
	// TheoryActions handle to push lemmas or propagate further atoms. If
	// the batch is jointly inconsistent with the theory, it returns
	// ok=false along with the (currently true) literals responsible and an
	// opaque lemma payload; the engine builds a conflict clause from their
	// negations.
	Assume(batch TrailSlice) (ok bool, lits []AtomID, lemma interface{})
	// IfSat is called once BCP and Assume have reached a fixpoint with
	// every variable bound, as a final check before declaring the problem
	// satisfiable. Its contract mirrors Assume's.
	IfSat(full TrailSlice) (ok bool, lits []AtomID, lemma interface{})
}

// TrailSlice is a read-only view over a contiguous range of the trail,
// handed to a Theory so it can inspect newly assigned atoms without
// exposing the solver's internals.
type TrailSlice struct {
	s        *Solver
	from, to int
}

// Len returns the number of atoms in the slice.
func (t TrailSlice) Len() int { return t.to - t.from }

// At returns the i-th atom in the slice.
func (t TrailSlice) At(i int) AtomID { return t.s.trail.lits[t.from+i] }

// TheoryActions is the action-side interface a Theory uses to affect the
// solver: push scoped or permanent lemmas, propagate atoms, and register
// backtrack hooks. Implemented by *solverActions; see Solver.Actions.
type TheoryActions interface {
	// PushLocal asserts a clause (over lits) that only holds for the
	// current decision-level scope; it is marked dead automatically when
	// that scope is popped.
	PushLocal(lits []AtomID, lemma interface{})
	// PushPersistent asserts a clause that survives across Solve calls.
	PushPersistent(lits []AtomID, lemma interface{})
	// Propagate asserts formula as forced by causes (all currently true).
	// It returns ErrTheoryConflict, wrapped with context, if formula is
	// already false; the calling Theory should fold that into its own
	// Assume/IfSat conflict report rather than treat it as a separate
	// engine-level event, since the engine has no side channel for it (see
	// DESIGN.md Open Question 3).
	Propagate(formula AtomID, causes []AtomID, lemma interface{}) error
	// OnBacktrack registers fn to run once, when the current decision
	// level is popped.
	OnBacktrack(fn func())
	// AtLevel0 reports whether the solver is currently at its base
	// decision level (no open decisions).
	AtLevel0() bool
}

type solverActions struct{ s *Solver }

func cloneAtoms(lits []AtomID) []AtomID {
	out := make([]AtomID, len(lits))
	copy(out, lits)
	return out
}

func (a *solverActions) PushLocal(lits []AtomID, lemma interface{}) {
	cid := a.s.clauses.make(cloneAtoms(lits), Premise{Kind: PremiseTheoryLemma, Lemma: lemma}, "")
	c := a.s.clauses.get(cid)
	c.local = true
	switch {
	case len(lits) >= 2:
		a.s.attach(cid)
	case len(lits) == 1:
		a.s.enqueueUnitOrConflict(lits[0], cid)
	}
	if a.s.trail.decisionLevel() >= a.s.baseLevel && a.s.baseLevel > 0 {
		a.s.backtrack.push(func() { c.markDead() })
	}
}

func (a *solverActions) PushPersistent(lits []AtomID, lemma interface{}) {
	apply := func() {
		cid := a.s.clauses.make(cloneAtoms(lits), Premise{Kind: PremiseTheoryLemma, Lemma: lemma}, "")
		switch {
		case len(lits) >= 2:
			a.s.attach(cid)
		case len(lits) == 1:
			a.s.enqueueUnitOrConflict(lits[0], cid)
		}
	}
	apply()
	// Replayed at the start of every future Solve call, once the solver
	// has cancelled back to level 0, per spec's redo-on-backtrack-then-
	// apply mechanism: see DESIGN.md's "Trail & backtrack stack" entry.
	a.s.persistentReplays = append(a.s.persistentReplays, apply)
}

func (a *solverActions) Propagate(formula AtomID, causes []AtomID, lemma interface{}) error {
	switch a.s.vars.status(formula) {
	case Sat:
		return nil
	case Unsat:
		return fmt.Errorf("%w: %s", ErrTheoryConflict, a.s.vars.atoms[formula].formula)
	default:
		lits := make([]AtomID, len(causes)+1)
		lits[0] = formula
		for i, c := range causes {
			lits[i+1] = c.Negation()
		}
		cid := a.s.clauses.make(lits, Premise{Kind: PremiseTheoryLemma, Lemma: lemma}, "")
		if len(lits) >= 2 {
			a.s.attach(cid)
		}
		a.s.assign(formula, int32(a.s.trail.decisionLevel()), Reason{Kind: ReasonPropagated, Clause: cid})
		return nil
	}
}

func (a *solverActions) OnBacktrack(fn func()) { a.s.backtrack.push(fn) }

func (a *solverActions) AtLevel0() bool { return a.s.trail.decisionLevel() <= a.s.baseLevel }

// theoryConflictClause builds a conflict clause from the negations of the
// (currently true) literals a Theory reported as jointly inconsistent.
func (s *Solver) theoryConflictClause(lits []AtomID, lemma interface{}) ClauseID {
	neg := make([]AtomID, len(lits))
	for i, l := range lits {
		neg[i] = l.Negation()
	}
	cid := s.clauses.make(neg, Premise{Kind: PremiseTheoryLemma, Lemma: lemma}, "")
	if len(neg) >= 2 {
		s.attach(cid)
	}
	return cid
}

// bcpAndTheoryFixpoint drives BCP and the bound theory (if any) to a joint
// fixpoint: BCP first, then the theory over whatever new trail segment BCP
// produced, looping until BCP has nothing left to do and the theory has
// caught up to the same trail position.
func (s *Solver) bcpAndTheoryFixpoint() ClauseID {
	for {
		if cid := s.bcp(); cid != noClause {
			return cid
		}
		if s.theory == nil {
			return noClause
		}
		if s.trail.thHead < s.trail.eltHead {
			batch := TrailSlice{s: s, from: s.trail.thHead, to: s.trail.eltHead}
			s.trail.thHead = s.trail.eltHead
			if ok, lits, lemma := s.theory.Assume(batch); !ok {
				return s.theoryConflictClause(lits, lemma)
			}
			continue
		}
		return noClause
	}
}

// checkIfSat runs the theory's final check once every variable is bound and
// BCP/theory propagation has reached a fixpoint. Since IfSat only runs at
// that point, any atom a Theory.Propagate call touches during it is
// necessarily already assigned (no-op or immediate conflict), so a Sat
// verdict cannot be invalidated by a freshly unassigned atom reopening the
// fixpoint (see DESIGN.md Open Question 6).
func (s *Solver) checkIfSat() (ClauseID, bool) {
	if s.theory == nil {
		return noClause, true
	}
	full := TrailSlice{s: s, from: 0, to: s.trail.len()}
	if ok, lits, lemma := s.theory.IfSat(full); !ok {
		return s.theoryConflictClause(lits, lemma), false
	}
	return noClause, true
}
