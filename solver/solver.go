package solver

import "fmt"

// RestartPolicy selects how the search controller schedules restarts.
type RestartPolicy byte

const (
	// RestartGeometric grows the conflict budget geometrically between
	// restarts, per the initial budget/restart-factor fields below. This
	// is the default.
	RestartGeometric RestartPolicy = iota
	// RestartLuby paces restarts by the Luby sequence scaled by LubyUnit.
	RestartLuby
)

// Stats is read-only, in-process bookkeeping the search loop already
// maintains for its own restart-budget accounting, exposed for callers that
// want visibility into solver progress.
type Stats struct {
	NbDecisions int
	NbConflicts int
	NbRestarts  int
	NbLearned   int
	NbDeleted   int
}

// Solver is a CDCL SAT solver core. The zero value is not usable; construct
// one with New.
type Solver struct {
	vars      *varStore
	clauses   *clauseStore
	heap      *activityHeap
	trail     trail
	backtrack *backtrackStack

	// baseLevel is the decision level below which nothing may ever be
	// undone by the search loop itself: 0 normally, but while a
	// solve(assumptions) call's single assumption level is open it acts as
	// the floor conflict analysis backtracks to.
	baseLevel int

	status        Status
	unsatConflict ClauseID

	varInc      float64
	varDecay    float64
	clauseInc   float64
	clauseDecay float64

	theory Theory

	persistentReplays []func()

	nextDecision *AtomID

	// RestartPolicy selects the restart schedule; see RestartPolicy.
	RestartPolicy RestartPolicy
	// InitialConfBudget is the number of conflicts allowed before the first
	// restart under RestartGeometric (default 100, per spec).
	InitialConfBudget int
	// RestartFactor scales the conflict budget after each restart under
	// RestartGeometric (default 1.5).
	RestartFactor float64
	// LubyUnit scales the Luby sequence into a conflict count under
	// RestartLuby (default 512).
	LubyUnit uint

	// Verbose, when true, causes Trace (if set) to receive a line per
	// restart, mirroring gophersat.Solver.Verbose/Stats without the core
	// package owning a log sink itself.
	Verbose bool
	// Trace, if non-nil, receives progress lines when Verbose is set. A
	// caller-supplied hook, not a logging library, since the core has no
	// business picking where its progress goes.
	Trace func(string)

	Stats Stats
}

// New creates a Solver, optionally pre-sizing its variable arena.
func New(sizeHint int) *Solver {
	s := &Solver{
		vars:              newVarStore(sizeHint),
		clauses:           newClauseStore(),
		backtrack:         newBacktrackStack(),
		unsatConflict:     noClause,
		varInc:            1,
		varDecay:          1 / 0.95,
		clauseInc:         1,
		clauseDecay:       1 / 0.999,
		InitialConfBudget: 100,
		RestartFactor:     1.5,
		LubyUnit:          lubyUnit,
	}
	s.heap = newActivityHeap(s.vars)
	return s
}

// AtomOf interns f (if new) and returns the atom for its exact polarity,
// without asserting anything about it.
func (s *Solver) AtomOf(f Formula) AtomID { return s.internAtom(f) }

// internAtom wraps varStore.makeAtom, inserting any freshly allocated
// variable into the activity heap so it becomes eligible for decision. This
// must be the only path by which the solver interns a Formula.
func (s *Solver) internAtom(f Formula) AtomID {
	a, fresh := s.vars.makeAtom(f)
	if fresh {
		s.heap.insert(a.Var())
	}
	return a
}

// NbVars returns the number of interned variables.
func (s *Solver) NbVars() int { return s.vars.nbVars() }

// Status returns the outcome of the most recent Solve call, or Indet if
// Solve has not been called.
func (s *Solver) Status() Status { return s.status }

func (s *Solver) varBumpActivity(v VarID) {
	vv := &s.vars.vars[v]
	vv.activity += s.varInc
	if vv.activity > 1e100 {
		for i := range s.vars.vars {
			s.vars.vars[i].activity *= 1e-100
		}
		s.varInc *= 1e-100
	}
	if s.heap.contains(v) {
		s.heap.decreaseKey(v)
	}
}

func (s *Solver) varDecayActivity() { s.varInc *= s.varDecay }

func (s *Solver) clauseBumpActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > 1e20 {
		for _, other := range s.clauses.clauses {
			other.activity *= 1e-20
		}
		s.clauseInc *= 1e-20
	}
}

func (s *Solver) clauseDecayActivity() { s.clauseInc *= s.clauseDecay }

// assign binds atom a to true at the given decision level for the given
// reason, pushing it onto the trail.
func (s *Solver) assign(a AtomID, level int32, reason Reason) {
	v := &s.vars.vars[a.Var()]
	v.level = level
	v.reason = reason
	s.vars.atoms[a].isTrue = true
	s.trail.push(a)
}

// unassignAtom reverses assign, saving the atom's polarity for future
// decisions and reinserting the variable into the activity heap if it is
// not already present (it may still be present, as stale entries for
// propagated variables are tolerated; see search.go's decide).
func (s *Solver) unassignAtom(a AtomID) {
	v := &s.vars.vars[a.Var()]
	v.polarity = a.IsPositive()
	s.vars.atoms[a].isTrue = false
	v.level = -1
	v.reason = Reason{}
	if !s.heap.contains(a.Var()) {
		s.heap.insert(a.Var())
	}
}

// cancelUntil undoes every assignment made at a decision level above level,
// preserving level's own assignments, and runs registered backtrack actions
// for the levels it discards. It is a no-op if level is already at or above
// the current decision level.
func (s *Solver) cancelUntil(level int) {
	if level >= s.trail.decisionLevel() {
		return
	}
	start := s.trail.levelStart(level + 1)
	for i := len(s.trail.lits) - 1; i >= start; i-- {
		s.unassignAtom(s.trail.lits[i])
	}
	s.trail.lits = s.trail.lits[:start]
	s.trail.eltLevels = s.trail.eltLevels[:level]
	if s.trail.eltHead > start {
		s.trail.eltHead = start
	}
	if s.trail.thHead > start {
		s.trail.thHead = start
	}
	s.backtrack.popTo(level)
}

// attach registers a clause of length >= 2 with BCP's watch lists.
func (s *Solver) attach(cid ClauseID) {
	c := s.clauses.get(cid)
	if len(c.atoms) < 2 {
		panic("solver: cannot attach a clause of length < 2")
	}
	c.attached = true
	w0 := c.atoms[0].Negation()
	w1 := c.atoms[1].Negation()
	s.vars.atoms[w0].watches = append(s.vars.atoms[w0].watches, cid)
	s.vars.atoms[w1].watches = append(s.vars.atoms[w1].watches, cid)
}

// enqueueUnitOrConflict handles a length-1 clause: no-op if already true,
// otherwise binds it at the current decision level; if it is already false
// it is a genuine conflict, handled the same way search's main loop handles
// one (see resolveConflict) so a theory pushing a unit lemma that conflicts
// with a decision, not just a base-level fact, still backtracks instead of
// wrongly terminating the whole solve.
func (s *Solver) enqueueUnitOrConflict(a AtomID, cid ClauseID) {
	switch s.vars.status(a) {
	case Sat:
	case Unsat:
		s.resolveConflict(cid)
	default:
		s.assign(a, int32(s.trail.decisionLevel()), Reason{Kind: ReasonPropagated, Clause: cid})
	}
}

// resolveConflict handles a conflict clause, whether found by search's main
// loop or by a unit clause that conflicts at add time. At or below base level
// there is no decision left to undo, so the clause becomes the proof root
// directly: a length-1 conflict is first resolved against the reason of the
// variable it disagrees with (baseConflict), since generic first-UIP
// analysis of a single-literal conflict trivially re-derives the same
// clause without actually recording the resolution a base-level clash
// represents. Above base level this defers to the ordinary first-UIP path.
func (s *Solver) resolveConflict(conflict ClauseID) {
	if s.trail.decisionLevel() <= s.baseLevel {
		if s.clauses.get(conflict).Len() == 1 {
			conflict = s.baseConflict(conflict)
		}
		s.unsatConflict = conflict
		s.status = Unsat
		return
	}
	learnt, backtrackLevel, history, _ := s.analyze(conflict)
	target := backtrackLevel
	if target < s.baseLevel {
		target = s.baseLevel
	}
	s.cancelUntil(target)
	cid := s.learnClause(learnt, history)
	uip := learnt[0]
	s.assign(uip, int32(target), Reason{Kind: ReasonPropagated, Clause: cid})
	s.Stats.NbConflicts++
}

// Assume asserts each clause in clauses. Permanent clauses survive across
// Solve calls; non-permanent ones are automatically retracted (marked dead)
// when the decision level they were added under is popped. tag is stored on
// each resulting clause for the caller's own bookkeeping.
//
// A tautological clause (containing both an atom and its negation) is
// silently dropped. An empty clause makes the solver immediately Unsat,
// with that empty clause itself as the trivial proof root.
//
// This is distinct from Solve's variadic assumptions parameter: Assume
// asserts clauses into the problem itself, while Solve's assumptions are
// per-call local hypotheses cleared automatically before the next Solve.
//
// Calling Assume between Solve calls binds a new unit clause at the decision
// level the prior call left open (its assumption level, or a decision level
// above it after a Sat result) rather than level 0; the next Solve call's
// reset then discards that binding along with the rest of that scope (see
// DESIGN.md Open Question 7). Callers that need a fact to survive should add it before
// the first Solve call, or re-add it after inspecting the model.
func (s *Solver) Assume(clauses [][]Formula, permanent bool, tag string) error {
	for _, lits := range clauses {
		if err := s.addClause(lits, permanent, tag); err != nil {
			return err
		}
	}
	return nil
}

func (s *Solver) addClause(lits []Formula, permanent bool, tag string) error {
	atoms := make([]AtomID, 0, len(lits))
	seen := make(map[AtomID]bool, len(lits))
	tautology := false
	for _, f := range lits {
		a := s.internAtom(f)
		if seen[a.Negation()] {
			tautology = true
		}
		if seen[a] {
			continue
		}
		seen[a] = true
		atoms = append(atoms, a)
	}
	if tautology {
		return nil
	}
	cid := s.clauses.make(atoms, Premise{Kind: PremiseHypothesis}, tag)
	c := s.clauses.get(cid)
	if !permanent {
		c.local = true
	}
	switch len(atoms) {
	case 0:
		s.unsatConflict = cid
		s.status = Unsat
	case 1:
		s.enqueueUnitOrConflict(atoms[0], cid)
	default:
		s.attach(cid)
	}
	if !permanent && s.trail.decisionLevel() >= s.baseLevel && s.baseLevel > 0 {
		s.backtrack.push(func() { c.markDead() })
	}
	return nil
}

// Eval reports f's current truth value. It returns ErrUndecidedAtom if f's
// atom is not yet assigned.
func (s *Solver) Eval(f Formula) (bool, error) {
	a := s.internAtom(f)
	switch s.vars.status(a) {
	case Sat:
		return true, nil
	case Unsat:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUndecidedAtom, f)
	}
}

// Trail returns a snapshot of the current assignment stack, in assignment
// order.
func (s *Solver) Trail() []AtomID {
	out := make([]AtomID, len(s.trail.lits))
	copy(out, s.trail.lits)
	return out
}

// CheckModel verifies that every non-dead clause has at least one true atom
// under the current assignment.
func (s *Solver) CheckModel() error {
	for _, c := range s.clauses.clauses {
		if c.dead {
			continue
		}
		ok := false
		for i := 0; i < c.Len(); i++ {
			if s.vars.status(c.Get(i)) == Sat {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: clause %s has no true atom", ErrInvariant, s.clauses.name(c.id))
		}
	}
	return nil
}

// BindTheory attaches a theory to be driven to fixpoint between rounds of
// BCP. It must be called before the first Solve.
func (s *Solver) BindTheory(t Theory) { s.theory = t }

// Actions returns the TheoryActions handle a Theory implementation uses to
// push lemmas, propagate atoms and register backtrack hooks.
func (s *Solver) Actions() TheoryActions { return &solverActions{s: s} }
