package solver

// Solve runs the search controller, optionally under a set of per-call
// local hypotheses (assumptions), and returns Sat or Unsat.
//
// Every call first cancels back to level 0, discarding whatever the
// previous call left on the trail above it (its assumptions, any decisions
// search made, any local theory lemmas), and replays any pending persistent
// theory lemmas (see TheoryActions.PushPersistent). It then opens a single
// new decision level and pushes each assumption as a unit decision on it,
// exactly as spec's assumption layer describes: an assumption already true
// is skipped; one already false makes the call immediately Unsat off a
// trivial one-clause proof; otherwise it is enqueued with
// ReasonLocalAssumption so conflict analysis can resolve through it like
// any other propagation.
//
// cancelUntil(0) preserves level 0 itself, which is exactly the trail
// segment addClause populates before any Solve call ever runs, so permanent
// unit hypotheses survive this reset: they were never attached to BCP's
// watch lists (unit clauses aren't watched), so once unassigned they would
// have no propagation path back.
//
// If clauses added via Assume before the first Solve call already made the
// problem Unsat at level 0 (an empty clause, or a unit clause conflicting
// with an earlier one), Solve returns Unsat at once, without opening the
// assumption level; every later call does the same.
//
// This is distinct from Assume, which asserts clauses into the problem
// itself; Solve's assumptions are cleared automatically before the next
// Solve call (calling Solve with no assumptions clears them).
func (s *Solver) Solve(assumptions ...AtomID) (Status, error) {
	if s.status == Unsat && s.trail.decisionLevel() == 0 {
		return Unsat, nil
	}
	s.cancelUntil(0)
	s.status = Indet
	for _, fn := range s.persistentReplays {
		fn()
	}

	s.trail.newDecisionLevel()
	s.backtrack.newLevel()
	level := int32(s.trail.decisionLevel())
	s.baseLevel = int(level)

	for _, a := range assumptions {
		switch s.vars.status(a) {
		case Sat:
			continue
		case Unsat:
			cid := s.clauses.make([]AtomID{a}, Premise{Kind: PremiseHypothesis}, "")
			c := s.clauses.get(cid)
			c.isAssumption = true
			s.backtrack.push(func() { c.markDead() })
			s.status = Unsat
			s.unsatConflict = cid
			return Unsat, nil
		default:
			cid := s.clauses.make([]AtomID{a}, Premise{Kind: PremiseHypothesis}, "")
			c := s.clauses.get(cid)
			c.isAssumption = true
			s.backtrack.push(func() { c.markDead() })
			s.assign(a, level, Reason{Kind: ReasonLocalAssumption, Clause: cid})
		}
	}

	if s.status == Unsat {
		// A persistent theory lemma replayed above conflicted with a
		// level-0 fact.
		return Unsat, nil
	}

	confBudget := s.InitialConfBudget
	if confBudget <= 0 {
		confBudget = 1
	}
	for {
		st := s.search(confBudget)
		switch st {
		case Sat:
			s.status = Sat
			return Sat, nil
		case Unsat:
			s.status = Unsat
			return Unsat, nil
		default:
			s.Stats.NbRestarts++
			if s.Verbose && s.Trace != nil {
				s.Trace("restart")
			}
			confBudget = s.nextConfBudget(confBudget)
		}
	}
}
