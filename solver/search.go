package solver

// decide picks the next branching atom: a theory-suggested override if one
// is pending and still unassigned, otherwise the highest-activity variable
// still in the heap, skipping stale entries left behind by variables that
// got bound by propagation rather than decision (see heap.go/solver.go's
// unassignAtom for why those entries are tolerated instead of eagerly
// purged). Returns false if no decision remains to be made (every variable
// is assigned).
func (s *Solver) decide() bool {
	var a AtomID = -1
	if s.nextDecision != nil {
		cand := *s.nextDecision
		s.nextDecision = nil
		if s.vars.vars[cand.Var()].level < 0 {
			a = cand
		}
	}
	if a < 0 {
		for {
			if s.heap.empty() {
				return false
			}
			v := s.heap.removeMin()
			if s.vars.vars[v].level < 0 {
				a = v.SignedAtom(!s.vars.vars[v].polarity)
				break
			}
		}
	}
	s.trail.newDecisionLevel()
	s.backtrack.newLevel()
	level := int32(s.trail.decisionLevel())
	s.assign(a, level, Reason{Kind: ReasonDecision})
	s.Stats.NbDecisions++
	return true
}

// restartRequested is returned by search to signal the caller (Solve) that
// the current conflict budget was exhausted and the search state has
// already been cancelled back to baseLevel; it never escapes to a public
// API caller. Using a plain Status value instead of a bool-plus-mutation
// follows spec's "prefer explicit result sum types" design note.
const restartRequested = Indet

// search runs BCP/theory/decide/analyze until it reaches Sat, proves Unsat,
// or exhausts confBudget conflicts (in which case it returns
// restartRequested having already cancelled to baseLevel).
func (s *Solver) search(confBudget int) Status {
	conflictsThisRestart := 0
	for {
		conflict := s.bcpAndTheoryFixpoint()
		if conflict == noClause && s.vars.allAssigned() {
			cid, ok := s.checkIfSat()
			if ok {
				return Sat
			}
			conflict = cid
		}
		if conflict != noClause {
			atBase := s.trail.decisionLevel() <= s.baseLevel
			s.resolveConflict(conflict)
			if atBase {
				return Unsat
			}
			conflictsThisRestart++
			continue
		}
		if conflictsThisRestart >= confBudget {
			s.cancelUntil(s.baseLevel)
			return restartRequested
		}
		if !s.decide() {
			return Sat
		}
	}
}

func (s *Solver) nextConfBudget(current int) int {
	switch s.RestartPolicy {
	case RestartLuby:
		return int(luby(uint(s.Stats.NbRestarts+1)) * s.LubyUnit)
	default:
		return int(float64(current) * s.RestartFactor)
	}
}
