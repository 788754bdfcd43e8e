package solver

import "sort"

// analyze performs first-UIP conflict analysis starting from conflict,
// grounded on the teacher's learnClause (learn.go): a trail walk driven by
// a path-counter over literals at the conflict's decision level, per-
// variable seen marks scoped to this call, and a decreasing-level sort of
// the resulting clause (sort.go's clauseSorter, expressed here with
// sort.Slice instead of a dedicated sort.Interface type).
//
// learnt holds the actual literals of the derived clause, each false under
// the current assignment: the falsified atoms below the conflict level met
// in the resolved clauses, plus the negation of the UIP atom, so the clause
// is genuinely implied by what came before it. history holds, in
// derivation order, every clause resolved into the antecedent, including
// level-0 unit-propagation reasons that are folded away before they can
// appear as a learnt literal but must still be recorded for the proof to
// be checkable.
func (s *Solver) analyze(conflict ClauseID) (learnt []AtomID, backtrackLevel int, history []ClauseID, isUIP bool) {
	conflictLevel := s.maxLevel(conflict)

	var touched []VarID
	mark := func(v VarID) {
		vv := &s.vars.vars[v]
		if !vv.seen() {
			touched = append(touched, v)
		}
		vv.mark()
	}
	defer func() {
		for _, v := range touched {
			s.vars.vars[v].clearMark()
		}
	}()

	pathC := 0
	resolveClause := func(cid ClauseID) {
		c := s.clauses.get(cid)
		if c.premise.Kind == PremiseHistory || c.premise.Kind == PremiseSimplified {
			s.clauseBumpActivity(c)
		}
		for i := 0; i < c.Len(); i++ {
			a := c.Get(i)
			v := a.Var()
			vv := &s.vars.vars[v]
			if vv.seen() {
				continue
			}
			s.varBumpActivity(v)
			mark(v)
			switch {
			case int(vv.level) == conflictLevel:
				pathC++
			case vv.level != 0:
				learnt = append(learnt, a)
			}
			if vv.level == 0 && vv.reason.Kind == ReasonPropagated {
				history = append(history, vv.reason.Clause)
			}
		}
	}

	history = append(history, conflict)
	resolveClause(conflict)

	ptr := s.trail.len() - 1
	var uipAtom AtomID = -1
	for pathC > 0 {
		for {
			a := s.trail.lits[ptr]
			v := a.Var()
			vv := &s.vars.vars[v]
			if vv.seen() && int(vv.level) == conflictLevel {
				break
			}
			ptr--
		}
		a := s.trail.lits[ptr]
		v := a.Var()
		vv := &s.vars.vars[v]
		ptr--
		pathC--
		if pathC == 0 {
			uipAtom = a
			break
		}
		if vv.reason.Kind == ReasonPropagated || vv.reason.Kind == ReasonLocalAssumption {
			history = append(history, vv.reason.Clause)
			resolveClause(vv.reason.Clause)
		}
	}
	learnt = append(learnt, uipAtom.Negation())

	sort.Slice(learnt, func(i, j int) bool {
		return s.vars.vars[learnt[i].Var()].level > s.vars.vars[learnt[j].Var()].level
	})

	backtrackLevel, isUIP = s.backtrackLevelOf(learnt)

	s.varDecayActivity()
	s.clauseDecayActivity()

	return learnt, backtrackLevel, history, isUIP
}

// backtrackLevelOf implements spec's exact rule: unit clauses backtrack to
// 0; if the (now decreasing-level-sorted) top two literals share a level,
// backtrack to max(topLevel-1, 0) and the result is not a fresh UIP
// assertion at a new level; otherwise backtrack to the second literal's
// level and it is.
func (s *Solver) backtrackLevelOf(learnt []AtomID) (int, bool) {
	if len(learnt) == 1 {
		return 0, true
	}
	lvl0 := int(s.vars.vars[learnt[0].Var()].level)
	lvl1 := int(s.vars.vars[learnt[1].Var()].level)
	if lvl0 == lvl1 {
		bt := lvl0 - 1
		if bt < 0 {
			bt = 0
		}
		return bt, false
	}
	return lvl1, true
}

func (s *Solver) maxLevel(cid ClauseID) int {
	c := s.clauses.get(cid)
	m := 0
	for i := 0; i < c.Len(); i++ {
		if lvl := int(s.vars.vars[c.Get(i).Var()].level); lvl > m {
			m = lvl
		}
	}
	return m
}

// learnClause materializes the learnt clause with a History premise,
// attaching it if it has at least two atoms.
func (s *Solver) learnClause(learnt []AtomID, history []ClauseID) ClauseID {
	atoms := make([]AtomID, len(learnt))
	copy(atoms, learnt)
	cid := s.clauses.make(atoms, Premise{Kind: PremiseHistory, History: history}, "")
	if len(atoms) >= 2 {
		s.attach(cid)
	}
	s.Stats.NbLearned++
	return cid
}
