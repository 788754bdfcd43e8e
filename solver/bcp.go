package solver

// propagateFromAtom scans the watch list of the atom that was just assigned
// true, fixing up each watched clause's pair of watched atoms so that the
// invariant "the negations of atoms[0] and atoms[1] are each registered in
// their own watch list" is restored, and enqueuing or reporting a conflict
// along the way. Dead clauses encountered are dropped from the watch list
// in passing rather than eagerly purged elsewhere.
//
// The overall scan-and-compact shape is grounded on the teacher's
// unifyLiteral loop (watcher.go); the two-watch protocol itself (fixed
// atoms[0]/atoms[1], swap-to-index-1, linear scan from index 2) follows the
// plain clause case this solver's data model describes, not the teacher's
// cardinality-constraint generalization.
func (s *Solver) propagateFromAtom(a AtomID) ClauseID {
	atomRec := &s.vars.atoms[a]
	ws := atomRec.watches
	i, j := 0, 0
	conflict := noClause
	for i < len(ws) {
		cid := ws[i]
		c := s.clauses.get(cid)
		if c.dead {
			i++
			continue
		}
		if c.atoms[0] == a.Negation() {
			c.swap(0, 1)
		}
		// atoms[1] now equals a.Negation(): this clause's watched literal
		// at index 1 has just been falsified.
		if s.vars.atoms[c.atoms[0]].isTrue {
			// The other watched atom is already true: clause is satisfied.
			ws[j] = cid
			j++
			i++
			continue
		}
		found := -1
		for k := 2; k < len(c.atoms); k++ {
			if !s.vars.atoms[c.atoms[k].Negation()].isTrue {
				found = k
				break
			}
		}
		if found >= 0 {
			c.swap(1, found)
			moveTo := c.atoms[1].Negation()
			s.vars.atoms[moveTo].watches = append(s.vars.atoms[moveTo].watches, cid)
			i++
			continue
		}
		if s.vars.atoms[c.atoms[0].Negation()].isTrue {
			// Both watched atoms are false and no replacement exists:
			// conflict. Preserve every not-yet-scanned watcher, including
			// this one, then stop.
			copy(ws[j:], ws[i:])
			j += len(ws) - i
			conflict = cid
			i = len(ws)
			break
		}
		// Unit: atoms[0] is the sole remaining unfalsified atom.
		level := int32(s.trail.decisionLevel())
		s.assign(c.atoms[0], level, Reason{Kind: ReasonPropagated, Clause: cid})
		ws[j] = cid
		j++
		i++
	}
	atomRec.watches = ws[:j]
	return conflict
}

// bcp drains the trail from its propagation cursor, running
// propagateFromAtom over every newly assigned atom until either a conflict
// is found or the cursor catches up with the trail's end.
func (s *Solver) bcp() ClauseID {
	for s.trail.eltHead < s.trail.len() {
		a := s.trail.lits[s.trail.eltHead]
		s.trail.eltHead++
		if cid := s.propagateFromAtom(a); cid != noClause {
			return cid
		}
	}
	return noClause
}
