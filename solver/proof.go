package solver

import "fmt"

// StepKind classifies one proof node's derivation, per spec's proof-node
// vocabulary. There is no gophersat analogue for any of this (a pure SAT
// solver has no reason to keep a checkable proof); it is grounded on
// spec's description alone, not on explain/mus.go, whose MUS-via-repeated-
// relaxed-resolving approach is a different algorithm entirely (see
// DESIGN.md).
type StepKind uint8

const (
	// StepHypothesis is a leaf: a clause the caller asserted directly.
	StepHypothesis StepKind = iota
	// StepAssumption is a leaf: a unit clause from a solve(assumptions)
	// local hypothesis (see DESIGN.md Open Question 5).
	StepAssumption
	// StepLemma is a leaf: a clause manufactured from a theory conflict or
	// propagation.
	StepLemma
	// StepDuplicate derives Clause from Parent by dropping literals without
	// a resolution step.
	StepDuplicate
	// StepResolution derives Clause by resolving Left and Right on Pivot.
	StepResolution
)

// ProofStep is one node's derivation record.
type ProofStep struct {
	Kind        StepKind
	Clause      ClauseID
	Left, Right ClauseID // valid for StepResolution
	Pivot       AtomID   // valid for StepResolution
	Parent      ClauseID // valid for StepDuplicate
	DupAtoms    []AtomID // atoms present in Parent but not in Clause
}

// Proof is a handle onto an Unsat solver's derivation of the empty clause.
type Proof struct {
	s    *Solver
	Root ClauseID
}

// Proof returns a handle to the current Unsat proof. It returns ErrNoProof
// if the solver's last Solve did not return Unsat.
func (s *Solver) Proof() (Proof, error) {
	if s.status != Unsat {
		return Proof{}, ErrNoProof
	}
	return Proof{s: s, Root: s.unsatConflict}, nil
}

// Expand returns the derivation step for cid.
func (p Proof) Expand(cid ClauseID) (ProofStep, error) { return p.s.expand(cid) }

// UnsatCore returns the hypothesis and theory-lemma leaves the proof
// actually rests on.
func (p Proof) UnsatCore() ([]ClauseID, error) { return p.s.unsatCore(p.Root) }

// Check walks and validates every resolution in the proof, failing with
// ErrResolution if any step does not resolve on a single pivot.
func (p Proof) Check() error { return p.s.checkClause(p.Root, make(map[ClauseID]bool)) }

func (s *Solver) expand(cid ClauseID) (ProofStep, error) {
	c := s.clauses.get(cid)
	switch c.premise.Kind {
	case PremiseHypothesis:
		if c.isAssumption {
			return ProofStep{Kind: StepAssumption, Clause: cid}, nil
		}
		return ProofStep{Kind: StepHypothesis, Clause: cid}, nil
	case PremiseTheoryLemma:
		return ProofStep{Kind: StepLemma, Clause: cid}, nil
	case PremiseSimplified:
		parent := s.clauses.get(c.premise.Parent)
		return ProofStep{Kind: StepDuplicate, Clause: cid, Parent: c.premise.Parent, DupAtoms: s.duplicateAtoms(parent, c)}, nil
	case PremiseHistory:
		return s.resolutionStep(cid)
	default:
		panic("solver: clause has unknown premise kind")
	}
}

func (s *Solver) duplicateAtoms(parent, c *Clause) []AtomID {
	present := make(map[AtomID]bool, c.Len())
	for i := 0; i < c.Len(); i++ {
		present[c.Get(i)] = true
	}
	var removed []AtomID
	for i := 0; i < parent.Len(); i++ {
		if l := parent.Get(i); !present[l] {
			removed = append(removed, l)
		}
	}
	return removed
}

// resolutionStep linearizes a History premise into a chain of pairwise
// resolutions, per spec §4.9, materializing synthetic intermediate clauses
// for chains of more than two parents and returning the outermost step.
// A History of length 1 (conflict analysis found the UIP without resolving
// anything) is reported as a Duplicate of its sole parent, since a
// Resolution step structurally needs two operands (DESIGN.md Open
// Question 4).
func (s *Solver) resolutionStep(cid ClauseID) (ProofStep, error) {
	c := s.clauses.get(cid)
	hist := c.premise.History
	if len(hist) == 0 {
		panic("solver: empty history at proof expansion")
	}
	if len(hist) == 1 {
		return ProofStep{Kind: StepDuplicate, Clause: cid, Parent: hist[0]}, nil
	}
	if c.chain == nil {
		chain, err := s.buildChain(hist)
		if err != nil {
			return ProofStep{}, err
		}
		c.chain = chain
	}
	acc := hist[0]
	if len(c.chain) > 0 {
		acc = c.chain[len(c.chain)-1]
	}
	pivot, _, err := s.resolve(acc, hist[len(hist)-1])
	if err != nil {
		return ProofStep{}, err
	}
	return ProofStep{Kind: StepResolution, Clause: cid, Left: acc, Right: hist[len(hist)-1], Pivot: pivot}, nil
}

// buildChain materializes, once per multi-parent History clause, the
// synthetic intermediate clauses standing for each partial resolvent in the
// chain hist[0] ⋈ hist[1] ⋈ ... ⋈ hist[n-2], caching the result on the
// clause itself (Clause.chain) so repeated Expand/Check calls reuse the same
// ClauseIDs instead of growing the arena on every call.
func (s *Solver) buildChain(hist []ClauseID) ([]ClauseID, error) {
	chain := make([]ClauseID, 0, len(hist)-2)
	acc := hist[0]
	for i := 1; i < len(hist)-1; i++ {
		_, lits, err := s.resolve(acc, hist[i])
		if err != nil {
			return nil, err
		}
		acc = s.clauses.make(lits, Premise{Kind: PremiseHistory, History: []ClauseID{acc, hist[i]}}, "")
		chain = append(chain, acc)
	}
	return chain, nil
}

// resolve computes the resolvent of a and b, returning the unique pivot
// atom (from a's side) that cancels against its negation in b.
func (s *Solver) resolve(aID, bID ClauseID) (AtomID, []AtomID, error) {
	a := s.clauses.get(aID)
	b := s.clauses.get(bID)
	pivot, err := s.findPivot(a, b)
	if err != nil {
		return -1, nil, err
	}
	pv := pivot.Var()
	seen := make(map[AtomID]bool, a.Len()+b.Len())
	var lits []AtomID
	for i := 0; i < a.Len(); i++ {
		if l := a.Get(i); l.Var() != pv && !seen[l] {
			seen[l] = true
			lits = append(lits, l)
		}
	}
	for i := 0; i < b.Len(); i++ {
		if l := b.Get(i); l.Var() != pv && !seen[l] {
			seen[l] = true
			lits = append(lits, l)
		}
	}
	return pivot, lits, nil
}

// baseConflict resolves a unit clause that conflicts with an existing
// base-level assignment against the reason clause of that assignment,
// producing a two-parent History clause suitable as a proof root. Generic
// first-UIP analysis of a single-literal conflict stops as soon as it
// counts that literal's own variable, so it never actually resolves against
// the variable's reason; for an immediate double-unit-clause contradiction
// that degenerates to re-deriving the same clause, which is not a usable
// proof step. If the assignment being conflicted with is a decision rather
// than a propagation, there is no reason clause to resolve against, so cid
// is returned unchanged.
func (s *Solver) baseConflict(cid ClauseID) ClauseID {
	c := s.clauses.get(cid)
	a := c.Get(0)
	v := &s.vars.vars[a.Var()]
	if v.reason.Kind != ReasonPropagated && v.reason.Kind != ReasonLocalAssumption {
		return cid
	}
	_, lits, err := s.resolve(cid, v.reason.Clause)
	if err != nil {
		return cid
	}
	return s.clauses.make(lits, Premise{Kind: PremiseHistory, History: []ClauseID{cid, v.reason.Clause}}, "")
}

func (s *Solver) findPivot(a, b *Clause) (AtomID, error) {
	bset := make(map[AtomID]bool, b.Len())
	for i := 0; i < b.Len(); i++ {
		bset[b.Get(i)] = true
	}
	var pivot AtomID = -1
	count := 0
	for i := 0; i < a.Len(); i++ {
		if l := a.Get(i); bset[l.Negation()] {
			if count == 0 {
				pivot = l
			}
			count++
		}
	}
	if count != 1 {
		return -1, fmt.Errorf("%w: %s and %s share %d candidate pivots", ErrResolution, s.clauses.name(a.id), s.clauses.name(b.id), count)
	}
	return pivot, nil
}

// unsatCore performs a reverse-BFS from root, collecting every leaf with
// premise Hypothesis or TheoryLemma, clearing the visited flags it sets
// before returning (the same scoped-clear discipline analyze uses for
// variable marks).
func (s *Solver) unsatCore(root ClauseID) ([]ClauseID, error) {
	var touched []ClauseID
	defer func() {
		for _, id := range touched {
			s.clauses.get(id).visited = false
		}
	}()
	visit := func(id ClauseID) bool {
		c := s.clauses.get(id)
		if c.visited {
			return false
		}
		c.visited = true
		touched = append(touched, id)
		return true
	}

	var core []ClauseID
	queue := []ClauseID{}
	if visit(root) {
		queue = append(queue, root)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		c := s.clauses.get(id)
		switch c.premise.Kind {
		case PremiseHypothesis, PremiseTheoryLemma:
			core = append(core, id)
		case PremiseSimplified:
			if visit(c.premise.Parent) {
				queue = append(queue, c.premise.Parent)
			}
		case PremiseHistory:
			for _, p := range c.premise.History {
				if visit(p) {
					queue = append(queue, p)
				}
			}
		}
	}
	return core, nil
}

func (s *Solver) checkClause(cid ClauseID, done map[ClauseID]bool) error {
	if done[cid] {
		return nil
	}
	done[cid] = true
	c := s.clauses.get(cid)
	switch c.premise.Kind {
	case PremiseHypothesis, PremiseTheoryLemma:
		return nil
	case PremiseSimplified:
		return s.checkClause(c.premise.Parent, done)
	case PremiseHistory:
		step, err := s.resolutionStep(cid)
		if err != nil {
			return err
		}
		if step.Kind == StepResolution {
			if err := s.checkClause(step.Left, done); err != nil {
				return err
			}
			return s.checkClause(step.Right, done)
		}
		return s.checkClause(step.Parent, done)
	default:
		return nil
	}
}
