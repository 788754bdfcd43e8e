package solver

import "testing"

// TestTriviallySat covers end-to-end scenario 1: {(1,2), (¬1,3)}.
func TestTriviallySat(t *testing.T) {
	s := New(0)
	if err := s.Assume([][]Formula{Ints(1, 2), Ints(-1, 3)}, true, ""); err != nil {
		t.Fatalf("Assume: %v", err)
	}
	status, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if status != Sat {
		t.Fatalf("expected Sat, got %v", status)
	}
	if err := s.CheckModel(); err != nil {
		t.Fatalf("CheckModel: %v", err)
	}
}

// TestForcedUnitChain covers end-to-end scenario 2:
// {(1), (¬1,2), (¬2,3), (¬3,4)} — expected Sat, trail contains 1,2,3,4 all
// without a real branching decision (base-level propagation only; see
// DESIGN.md's Open Question 7 for why "level 0" here means "at or below
// the base level solve() opens", not necessarily the literal integer 0).
func TestForcedUnitChain(t *testing.T) {
	s := New(0)
	if err := s.Assume([][]Formula{Ints(1), Ints(-1, 2), Ints(-2, 3), Ints(-3, 4)}, true, ""); err != nil {
		t.Fatalf("Assume: %v", err)
	}
	status, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if status != Sat {
		t.Fatalf("expected Sat, got %v", status)
	}
	for _, n := range []int{1, 2, 3, 4} {
		v, err := s.Eval(IntAtom(n))
		if err != nil {
			t.Fatalf("Eval(%d): %v", n, err)
		}
		if !v {
			t.Errorf("expected %d to be true", n)
		}
		vid := s.AtomOf(IntAtom(n)).Var()
		if lvl := s.vars.vars[vid].level; int(lvl) > s.baseLevel {
			t.Errorf("expected %d to be forced at or below base level, got level %d (base %d)", n, lvl, s.baseLevel)
		}
	}
	trail := s.Trail()
	if len(trail) != 4 {
		t.Fatalf("expected 4 trail entries, got %d", len(trail))
	}
	for i, n := range []int{1, 2, 3, 4} {
		if trail[i] != s.AtomOf(IntAtom(n)) {
			t.Errorf("trail position %d: expected atom for %d, got var %d", i, n, trail[i].Var())
		}
	}
}

// TestImmediateContradiction covers end-to-end scenario 3: {(1), (¬1)} —
// expected Unsat, proof is a single resolution of the two hypotheses.
func TestImmediateContradiction(t *testing.T) {
	s := New(0)
	if err := s.Assume([][]Formula{Ints(1), Ints(-1)}, true, ""); err != nil {
		t.Fatalf("Assume: %v", err)
	}
	status, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if status != Unsat {
		t.Fatalf("expected Unsat, got %v", status)
	}
	proof, err := s.Proof()
	if err != nil {
		t.Fatalf("Proof: %v", err)
	}
	if err := proof.Check(); err != nil {
		t.Fatalf("proof.Check: %v", err)
	}
	core, err := proof.UnsatCore()
	if err != nil {
		t.Fatalf("UnsatCore: %v", err)
	}
	if len(core) != 2 {
		t.Fatalf("expected a 2-clause unsat core, got %d: %v", len(core), core)
	}
}

// pigeonhole2 encodes 3 pigeons into 2 holes: p_i_j means pigeon i is in
// hole j. Each pigeon must be in some hole, and no hole may hold two
// pigeons. This is unsatisfiable by counting.
func pigeonhole2(s *Solver) {
	pv := func(pigeon, hole int) Formula { return Name(string(rune('a'+pigeon)) + string(rune('0'+hole))) }
	var clauses [][]Formula
	for p := 0; p < 3; p++ {
		clauses = append(clauses, []Formula{pv(p, 0), pv(p, 1)})
	}
	for h := 0; h < 2; h++ {
		for p1 := 0; p1 < 3; p1++ {
			for p2 := p1 + 1; p2 < 3; p2++ {
				clauses = append(clauses, []Formula{pv(p1, h).Negate(), pv(p2, h).Negate()})
			}
		}
	}
	if err := s.Assume(clauses, true, ""); err != nil {
		panic(err)
	}
}

// TestPigeonhole2 covers end-to-end scenario 4: 3 pigeons into 2 holes.
// Expected Unsat, proof has at least one learnt clause, check(proof)
// passes, and the unsat core rests only on the asserted hypothesis clauses
// (pigeonhole instances are known to need most or all of their clauses).
func TestPigeonhole2(t *testing.T) {
	s := New(0)
	pigeonhole2(s)
	nbHypotheses := len(s.clauses.clauses)
	status, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if status != Unsat {
		t.Fatalf("expected Unsat, got %v", status)
	}
	if s.Stats.NbLearned < 1 {
		t.Errorf("expected at least one learnt clause, got %d", s.Stats.NbLearned)
	}
	proof, err := s.Proof()
	if err != nil {
		t.Fatalf("Proof: %v", err)
	}
	if err := proof.Check(); err != nil {
		t.Fatalf("proof.Check: %v", err)
	}
	core, err := proof.UnsatCore()
	if err != nil {
		t.Fatalf("UnsatCore: %v", err)
	}
	if len(core) == 0 {
		t.Fatal("expected a non-empty unsat core")
	}
	for _, cid := range core {
		if int(cid) >= nbHypotheses {
			t.Errorf("unsat core clause %d is not one of the original hypothesis clauses", cid)
		}
		if s.clauses.get(cid).premise.Kind != PremiseHypothesis {
			t.Errorf("unsat core clause %d has premise kind %v, want PremiseHypothesis", cid, s.clauses.get(cid).premise.Kind)
		}
	}
}
