package solver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// TestProofResolutionPivot covers the core proof-DAG invariant from spec
// §4.9: a Resolution step's pivot is the unique atom present with opposite
// polarity on each side, and the resolvent literal set equals the union of
// both parents minus the pivot's variable.
func TestProofResolutionPivot(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Assume([][]Formula{Ints(1, 2), Ints(-1, 3)}, true, ""))
	left := s.clauses.get(0)
	right := s.clauses.get(1)
	pivot, lits, err := s.resolve(left.id, right.id)
	require.NoError(t, err)
	require.Equal(t, s.AtomOf(IntAtom(1)), pivot)
	want := []AtomID{s.AtomOf(IntAtom(2)), s.AtomOf(IntAtom(3))}
	if diff := cmp.Diff(want, lits); diff != "" {
		t.Errorf("resolvent literal set mismatch (-want +got):\n%s", diff)
	}
}

// TestProofResolutionNoPivotFails covers the ResolutionError edge case in
// spec §4.9: two clauses sharing zero or several candidate pivots cannot be
// resolved into a single node.
func TestProofResolutionNoPivotFails(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Assume([][]Formula{Ints(1, 2), Ints(3, 4)}, true, ""))
	_, _, err := s.resolve(0, 1)
	require.ErrorIs(t, err, ErrResolution)
}

// TestProofDuplicateStep covers PremiseSimplified expansion: a clause copied
// with literals dropped (without a resolution) reports a Duplicate step
// naming exactly the removed atoms.
func TestProofDuplicateStep(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Assume([][]Formula{Ints(1, 2, 3)}, true, ""))
	parent := ClauseID(0)
	trimmed := s.clauses.make([]AtomID{s.AtomOf(IntAtom(1)), s.AtomOf(IntAtom(2))}, Premise{Kind: PremiseSimplified, Parent: parent}, "")
	step, err := s.expand(trimmed)
	require.NoError(t, err)
	require.Equal(t, StepDuplicate, step.Kind)
	require.Equal(t, parent, step.Parent)
	want := []AtomID{s.AtomOf(IntAtom(3))}
	if diff := cmp.Diff(want, step.DupAtoms); diff != "" {
		t.Errorf("DupAtoms mismatch (-want +got):\n%s", diff)
	}
}

// TestProofHistoryChainLinearizes covers the multi-parent History case of
// spec §4.9: a three-parent chain linearizes into pairwise resolutions, and
// repeated Expand calls reuse the same synthetic intermediate clause rather
// than growing the arena (see Clause.chain).
func TestProofHistoryChainLinearizes(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Assume([][]Formula{
		Ints(1, 2),  // H0
		Ints(-1, 3), // H1
		Ints(-2, 4), // H2
	}, true, ""))
	learnt := s.clauses.make(nil, Premise{Kind: PremiseHistory, History: []ClauseID{0, 1, 2}}, "")

	step1, err := s.expand(learnt)
	require.NoError(t, err)
	require.Equal(t, StepResolution, step1.Kind)
	require.Equal(t, ClauseID(2), step1.Right)

	nBefore := len(s.clauses.clauses)
	step2, err := s.expand(learnt)
	require.NoError(t, err)
	require.Equal(t, step1, step2, "repeated Expand must reuse the cached chain, not rebuild it")
	require.Equal(t, nBefore, len(s.clauses.clauses), "repeated Expand must not grow the clause arena")
}

// TestProofHistoryLengthOneIsDuplicate covers DESIGN.md Open Question 4: a
// History premise of length 1 (conflict analysis found the UIP without
// resolving anything) expands as a Duplicate of its sole parent rather than
// a Resolution, since a Resolution step structurally needs two operands.
func TestProofHistoryLengthOneIsDuplicate(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Assume([][]Formula{Ints(1, 2)}, true, ""))
	learnt := s.clauses.make([]AtomID{s.AtomOf(IntAtom(1)), s.AtomOf(IntAtom(2))}, Premise{Kind: PremiseHistory, History: []ClauseID{0}}, "")
	step, err := s.expand(learnt)
	require.NoError(t, err)
	require.Equal(t, StepDuplicate, step.Kind)
	require.Equal(t, ClauseID(0), step.Parent)
}

// TestUnsatCoreClearsVisitedFlags covers the scoped-clear discipline unsat
// core traversal shares with conflict analysis's marking: calling UnsatCore
// twice must yield the same result, which would not hold if visited flags
// leaked across calls.
func TestUnsatCoreClearsVisitedFlags(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Assume([][]Formula{Ints(1), Ints(-1)}, true, ""))
	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Unsat, status)

	proof, err := s.Proof()
	require.NoError(t, err)
	first, err := proof.UnsatCore()
	require.NoError(t, err)
	second, err := proof.UnsatCore()
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("UnsatCore is not idempotent, visited flags may have leaked (-first +second):\n%s", diff)
	}
	for _, id := range s.clauses.clauses {
		require.False(t, id.visited, "clause %d left visited=true after UnsatCore returned", id.id)
	}
}

// TestProofOnNonUnsatSolverErrors covers spec §6's Proof() contract: calling
// it without a preceding Unsat result is an observable error, not a panic.
func TestProofOnNonUnsatSolverErrors(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Assume([][]Formula{Ints(1, 2)}, true, ""))
	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, Sat, status)
	_, err = s.Proof()
	require.ErrorIs(t, err, ErrNoProof)
}
