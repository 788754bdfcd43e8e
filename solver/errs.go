package solver

import "errors"

// Sentinel errors returned by the public API. Wrap with fmt.Errorf("%w: ...")
// where more context helps a caller.
var (
	// ErrNoProof is returned by Proof when the solver's last Solve call did
	// not return Unsat.
	ErrNoProof = errors.New("solver: no proof available")
	// ErrUndecidedAtom is returned by Eval when the atom is not yet bound.
	ErrUndecidedAtom = errors.New("solver: atom is not yet assigned")
	// ErrInvariant reports a violated model or proof invariant detected at
	// checking time (not a programming-error panic).
	ErrInvariant = errors.New("solver: invariant violation")
	// ErrResolution is returned by proof checking when two clauses do not
	// resolve on a single pivot.
	ErrResolution = errors.New("solver: not a valid resolution")
	// ErrTheoryConflict is returned by TheoryActions.Propagate when the
	// formula being propagated is already false; the calling theory should
	// fold this into its own Assume/IfSat conflict report.
	ErrTheoryConflict = errors.New("solver: theory propagation conflicts with current trail")
)
