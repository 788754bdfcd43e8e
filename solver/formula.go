package solver

import (
	"hash/fnv"
	"strconv"
)

// Formula is the abstract, hashable, negatable proposition type the solver
// is polymorphic over. Callers intern formulas into atoms via Solver.Assume
// or Solver.Eval; the solver never inspects a Formula's internal structure
// beyond these four methods.
type Formula interface {
	// Hash returns a hash suitable for bucketing during interning. It need
	// not be collision-free; Equal is the tie-breaker.
	Hash() uint64
	// Equal reports whether two formulas denote the same proposition. Only
	// ever called between two values already reduced to canonical form by
	// Normalize.
	Equal(other Formula) bool
	// Negate returns the logical negation of the receiver.
	Negate() Formula
	// Normalize returns a canonical representative for the formula and
	// whether the receiver is the negation of that representative. Calling
	// Normalize on the canonical representative itself must return
	// (itself, false).
	Normalize() (canon Formula, negated bool)
	String() string
}

// Name is a Formula backed by a plain string, useful for symbolic atoms in
// tests and small examples ("a", "b", "queen-1-3", ...).
type Name string

// Hash implements Formula.
func (n Name) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(n))
	return h.Sum64()
}

// Equal implements Formula.
func (n Name) Equal(other Formula) bool {
	o, ok := other.(Name)
	return ok && o == n
}

// Negate implements Formula.
func (n Name) Negate() Formula { return negatedName{n} }

// Normalize implements Formula.
func (n Name) Normalize() (Formula, bool) { return n, false }

func (n Name) String() string { return string(n) }

type negatedName struct{ f Name }

func (n negatedName) Hash() uint64                 { return n.f.Hash() ^ 0x9e3779b97f4a7c15 }
func (n negatedName) Equal(other Formula) bool     { o, ok := other.(negatedName); return ok && o.f == n.f }
func (n negatedName) Negate() Formula              { return n.f }
func (n negatedName) Normalize() (Formula, bool)   { return n.f, true }
func (n negatedName) String() string               { return "-" + n.f.String() }

// IntAtom is a Formula backed by a nonzero DIMACS-style signed integer,
// mirroring the [][]int clause shape the teacher's ParseSlice accepts.
// Zero is not a valid IntAtom.
type IntAtom int

// Hash implements Formula.
func (a IntAtom) Hash() uint64 {
	v := int64(a)
	if v < 0 {
		v = -v
	}
	return uint64(v)
}

// Equal implements Formula.
func (a IntAtom) Equal(other Formula) bool {
	o, ok := other.(IntAtom)
	return ok && o == a
}

// Negate implements Formula.
func (a IntAtom) Negate() Formula { return -a }

// Normalize implements Formula.
func (a IntAtom) Normalize() (Formula, bool) {
	if a < 0 {
		return -a, true
	}
	return a, false
}

func (a IntAtom) String() string { return strconv.Itoa(int(a)) }

// Ints builds a clause's literal slice from DIMACS-style nonzero ints, the
// terse fixture shape used throughout this package's tests.
func Ints(lits ...int) []Formula {
	out := make([]Formula, len(lits))
	for i, l := range lits {
		out[i] = IntAtom(l)
	}
	return out
}
