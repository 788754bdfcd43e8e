package solver

import "fmt"

// PremiseKind classifies how a clause came to exist, and is what the proof
// DAG walks.
type PremiseKind uint8

const (
	// PremiseHypothesis is a clause asserted directly by the caller (via
	// Assume) or, with isAssumption set, a per-Solve local hypothesis.
	PremiseHypothesis PremiseKind = iota
	// PremiseTheoryLemma is a clause manufactured from a theory's reported
	// conflict or propagation; Lemma carries the theory's opaque payload.
	PremiseTheoryLemma
	// PremiseSimplified is a clause derived from Parent by removing
	// duplicate or subsumed literals, without a resolution step.
	PremiseSimplified
	// PremiseHistory is a learnt clause, derived from History by a chain of
	// pairwise resolutions in that order.
	PremiseHistory
)

// Premise records a clause's derivation.
type Premise struct {
	Kind    PremiseKind
	Lemma   interface{}
	Parent  ClauseID
	History []ClauseID
}

// Clause is a disjunction of atoms plus bookkeeping used by BCP, conflict
// analysis and the proof DAG.
type Clause struct {
	id       ClauseID
	atoms    []AtomID
	activity float64
	attached bool
	dead     bool
	visited  bool
	// local marks a clause that only holds for the current decision level
	// scope (a per-Solve non-permanent hypothesis, or a theory's local
	// lemma); it is marked dead automatically when that scope is popped.
	local bool
	// isAssumption distinguishes a solve(assumptions) unit hypothesis from
	// a user-asserted one for proof printing; see DESIGN.md Open Question 5.
	isAssumption bool
	premise      Premise
	tag          string
	// chain memoizes the synthetic intermediate clauses materialized while
	// linearizing a multi-parent History premise into pairwise resolutions.
	chain []ClauseID
}

// Len returns the number of atoms in the clause.
func (c *Clause) Len() int { return len(c.atoms) }

// Get returns the atom at index i.
func (c *Clause) Get(i int) AtomID { return c.atoms[i] }

func (c *Clause) set(i int, a AtomID) { c.atoms[i] = a }

func (c *Clause) swap(i, j int) { c.atoms[i], c.atoms[j] = c.atoms[j], c.atoms[i] }

// ID returns the clause's identity in its solver's arena.
func (c *Clause) ID() ClauseID { return c.id }

// Attached reports whether the clause is currently registered with BCP's
// watch lists.
func (c *Clause) Attached() bool { return c.attached }

// Dead reports whether the clause has been marked for lazy removal.
func (c *Clause) Dead() bool { return c.dead }

// Tag returns the caller-supplied label passed to Assume, if any.
func (c *Clause) Tag() string { return c.tag }

// Premise returns the clause's derivation record.
func (c *Clause) Premise() Premise { return c.premise }

// clauseStore is the arena all clauses (hypotheses, theory lemmas, learnt
// clauses, and their proof-only synthetic intermediates) live in.
type clauseStore struct {
	clauses []*Clause
}

func newClauseStore() *clauseStore { return &clauseStore{} }

func (cs *clauseStore) make(atoms []AtomID, premise Premise, tag string) ClauseID {
	id := ClauseID(len(cs.clauses))
	cs.clauses = append(cs.clauses, &Clause{id: id, atoms: atoms, premise: premise, tag: tag})
	return id
}

func (cs *clauseStore) get(id ClauseID) *Clause { return cs.clauses[id] }

// copy duplicates c's current atoms under a Simplified premise pointing back
// at c, used when literals are dropped from a clause without a resolution
// step (e.g. self-subsumption, duplicate-literal collapse).
func (cs *clauseStore) copy(id ClauseID) ClauseID {
	src := cs.clauses[id]
	atoms := make([]AtomID, len(src.atoms))
	copy(atoms, src.atoms)
	return cs.make(atoms, Premise{Kind: PremiseSimplified, Parent: id}, src.tag)
}

func (c *Clause) markDead() { c.dead = true }

// name derives a short display identity for a clause, chasing Simplified
// links back to the clause that first asserted the content.
func (cs *clauseStore) name(id ClauseID) string {
	c := cs.clauses[id]
	switch c.premise.Kind {
	case PremiseHypothesis:
		return fmt.Sprintf("H%d", id)
	case PremiseTheoryLemma:
		return fmt.Sprintf("T%d", id)
	case PremiseSimplified:
		return cs.name(c.premise.Parent)
	default:
		return fmt.Sprintf("C%d", id)
	}
}
