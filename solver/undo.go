package solver

// backtrackStack runs parallel to trail, holding closures pushed by
// components that need level-scoped cleanup beyond the generic
// unassign-every-atom-above-the-target-level behavior cancelUntil already
// performs: markDead for a popped local hypothesis or theory lemma, or an
// OnBacktrack hook a Theory registered.
//
// spec §9's design note floats a tagged-variant queue of undo records in
// place of a closure stack. Applying it strictly turned out to buy nothing
// here: the only two undo producers are theory OnBacktrack hooks, which are
// opaque third-party closures by the external theory-callback contract and
// so cannot be reduced to data, and markDead, which is already a single
// pointer-sized action. Persistent theory lemmas, the note's other
// motivating case, are instead replayed at each Solve call boundary via
// Solver.persistentReplays, since that queue must survive independently of
// any one decision level's lifetime.
type backtrackStack struct {
	entries      []func()
	levelMarkers []int
}

func newBacktrackStack() *backtrackStack { return &backtrackStack{} }

func (b *backtrackStack) newLevel() { b.levelMarkers = append(b.levelMarkers, len(b.entries)) }

func (b *backtrackStack) push(fn func()) { b.entries = append(b.entries, fn) }

// popTo runs every undo action registered at a decision level above level,
// in reverse push order, preserving level's own entries.
func (b *backtrackStack) popTo(level int) {
	marker := len(b.entries)
	if level < len(b.levelMarkers) {
		marker = b.levelMarkers[level]
	}
	for i := len(b.entries) - 1; i >= marker; i-- {
		b.entries[i]()
	}
	b.entries = b.entries[:marker]
	if level < len(b.levelMarkers) {
		b.levelMarkers = b.levelMarkers[:level]
	}
}
