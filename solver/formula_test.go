package solver

import "testing"

func TestNameNegateIsInvolutive(t *testing.T) {
	a := Name("a")
	na := a.Negate()
	if na.Negate().(Name) != a {
		t.Fatalf("expected double negation to return to %v, got %v", a, na.Negate())
	}
	canon, negated := na.Normalize()
	if negated != true || canon.(Name) != a {
		t.Fatalf("expected Normalize(¬a) = (a, true), got (%v, %v)", canon, negated)
	}
}

func TestNameEqual(t *testing.T) {
	if !Name("x").Equal(Name("x")) {
		t.Error("expected Name(x) to equal Name(x)")
	}
	if Name("x").Equal(Name("y")) {
		t.Error("expected Name(x) not to equal Name(y)")
	}
	if Name("x").Equal(IntAtom(1)) {
		t.Error("expected Name not to equal an unrelated Formula type")
	}
}

func TestIntAtomNormalize(t *testing.T) {
	canon, negated := IntAtom(-7).Normalize()
	if negated != true || canon.(IntAtom) != 7 {
		t.Fatalf("expected Normalize(-7) = (7, true), got (%v, %v)", canon, negated)
	}
	canon, negated = IntAtom(7).Normalize()
	if negated != false || canon.(IntAtom) != 7 {
		t.Fatalf("expected Normalize(7) = (7, false), got (%v, %v)", canon, negated)
	}
}

func TestIntsBuildsFormulaSlice(t *testing.T) {
	lits := Ints(1, -2, 3)
	if len(lits) != 3 {
		t.Fatalf("expected 3 literals, got %d", len(lits))
	}
	if lits[1].(IntAtom) != -2 {
		t.Errorf("expected second literal to be -2, got %v", lits[1])
	}
}
