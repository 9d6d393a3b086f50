package format

import "testing"

func TestCapabilitySet(t *testing.T) {
	s := NewCapabilitySet(NumericReadable, Sortable)

	if !s.Has(NumericReadable) {
		t.Fatalf("expected NumericReadable")
	}
	if !s.Has(Sortable) {
		t.Fatalf("expected Sortable")
	}
	if s.Has(ObjectReadable) {
		t.Fatalf("did not expect ObjectReadable")
	}

	s2 := s.With(Boolean)
	if !s2.Has(Boolean) {
		t.Fatalf("expected Boolean after With")
	}
	if s.Has(Boolean) {
		t.Fatalf("original set must stay unchanged")
	}
}

func TestTypeIDString(t *testing.T) {
	cases := map[TypeID]string{
		REAL:         "REAL",
		INTEGER:      "INTEGER",
		NOMINAL:      "NOMINAL",
		DATE_TIME:    "DATE_TIME",
		TIME:         "TIME",
		CUSTOM:       "CUSTOM",
		TypeID(0xff): "UNKNOWN",
	}

	for id, want := range cases {
		if got := id.String(); got != want {
			t.Fatalf("TypeID(%d).String() = %q, want %q", id, got, want)
		}
	}
}

func TestNewDescriptors(t *testing.T) {
	if d := NewNumericDescriptor(REAL); d.Category != NUMERIC || d.ID != REAL {
		t.Fatalf("unexpected numeric descriptor: %+v", d)
	}
	if d := NewNominalDescriptor(); d.Category != CATEGORICAL || d.ID != NOMINAL {
		t.Fatalf("unexpected nominal descriptor: %+v", d)
	}

	cmp := func(a, b any) int { return a.(int) - b.(int) }
	d := NewCustomDescriptor("myType", "int", cmp)
	if d.ID != CUSTOM || d.CustomName != "myType" || d.Comparator == nil {
		t.Fatalf("unexpected custom descriptor: %+v", d)
	}
}
