package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	gen := NewUUIDGenerator()
	a, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	b, _ := gen.NewID()
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("id is not a uuid: %s", a)
	}
}

func TestSequence_NewID(t *testing.T) {
	seq := &Sequence{Prefix: "team"}
	first, _ := seq.NewID()
	second, _ := seq.NewID()
	if first != "team-1" || second != "team-2" {
		t.Fatalf("unexpected sequence: %s %s", first, second)
	}
}
