package ident

import (
	"errors"
	"fmt"
	"testing"
)

func TestAllocator_ClaimUnique(t *testing.T) {
	a := NewAllocator("mrn", 10)
	n := 0
	gen := func() string {
		n++
		return fmt.Sprintf("MRN%06d", n)
	}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		v, err := a.Claim(gen)
		if err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}
		if seen[v] {
			t.Fatalf("duplicate claim %q", v)
		}
		seen[v] = true
	}
}

func TestAllocator_RetriesCollisions(t *testing.T) {
	a := NewAllocator("enc", 5)
	if _, err := a.Claim(func() string { return "ENC1" }); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	// Generator yields the taken value twice, then a fresh one.
	vals := []string{"ENC1", "ENC1", "ENC2"}
	i := 0
	v, err := a.Claim(func() string { v := vals[i]; i++; return v })
	if err != nil {
		t.Fatalf("claim with collisions: %v", err)
	}
	if v != "ENC2" {
		t.Fatalf("expected ENC2, got %q", v)
	}
}

func TestAllocator_Exhaustion(t *testing.T) {
	a := NewAllocator("npi", 3)
	if _, err := a.Claim(func() string { return "only" }); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	_, err := a.Claim(func() string { return "only" })
	var ex *ExhaustionError
	if !errors.As(err, &ex) {
		t.Fatalf("expected ExhaustionError, got %v", err)
	}
	if ex.Entity != "npi" || ex.Attempts != 3 {
		t.Fatalf("unexpected error detail: %+v", ex)
	}
}

func TestAllocator_Absorb(t *testing.T) {
	a := NewAllocator("enc", 0)
	b := NewAllocator("enc", 0)
	a.Add("E1")
	a.Add("E2")
	b.Add("E3")
	if v, ok := a.Absorb(b); !ok {
		t.Fatalf("unexpected collision on %q", v)
	}
	if a.Len() != 3 {
		t.Fatalf("expected 3 ids after absorb, got %d", a.Len())
	}

	c := NewAllocator("enc", 0)
	c.Add("E2")
	if v, ok := a.Absorb(c); ok || v != "E2" {
		t.Fatalf("expected collision on E2, got ok=%v v=%q", ok, v)
	}
}
