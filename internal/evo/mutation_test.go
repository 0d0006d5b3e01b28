package evo

import (
	"math/rand"
	"testing"

	"onemax/internal/bitstring"
)

func TestBitFlipMutationZeroRateIsIdentity(t *testing.T) {
	child := bitstring.MustParse("1001011100")
	rng := rand.New(rand.NewSource(8))
	mutation := BitFlipMutation{Rate: ConstantRate(0)}

	for i := 0; i < 2; i++ {
		flipped, err := mutation.Mutate(rng, child)
		if err != nil {
			t.Fatalf("mutate: %v", err)
		}
		if flipped != 0 {
			t.Fatalf("expected no flips, got %d", flipped)
		}
	}
	if child.String() != "1001011100" {
		t.Fatalf("expected unchanged child, got %s", child)
	}
}

func TestBitFlipMutationConsumesOneDrawPerBit(t *testing.T) {
	child := bitstring.New(7)
	rng := rand.New(rand.NewSource(12))
	replay := rand.New(rand.NewSource(12))

	if _, err := (BitFlipMutation{Rate: ConstantRate(0)}).Mutate(rng, child); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	for i := 0; i < child.Len(); i++ {
		_ = replay.Float64()
	}
	if rng.Int63() != replay.Int63() {
		t.Fatal("expected mutation to consume exactly one draw per bit")
	}
}

func TestBitFlipMutationSingleBitAlwaysFlips(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	mutation := BitFlipMutation{}
	child := bitstring.MustParse("0")
	for i := 0; i < 20; i++ {
		before := child.Has(0)
		if _, err := mutation.Mutate(rng, child); err != nil {
			t.Fatalf("mutate: %v", err)
		}
		if child.Has(0) == before {
			t.Fatalf("iteration %d: expected the only bit to flip", i)
		}
	}
}

func TestBitFlipMutationMatchesReplay(t *testing.T) {
	child := bitstring.MustParse("10101010101010101010")
	expected := child.Clone()
	rng := rand.New(rand.NewSource(99))
	replay := rand.New(rand.NewSource(99))

	flipped, err := (BitFlipMutation{}).Mutate(rng, child)
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	wantFlipped := 0
	for i := 0; i < expected.Len(); i++ {
		if replay.Float64() < 1/float64(expected.Len()) {
			expected.Flip(i)
			wantFlipped++
		}
	}
	if !child.Equal(expected) || flipped != wantFlipped {
		t.Fatalf("unexpected mutation: got=%s (%d flips) want=%s (%d flips)", child, flipped, expected, wantFlipped)
	}
}

func TestBitFlipMutationKeepsFitnessInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	mutation := BitFlipMutation{Rate: ConstantRate(0.5)}
	child := bitstring.New(16)
	for i := 0; i < 100; i++ {
		if _, err := mutation.Mutate(rng, child); err != nil {
			t.Fatalf("mutate: %v", err)
		}
		if f := child.Fitness(); f < 0 || f > child.Len() {
			t.Fatalf("fitness out of range: %d", f)
		}
	}
}

func TestBitFlipMutationRejectsInvalidRate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := (BitFlipMutation{Rate: ConstantRate(1.5)}).Mutate(rng, bitstring.New(2)); err == nil {
		t.Fatal("expected invalid rate error")
	}
}
