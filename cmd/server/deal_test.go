package main

import (
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/Simplici0/breakeven/internal/apperr"
	"github.com/Simplici0/breakeven/internal/cardsort"
)

func TestDealSigner_RoundTrip(t *testing.T) {
	signer := newDealSigner("secret")
	dl := deal{ID: uuid.MustParse("6f1c2e1a-8d3b-4a52-9a3e-0c9c3f2b7d11"), CardIDs: []int{3, 1, 2}}

	got, err := signer.verify(signer.sign(dl))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ID != dl.ID || !slices.Equal(got.CardIDs, dl.CardIDs) {
		t.Fatalf("unexpected deal %+v", got)
	}
}

func TestDealSigner_RejectsForeignSignature(t *testing.T) {
	dl := deal{ID: uuid.New(), CardIDs: []int{1, 2}}
	token := newDealSigner("one").sign(dl)

	if _, err := newDealSigner("two").verify(token); err == nil {
		t.Fatalf("expected signature mismatch")
	}
	for _, bad := range []string{"", "nodot", "abc.zz", "." + token} {
		_, err := newDealSigner("one").verify(bad)
		if err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
		if got := apperr.Message(err); got != "quiz deal is invalid; start a new one" {
			t.Fatalf("unexpected message %q", got)
		}
	}
}

func TestNewDeal_IsDeterministicPermutation(t *testing.T) {
	cards := cardsort.DefaultCards()
	id := uuid.MustParse("0b7e9a52-4f0d-4a4c-8c4a-5d1b8e2f6a90")

	a := newDeal(id, cards)
	b := newDeal(id, cards)
	if !slices.Equal(a.CardIDs, b.CardIDs) {
		t.Fatalf("same id should give the same order: %v vs %v", a.CardIDs, b.CardIDs)
	}

	sorted := slices.Clone(a.CardIDs)
	slices.Sort(sorted)
	for i, id := range sorted {
		if id != i+1 {
			t.Fatalf("deal is not a permutation of the deck: %v", a.CardIDs)
		}
	}
}
