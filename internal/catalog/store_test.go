package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Simplici0/breakeven/internal/apperr"
	"github.com/Simplici0/breakeven/internal/breakeven"
	"github.com/Simplici0/breakeven/internal/cardsort"
	"github.com/Simplici0/breakeven/internal/db"
	"github.com/Simplici0/breakeven/internal/migrations"
	"github.com/Simplici0/breakeven/internal/scenario"
	"github.com/Simplici0/breakeven/internal/seed"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	cfg := seed.DefaultConfig()
	cfg.Scenarios = append(cfg.Scenarios, scenario.Scenario{
		Name:         "lemonade",
		Description:  "Summer stall",
		Model:        breakeven.NewCostModel(2.5, 0.5, 300, 400, breakeven.RoundTwoDecimal),
		PlannedUnits: 120,
	})
	if _, err := seed.Run(ctx, database, cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewStore(database)
}

func TestStore_Cards(t *testing.T) {
	store := newTestStore(t)

	cards, err := store.Cards(context.Background())
	if err != nil {
		t.Fatalf("Cards: %v", err)
	}
	want := cardsort.DefaultCards()
	if len(cards) != len(want) {
		t.Fatalf("expected %d cards, got %d", len(want), len(cards))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Fatalf("card %d = %+v, want %+v", i, cards[i], want[i])
		}
	}
}

func TestStore_ScenariosDefaultFirst(t *testing.T) {
	store := newTestStore(t)

	list, err := store.Scenarios(context.Background())
	if err != nil {
		t.Fatalf("Scenarios: %v", err)
	}
	if len(list) != 2 || list[0].Name != scenario.DefaultName || list[1].Name != "lemonade" {
		t.Fatalf("unexpected scenarios: %+v", list)
	}
}

func TestStore_Scenario(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.Scenario(ctx, "lemonade")
	if err != nil {
		t.Fatalf("Scenario: %v", err)
	}
	want := breakeven.CostModel{Price: 2.5, VariableCost: 0.5, FixedCost: 300, MaxUnits: 400, Rounding: breakeven.RoundTwoDecimal}
	if got.Model != want || got.PlannedUnits != 120 || got.Description != "Summer stall" {
		t.Fatalf("unexpected scenario: %+v", got)
	}

	if _, err := store.Scenario(ctx, "missing"); !apperr.IsType(err, apperr.TypeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
