// Package catalog reads the teaching content (quiz cards and preset scenarios) from SQLite.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/breakeven/internal/apperr"
	"github.com/Simplici0/breakeven/internal/breakeven"
	"github.com/Simplici0/breakeven/internal/cardsort"
	"github.com/Simplici0/breakeven/internal/scenario"
)

// Store queries the catalog tables.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open, migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Cards returns the quiz deck ordered by id.
func (s *Store) Cards(ctx context.Context) ([]cardsort.Card, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, kind FROM cards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	cards := make([]cardsort.Card, 0)
	for rows.Next() {
		var c cardsort.Card
		var kind string
		if err := rows.Scan(&c.ID, &c.Text, &kind); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		c.Kind = cardsort.Kind(kind)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

// Scenarios lists every preset, default first and the rest by name.
func (s *Store) Scenarios(ctx context.Context) ([]scenario.Scenario, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, price, variable_cost, fixed_cost, max_units, planned_units, rounding
		FROM scenarios
		ORDER BY name <> ?, name
	`, scenario.DefaultName)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()

	out := make([]scenario.Scenario, 0)
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenarios: %w", err)
	}
	return out, nil
}

// Scenario returns one preset by name.
func (s *Store) Scenario(ctx context.Context, name string) (scenario.Scenario, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, description, price, variable_cost, fixed_cost, max_units, planned_units, rounding
		FROM scenarios
		WHERE name = ?
	`, name)

	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return scenario.Scenario{}, apperr.NotFound("scenario", name)
	}
	return sc, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (scenario.Scenario, error) {
	var (
		sc                      scenario.Scenario
		price, vc, fc, maxUnits float64
		rounding                string
	)
	if err := row.Scan(&sc.Name, &sc.Description, &price, &vc, &fc, &maxUnits, &sc.PlannedUnits, &rounding); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sc, err
		}
		return sc, fmt.Errorf("scan scenario: %w", err)
	}
	sc.Model = breakeven.NewCostModel(price, vc, fc, maxUnits, breakeven.RoundingMode(rounding))
	return sc, nil
}
