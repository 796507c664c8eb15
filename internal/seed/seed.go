package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/breakeven/internal/cardsort"
	"github.com/Simplici0/breakeven/internal/scenario"
)

// Config contains the content written by the startup seed.
type Config struct {
	Cards     []cardsort.Card
	Scenarios []scenario.Scenario
}

// DefaultConfig seeds the standard deck and the classroom scenario.
func DefaultConfig() Config {
	return Config{
		Cards:     cardsort.DefaultCards(),
		Scenarios: []scenario.Scenario{scenario.Default()},
	}
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way. Scenarios whose values changed
// since the last run are updated in place.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, c := range cfg.Cards {
		if err := ensureCard(ctx, tx, c, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for _, s := range cfg.Scenarios {
		if err := upsertScenario(ctx, tx, s, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureCard(ctx context.Context, tx *sql.Tx, c cardsort.Card, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM cards WHERE id = ? LIMIT 1)`, c.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check card existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO cards (id, text, kind)
		VALUES (?, ?, ?)
	`, c.ID, c.Text, string(c.Kind)); err != nil {
		return fmt.Errorf("insert card %d: %w", c.ID, err)
	}
	stats.Inserts++
	return nil
}

func upsertScenario(ctx context.Context, tx *sql.Tx, s scenario.Scenario, stats *Stats) error {
	m := s.Model
	args := []any{s.Description, m.Price, m.VariableCost, m.FixedCost, m.MaxUnits, s.PlannedUnits, string(m.Rounding)}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM scenarios WHERE name = ? LIMIT 1)`, s.Name).Scan(&exists); err != nil {
		return fmt.Errorf("check scenario existence: %w", err)
	}

	if !exists {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO scenarios (description, price, variable_cost, fixed_cost, max_units, planned_units, rounding, name)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, append(args, s.Name)...); err != nil {
			return fmt.Errorf("insert scenario %q: %w", s.Name, err)
		}
		stats.Inserts++
		return nil
	}

	changed := append([]any{}, args...)
	changed = append(changed, s.Name)
	changed = append(changed, args...)
	result, err := tx.ExecContext(ctx, `
		UPDATE scenarios
		SET
			description = ?,
			price = ?,
			variable_cost = ?,
			fixed_cost = ?,
			max_units = ?,
			planned_units = ?,
			rounding = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
			AND NOT (
				description = ?
				AND price = ?
				AND variable_cost = ?
				AND fixed_cost = ?
				AND max_units = ?
				AND planned_units = ?
				AND rounding = ?
			)
	`, changed...)
	if err != nil {
		return fmt.Errorf("update scenario %q: %w", s.Name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update scenario %q: %w", s.Name, err)
	}
	stats.Updates += int(affected)
	return nil
}
