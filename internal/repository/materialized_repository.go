package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// MaterializedRepository provides data access methods for the projection_refresh and
// projection_materialized tables.
type MaterializedRepository struct {
	db *sql.DB
}

// NewMaterializedRepository creates a new repository instance.
func NewMaterializedRepository(db *sql.DB) *MaterializedRepository {
	return &MaterializedRepository{db: db}
}

// GetRefreshInfo returns the metadata of the stored projection.
// Returns apperrors.ErrProjectionNotMaterialized if no refresh has completed yet.
func (r *MaterializedRepository) GetRefreshInfo(ctx context.Context) (model.ProjectionRefresh, error) {
	query := `
		SELECT r.start_date, r.end_date, r.effective_start_date, r.period_starts, r.generation, r.calculated_at,
		       (SELECT COUNT(*) FROM projection_materialized)
		FROM projection_refresh r
		WHERE r.id = 1
	`

	var info model.ProjectionRefresh
	var startStr, endStr, effectiveStr, periodStartsJSON, calculatedAtStr string

	err := r.db.QueryRowContext(ctx, query).Scan(
		&startStr,
		&endStr,
		&effectiveStr,
		&periodStartsJSON,
		&info.Generation,
		&calculatedAtStr,
		&info.ItemCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return info, apperrors.ErrProjectionNotMaterialized
		}
		return info, fmt.Errorf("failed to query projection_refresh: %w", err)
	}

	if info.StartDate, err = ParseTime(startStr); err != nil {
		return info, fmt.Errorf("failed to parse start_date: %w", err)
	}
	if info.EndDate, err = ParseTime(endStr); err != nil {
		return info, fmt.Errorf("failed to parse end_date: %w", err)
	}
	if info.EffectiveStartDate, err = ParseTime(effectiveStr); err != nil {
		return info, fmt.Errorf("failed to parse effective_start_date: %w", err)
	}
	if info.CalculatedAt, err = time.Parse(time.RFC3339, calculatedAtStr); err != nil {
		return info, fmt.Errorf("failed to parse calculated_at: %w", err)
	}

	var periodStarts []string
	if err := json.Unmarshal([]byte(periodStartsJSON), &periodStarts); err != nil {
		return info, fmt.Errorf("failed to decode period_starts: %w", err)
	}
	info.PeriodStarts = make([]time.Time, 0, len(periodStarts))
	for _, s := range periodStarts {
		t, err := ParseTime(s)
		if err != nil {
			return info, fmt.Errorf("failed to parse period start: %w", err)
		}
		info.PeriodStarts = append(info.PeriodStarts, t)
	}

	return info, nil
}

// ReplaceProjection atomically swaps the stored projection for a newly calculated one.
// The refresh generation is incremented and written back into info.
//
// Parameters:
//   - ctx: Context for cancellation
//   - info: Window metadata of the new projection; Generation and ItemCount are filled in
//   - items: Ledger lines in emission order
//
// Readers never observe a partially written projection: either the old rows or the new ones.
func (r *MaterializedRepository) ReplaceProjection(ctx context.Context, info *model.ProjectionRefresh, items []model.ProjectionItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var generation int64
	err = tx.QueryRowContext(ctx, `SELECT generation FROM projection_refresh WHERE id = 1`).Scan(&generation)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read projection generation: %w", err)
	}
	generation++

	if _, err := tx.ExecContext(ctx, `DELETE FROM projection_materialized`); err != nil {
		return fmt.Errorf("failed to clear projection_materialized: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO projection_materialized
			(position, date, description, amount, balance, account_balances, period_net, paycheck_id, is_warning)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare projection insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		balancesJSON, err := json.Marshal(item.AccountBalances)
		if err != nil {
			return fmt.Errorf("failed to encode account balances: %w", err)
		}

		var periodNet sql.NullString
		if item.PeriodNet != nil {
			periodNet = sql.NullString{String: item.PeriodNet.String(), Valid: true}
		}

		_, err = stmt.ExecContext(ctx,
			i,
			formatDate(item.Date),
			item.Description,
			item.Amount.String(),
			item.Balance.String(),
			string(balancesJSON),
			periodNet,
			nullString(item.PaycheckID),
			item.IsWarning,
		)
		if err != nil {
			return fmt.Errorf("failed to insert projection item %d: %w", i, err)
		}
	}

	periodStarts := make([]string, len(info.PeriodStarts))
	for i, p := range info.PeriodStarts {
		periodStarts[i] = formatDate(p)
	}
	periodStartsJSON, err := json.Marshal(periodStarts)
	if err != nil {
		return fmt.Errorf("failed to encode period starts: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projection_refresh (id, start_date, end_date, effective_start_date, period_starts, generation, calculated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			effective_start_date = excluded.effective_start_date,
			period_starts = excluded.period_starts,
			generation = excluded.generation,
			calculated_at = excluded.calculated_at
	`,
		formatDate(info.StartDate),
		formatDate(info.EndDate),
		formatDate(info.EffectiveStartDate),
		string(periodStartsJSON),
		generation,
		info.CalculatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write projection_refresh: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit projection refresh: %w", err)
	}

	info.Generation = generation
	info.ItemCount = len(items)
	return nil
}

// StreamItems retrieves stored projection lines dated within [startDate, endDate) in emission order.
// This method streams results using a callback pattern to minimize memory usage.
//
// Parameters:
//   - ctx: Context for cancellation
//   - startDate: First date to include (inclusive)
//   - endDate: End of the range (exclusive)
//   - callback: Called for each line; returning an error stops iteration
//
// Returns an error if the query fails or if the callback returns an error during processing.
func (r *MaterializedRepository) StreamItems(
	ctx context.Context,
	startDate, endDate time.Time,
	callback func(item model.ProjectionItem) error,
) error {
	query := `
		SELECT date, description, amount, balance, account_balances, period_net, paycheck_id, is_warning
		FROM projection_materialized
		WHERE date >= ?
		AND date < ?
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, formatDate(startDate), formatDate(endDate))
	if err != nil {
		return fmt.Errorf("failed to query projection_materialized: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.ProjectionItem
		var dateStr, balancesJSON string
		var periodNet, paycheckID sql.NullString

		err := rows.Scan(
			&dateStr,
			&item.Description,
			&item.Amount,
			&item.Balance,
			&balancesJSON,
			&periodNet,
			&paycheckID,
			&item.IsWarning,
		)
		if err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		item.Date, err = ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("failed to parse date: %w", err)
		}

		if err := json.Unmarshal([]byte(balancesJSON), &item.AccountBalances); err != nil {
			return fmt.Errorf("failed to decode account balances: %w", err)
		}

		if periodNet.Valid {
			pn, err := decimal.NewFromString(periodNet.String)
			if err != nil {
				return fmt.Errorf("failed to parse period_net: %w", err)
			}
			item.PeriodNet = &pn
		}
		item.PaycheckID = paycheckID.String

		if err := callback(item); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}

// ClearProjection removes the stored projection so readers fall back to on-demand calculation.
func (r *MaterializedRepository) ClearProjection(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projection_materialized`); err != nil {
		return fmt.Errorf("failed to clear projection_materialized: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projection_refresh`); err != nil {
		return fmt.Errorf("failed to clear projection_refresh: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit projection clear: %w", err)
	}
	return nil
}
