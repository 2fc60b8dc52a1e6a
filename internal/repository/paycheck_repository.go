package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// PaycheckRepository provides data access methods for the paycheck table.
type PaycheckRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPaycheckRepository creates a new PaycheckRepository with the provided database connection.
func NewPaycheckRepository(db *sql.DB) *PaycheckRepository {
	return &PaycheckRepository{db: db}
}

// WithTx returns a repository that runs its statements inside tx.
func (r *PaycheckRepository) WithTx(tx *sql.Tx) *PaycheckRepository {
	return &PaycheckRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PaycheckRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const paycheckColumns = `id, name, expected_amount, frequency, start_date, end_date, account_id, is_balanced`

// GetPaychecks retrieves all paychecks ordered by start date.
func (r *PaycheckRepository) GetPaychecks(ctx context.Context) ([]model.Paycheck, error) {
	query := `SELECT ` + paycheckColumns + ` FROM paycheck ORDER BY start_date ASC, name ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query paycheck table: %w", err)
	}
	defer rows.Close()

	paychecks := []model.Paycheck{}
	for rows.Next() {
		p, err := scanPaycheck(rows)
		if err != nil {
			return nil, err
		}
		paychecks = append(paychecks, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating paycheck table: %w", err)
	}

	return paychecks, nil
}

// GetPaycheck retrieves a single paycheck by ID.
// Returns apperrors.ErrPaycheckNotFound if no paycheck exists with that ID.
func (r *PaycheckRepository) GetPaycheck(ctx context.Context, id string) (model.Paycheck, error) {
	query := `SELECT ` + paycheckColumns + ` FROM paycheck WHERE id = ?`

	p, err := scanPaycheck(r.getQuerier().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Paycheck{}, apperrors.ErrPaycheckNotFound
		}
		return model.Paycheck{}, err
	}
	return p, nil
}

func scanPaycheck(row rowScanner) (model.Paycheck, error) {
	var p model.Paycheck
	var startDateStr string
	var endDateStr, accountID sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.ExpectedAmount,
		&p.Frequency,
		&startDateStr,
		&endDateStr,
		&accountID,
		&p.IsBalanced,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("failed to scan paycheck: %w", err)
	}

	p.StartDate, err = ParseTime(startDateStr)
	if err != nil {
		return p, fmt.Errorf("failed to parse start_date: %w", err)
	}
	p.EndDate, err = parseNullDate(endDateStr)
	if err != nil {
		return p, fmt.Errorf("failed to parse end_date: %w", err)
	}
	p.AccountID = accountID.String

	return p, nil
}

// InsertPaycheck inserts a paycheck. The caller assigns the ID.
func (r *PaycheckRepository) InsertPaycheck(ctx context.Context, p *model.Paycheck) error {
	query := `
		INSERT INTO paycheck (` + paycheckColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.ExpectedAmount.String(),
		string(p.Frequency),
		formatDate(p.StartDate),
		nullDate(p.EndDate),
		nullString(p.AccountID),
		p.IsBalanced,
	)
	if err != nil {
		return fmt.Errorf("failed to insert paycheck: %w", err)
	}
	return nil
}

// UpdatePaycheck updates a paycheck.
// Returns apperrors.ErrPaycheckNotFound if no paycheck exists with that ID.
func (r *PaycheckRepository) UpdatePaycheck(ctx context.Context, p *model.Paycheck) error {
	query := `
		UPDATE paycheck
		SET name = ?, expected_amount = ?, frequency = ?, start_date = ?, end_date = ?,
		    account_id = ?, is_balanced = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		p.Name,
		p.ExpectedAmount.String(),
		string(p.Frequency),
		formatDate(p.StartDate),
		nullDate(p.EndDate),
		nullString(p.AccountID),
		p.IsBalanced,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update paycheck: %w", err)
	}
	return checkAffected(result, apperrors.ErrPaycheckNotFound)
}

// DeletePaycheck deletes a paycheck.
// Returns apperrors.ErrPaycheckNotFound if no paycheck exists with that ID.
func (r *PaycheckRepository) DeletePaycheck(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM paycheck WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete paycheck: %w", err)
	}
	return checkAffected(result, apperrors.ErrPaycheckNotFound)
}
