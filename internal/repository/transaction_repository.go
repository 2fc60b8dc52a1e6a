package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// TransactionRepository provides data access methods for the adhoc_transaction table.
// Besides plain CRUD it serves as the override store for edited projection lines.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a repository that runs its statements inside tx.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionColumns = `
	id, description, amount, date, account_id, to_account_id, bucket_id, paycheck_id,
	paycheck_occurrence_date, period_date, is_principal_only, is_rebalance
`

// GetTransactions retrieves transactions dated within the filter's range, sorted by date.
// Zero filter dates leave that side of the range open; both bounds are inclusive.
func (r *TransactionRepository) GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.AdHocTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM adhoc_transaction WHERE 1 = 1`
	var args []any
	if !filter.StartDate.IsZero() {
		query += ` AND date >= ?`
		args = append(args, formatDate(filter.StartDate))
	}
	if !filter.EndDate.IsZero() {
		query += ` AND date <= ?`
		args = append(args, formatDate(filter.EndDate))
	}
	query += ` ORDER BY date ASC, description ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query adhoc_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.AdHocTransaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adhoc_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound if no transaction exists with that ID.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id string) (model.AdHocTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM adhoc_transaction WHERE id = ?`

	t, err := scanTransaction(r.getQuerier().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AdHocTransaction{}, apperrors.ErrTransactionNotFound
		}
		return model.AdHocTransaction{}, err
	}
	return t, nil
}

func scanTransaction(row rowScanner) (model.AdHocTransaction, error) {
	var t model.AdHocTransaction
	var dateStr string
	var accountID, toAccountID, bucketID, paycheckID, occurrenceStr, periodStr sql.NullString

	err := row.Scan(
		&t.ID,
		&t.Description,
		&t.Amount,
		&dateStr,
		&accountID,
		&toAccountID,
		&bucketID,
		&paycheckID,
		&occurrenceStr,
		&periodStr,
		&t.IsPrincipalOnly,
		&t.IsRebalance,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("failed to scan adhoc_transaction: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return t, fmt.Errorf("failed to parse date: %w", err)
	}
	if t.PaycheckOccurrenceDate, err = parseNullDate(occurrenceStr); err != nil {
		return t, fmt.Errorf("failed to parse paycheck_occurrence_date: %w", err)
	}
	if t.PeriodDate, err = parseNullDate(periodStr); err != nil {
		return t, fmt.Errorf("failed to parse period_date: %w", err)
	}
	t.AccountID = accountID.String
	t.ToAccountID = toAccountID.String
	t.BucketID = bucketID.String
	t.PaycheckID = paycheckID.String

	return t, nil
}

// InsertTransaction inserts a transaction. The caller assigns the ID.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.AdHocTransaction) error {
	query := `
		INSERT INTO adhoc_transaction (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.Description,
		t.Amount.String(),
		formatDate(t.Date),
		nullString(t.AccountID),
		nullString(t.ToAccountID),
		nullString(t.BucketID),
		nullString(t.PaycheckID),
		nullDate(t.PaycheckOccurrenceDate),
		nullDate(t.PeriodDate),
		t.IsPrincipalOnly,
		t.IsRebalance,
	)
	if err != nil {
		return fmt.Errorf("failed to insert adhoc_transaction: %w", err)
	}
	return nil
}

// UpdateTransaction updates a transaction.
// Returns apperrors.ErrTransactionNotFound if no transaction exists with that ID.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.AdHocTransaction) error {
	query := `
		UPDATE adhoc_transaction
		SET description = ?, amount = ?, date = ?, account_id = ?, to_account_id = ?, bucket_id = ?,
		    paycheck_id = ?, paycheck_occurrence_date = ?, period_date = ?, is_principal_only = ?, is_rebalance = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		t.Description,
		t.Amount.String(),
		formatDate(t.Date),
		nullString(t.AccountID),
		nullString(t.ToAccountID),
		nullString(t.BucketID),
		nullString(t.PaycheckID),
		nullDate(t.PaycheckOccurrenceDate),
		nullDate(t.PeriodDate),
		t.IsPrincipalOnly,
		t.IsRebalance,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update adhoc_transaction: %w", err)
	}
	return checkAffected(result, apperrors.ErrTransactionNotFound)
}

// DeleteTransaction deletes a transaction.
// Returns apperrors.ErrTransactionNotFound if no transaction exists with that ID.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM adhoc_transaction WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete adhoc_transaction: %w", err)
	}
	return checkAffected(result, apperrors.ErrTransactionNotFound)
}

// DisassociatePaycheck clears the paycheck association of every transaction linked to the paycheck.
// The transactions themselves are kept. Returns the number of transactions changed.
func (r *TransactionRepository) DisassociatePaycheck(ctx context.Context, paycheckID string) (int64, error) {
	result, err := r.getQuerier().ExecContext(ctx, `
		UPDATE adhoc_transaction
		SET paycheck_id = NULL, paycheck_occurrence_date = NULL
		WHERE paycheck_id = ?
	`, paycheckID)
	if err != nil {
		return 0, fmt.Errorf("failed to disassociate paycheck transactions: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// FindOverride returns the transaction recorded for the paycheck occurrence on date,
// or nil when there is none.
func (r *TransactionRepository) FindOverride(ctx context.Context, paycheckID string, date time.Time) (*model.AdHocTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM adhoc_transaction
		WHERE paycheck_id = ?
		AND (paycheck_occurrence_date = ? OR (paycheck_occurrence_date IS NULL AND date = ?))
		ORDER BY date ASC
		LIMIT 1
	`

	day := formatDate(date)
	t, err := scanTransaction(r.getQuerier().QueryRowContext(ctx, query, paycheckID, day, day))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// PersistOverride stores a paycheck override: transactions without an ID are inserted
// with a generated one, others are updated.
func (r *TransactionRepository) PersistOverride(ctx context.Context, t model.AdHocTransaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
		return r.InsertTransaction(ctx, &t)
	}
	return r.UpdateTransaction(ctx, &t)
}
