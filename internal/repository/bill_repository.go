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

// BillRepository provides data access methods for the bill and period_bill tables.
type BillRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewBillRepository creates a new BillRepository with the provided database connection.
func NewBillRepository(db *sql.DB) *BillRepository {
	return &BillRepository{db: db}
}

// WithTx returns a repository that runs its statements inside tx.
func (r *BillRepository) WithTx(tx *sql.Tx) *BillRepository {
	return &BillRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *BillRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const billColumns = `id, name, expected_amount, frequency, due_day, next_due_date, account_id, to_account_id, category, is_active`

// GetBills retrieves bills ordered by due day. Inactive bills are only included when includeInactive is set.
func (r *BillRepository) GetBills(ctx context.Context, includeInactive bool) ([]model.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bill`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY due_day ASC, name ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill table: %w", err)
	}
	defer rows.Close()

	bills := []model.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill table: %w", err)
	}

	return bills, nil
}

// GetBill retrieves a single bill by ID.
// Returns apperrors.ErrBillNotFound if no bill exists with that ID.
func (r *BillRepository) GetBill(ctx context.Context, id string) (model.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bill WHERE id = ?`

	b, err := scanBill(r.getQuerier().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Bill{}, apperrors.ErrBillNotFound
		}
		return model.Bill{}, err
	}
	return b, nil
}

func scanBill(row rowScanner) (model.Bill, error) {
	var b model.Bill
	var nextDueStr, accountID, toAccountID sql.NullString

	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.ExpectedAmount,
		&b.Frequency,
		&b.DueDay,
		&nextDueStr,
		&accountID,
		&toAccountID,
		&b.Category,
		&b.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, err
		}
		return b, fmt.Errorf("failed to scan bill: %w", err)
	}

	b.NextDueDate, err = parseNullDate(nextDueStr)
	if err != nil {
		return b, fmt.Errorf("failed to parse next_due_date: %w", err)
	}
	b.AccountID = accountID.String
	b.ToAccountID = toAccountID.String

	return b, nil
}

// InsertBill inserts a bill. The caller assigns the ID.
func (r *BillRepository) InsertBill(ctx context.Context, b *model.Bill) error {
	query := `
		INSERT INTO bill (` + billColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		b.ID,
		b.Name,
		b.ExpectedAmount.String(),
		string(b.Frequency),
		b.DueDay,
		nullDate(b.NextDueDate),
		nullString(b.AccountID),
		nullString(b.ToAccountID),
		b.Category,
		b.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// UpdateBill updates a bill.
// Returns apperrors.ErrBillNotFound if no bill exists with that ID.
func (r *BillRepository) UpdateBill(ctx context.Context, b *model.Bill) error {
	query := `
		UPDATE bill
		SET name = ?, expected_amount = ?, frequency = ?, due_day = ?, next_due_date = ?,
		    account_id = ?, to_account_id = ?, category = ?, is_active = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		b.Name,
		b.ExpectedAmount.String(),
		string(b.Frequency),
		b.DueDay,
		nullDate(b.NextDueDate),
		nullString(b.AccountID),
		nullString(b.ToAccountID),
		b.Category,
		b.IsActive,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return checkAffected(result, apperrors.ErrBillNotFound)
}

// DeleteBill deletes a bill; its period overrides cascade.
// Returns apperrors.ErrBillNotFound if no bill exists with that ID.
func (r *BillRepository) DeleteBill(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM bill WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return checkAffected(result, apperrors.ErrBillNotFound)
}

// GetPeriodBills retrieves per-occurrence bill overrides with a due date in [startDate, endDate].
// Zero dates leave that side of the range open.
func (r *BillRepository) GetPeriodBills(ctx context.Context, startDate, endDate time.Time) ([]model.PeriodBill, error) {
	query := `SELECT id, bill_id, period_date, due_date, actual_amount, is_paid FROM period_bill WHERE 1 = 1`
	var args []any
	if !startDate.IsZero() {
		query += ` AND due_date >= ?`
		args = append(args, formatDate(startDate))
	}
	if !endDate.IsZero() {
		query += ` AND due_date <= ?`
		args = append(args, formatDate(endDate))
	}
	query += ` ORDER BY due_date ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query period_bill table: %w", err)
	}
	defer rows.Close()

	periodBills := []model.PeriodBill{}
	for rows.Next() {
		var pb model.PeriodBill
		var periodDateStr, dueDateStr string
		if err := rows.Scan(&pb.ID, &pb.BillID, &periodDateStr, &dueDateStr, &pb.ActualAmount, &pb.IsPaid); err != nil {
			return nil, fmt.Errorf("failed to scan period_bill: %w", err)
		}
		if pb.PeriodDate, err = ParseTime(periodDateStr); err != nil {
			return nil, fmt.Errorf("failed to parse period_date: %w", err)
		}
		if pb.DueDate, err = ParseTime(dueDateStr); err != nil {
			return nil, fmt.Errorf("failed to parse due_date: %w", err)
		}
		periodBills = append(periodBills, pb)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period_bill table: %w", err)
	}

	return periodBills, nil
}

// UpsertPeriodBill stores the override for one bill occurrence, keyed by (bill_id, due_date).
// A new row gets a generated ID; an existing row keeps its ID. The stored row is written back into pb.
func (r *BillRepository) UpsertPeriodBill(ctx context.Context, pb *model.PeriodBill) error {
	query := `
		INSERT INTO period_bill (id, bill_id, period_date, due_date, actual_amount, is_paid)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(bill_id, due_date) DO UPDATE SET
			period_date = excluded.period_date,
			actual_amount = excluded.actual_amount,
			is_paid = excluded.is_paid
		RETURNING id
	`

	err := r.getQuerier().QueryRowContext(ctx, query,
		uuid.New().String(),
		pb.BillID,
		formatDate(pb.PeriodDate),
		formatDate(pb.DueDate),
		pb.ActualAmount.String(),
		pb.IsPaid,
	).Scan(&pb.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert period_bill: %w", err)
	}
	return nil
}
