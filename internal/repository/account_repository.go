package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

// AccountRepository provides data access methods for the account and mortgage_details tables.
// Mortgage details are stored one-to-one with their account and loaded alongside it.
type AccountRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// WithTx returns a repository that runs its statements inside tx.
func (r *AccountRepository) WithTx(tx *sql.Tx) *AccountRepository {
	return &AccountRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *AccountRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const accountColumns = `
	a.id, a.name, a.bank_name, a.balance, a.balance_as_of, a.annual_growth_rate,
	a.include_in_total, a.type,
	md.account_id, md.interest_rate, md.escrow, md.mortgage_insurance, md.loan_payment, md.payment_date
`

// GetAccounts retrieves all accounts ordered by name, each with its mortgage details when present.
func (r *AccountRepository) GetAccounts(ctx context.Context) ([]model.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM account a
		LEFT JOIN mortgage_details md ON md.account_id = a.id
		ORDER BY a.name ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// GetAccount retrieves a single account by ID.
// Returns apperrors.ErrAccountNotFound if no account exists with that ID.
func (r *AccountRepository) GetAccount(ctx context.Context, id string) (model.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM account a
		LEFT JOIN mortgage_details md ON md.account_id = a.id
		WHERE a.id = ?
	`

	a, err := scanAccount(r.getQuerier().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, apperrors.ErrAccountNotFound
		}
		return model.Account{}, err
	}
	return a, nil
}

func scanAccount(row rowScanner) (model.Account, error) {
	var a model.Account
	var balanceAsOfStr string
	var mdAccountID, paymentDateStr sql.NullString
	var md model.MortgageDetails

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.BankName,
		&a.Balance,
		&balanceAsOfStr,
		&a.AnnualGrowthRate,
		&a.IncludeInTotal,
		&a.Type,
		&mdAccountID,
		&nullDecimal{&md.InterestRate},
		&nullDecimal{&md.Escrow},
		&nullDecimal{&md.MortgageInsurance},
		&nullDecimal{&md.LoanPayment},
		&paymentDateStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, err
		}
		return a, fmt.Errorf("failed to scan account: %w", err)
	}

	a.BalanceAsOf, err = ParseTime(balanceAsOfStr)
	if err != nil {
		return a, fmt.Errorf("failed to parse balance_as_of: %w", err)
	}

	if mdAccountID.Valid {
		paymentDate, err := parseNullDate(paymentDateStr)
		if err != nil {
			return a, fmt.Errorf("failed to parse payment_date: %w", err)
		}
		if paymentDate != nil {
			md.PaymentDate = *paymentDate
		}
		a.MortgageDetails = &md
	}

	return a, nil
}

// InsertAccount inserts an account and, when present, its mortgage details.
// The caller assigns the ID.
func (r *AccountRepository) InsertAccount(ctx context.Context, a *model.Account) error {
	query := `
		INSERT INTO account (id, name, bank_name, balance, balance_as_of, annual_growth_rate, include_in_total, type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		a.ID,
		a.Name,
		a.BankName,
		a.Balance.String(),
		formatDate(a.BalanceAsOf),
		a.AnnualGrowthRate.String(),
		a.IncludeInTotal,
		string(a.Type),
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return r.saveMortgageDetails(ctx, a)
}

// UpdateAccount updates an account and replaces its mortgage details.
// Returns apperrors.ErrAccountNotFound if no account exists with that ID.
func (r *AccountRepository) UpdateAccount(ctx context.Context, a *model.Account) error {
	query := `
		UPDATE account
		SET name = ?, bank_name = ?, balance = ?, balance_as_of = ?, annual_growth_rate = ?,
		    include_in_total = ?, type = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		a.Name,
		a.BankName,
		a.Balance.String(),
		formatDate(a.BalanceAsOf),
		a.AnnualGrowthRate.String(),
		a.IncludeInTotal,
		string(a.Type),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if err := checkAffected(result, apperrors.ErrAccountNotFound); err != nil {
		return err
	}

	return r.saveMortgageDetails(ctx, a)
}

// saveMortgageDetails upserts the account's mortgage details, or removes them when absent.
func (r *AccountRepository) saveMortgageDetails(ctx context.Context, a *model.Account) error {
	if a.MortgageDetails == nil {
		if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM mortgage_details WHERE account_id = ?`, a.ID); err != nil {
			return fmt.Errorf("failed to delete mortgage_details: %w", err)
		}
		return nil
	}

	md := a.MortgageDetails
	query := `
		INSERT INTO mortgage_details (account_id, interest_rate, escrow, mortgage_insurance, loan_payment, payment_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			interest_rate = excluded.interest_rate,
			escrow = excluded.escrow,
			mortgage_insurance = excluded.mortgage_insurance,
			loan_payment = excluded.loan_payment,
			payment_date = excluded.payment_date
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		a.ID,
		md.InterestRate.String(),
		md.Escrow.String(),
		md.MortgageInsurance.String(),
		md.LoanPayment.String(),
		nullDate(&md.PaymentDate),
	)
	if err != nil {
		return fmt.Errorf("failed to save mortgage_details: %w", err)
	}
	return nil
}

// DeleteAccount deletes an account; its mortgage details cascade.
// Returns apperrors.ErrAccountNotFound if no account exists with that ID.
func (r *AccountRepository) DeleteAccount(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM account WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return checkAffected(result, apperrors.ErrAccountNotFound)
}

// IsAccountInUse reports whether any paycheck, bill, bucket or transaction references the account.
func (r *AccountRepository) IsAccountInUse(ctx context.Context, id string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM paycheck WHERE account_id = ?)
		    OR EXISTS (SELECT 1 FROM bill WHERE account_id = ? OR to_account_id = ?)
		    OR EXISTS (SELECT 1 FROM budget_bucket WHERE account_id = ?)
		    OR EXISTS (SELECT 1 FROM adhoc_transaction WHERE account_id = ? OR to_account_id = ?)
	`

	var inUse bool
	err := r.getQuerier().QueryRowContext(ctx, query, id, id, id, id, id, id).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("failed to check account usage: %w", err)
	}
	return inUse, nil
}
