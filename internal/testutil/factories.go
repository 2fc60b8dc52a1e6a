package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Checking account with defaults
//	account := testutil.NewAccount().Build(t, db)
//
//	// Mortgage
//	mortgage := testutil.NewAccount().
//	    WithType(model.AccountTypeMortgage).
//	    WithBalance("200000").
//	    WithMortgage(testutil.Dec("6"), testutil.Dec("1500"), testutil.Date(2024, 1, 1)).
//	    Build(t, db)
type AccountBuilder struct {
	account model.Account
}

// NewAccount creates an AccountBuilder for a checking account holding 1000 as of 2024-01-01.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{account: model.Account{
		ID:             MakeID(),
		Name:           MakeName("Account"),
		BankName:       "Test Bank",
		Balance:        decimal.NewFromInt(1000),
		BalanceAsOf:    Date(2024, 1, 1),
		IncludeInTotal: true,
		Type:           model.AccountTypeChecking,
	}}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.account.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.account.Name = name
	return b
}

// WithType sets the account type.
func (b *AccountBuilder) WithType(t model.AccountType) *AccountBuilder {
	b.account.Type = t
	return b
}

// WithBalance sets the balance from a decimal string.
func (b *AccountBuilder) WithBalance(balance string) *AccountBuilder {
	b.account.Balance = Dec(balance)
	return b
}

// WithBalanceAsOf sets the date the balance is known for.
func (b *AccountBuilder) WithBalanceAsOf(date time.Time) *AccountBuilder {
	b.account.BalanceAsOf = date
	return b
}

// WithGrowthRate sets the annual growth percentage.
func (b *AccountBuilder) WithGrowthRate(rate string) *AccountBuilder {
	b.account.AnnualGrowthRate = Dec(rate)
	return b
}

// ExcludedFromTotal leaves the account out of the aggregate total.
func (b *AccountBuilder) ExcludedFromTotal() *AccountBuilder {
	b.account.IncludeInTotal = false
	return b
}

// WithMortgage attaches loan terms without escrow or insurance.
func (b *AccountBuilder) WithMortgage(rate, payment decimal.Decimal, paymentDate time.Time) *AccountBuilder {
	b.account.MortgageDetails = &model.MortgageDetails{
		InterestRate: rate,
		LoanPayment:  payment,
		PaymentDate:  paymentDate,
	}
	return b
}

// WithMortgageDetails attaches complete loan terms.
func (b *AccountBuilder) WithMortgageDetails(details model.MortgageDetails) *AccountBuilder {
	b.account.MortgageDetails = &details
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	account := b.account
	if err := repository.NewAccountRepository(db).InsertAccount(context.Background(), &account); err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
	return account
}

// PaycheckBuilder provides a fluent interface for creating test paychecks.
// Defaults: biweekly 2000 starting 2024-01-05, balanced, no account.
type PaycheckBuilder struct {
	paycheck model.Paycheck
}

// NewPaycheck creates a PaycheckBuilder with sensible defaults.
func NewPaycheck() *PaycheckBuilder {
	return &PaycheckBuilder{paycheck: model.Paycheck{
		ID:             MakeID(),
		Name:           MakeName("Salary"),
		ExpectedAmount: decimal.NewFromInt(2000),
		Frequency:      model.FrequencyBiWeekly,
		StartDate:      Date(2024, 1, 5),
		IsBalanced:     true,
	}}
}

// WithName sets a custom name.
func (b *PaycheckBuilder) WithName(name string) *PaycheckBuilder {
	b.paycheck.Name = name
	return b
}

// WithAmount sets the expected amount from a decimal string.
func (b *PaycheckBuilder) WithAmount(amount string) *PaycheckBuilder {
	b.paycheck.ExpectedAmount = Dec(amount)
	return b
}

// WithFrequency sets the frequency.
func (b *PaycheckBuilder) WithFrequency(f model.Frequency) *PaycheckBuilder {
	b.paycheck.Frequency = f
	return b
}

// WithStartDate sets the first occurrence.
func (b *PaycheckBuilder) WithStartDate(date time.Time) *PaycheckBuilder {
	b.paycheck.StartDate = date
	return b
}

// WithEndDate sets the last possible occurrence.
func (b *PaycheckBuilder) WithEndDate(date time.Time) *PaycheckBuilder {
	b.paycheck.EndDate = &date
	return b
}

// WithAccount sets the deposit account.
func (b *PaycheckBuilder) WithAccount(accountID string) *PaycheckBuilder {
	b.paycheck.AccountID = accountID
	return b
}

// Unbalanced marks the paycheck as not yet reconciled.
func (b *PaycheckBuilder) Unbalanced() *PaycheckBuilder {
	b.paycheck.IsBalanced = false
	return b
}

// Build creates the paycheck in the database and returns it.
func (b *PaycheckBuilder) Build(t *testing.T, db *sql.DB) model.Paycheck {
	t.Helper()

	paycheck := b.paycheck
	if err := repository.NewPaycheckRepository(db).InsertPaycheck(context.Background(), &paycheck); err != nil {
		t.Fatalf("Failed to create test paycheck: %v", err)
	}
	return paycheck
}

// BillBuilder provides a fluent interface for creating test bills.
// Defaults: active monthly 500 due on the 5th, no account.
type BillBuilder struct {
	bill model.Bill
}

// NewBill creates a BillBuilder with sensible defaults.
func NewBill() *BillBuilder {
	return &BillBuilder{bill: model.Bill{
		ID:             MakeID(),
		Name:           MakeName("Rent"),
		ExpectedAmount: decimal.NewFromInt(500),
		Frequency:      model.FrequencyMonthly,
		DueDay:         5,
		Category:       "Housing",
		IsActive:       true,
	}}
}

// WithName sets a custom name.
func (b *BillBuilder) WithName(name string) *BillBuilder {
	b.bill.Name = name
	return b
}

// WithAmount sets the expected amount from a decimal string.
func (b *BillBuilder) WithAmount(amount string) *BillBuilder {
	b.bill.ExpectedAmount = Dec(amount)
	return b
}

// WithFrequency sets the frequency.
func (b *BillBuilder) WithFrequency(f model.Frequency) *BillBuilder {
	b.bill.Frequency = f
	return b
}

// WithDueDay sets the day of month the bill is due.
func (b *BillBuilder) WithDueDay(dueDay int) *BillBuilder {
	b.bill.DueDay = dueDay
	return b
}

// WithNextDueDate sets an explicit first due date.
func (b *BillBuilder) WithNextDueDate(date time.Time) *BillBuilder {
	b.bill.NextDueDate = &date
	return b
}

// WithAccount sets the paying account.
func (b *BillBuilder) WithAccount(accountID string) *BillBuilder {
	b.bill.AccountID = accountID
	return b
}

// WithToAccount turns the bill into a transfer to accountID.
func (b *BillBuilder) WithToAccount(accountID string) *BillBuilder {
	b.bill.ToAccountID = accountID
	return b
}

// Inactive marks the bill as inactive.
func (b *BillBuilder) Inactive() *BillBuilder {
	b.bill.IsActive = false
	return b
}

// Build creates the bill in the database and returns it.
func (b *BillBuilder) Build(t *testing.T, db *sql.DB) model.Bill {
	t.Helper()

	bill := b.bill
	if err := repository.NewBillRepository(db).InsertBill(context.Background(), &bill); err != nil {
		t.Fatalf("Failed to create test bill: %v", err)
	}
	return bill
}

// BucketBuilder provides a fluent interface for creating test budget buckets.
// Defaults: 300 per period, no account.
type BucketBuilder struct {
	bucket model.BudgetBucket
}

// NewBucket creates a BucketBuilder with sensible defaults.
func NewBucket() *BucketBuilder {
	return &BucketBuilder{bucket: model.BudgetBucket{
		ID:             MakeID(),
		Name:           MakeName("Groceries"),
		ExpectedAmount: decimal.NewFromInt(300),
	}}
}

// WithName sets a custom name.
func (b *BucketBuilder) WithName(name string) *BucketBuilder {
	b.bucket.Name = name
	return b
}

// WithAmount sets the expected amount from a decimal string.
func (b *BucketBuilder) WithAmount(amount string) *BucketBuilder {
	b.bucket.ExpectedAmount = Dec(amount)
	return b
}

// WithAccount sets the paying account.
func (b *BucketBuilder) WithAccount(accountID string) *BucketBuilder {
	b.bucket.AccountID = accountID
	return b
}

// Build creates the bucket in the database and returns it.
func (b *BucketBuilder) Build(t *testing.T, db *sql.DB) model.BudgetBucket {
	t.Helper()

	bucket := b.bucket
	if err := repository.NewBucketRepository(db).InsertBucket(context.Background(), &bucket); err != nil {
		t.Fatalf("Failed to create test bucket: %v", err)
	}
	return bucket
}

// TransactionBuilder provides a fluent interface for creating test ad-hoc transactions.
// Defaults: -50 on 2024-01-10 with no associations.
type TransactionBuilder struct {
	transaction model.AdHocTransaction
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{transaction: model.AdHocTransaction{
		ID:          MakeID(),
		Description: MakeName("Purchase"),
		Amount:      decimal.NewFromInt(-50),
		Date:        Date(2024, 1, 10),
	}}
}

// WithDescription sets the description.
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	b.transaction.Description = description
	return b
}

// WithAmount sets the amount from a decimal string.
func (b *TransactionBuilder) WithAmount(amount string) *TransactionBuilder {
	b.transaction.Amount = Dec(amount)
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.transaction.Date = date
	return b
}

// WithAccount sets the source account.
func (b *TransactionBuilder) WithAccount(accountID string) *TransactionBuilder {
	b.transaction.AccountID = accountID
	return b
}

// WithToAccount sets the destination account.
func (b *TransactionBuilder) WithToAccount(accountID string) *TransactionBuilder {
	b.transaction.ToAccountID = accountID
	return b
}

// WithBucket draws the transaction from a bucket.
func (b *TransactionBuilder) WithBucket(bucketID string) *TransactionBuilder {
	b.transaction.BucketID = bucketID
	return b
}

// WithPaycheck records the transaction as the actual deposit of the paycheck occurrence on occurrence.
func (b *TransactionBuilder) WithPaycheck(paycheckID string, occurrence time.Time) *TransactionBuilder {
	b.transaction.PaycheckID = paycheckID
	b.transaction.PaycheckOccurrenceDate = &occurrence
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.AdHocTransaction {
	t.Helper()

	transaction := b.transaction
	if err := repository.NewTransactionRepository(db).InsertTransaction(context.Background(), &transaction); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	return transaction
}

// Convenience functions

// CreateAccount creates a checking account with the given name and default values.
func CreateAccount(t *testing.T, db *sql.DB, name string) model.Account {
	t.Helper()
	return NewAccount().WithName(name).Build(t, db)
}

// CreateAccounts creates multiple accounts with unique names.
func CreateAccounts(t *testing.T, db *sql.DB, count int) []model.Account {
	t.Helper()

	accounts := make([]model.Account, count)
	for i := range count {
		accounts[i] = NewAccount().Build(t, db)
	}
	return accounts
}
