package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/repository"
	"github.com/ndewijer/Budget-Projection-Backend/internal/service"
)

// TestHorizonMonths is the default projection window length used by test services.
const TestHorizonMonths = 3

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()
	return service.NewAccountService(db, repository.NewAccountRepository(db), nil)
}

func NewTestPaycheckService(t *testing.T, db *sql.DB) *service.PaycheckService {
	t.Helper()
	return service.NewPaycheckService(
		db,
		repository.NewPaycheckRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewAccountRepository(db),
		nil,
	)
}

func NewTestBillService(t *testing.T, db *sql.DB) *service.BillService {
	t.Helper()
	return service.NewBillService(repository.NewBillRepository(db), repository.NewAccountRepository(db), nil)
}

func NewTestBucketService(t *testing.T, db *sql.DB) *service.BucketService {
	t.Helper()
	return service.NewBucketService(repository.NewBucketRepository(db), repository.NewAccountRepository(db), nil)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()
	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewAccountRepository(db),
		repository.NewPaycheckRepository(db),
		repository.NewBucketRepository(db),
		nil,
	)
}

func NewTestSnapshotLoader(t *testing.T, db *sql.DB) *service.SnapshotLoader {
	t.Helper()
	return service.NewSnapshotLoader(
		repository.NewAccountRepository(db),
		repository.NewPaycheckRepository(db),
		repository.NewBillRepository(db),
		repository.NewBucketRepository(db),
		repository.NewTransactionRepository(db),
		"",
	)
}

// NewTestLineTokenCodec creates a codec with a random key and a one hour TTL.
func NewTestLineTokenCodec(t *testing.T) *service.LineTokenCodec {
	t.Helper()
	codec, err := service.NewLineTokenCodec("", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create line token codec: %v", err)
	}
	return codec
}

// NewTestProjectionService creates a projection service whose clock is fixed at now.
func NewTestProjectionService(t *testing.T, db *sql.DB, now time.Time) *service.ProjectionService {
	t.Helper()
	return service.NewProjectionService(
		NewTestSnapshotLoader(t, db),
		repository.NewTransactionRepository(db),
		NewTestLineTokenCodec(t),
		TestHorizonMonths,
	).WithClock(func() time.Time { return now })
}

// NewTestMaterializedService creates a materialized service on top of a projection
// service fixed at now. The projection service reports line edits to it.
func NewTestMaterializedService(t *testing.T, db *sql.DB, now time.Time) *service.MaterializedService {
	t.Helper()
	_, ms := NewTestProjectionServices(t, db, now)
	return ms
}

// NewTestProjectionServices creates a projection service fixed at now together with the
// materialized service it reports line edits to.
func NewTestProjectionServices(t *testing.T, db *sql.DB, now time.Time) (*service.ProjectionService, *service.MaterializedService) {
	t.Helper()
	ps := NewTestProjectionService(t, db, now)
	ms := service.NewMaterializedService(repository.NewMaterializedRepository(db), ps)
	ps.SetNotifier(ms)
	return ps, ms
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// MakeID generates a new UUID string.
func MakeID() string {
	return uuid.New().String()
}

// MakeName appends a random suffix to base so names stay unique across builders.
func MakeName(base string) string {
	return base + " " + randomAlphanumeric(6)
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Dec parses a decimal string and panics on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))] //nolint:gosec // Test data only
	}
	return string(b)
}
