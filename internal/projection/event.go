package projection

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType classifies a projection event. The type decides sort order and
// which accounting rule the simulator applies.
type EventType int

const (
	EventPaycheck EventType = iota
	EventBill
	EventTransfer
	EventBucket
	EventTransaction
	EventInterest
)

// String returns the lower-case name of the event type.
func (t EventType) String() string {
	switch t {
	case EventPaycheck:
		return "paycheck"
	case EventBill:
		return "bill"
	case EventTransfer:
		return "transfer"
	case EventBucket:
		return "bucket"
	case EventTransaction:
		return "transaction"
	case EventInterest:
		return "interest"
	default:
		return "unknown"
	}
}

// event is a single dated candidate produced for one invocation. It is never persisted.
type event struct {
	Date          time.Time
	Amount        decimal.Decimal
	Description   string
	FromAccountID string
	ToAccountID   string
	BucketID      string
	PaycheckID    string
	Type          EventType

	IsPrincipalOnly bool
	IsRebalance     bool

	// ReplacesInterest is set on a recorded transaction that took the place of a
	// scheduled mortgage interest event. It always increases the debt.
	ReplacesInterest bool
}

func (e event) isIncome() bool {
	return e.Type == EventPaycheck || (e.Type == EventTransaction && e.PaycheckID != "")
}
