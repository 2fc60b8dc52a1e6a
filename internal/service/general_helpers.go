package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/validation"
)

// ChangeNotifier is told about every write that changes projection inputs.
type ChangeNotifier interface {
	NotifyChanged(ctx context.Context, reason string)
}

type noopNotifier struct{}

func (noopNotifier) NotifyChanged(context.Context, string) {}

func notifierOrNoop(n ChangeNotifier) ChangeNotifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// accountGetter is the part of the account repository reference checks need.
type accountGetter interface {
	GetAccount(ctx context.Context, id string) (model.Account, error)
}

// checkAccountRefs verifies that every non-empty account reference exists.
// refs maps the JSON field name to the referenced account ID.
// Missing accounts are reported as a *validation.Error.
func checkAccountRefs(ctx context.Context, accounts accountGetter, refs map[string]string) error {
	fields := make(map[string]string)
	for field, id := range refs {
		if id == "" {
			continue
		}
		_, err := accounts.GetAccount(ctx, id)
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			fields[field] = fmt.Sprintf("account %s not found", id)
			continue
		}
		if err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		return &validation.Error{Fields: fields}
	}
	return nil
}

// applyOptionalDate sets *dst from an optional request date; an empty string clears it.
func applyOptionalDate(dst **time.Time, value *string) error {
	if value == nil {
		return nil
	}
	t, err := validation.ParseOptionalDate(*value)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

// today returns the current UTC calendar day.
func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
