package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

const dateLayout = "2006-01-02"

// Common validation errors
var (
	ErrInvalidUUID      = apperrors.ErrInvalidUUID
	ErrInvalidDateRange = apperrors.ErrInvalidDateRange
	ErrEmptySlice       = fmt.Errorf("slice cannot be empty")
)

var validate = newValidator()

// newValidator builds the shared validator. Field errors are reported under their JSON
// names and decimal amounts compare like numbers in gt/gte/lte tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	// "date": empty or YYYY-MM-DD. Combine with required when the date is mandatory.
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse(dateLayout, s)
		return err == nil
	})

	// "ref": empty (no reference) or a UUID.
	_ = v.RegisterValidation("ref", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || uuid.Validate(s) == nil
	})

	_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		return IsValidAccountType(fl.Field().String())
	})

	_ = v.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
		return IsValidFrequency(fl.Field().String())
	})

	return v
}

// validateStruct runs the struct tag rules on req and returns the failures keyed by JSON field name.
// The returned map is never nil so callers can add their own rules to it.
func validateStruct(req any) map[string]string {
	fields := make(map[string]string)

	err := validate.Struct(req)
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["request"] = err.Error()
		return fields
	}

	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "date":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", name)
	case "uuid", "ref":
		return fmt.Sprintf("%s must be a valid UUID", name)
	case "accounttype":
		return fmt.Sprintf("invalid account type: %v", fe.Value())
	case "frequency":
		return fmt.Sprintf("invalid frequency: %v", fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// result turns collected field failures into an error, or nil when there are none.
func result(fields map[string]string) error {
	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateUUIDs validates a slice of UUIDs
func ValidateUUIDs(ids []string) error {
	if len(ids) == 0 {
		return ErrEmptySlice
	}
	for _, id := range ids {
		if err := ValidateUUID(id); err != nil {
			return err
		}
	}
	return nil
}

// IsValidAccountType reports whether s names a supported account type.
func IsValidAccountType(s string) bool {
	for _, t := range model.AccountTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// IsValidFrequency reports whether s names a supported frequency.
func IsValidFrequency(s string) bool {
	for _, f := range model.Frequencies {
		if string(f) == s {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// ParseOptionalDate parses an optional date; an empty string yields nil.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ValidateDateRange parses start and end query values and checks that end is after start.
// Empty values yield zero times, which callers treat as "use the default".
func ValidateDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if startStr != "" {
		if start, err = ParseDate(startStr); err != nil {
			return start, end, fmt.Errorf("%w: start_date: %w", ErrInvalidDateRange, err)
		}
	}
	if endStr != "" {
		if end, err = ParseDate(endStr); err != nil {
			return start, end, fmt.Errorf("%w: end_date: %w", ErrInvalidDateRange, err)
		}
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		return start, end, fmt.Errorf("%w: end_date must be after start_date", ErrInvalidDateRange)
	}
	return start, end, nil
}
