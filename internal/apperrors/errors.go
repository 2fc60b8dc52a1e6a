package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrPaycheckNotFound indicates that a paycheck with the given ID does not exist.
	ErrPaycheckNotFound = errors.New("paycheck not found")

	// ErrBillNotFound indicates that a bill with the given ID does not exist.
	ErrBillNotFound = errors.New("bill not found")

	// ErrBucketNotFound indicates that a budget bucket with the given ID does not exist.
	ErrBucketNotFound = errors.New("bucket not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrProjectionNotMaterialized indicates no materialized projection covers the request.
	ErrProjectionNotMaterialized = errors.New("projection not materialized")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrAccountInUse indicates that an account cannot be deleted because paychecks,
	// bills, buckets or transactions still reference it.
	ErrAccountInUse = errors.New("account is in use")

	// ErrNotMortgage indicates that an operation requires a mortgage account with loan terms.
	ErrNotMortgage = errors.New("account is not a mortgage with loan terms")

	// ErrInvalidLineToken indicates that a projection line token is malformed, forged or expired.
	ErrInvalidLineToken = errors.New("invalid or expired line token")

	// ErrLineNotEditable indicates that a projection line cannot be edited, for example
	// because it is not a paycheck or lies in the future.
	ErrLineNotEditable = errors.New("projection line is not editable")

	// ErrRefreshInProgress indicates a projection refresh was skipped because one is already running.
	ErrRefreshInProgress = errors.New("projection refresh already in progress")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToRetrieveAccounts     = errors.New("failed to retrieve accounts")
	ErrFailedToRetrievePaychecks    = errors.New("failed to retrieve paychecks")
	ErrFailedToRetrieveBills        = errors.New("failed to retrieve bills")
	ErrFailedToRetrieveBuckets      = errors.New("failed to retrieve buckets")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")

	// Projection operation errors
	ErrFailedToCalculateProjection = errors.New("failed to calculate projection")
	ErrFailedToRefreshProjection   = errors.New("failed to refresh projection")
	ErrFailedToEditProjectionLine  = errors.New("failed to edit projection line")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
