package validation

import "github.com/ndewijer/Budget-Projection-Backend/internal/api/request"

// ValidateCreateBucket validates a budget bucket creation request.
// name is required and expectedAmount must not be negative.
func ValidateCreateBucket(req request.CreateBucketRequest) error {
	return result(validateStruct(req))
}

// ValidateUpdateBucket validates a budget bucket update request.
func ValidateUpdateBucket(req request.UpdateBucketRequest) error {
	return result(validateStruct(req))
}

// ValidatePeriodBucket validates a per-period bucket override.
func ValidatePeriodBucket(req request.PeriodBucketRequest) error {
	return result(validateStruct(req))
}
