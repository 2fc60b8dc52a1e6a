package validation

import "github.com/ndewijer/Budget-Projection-Backend/internal/api/request"

// ValidateEditProjectionLine validates a projected line edit; the token itself is verified by the service.
func ValidateEditProjectionLine(req request.EditProjectionLineRequest) error {
	return result(validateStruct(req))
}
