// Package services provides the business logic layer between handlers and
// the dataset, series and forecast packages. Services encapsulate request
// validation, caching and result shaping.
package services

// Error codes returned by the service layer. Handlers map these to
// HTTP status codes.
const (
	CodeDataUnavailable  = "DATA_UNAVAILABLE"
	CodeNoDataForKey     = "NO_DATA_FOR_KEY"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeModelFitError    = "MODEL_FIT_ERROR"
	CodeInvalidParameter = "INVALID_PARAMETER"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
