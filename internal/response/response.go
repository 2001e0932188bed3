package response

import "github.com/gin-gonic/gin"

// Error codes surfaced by the configuration API
const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeInvalidReference     = "INVALID_REFERENCE"
	ErrCodeConstraintViolation  = "CONSTRAINT_VIOLATION"
	ErrCodeReferentialIntegrity = "REFERENTIAL_INTEGRITY"
	ErrCodeOrderMismatch        = "ORDER_MISMATCH"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeStorageUnavailable   = "STORAGE_UNAVAILABLE"
	ErrCodeInternal             = "INTERNAL_ERROR"
)

// AppError is the error type services return to handlers. Code selects the
// externally visible kind; Details carries internal context for logs only.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Code + ": " + e.Message + " (" + e.Details + ")"
	}
	return e.Code + ": " + e.Message
}

// NewAppError creates an AppError with an explicit code
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a VALIDATION_ERROR
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewInvalidReferenceError creates an INVALID_REFERENCE error
func NewInvalidReferenceError(message, details string) *AppError {
	return NewAppError(ErrCodeInvalidReference, message, details)
}

// NewConstraintViolationError creates a CONSTRAINT_VIOLATION error
func NewConstraintViolationError(message, details string) *AppError {
	return NewAppError(ErrCodeConstraintViolation, message, details)
}

// NewReferentialIntegrityError creates a REFERENTIAL_INTEGRITY error
func NewReferentialIntegrityError(message, details string) *AppError {
	return NewAppError(ErrCodeReferentialIntegrity, message, details)
}

// NewOrderMismatchError creates an ORDER_MISMATCH error
func NewOrderMismatchError(message, details string) *AppError {
	return NewAppError(ErrCodeOrderMismatch, message, details)
}

// NewNotFoundError creates a NOT_FOUND error
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// NewStorageUnavailableError creates a STORAGE_UNAVAILABLE error
func NewStorageUnavailableError(message, details string) *AppError {
	return NewAppError(ErrCodeStorageUnavailable, message, details)
}

// SuccessResponse is the envelope for successful responses
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for error responses
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody carries the error code and message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendSuccess writes a success envelope with the given status code
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Data: data})
}

// SendError writes an error envelope with the given status code
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   ErrorBody{Code: code, Message: message},
	})
}
