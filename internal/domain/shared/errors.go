package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes referenced outside the domain layer
const (
	CodeNotFound        = "NOT_FOUND"
	CodeUpgradeRequired = "UPGRADE_REQUIRED"
)

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool {
	if de, ok := err.(*DomainError); ok {
		return de.Code == CodeNotFound
	}
	return false
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUpgradeRequired     = NewDomainError("UPGRADE_REQUIRED", "Subscription tier does not allow this operation")
	ErrImmutableRecord     = NewDomainError("IMMUTABLE_RECORD", "Issued records cannot be modified")
	ErrCurrencyMismatch    = NewDomainError("CURRENCY_MISMATCH", "Currencies do not match")
)
