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

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState     = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrTenantRequired   = NewDomainError("TENANT_REQUIRED", "No tenant context available for tenant-scoped operation")
	ErrAlreadyExpired   = NewDomainError("ALREADY_EXPIRED", "The validity window has passed")
	ErrCurrencyMismatch = NewDomainError("CURRENCY_MISMATCH", "Operands have different currencies")
	ErrInvalidAmount    = NewDomainError("INVALID_AMOUNT", "Monetary amount is invalid")
	ErrDivisionByZero   = NewDomainError("DIVISION_BY_ZERO", "Cannot divide a monetary amount by zero")
	ErrEmptyInvoice     = NewDomainError("EMPTY_INVOICE", "Invoice has no line items")
	ErrConversionFailed = NewDomainError("CONVERSION_FAILED", "Estimate conversion failed")
)
