package order

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindNotFound means a referenced entity (order or product) does not exist.
	KindNotFound Kind = iota + 1
	// KindValidation means the input is malformed or a required field is missing.
	KindValidation
	// KindUnavailable means an optional backend is not configured or not reachable.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is a domain failure carrying a machine-readable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func notFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func invalid(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

var (
	ErrProductNotFound = notFound("PRODUCT_NOT_FOUND", "Product not found.")
	ErrOrderNotFound   = notFound("ORDER_NOT_FOUND", "Order not found.")

	ErrInvalidCustomerID  = invalid("INVALID_CUSTOMER_ID", "Invalid customer ID.")
	ErrInvalidSellerID    = invalid("INVALID_SELLER_ID", "Invalid seller ID.")
	ErrInvalidOrderID     = invalid("INVALID_ORDER_ID", "Invalid order ID.")
	ErrInvalidOrderStatus = invalid("INVALID_ORDER_STATUS", "Order status is required.")
	ErrInvalidUpdateData  = invalid("INVALID_UPDATE_DATA", "Update order data is required.")

	ErrHistoryUnavailable = &Error{Kind: KindUnavailable, Code: "HISTORY_UNAVAILABLE", Message: "Order history is not available."}

	// ErrInvalidQuery is returned when order query validation fails
	ErrInvalidQuery = errors.New("invalid orders query")
)

// KindOf reports the domain kind of err, or 0 for infrastructure errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
