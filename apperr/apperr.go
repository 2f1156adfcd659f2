// Package apperr defines the closed set of failure kinds the API can
// return. Every kind maps to a stable wire code and HTTP status so
// clients can distinguish "your request was invalid" from "the system
// failed" and render a specific message.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

type Kind int

const (
	Unauthenticated Kind = iota
	Forbidden
	NotFound
	InvalidAddress
	RestaurantClosed
	ItemUnavailable
	ItemsUnavailable
	SomeItemsNotFound
	DuplicatePayment
	InvalidTransition
	ValidationFailed
	Internal
)

// Code returns the stable wire identifier for a kind.
func (k Kind) Code() string {
	switch k {
	case Unauthenticated:
		return "UNAUTHENTICATED"
	case Forbidden:
		return "FORBIDDEN"
	case NotFound:
		return "NOT_FOUND"
	case InvalidAddress:
		return "INVALID_ADDRESS"
	case RestaurantClosed:
		return "RESTAURANT_CLOSED"
	case ItemUnavailable:
		return "ITEM_UNAVAILABLE"
	case ItemsUnavailable:
		return "ITEMS_UNAVAILABLE"
	case SomeItemsNotFound:
		return "SOME_ITEMS_NOT_FOUND"
	case DuplicatePayment:
		return "DUPLICATE_PAYMENT"
	case InvalidTransition:
		return "INVALID_TRANSITION"
	case ValidationFailed:
		return "VALIDATION_FAILED"
	default:
		return "INTERNAL"
	}
}

// HTTPStatus maps a kind to its response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case DuplicatePayment:
		return http.StatusConflict
	case ValidationFailed:
		return http.StatusBadRequest
	case InvalidAddress, RestaurantClosed, ItemUnavailable,
		ItemsUnavailable, SomeItemsNotFound, InvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failure with a kind, a human-readable message, and an
// optional list of offending items (unavailable food item names,
// per-field validation problems).
type Error struct {
	Kind    Kind
	Message string
	Items   []string
}

func (e *Error) Error() string {
	if len(e.Items) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Items, ", ")
}

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithItems builds an error that names the offending items.
func WithItems(kind Kind, message string, items []string) *Error {
	return &Error{Kind: kind, Message: message, Items: items}
}

// KindOf extracts the kind of err, or Internal for anything outside the
// taxonomy (unexpected storage failures stay distinguishable as such).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
