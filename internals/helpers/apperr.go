// file: internals/helpers/apperr.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Tagged error kinds

   Services return *AppError instead of bare errors so the HTTP layer
   can map kind → status with a total switch (no message matching).
=================================*/

type ErrKind int

const (
	KindValidation ErrKind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindTooLarge
	KindRateLimited
	KindInternal
)

type AppError struct {
	Kind    ErrKind
	Message string
	// Fields: optional per-field validation detail (kind = KindValidation)
	Fields map[string][]string
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(kind ErrKind, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg}
}

func ErrValidation(msg string) *AppError   { return NewAppError(KindValidation, msg) }
func ErrUnauthorized(msg string) *AppError { return NewAppError(KindUnauthorized, msg) }
func ErrForbidden(msg string) *AppError    { return NewAppError(KindForbidden, msg) }
func ErrNotFound(msg string) *AppError     { return NewAppError(KindNotFound, msg) }
func ErrConflict(msg string) *AppError     { return NewAppError(KindConflict, msg) }
func ErrTooLarge(msg string) *AppError     { return NewAppError(KindTooLarge, msg) }
func ErrInternal(msg string) *AppError     { return NewAppError(KindInternal, msg) }

func ErrValidationFields(msg string, fields map[string][]string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Fields: fields}
}

func (k ErrKind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// JsonAppError renders an *AppError (or any error) through the standard envelope.
// Unknown errors become a generic 500; the original message stays server-side.
func JsonAppError(c *fiber.Ctx, err error) error {
	var ae *AppError
	if errors.As(err, &ae) {
		if ae.Kind == KindValidation && ae.Fields != nil {
			return JsonValidationError(c, ae.Fields)
		}
		return JsonError(c, ae.Kind.HTTPStatus(), ae.Message)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
