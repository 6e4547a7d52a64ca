package services

import "github.com/rs/zerolog/log"

// Error kinds, mapped to HTTP status codes at the handler boundary. Every
// state-machine precondition failure is one of these; raw storage errors
// never reach a caller.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindForbidden
	KindInvalidOperation
	KindConflict
	KindInternal
)

type Error struct {
	Kind    ErrorKind
	Message string
	// Fields carries field-level details for validation failures.
	Fields map[string]string
	// Entity is the current, unchanged state of the entity whose transition
	// was rejected, so clients can retry without re-deriving state.
	Entity interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) WithEntity(entity interface{}) *Error {
	e.Entity = entity
	return e
}

func ErrValidation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func ErrNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func ErrForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func ErrInvalidOperation(message string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: message}
}

func ErrConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// ErrInternal logs the underlying cause and returns a generic error; the
// storage detail must not leak to clients but has to land in the logs.
func ErrInternal(err error) *Error {
	if err != nil {
		log.Error().Err(err).Msg("internal error")
	}
	return &Error{Kind: KindInternal, Message: "something went wrong"}
}

// asServiceError passes taxonomy errors through unchanged and wraps anything
// else (storage failures, mostly) as Internal.
func asServiceError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return ErrInternal(err)
}

// KindOf extracts the kind from an error, defaulting to Internal for
// anything that escaped the taxonomy.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
