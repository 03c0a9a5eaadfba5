// Package dberrors classifies storage failures into a small set of kinds shared by every
// repository, and maps those kinds onto HTTP status codes.
package dberrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the engine-independent category of a storage failure.
type Kind int

const (
	Unknown Kind = iota
	DuplicateKey
	AccessDenied
	SchemaMissing
	ConnectionUnavailable
	ConstraintViolation
	Deadlock
)

func (k Kind) String() string {
	switch k {
	case DuplicateKey:
		return "DuplicateKey"
	case AccessDenied:
		return "AccessDenied"
	case SchemaMissing:
		return "SchemaMissing"
	case ConnectionUnavailable:
		return "ConnectionUnavailable"
	case ConstraintViolation:
		return "ConstraintViolation"
	case Deadlock:
		return "Deadlock"
	default:
		return "Unknown"
	}
}

// Retryable reports whether a failure of this kind may succeed when the whole
// operation is attempted again.
func (k Kind) Retryable() bool {
	return k == Deadlock || k == ConnectionUnavailable
}

// Operation names recorded on a PersistenceError.
const (
	OpInsert = "insert"
	OpSelect = "select"
	OpUpdate = "update"
	OpDelete = "delete"
	OpSchema = "schema"
)

// Code is a canonical storage error code, independent of the engine that raised it.
type Code string

const (
	CodeDuplicateKey      Code = "duplicate-key"
	CodeAccessDenied      Code = "access-denied"
	CodeUnknownDatabase   Code = "unknown-database"
	CodeConnectionFailure Code = "connection-failure"
	CodeUnknownColumn     Code = "unknown-column"
	CodeTableMissing      Code = "table-missing"
	CodeDeadlock          Code = "deadlock"
	CodeBadStringValue    Code = "bad-string-value"
	CodeForeignKeyParent  Code = "fk-violation-parent"
	CodeForeignKeyChild   Code = "fk-violation-child"
	CodeUnrecognized      Code = "unrecognized"
)

type translation struct {
	kind    Kind
	message string
}

// codeTable is the single code-to-kind mapping used by every repository. %s is the
// entity name.
var codeTable = map[Code]translation{
	CodeDuplicateKey:      {DuplicateKey, "A %s with this unique field already exists."},
	CodeAccessDenied:      {AccessDenied, "Access denied. Please check your database credentials."},
	CodeUnknownDatabase:   {SchemaMissing, "The specified database does not exist. Please check your database configuration."},
	CodeConnectionFailure: {ConnectionUnavailable, "Could not connect to the database server. Please check your connection settings."},
	CodeUnknownColumn:     {SchemaMissing, "One or more columns in the %s operation do not exist."},
	CodeTableMissing:      {SchemaMissing, "The specified table does not exist. Please check your database schema."},
	CodeDeadlock:          {Deadlock, "A deadlock occurred. Please try again."},
	CodeBadStringValue:    {ConstraintViolation, "An incorrect string value was entered. Please check your input data."},
	CodeForeignKeyParent:  {ConstraintViolation, "This %s is associated with other records and cannot be deleted/updated."},
	CodeForeignKeyChild:   {ConstraintViolation, "A record referenced by this %s does not exist. Please check related data."},
}

const unknownMessage = "An unexpected error occurred while processing the %s."

// PersistenceError is a classified storage failure. Err holds the driver error.
type PersistenceError struct {
	Kind    Kind
	Code    Code
	Entity  string
	Op      string
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may retry the whole operation.
func (e *PersistenceError) Retryable() bool {
	return e.Kind.Retryable()
}

// Translate maps code to exactly one PersistenceError. Unrecognized codes become Unknown.
func Translate(entity, op string, code Code, cause error) *PersistenceError {
	t, ok := codeTable[code]
	if !ok {
		t = translation{Unknown, unknownMessage}
		code = CodeUnrecognized
	}

	message := t.message
	if strings.Contains(message, "%s") {
		message = fmt.Sprintf(message, entity)
	}

	return &PersistenceError{
		Kind:    t.kind,
		Code:    code,
		Entity:  entity,
		Op:      op,
		Message: message,
		Err:     cause,
	}
}

// KindOf returns the kind of the first PersistenceError in err's chain, or Unknown.
func KindOf(err error) Kind {
	var perr *PersistenceError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return Unknown
}

// IsRetryable reports whether err carries a retryable PersistenceError.
func IsRetryable(err error) bool {
	var perr *PersistenceError
	return errors.As(err, &perr) && perr.Retryable()
}
