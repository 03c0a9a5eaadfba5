// Package validation checks entity payloads against declarative constraint tables.
//
// A Schema is an ordered list of rules. Validate reports the message of every violated
// rule in declaration order; after a field has failed, later rules on the same field are
// skipped so each field contributes at most one message. Primitive checks are delegated to
// go-playground/validator.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	structValidator "github.com/go-playground/validator/v10"
)

// Kind tags the constraint a Rule enforces.
type Kind int

const (
	Required Kind = iota
	MaxLength
	MinLength
	Email
	Range
	Min
	Positive
	CrossField
)

var kindNames = map[Kind]string{
	Required:   "required",
	MaxLength:  "max_length",
	MinLength:  "min_length",
	Email:      "email",
	Range:      "range",
	Min:        "min",
	Positive:   "positive",
	CrossField: "cross_field",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

var validate = structValidator.New(structValidator.WithRequiredStructEnabled())

// Rule is one field constraint of a Schema. Build rules with the constructor functions;
// Range and Min bounds must be representable in the field's own numeric type.
type Rule[T any] struct {
	Kind    Kind
	Field   string
	Message string
	Limit   int
	Min     float64
	Max     float64

	value func(T) any
	check func(T) bool
}

// Schema is the ordered constraint table of one entity type.
type Schema[T any] struct {
	Entity string
	Rules  []Rule[T]
}

// Result is the ordered list of violation messages. An empty Result is valid.
type Result []string

// Valid reports whether no constraint was violated.
func (r Result) Valid() bool {
	return len(r) == 0
}

// Err returns nil for a valid result and a *Error otherwise.
func (r Result) Err(entity string) error {
	if r.Valid() {
		return nil
	}
	return &Error{Entity: entity, Messages: r}
}

// Error carries the full list of violations of one entity.
type Error struct {
	Entity   string
	Messages []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(e.Messages, "; "))
}

// NewSchema builds a schema for entity from rules.
func NewSchema[T any](entity string, rules ...Rule[T]) Schema[T] {
	return Schema[T]{Entity: entity, Rules: rules}
}

// Validate runs every rule against entity and returns all violation messages.
func (s Schema[T]) Validate(entity T) Result {
	result := Result{}
	failed := make(map[string]bool, len(s.Rules))

	for _, rule := range s.Rules {
		if rule.Field != "" && failed[rule.Field] {
			continue
		}
		if rule.satisfiedBy(entity) {
			continue
		}
		result = append(result, rule.Message)
		if rule.Field != "" {
			failed[rule.Field] = true
		}
	}

	return result
}

// Check validates entity and returns a *Error when anything is violated.
func (s Schema[T]) Check(entity T) error {
	return s.Validate(entity).Err(s.Entity)
}

func (r Rule[T]) satisfiedBy(entity T) bool {
	if r.Kind == CrossField {
		return r.check(entity)
	}

	value := r.value(entity)
	if r.Kind == Required {
		if s, ok := value.(string); ok {
			value = strings.TrimSpace(s)
		}
	}

	return validate.Var(value, r.tag()) == nil
}

func (r Rule[T]) tag() string {
	switch r.Kind {
	case Required:
		return "required"
	case MaxLength:
		return "max=" + strconv.Itoa(r.Limit)
	case MinLength:
		return "min=" + strconv.Itoa(r.Limit)
	case Email:
		return "email"
	case Range:
		return "gte=" + formatBound(r.Min) + ",lte=" + formatBound(r.Max)
	case Min:
		return "gte=" + formatBound(r.Min)
	case Positive:
		return "gt=0"
	default:
		return ""
	}
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RequiredField rejects empty or whitespace-only strings.
func RequiredField[T any](field, message string, get func(T) string) Rule[T] {
	return Rule[T]{Kind: Required, Field: field, Message: message, value: stringValue(get)}
}

// MaxLengthField rejects strings longer than limit characters.
func MaxLengthField[T any](field, message string, limit int, get func(T) string) Rule[T] {
	return Rule[T]{Kind: MaxLength, Field: field, Message: message, Limit: limit, value: stringValue(get)}
}

// MinLengthField rejects strings shorter than limit characters.
func MinLengthField[T any](field, message string, limit int, get func(T) string) Rule[T] {
	return Rule[T]{Kind: MinLength, Field: field, Message: message, Limit: limit, value: stringValue(get)}
}

// EmailField rejects strings that are not well-formed e-mail addresses.
func EmailField[T any](field, message string, get func(T) string) Rule[T] {
	return Rule[T]{Kind: Email, Field: field, Message: message, value: stringValue(get)}
}

// RangeField rejects numbers outside [min, max].
func RangeField[T any, N int | int64 | float64](field, message string, min, max float64, get func(T) N) Rule[T] {
	return Rule[T]{Kind: Range, Field: field, Message: message, Min: min, Max: max, value: numberValue(get)}
}

// MinField rejects numbers below min.
func MinField[T any, N int | int64 | float64](field, message string, min float64, get func(T) N) Rule[T] {
	return Rule[T]{Kind: Min, Field: field, Message: message, Min: min, value: numberValue(get)}
}

// PositiveField rejects numbers that are not strictly greater than zero.
func PositiveField[T any, N int | int64 | float64](field, message string, get func(T) N) Rule[T] {
	return Rule[T]{Kind: Positive, Field: field, Message: message, value: numberValue(get)}
}

// CrossFieldRule rejects entities for which check returns false.
func CrossFieldRule[T any](field, message string, check func(T) bool) Rule[T] {
	return Rule[T]{Kind: CrossField, Field: field, Message: message, check: check}
}

func stringValue[T any](get func(T) string) func(T) any {
	return func(entity T) any { return get(entity) }
}

func numberValue[T any, N int | int64 | float64](get func(T) N) func(T) any {
	return func(entity T) any { return get(entity) }
}
