package bitfield

import (
	"fmt"
	"strings"
)

// Phase indicates where the error occurred
type Phase string

const (
	PhaseSchema Phase = "schema" // layout planning and validation
	PhaseAccess Phase = "access" // field lookup and suppressed accessors
	PhaseSet    Phase = "set"    // field setters
	PhaseDecode Phase = "decode" // bytes or integer to record
	PhaseUpdate Phase = "update" // single byte updates
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds       Kind = "out_of_bounds"
	KindInvalidBitPattern Kind = "invalid_bit_pattern"
	KindWidthMismatch     Kind = "width_mismatch"
	KindFillCheck         Kind = "fill_check"
	KindInvalidDomain     Kind = "invalid_domain"
	KindInvalidField      Kind = "invalid_field"
	KindSuppressed        Kind = "suppressed"
	KindUnsupported       Kind = "unsupported"
)

// Error is the structured error type returned by schemas and records.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Schema string
	Field  string
	Detail string
}

var (
	// ErrOutOfBounds matches any value outside its field's domain, including
	// decoded bytes or integers that set bits beyond the declared width.
	ErrOutOfBounds = &Error{Kind: KindOutOfBounds}

	// ErrInvalidBitPattern matches decoded enum bits with no declared variant.
	ErrInvalidBitPattern = &Error{Kind: KindInvalidBitPattern}

	// ErrSchema matches every schema validation failure.
	ErrSchema = &Error{Phase: PhaseSchema}
)

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Schema != "" || e.Field != "" {
		b.WriteString(" at ")
		b.WriteString(e.Schema)
		if e.Schema != "" && e.Field != "" {
			b.WriteByte('.')
		}
		b.WriteString(e.Field)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Empty Phase or Kind on the
// target act as wildcards.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return true
}

func schemaError(kind Kind, field string, format string, args ...any) *Error {
	return &Error{
		Phase:  PhaseSchema,
		Kind:   kind,
		Field:  field,
		Detail: fmt.Sprintf(format, args...),
	}
}

func outOfBounds(phase Phase, schema, field string, value any, format string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Schema: schema,
		Field:  field,
		Value:  value,
		Detail: fmt.Sprintf(format, args...),
	}
}

// at stamps the location onto a value error produced without one.
func at(err error, phase Phase, schema, field string) error {
	if e, ok := err.(*Error); ok {
		e.Phase = phase
		e.Schema = schema
		e.Field = field
	}
	return err
}
