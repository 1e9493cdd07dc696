// Package errors provides standardized error handling patterns for pinty.
// It includes error classification, the unit-domain error taxonomy, and
// helper functions for consistent error wrapping across the library.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorInvalid represents errors due to invalid input, unknown names,
	// or operations whose meaning is ambiguous. Not retryable.
	ErrorInvalid ErrorClass = iota
	// ErrorFatal represents unrecoverable errors such as corrupted
	// registry state that should stop processing.
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Registry population errors
	ErrEmptyName        = errors.New("definition name cannot be empty")
	ErrUnknownDimension = errors.New("unknown base dimension")
	ErrInvalidScale     = errors.New("scale factor must be finite and non-zero")

	// Resolution and conversion errors
	ErrEmptyExpression  = errors.New("unit expression cannot be empty")
	ErrNilRegistry      = errors.New("registry is nil")
	ErrNilContext       = errors.New("context is nil")
	ErrEmptyStack       = errors.New("context stack is empty")
	ErrRegistryMismatch = errors.New("quantities belong to different registries")
)

// UndefinedUnitError reports a unit or prefix name that does not resolve
// in the registry. Resolution aborts at the first unknown name.
type UndefinedUnitError struct {
	Name string
}

// Error implements the error interface
func (e *UndefinedUnitError) Error() string {
	return fmt.Sprintf("%q is not defined in the unit registry", e.Name)
}

// DimensionalityError reports an operation that required equal
// dimensionalities and got different ones. Both sides are carried in
// rendered form for diagnostics.
type DimensionalityError struct {
	From    string // source units, e.g. "hertz"
	To      string // target units, e.g. "joule"
	FromDim string // source dimensionality, e.g. "[time]^-1"
	ToDim   string // target dimensionality
}

// Error implements the error interface
func (e *DimensionalityError) Error() string {
	return fmt.Sprintf("cannot convert from %q (%s) to %q (%s)",
		e.From, e.FromDim, e.To, e.ToDim)
}

// RedefinitionError reports a Define call whose name or alias is already
// taken. The registry is left exactly as it was before the call.
type RedefinitionError struct {
	Name string
	Kind string // "unit", "prefix" or "dimension"
}

// Error implements the error interface
func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("cannot redefine %s %q: name already registered", e.Kind, e.Name)
}

// OffsetUnitCalculusError reports an operation on an affine (offset)
// unit whose meaning is ambiguous, such as multiplying two temperatures
// or converting a compound expression built on an offset unit.
type OffsetUnitCalculusError struct {
	Units  string
	Reason string
}

// Error implements the error interface
func (e *OffsetUnitCalculusError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("ambiguous operation with offset unit (%s)", e.Units)
	}
	return fmt.Sprintf("ambiguous operation with offset unit (%s): %s", e.Units, e.Reason)
}

// LogarithmicUnitCalculusError reports linear algebra attempted on a
// logarithmic unit, such as raising a decibel quantity to a power or
// requesting an affine conversion factor for a decibel scale.
type LogarithmicUnitCalculusError struct {
	Units  string
	Reason string
}

// Error implements the error interface
func (e *LogarithmicUnitCalculusError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("ambiguous operation with logarithmic unit (%s)", e.Units)
	}
	return fmt.Sprintf("ambiguous operation with logarithmic unit (%s): %s", e.Units, e.Reason)
}

// DefinitionSyntaxError reports a structurally invalid definition
// record. It originates in the definition loader; the registry itself
// only validates referential integrity.
type DefinitionSyntaxError struct {
	Field string
	Msg   string
}

// Error implements the error interface
func (e *DefinitionSyntaxError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid definition: %s", e.Msg)
	}
	return fmt.Sprintf("invalid definition (%s): %s", e.Field, e.Msg)
}

// CircularDefinitionError reports a derived-unit reference chain that
// loops back on itself. Well-formed registries never produce one; the
// reduction walk checks anyway.
type CircularDefinitionError struct {
	Name  string
	Chain []string
}

// Error implements the error interface
func (e *CircularDefinitionError) Error() string {
	return fmt.Sprintf("circular definition of %q (chain: %s)",
		e.Name, strings.Join(e.Chain, " -> "))
}

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsFatal checks if an error is fatal and should stop processing
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}
	return false
}

// IsInvalid checks if an error is due to invalid input or an ambiguous
// operation. Every error in the unit-domain taxonomy is invalid-class.
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}
	return IsUndefinedUnit(err) || IsDimensionality(err) || IsRedefinition(err) ||
		IsOffsetUnitCalculus(err) || IsLogarithmicUnitCalculus(err) ||
		IsDefinitionSyntax(err) || IsCircularDefinition(err)
}

// IsUndefinedUnit checks for an UndefinedUnitError anywhere in the chain.
func IsUndefinedUnit(err error) bool {
	var target *UndefinedUnitError
	return errors.As(err, &target)
}

// IsDimensionality checks for a DimensionalityError anywhere in the chain.
func IsDimensionality(err error) bool {
	var target *DimensionalityError
	return errors.As(err, &target)
}

// IsRedefinition checks for a RedefinitionError anywhere in the chain.
func IsRedefinition(err error) bool {
	var target *RedefinitionError
	return errors.As(err, &target)
}

// IsOffsetUnitCalculus checks for an OffsetUnitCalculusError anywhere in the chain.
func IsOffsetUnitCalculus(err error) bool {
	var target *OffsetUnitCalculusError
	return errors.As(err, &target)
}

// IsLogarithmicUnitCalculus checks for a LogarithmicUnitCalculusError anywhere in the chain.
func IsLogarithmicUnitCalculus(err error) bool {
	var target *LogarithmicUnitCalculusError
	return errors.As(err, &target)
}

// IsDefinitionSyntax checks for a DefinitionSyntaxError anywhere in the chain.
func IsDefinitionSyntax(err error) bool {
	var target *DefinitionSyntaxError
	return errors.As(err, &target)
}

// IsCircularDefinition checks for a CircularDefinitionError anywhere in the chain.
func IsCircularDefinition(err error) bool {
	var target *CircularDefinitionError
	return errors.As(err, &target)
}

// newClassified creates a new classified error.
// This is an internal helper - use WrapInvalid() or WrapFatal() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}
