package consoletypes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when a blank line is submitted for execution.
var ErrEmptyInput = errors.New("empty input")

// ErrRegistryFrozen is returned when registering into a frozen registry.
var ErrRegistryFrozen = errors.New("registry is frozen")

// CommandNotFoundError reports that no overload exists for a name.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return "command not found: " + e.Name
}

// NoMatchingOverloadError reports that a name exists but no overload accepted the arguments.
// Failures holds the reason each candidate was rejected, in ranking order.
type NoMatchingOverloadError struct {
	Name     string
	Args     []string
	Failures []error
}

func (e *NoMatchingOverloadError) Error() string {
	msg := fmt.Sprintf("no overload of %s accepts arguments [%s]", e.Name, strings.Join(e.Args, ", "))
	if len(e.Failures) > 0 {
		msg += ": " + e.Failures[0].Error()
	}
	return msg
}

// Unwrap exposes every candidate failure to errors.Is and errors.As.
func (e *NoMatchingOverloadError) Unwrap() []error {
	return e.Failures
}

// ConversionError reports that a token could not be parsed into a type, or a value could not be rendered.
type ConversionError struct {
	Text string
	Type string
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("cannot convert value of type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Text, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// FormatError reports a tuple with the wrong number of components.
type FormatError struct {
	Text     string
	Type     string
	Expected int
	Got      int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%q is not a valid %s: expected %d components, got %d", e.Text, e.Type, e.Expected, e.Got)
}

// NoConverterError reports a missing converter for a type.
type NoConverterError struct {
	Type string
}

func (e *NoConverterError) Error() string {
	return "no converter registered for type " + e.Type
}

// DuplicateRegistrationError reports a CommandKey or TypeKey collision.
// Kind is "command", "converter" or "suggestion".
type DuplicateRegistrationError struct {
	Kind string
	Key  string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("%s %s already registered", e.Kind, e.Key)
}

// InvocationError wraps a failure raised by the host callable of a command.
type InvocationError struct {
	Command string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
