package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidModel indicates a malformed type declaration.
	ErrInvalidModel = errors.New("valgen: invalid type model")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("valgen: missing configuration")
	// ErrOptionUnreadable indicates an option value that could not be decoded.
	ErrOptionUnreadable = errors.New("valgen: option value unreadable")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("valgen: code generation failed")
	// ErrRequestConflict indicates two utility requests sharing a name.
	ErrRequestConflict = errors.New("valgen: conflicting utility requests")
)

// ModelError represents a malformed type declaration.
type ModelError struct {
	Type     string // Declared type name
	Property string // Property name (if applicable)
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	var b strings.Builder
	b.WriteString("valgen: model error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Property != "" {
		b.WriteString(" property ")
		b.WriteString(e.Property)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ModelError.
func (e *ModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

// NewModelError creates a new ModelError.
func NewModelError(typeName, property, message string, cause error) *ModelError {
	return &ModelError{
		Type:     typeName,
		Property: property,
		Message:  message,
		Cause:    cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("valgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("valgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// OptionError reports a builder option whose value could not be read.
type OptionError struct {
	Option string
	Value  any
	Cause  error
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "valgen: option %q unreadable", e.Option)
	if e.Value != nil {
		fmt.Fprintf(&b, " (value: %v)", e.Value)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *OptionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for OptionError.
func (e *OptionError) Is(target error) bool {
	return target == ErrOptionUnreadable
}

// NewOptionError creates a new OptionError.
func NewOptionError(option string, value any, cause error) *OptionError {
	return &OptionError{
		Option: option,
		Value:  value,
		Cause:  cause,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "equality", "builder", "write", etc.
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("valgen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// ConflictError reports two distinct utility requests under one class name.
type ConflictError struct {
	ClassName string
	First     []string
	Second    []string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("valgen: utility %s requested with different types [%s] and [%s]",
		e.ClassName, strings.Join(e.First, ", "), strings.Join(e.Second, ", "))
}

// Is reports whether the target matches the sentinel error for ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrRequestConflict
}

// NewConflictError creates a new ConflictError.
func NewConflictError(className string, first, second []string) *ConflictError {
	return &ConflictError{
		ClassName: className,
		First:     first,
		Second:    second,
	}
}

// IsModelError reports whether the error is a ModelError.
func IsModelError(err error) bool {
	var modelErr *ModelError
	return errors.As(err, &modelErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsOptionError reports whether the error is an OptionError.
func IsOptionError(err error) bool {
	var optErr *OptionError
	return errors.As(err, &optErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsConflictError reports whether the error is a ConflictError.
func IsConflictError(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}
