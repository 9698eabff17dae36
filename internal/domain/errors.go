// Package domain contains enterprise business rules: entities and domain errors.
// It has no knowledge of HTTP, TCP, or any transport.
package domain

import (
	"fmt"
)

// Error codes are part of the wire contract. The prefix identifies the variant
// family; a shipped code never changes meaning.
const (
	// CodeValidation is the aggregated validation failure.
	CodeValidation = "VAL000"
	// CodeFieldValidation is a validation failure raised for a single field.
	CodeFieldValidation = "VAL001"

	// CodeNotFound is a resource lookup that found nothing.
	CodeNotFound = "NF000"
	// CodeEntityNotFound is a lookup of a typed entity by identifier that found nothing.
	CodeEntityNotFound = "NF001"

	// CodeBusinessRule is a generic business rule violation.
	CodeBusinessRule = "BR000"
	// CodeRuleViolation is a violation of a named business rule.
	CodeRuleViolation = "BR001"

	// CodeForecast is a generic forecast failure.
	CodeForecast = "WF000"
	// CodeForecastDayRange is a forecast requested for an unsupported number of days.
	CodeForecastDayRange = "WF001"
	// CodeForecastUnavailable is a forecast that could not be produced.
	CodeForecastUnavailable = "WF002"

	// CodeDomain is the fallback code for generic domain failures.
	CodeDomain = "DOM000"
)

const (
	validationMessage = "One or more validation errors occurred."
	notFoundMessage   = "The requested resource was not found."
)

// DomainError is the closed set of failures the domain knows how to describe.
// Implementations are ValidationError, NotFoundError, BusinessRuleError,
// ForecastError and GenericError; the unexported marker keeps the set closed.
type DomainError interface {
	error
	Code() string
	Message() string
	domainError()
}

// base holds what every variant shares. It is copied, never mutated.
type base struct {
	code    string
	message string
	cause   error
}

func (b base) Code() string    { return b.code }
func (b base) Message() string { return b.message }
func (b base) Unwrap() error   { return b.cause }
func (base) domainError()      {}

func (b base) Error() string {
	if b.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", b.code, b.message, b.cause)
	}
	return fmt.Sprintf("[%s] %s", b.code, b.message)
}

func (b base) same(o base) bool {
	return b.code == o.code && b.message == o.message
}

// ValidationError reports malformed caller input, grouped by field.
type ValidationError struct {
	base
	fieldErrors FieldErrors
}

// NewValidationError builds the aggregated validation failure (VAL000).
func NewValidationError(fieldErrors FieldErrors) *ValidationError {
	return &ValidationError{
		base:        base{code: CodeValidation, message: validationMessage},
		fieldErrors: fieldErrors,
	}
}

// NewFieldValidationError builds a validation failure for one field (VAL001).
func NewFieldValidationError(field, message string) *ValidationError {
	var b FieldErrorsBuilder
	b.Add(field, message)
	return &ValidationError{
		base:        base{code: CodeFieldValidation, message: message},
		fieldErrors: b.Build(),
	}
}

// FieldErrors returns the per-field messages.
func (e *ValidationError) FieldErrors() FieldErrors { return e.fieldErrors }

// WithCause returns a copy of e that wraps cause.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	c := *e
	c.cause = cause
	return &c
}

// Is reports value equality with another ValidationError.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t != nil && e.same(t.base) && e.fieldErrors.Equal(t.fieldErrors)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	base
	entityType string
	entityID   string
}

// NewNotFoundError builds an untyped not-found failure (NF000).
func NewNotFoundError() *NotFoundError {
	return &NotFoundError{base: base{code: CodeNotFound, message: notFoundMessage}}
}

// NewEntityNotFoundError builds a not-found failure for a typed entity (NF001).
// entityID is rendered with fmt; a nil identifier renders as the empty string.
func NewEntityNotFoundError(entityType string, entityID any) *NotFoundError {
	id := ""
	if entityID != nil {
		id = fmt.Sprint(entityID)
	}
	return &NotFoundError{
		base: base{
			code:    CodeEntityNotFound,
			message: fmt.Sprintf("%s with identifier '%s' was not found.", entityType, id),
		},
		entityType: entityType,
		entityID:   id,
	}
}

// EntityType returns the type of the missing entity.
func (e *NotFoundError) EntityType() string { return e.entityType }

// EntityID returns the string form of the missing entity's identifier.
func (e *NotFoundError) EntityID() string { return e.entityID }

// WithCause returns a copy of e that wraps cause.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	c := *e
	c.cause = cause
	return &c
}

// Is reports value equality with another NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	return ok && t != nil && e.same(t.base) && e.entityType == t.entityType && e.entityID == t.entityID
}

// BusinessRuleError reports a request that is well formed but not allowed.
type BusinessRuleError struct {
	base
	ruleName string
}

// NewBusinessRuleError builds an unnamed business rule violation (BR000).
func NewBusinessRuleError(message string) *BusinessRuleError {
	return &BusinessRuleError{base: base{code: CodeBusinessRule, message: message}}
}

// NewRuleViolationError builds a violation of a named rule (BR001).
func NewRuleViolationError(ruleName, message string) *BusinessRuleError {
	if message == "" {
		message = fmt.Sprintf("Business rule '%s' was violated.", ruleName)
	}
	return &BusinessRuleError{
		base:     base{code: CodeRuleViolation, message: message},
		ruleName: ruleName,
	}
}

// RuleName returns the violated rule, empty for BR000.
func (e *BusinessRuleError) RuleName() string { return e.ruleName }

// WithCause returns a copy of e that wraps cause.
func (e *BusinessRuleError) WithCause(cause error) *BusinessRuleError {
	c := *e
	c.cause = cause
	return &c
}

// Is reports value equality with another BusinessRuleError.
func (e *BusinessRuleError) Is(target error) bool {
	t, ok := target.(*BusinessRuleError)
	return ok && t != nil && e.same(t.base) && e.ruleName == t.ruleName
}

// ForecastError reports a failure specific to producing forecasts.
type ForecastError struct {
	base
	requestedDays *int
}

// NewForecastError builds a generic forecast failure (WF000).
func NewForecastError(message string) *ForecastError {
	return &ForecastError{base: base{code: CodeForecast, message: message}}
}

// InvalidDayRange builds the failure for a day count outside [minDays, maxDays] (WF001).
func InvalidDayRange(days, minDays, maxDays int) *ForecastError {
	return &ForecastError{
		base: base{
			code: CodeForecastDayRange,
			message: fmt.Sprintf("The requested number of days (%d) is outside the allowed range of %d to %d.",
				days, minDays, maxDays),
		},
		requestedDays: &days,
	}
}

// ForecastUnavailable builds the failure for a forecast that cannot be produced (WF002).
func ForecastUnavailable(reason string) *ForecastError {
	return &ForecastError{
		base: base{
			code:    CodeForecastUnavailable,
			message: fmt.Sprintf("Weather forecast is currently unavailable: %s", reason),
		},
	}
}

// RequestedDays returns the day count the caller asked for, if known.
func (e *ForecastError) RequestedDays() (int, bool) {
	if e.requestedDays == nil {
		return 0, false
	}
	return *e.requestedDays, true
}

// WithRequestedDays returns a copy of e that records days.
func (e *ForecastError) WithRequestedDays(days int) *ForecastError {
	c := *e
	c.requestedDays = &days
	return &c
}

// WithCause returns a copy of e that wraps cause.
func (e *ForecastError) WithCause(cause error) *ForecastError {
	c := *e
	c.cause = cause
	return &c
}

// Is reports value equality with another ForecastError.
func (e *ForecastError) Is(target error) bool {
	t, ok := target.(*ForecastError)
	if !ok || t == nil || !e.same(t.base) {
		return false
	}
	ld, lok := e.RequestedDays()
	rd, rok := t.RequestedDays()
	return lok == rok && ld == rd
}

// GenericError is a known domain failure that fits no other variant.
type GenericError struct {
	base
}

// NewGenericError builds a generic domain failure (DOM000).
func NewGenericError(message string) *GenericError {
	return NewGenericErrorWithCode(message, CodeDomain)
}

// NewGenericErrorWithCode builds a generic domain failure with a caller code.
// An empty code falls back to DOM000.
func NewGenericErrorWithCode(message, code string) *GenericError {
	if code == "" {
		code = CodeDomain
	}
	return &GenericError{base: base{code: code, message: message}}
}

// WithCause returns a copy of e that wraps cause.
func (e *GenericError) WithCause(cause error) *GenericError {
	c := *e
	c.cause = cause
	return &c
}

// Is reports value equality with another GenericError.
func (e *GenericError) Is(target error) bool {
	t, ok := target.(*GenericError)
	return ok && t != nil && e.same(t.base)
}

var (
	_ DomainError = (*ValidationError)(nil)
	_ DomainError = (*NotFoundError)(nil)
	_ DomainError = (*BusinessRuleError)(nil)
	_ DomainError = (*ForecastError)(nil)
	_ DomainError = (*GenericError)(nil)
)
