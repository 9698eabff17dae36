// Package validation evaluates a value against a rule set and collects every
// field failure in one pass. It never raises: callers turn a failed Result
// into an error with Result.Err.
package validation

import (
	"context"

	"github.com/jamalishaq/forecast_serve/internal/domain"
)

// Rule checks one aspect of a value and reports zero or more field failures.
type Rule[T any] interface {
	Check(value T) []domain.FieldError
}

// RuleFunc adapts a function to Rule.
type RuleFunc[T any] func(value T) []domain.FieldError

// Check calls f.
func (f RuleFunc[T]) Check(value T) []domain.FieldError {
	return f(value)
}

// Validator runs an ordered, immutable rule set. It is safe for concurrent use.
type Validator[T any] struct {
	rules []Rule[T]
}

// New creates a validator. Nil rules are skipped.
func New[T any](rules ...Rule[T]) *Validator[T] {
	kept := make([]Rule[T], 0, len(rules))
	for _, r := range rules {
		if r != nil {
			kept = append(kept, r)
		}
	}
	return &Validator[T]{rules: kept}
}

// Validate evaluates every rule against value. Evaluation stops early only when
// ctx is done, in which case the Result reports the context error.
// A nil ctx is treated as context.Background.
func (v *Validator[T]) Validate(ctx context.Context, value T) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	var res Result
	for _, rule := range v.rules {
		if err := ctx.Err(); err != nil {
			return Result{ctxErr: err}
		}
		res.errs = append(res.errs, rule.Check(value)...)
	}
	return res
}

// Result is the outcome of one validation pass.
type Result struct {
	errs   []domain.FieldError
	ctxErr error
}

// ContextErr returns the context error that abandoned the pass, if any.
func (r Result) ContextErr() error {
	return r.ctxErr
}

// Valid reports whether the value passed every rule.
func (r Result) Valid() bool {
	return r.ctxErr == nil && len(r.errs) == 0
}

// FieldErrors returns the failures in rule order.
func (r Result) FieldErrors() []domain.FieldError {
	out := make([]domain.FieldError, len(r.errs))
	copy(out, r.errs)
	return out
}

// Grouped returns the failures grouped by field in first-seen order.
func (r Result) Grouped() domain.FieldErrors {
	return domain.GroupFieldErrors(r.errs)
}

// Err returns nil for a valid value, the context error for an abandoned pass,
// and an aggregated *domain.ValidationError otherwise.
func (r Result) Err() error {
	if r.ctxErr != nil {
		return r.ctxErr
	}
	if len(r.errs) == 0 {
		return nil
	}
	return domain.NewValidationError(r.Grouped())
}
