package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamalishaq/forecast_serve/internal/domain"
)

func fieldRule(field, code string, fail func(int) bool) Rule[int] {
	return RuleFunc[int](func(v int) []domain.FieldError {
		if !fail(v) {
			return nil
		}
		return []domain.FieldError{{Field: field, Message: code + " failed", Code: code}}
	})
}

// TestValidator_CollectsAllFailures verifies rules do not short-circuit each other.
func TestValidator_CollectsAllFailures(t *testing.T) {
	v := New(
		fieldRule("b", "B1", func(int) bool { return true }),
		fieldRule("a", "A1", func(int) bool { return true }),
		nil,
		fieldRule("b", "B2", func(int) bool { return true }),
	)

	res := v.Validate(context.Background(), 0)

	require.False(t, res.Valid())
	codes := make([]string, 0, 3)
	for _, fe := range res.FieldErrors() {
		codes = append(codes, fe.Code)
	}
	assert.Equal(t, []string{"B1", "A1", "B2"}, codes)
	assert.Equal(t, []string{"b", "a"}, res.Grouped().Fields())
	assert.Equal(t, []string{"B1 failed", "B2 failed"}, res.Grouped().Messages("b"))
}

// TestResult_ErrRaisesValidationError verifies a failed result converts to VAL000.
func TestResult_ErrRaisesValidationError(t *testing.T) {
	v := New(fieldRule("a", "A1", func(n int) bool { return n < 0 }))

	assert.NoError(t, v.Validate(context.Background(), 1).Err())

	err := v.Validate(context.Background(), -1).Err()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, domain.CodeValidation, ve.Code())
	assert.Equal(t, []string{"A1 failed"}, ve.FieldErrors().Messages("a"))
}

// TestValidator_StopsOnCancelledContext verifies cancellation is reported instead of failures.
func TestValidator_StopsOnCancelledContext(t *testing.T) {
	called := false
	v := New[int](RuleFunc[int](func(int) []domain.FieldError {
		called = true
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := v.Validate(ctx, 0)

	assert.False(t, called)
	assert.False(t, res.Valid())
	assert.True(t, errors.Is(res.Err(), context.Canceled))
	assert.ErrorIs(t, res.ContextErr(), context.Canceled)
}

// TestValidator_NilContext verifies a nil context runs every rule like context.Background.
func TestValidator_NilContext(t *testing.T) {
	v := New(fieldRule("a", "A1", func(v int) bool { return v > 1 }))

	var res Result
	assert.NotPanics(t, func() {
		//nolint:staticcheck // nil context is the case under test
		res = v.Validate(nil, 2)
	})

	assert.NoError(t, res.ContextErr())
	assert.Len(t, res.FieldErrors(), 1)
}

// TestResult_FieldErrorsIsCopy verifies callers cannot mutate a result.
func TestResult_FieldErrorsIsCopy(t *testing.T) {
	res := New(fieldRule("a", "A1", func(int) bool { return true })).Validate(context.Background(), 0)

	got := res.FieldErrors()
	got[0].Code = "mutated"

	assert.Equal(t, "A1", res.FieldErrors()[0].Code)
}
