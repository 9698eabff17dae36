package problem

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jamalishaq/forecast_serve/internal/domain"
	"github.com/jamalishaq/forecast_serve/internal/tracing"
	"github.com/jamalishaq/forecast_serve/internal/usecase"
)

const (
	typeBadRequest = "https://tools.ietf.org/html/rfc9110#section-15.5.1"
	typeNotFound   = "https://tools.ietf.org/html/rfc9110#section-15.5.5"
	typeInternal   = "https://tools.ietf.org/html/rfc9110#section-15.6.1"

	titleValidation = "One or more validation errors occurred."
	titleNotFound   = "Resource not found."
	titleForecast   = "Weather forecast error."
	titleDomain     = "A domain error occurred."
	titleInternal   = "An error occurred while processing your request."

	// GenericDetail is the only detail ever sent for unclassified failures.
	GenericDetail = "An unexpected error occurred. Please try again later."
)

// Translator turns any request failure into a ProblemDetails and logs it.
// It holds only read-only collaborators and is safe for concurrent use.
type Translator struct {
	logger usecase.Logger
	reader tracing.Reader
}

// NewTranslator creates a translator. A nil reader behaves as tracing.None.
func NewTranslator(logger usecase.Logger, reader tracing.Reader) *Translator {
	if reader == nil {
		reader = tracing.None
	}
	return &Translator{logger: logger, reader: reader}
}

// Translate classifies err, attaches trace identifiers and logs the failure
// once at error level. When no trace is active, fallbackCorrelationID is used
// as traceId. Translate never panics.
func (t *Translator) Translate(ctx context.Context, err error, requestPath, fallbackCorrelationID string) ProblemDetails {
	tc := t.currentTrace(ctx)
	traceID := tc.TraceID
	if traceID == "" {
		traceID = fallbackCorrelationID
	}

	pd := classify(err, requestPath)
	pd.Extensions = append(pd.Extensions, Extension{ExtTraceID, traceID})
	if tc.SpanID != "" {
		pd.Extensions = append(pd.Extensions, Extension{ExtSpanID, tc.SpanID})
		if tc.ParentSpanID != "" {
			pd.Extensions = append(pd.Extensions, Extension{ExtParentSpanID, tc.ParentSpanID})
		}
	}

	t.record(err, pd, traceID, tc.SpanID)
	return pd
}

func (t *Translator) currentTrace(ctx context.Context) (tc tracing.TraceContext) {
	defer func() {
		if recover() != nil {
			tc = tracing.TraceContext{}
		}
	}()
	if ctx == nil {
		ctx = context.Background()
	}
	return t.reader.Current(ctx)
}

// classify maps err onto the dispatch table. The outermost DomainError in the
// chain decides; anything else is unclassified.
func classify(err error, requestPath string) (pd ProblemDetails) {
	defer func() {
		if recover() != nil {
			pd = unclassified(requestPath)
		}
	}()

	var de domain.DomainError
	if err == nil || !errors.As(err, &de) {
		return unclassified(requestPath)
	}

	pd = ProblemDetails{
		Type:     typeBadRequest,
		Status:   http.StatusBadRequest,
		Detail:   de.Message(),
		Instance: requestPath,
	}
	if code := de.Code(); code != "" {
		pd.Extensions = append(pd.Extensions, Extension{ExtErrorCode, code})
	}

	switch e := de.(type) {
	case *domain.ValidationError:
		pd.Title = titleValidation
		if fe := e.FieldErrors(); !fe.Empty() {
			pd.Extensions = append(pd.Extensions, Extension{ExtErrors, fe})
		}
	case *domain.NotFoundError:
		pd.Type = typeNotFound
		pd.Status = http.StatusNotFound
		pd.Title = titleNotFound
		pd.Extensions = append(pd.Extensions,
			Extension{ExtEntityType, e.EntityType()},
			Extension{ExtEntityID, e.EntityID()},
		)
	case *domain.ForecastError:
		pd.Title = titleForecast
		if days, ok := e.RequestedDays(); ok {
			pd.Extensions = append(pd.Extensions, Extension{ExtRequestedDays, days})
		}
	case *domain.BusinessRuleError, *domain.GenericError:
		pd.Title = titleDomain
	default:
		return unclassified(requestPath)
	}
	return pd
}

func unclassified(requestPath string) ProblemDetails {
	return ProblemDetails{
		Type:     typeInternal,
		Title:    titleInternal,
		Status:   http.StatusInternalServerError,
		Detail:   GenericDetail,
		Instance: requestPath,
	}
}

// record writes the single error-level log entry for a translated failure.
// A failing logger never affects the response.
func (t *Translator) record(err error, pd ProblemDetails, traceID, spanID string) {
	if t.logger == nil {
		return
	}
	defer func() { _ = recover() }()

	code := ""
	if v, ok := pd.Extension(ExtErrorCode); ok {
		code, _ = v.(string)
	}

	t.logger.Error("request failed",
		"error_type", fmt.Sprintf("%T", err),
		"error_message", safeMessage(err),
		"error", err,
		"error_code", code,
		"status", pd.Status,
		"path", pd.Instance,
		"trace_id", traceID,
		"span_id", spanID,
	)
}

func safeMessage(err error) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("<panic in Error(): %v>", r)
		}
	}()
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
