package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jamalishaq/forecast_serve/internal/adapter/problem"
	"github.com/jamalishaq/forecast_serve/internal/usecase"
)

// Responder writes success bodies and turns failures into problem responses.
type Responder struct {
	translator *problem.Translator
	logger     usecase.Logger
}

// NewResponder creates a responder. A nil translator gets a silent default.
func NewResponder(translator *problem.Translator, logger usecase.Logger) *Responder {
	if translator == nil {
		translator = problem.NewTranslator(logger, nil)
	}
	return &Responder{translator: translator, logger: logger}
}

// Fail translates err for the current request and writes the problem body.
// The write is skipped when the request context is already done.
func (rs *Responder) Fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	pd := rs.translator.Translate(ctx, err, r.URL.Path, CorrelationID(ctx))
	if werr := problem.Write(ctx, w, pd); werr != nil {
		logWarn(rs.logger, "problem response not written",
			"path", r.URL.Path,
			"status", pd.Status,
			"error", werr,
		)
	}
}

// JSON writes v with the given status code.
func (rs *Responder) JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		rs.Fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Text writes a plain text body with the given status code.
func (rs *Responder) Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
