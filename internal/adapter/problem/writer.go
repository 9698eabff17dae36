package problem

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// fallbackBody is sent if a problem cannot be encoded.
var fallbackBody = []byte(`{"type":"` + typeInternal + `","title":"` + titleInternal +
	`","status":500,"detail":"` + GenericDetail + `"}`)

// Write sends pd as the response. When ctx is already done nothing is written
// and the context error is returned.
func Write(ctx context.Context, w http.ResponseWriter, pd ProblemDetails) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	status := pd.Status
	body, err := json.Marshal(pd)
	if err != nil {
		status = http.StatusInternalServerError
		body = fallbackBody
	}

	h := w.Header()
	h.Set("Content-Type", ContentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}
