// Package problem translates request failures into RFC 7807 problem responses.
// Translator is the only place a ProblemDetails is built.
package problem

import (
	"bytes"
	"encoding/json"
)

// ContentType is the media type of every problem response.
const ContentType = "application/problem+json"

// Extension member names. They are part of the wire contract.
const (
	ExtErrorCode     = "errorCode"
	ExtErrors        = "errors"
	ExtEntityType    = "entityType"
	ExtEntityID      = "entityId"
	ExtRequestedDays = "requestedDays"
	ExtTraceID       = "traceId"
	ExtSpanID        = "spanId"
	ExtParentSpanID  = "parentSpanId"
)

// Extension is one extension member of a problem response.
type Extension struct {
	Key   string
	Value any
}

// Extensions is an ordered list of extension members.
type Extensions []Extension

// Get returns the value stored under key.
func (e Extensions) Get(key string) (any, bool) {
	for _, ext := range e {
		if ext.Key == key {
			return ext.Value, true
		}
	}
	return nil, false
}

// Keys returns the member names in order.
func (e Extensions) Keys() []string {
	keys := make([]string, len(e))
	for i, ext := range e {
		keys[i] = ext.Key
	}
	return keys
}

// ProblemDetails is the body of every error response.
type ProblemDetails struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions Extensions
}

// Extension returns the value of the named extension member.
func (p ProblemDetails) Extension(key string) (any, bool) {
	return p.Extensions.Get(key)
}

// MarshalJSON writes the standard members followed by the extensions, flattened
// into one object in their recorded order.
func (p ProblemDetails) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	members := []Extension{
		{"type", p.Type},
		{"title", p.Title},
		{"status", p.Status},
		{"detail", p.Detail},
		{"instance", p.Instance},
	}
	members = append(members, p.Extensions...)

	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
