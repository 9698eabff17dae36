package domain

import (
	"bytes"
	"encoding/json"
	"slices"
)

// FieldError describes one validation failure on one input field.
type FieldError struct {
	Field   string
	Message string
	Code    string
}

// FieldErrors is an immutable, field-ordered view of validation messages.
// Fields keep first-seen order and each field keeps its messages in the order
// they were added. The zero value is empty.
type FieldErrors struct {
	fields   []string
	messages map[string][]string
}

// GroupFieldErrors groups a flat failure list by field.
func GroupFieldErrors(errs []FieldError) FieldErrors {
	var b FieldErrorsBuilder
	for _, fe := range errs {
		b.Add(fe.Field, fe.Message)
	}
	return b.Build()
}

// Len returns the number of distinct fields.
func (f FieldErrors) Len() int { return len(f.fields) }

// Empty reports whether no field has a message.
func (f FieldErrors) Empty() bool { return len(f.fields) == 0 }

// Fields returns the field names in first-seen order.
func (f FieldErrors) Fields() []string { return slices.Clone(f.fields) }

// Messages returns the messages recorded for field.
func (f FieldErrors) Messages(field string) []string { return slices.Clone(f.messages[field]) }

// Equal reports whether f and o hold the same fields and messages in the same order.
func (f FieldErrors) Equal(o FieldErrors) bool {
	if !slices.Equal(f.fields, o.fields) {
		return false
	}
	for _, field := range f.fields {
		if !slices.Equal(f.messages[field], o.messages[field]) {
			return false
		}
	}
	return true
}

// MarshalJSON renders {"field": ["message", ...], ...} in field order.
func (f FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		msgs, err := json.Marshal(f.messages[field])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msgs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FieldErrorsBuilder accumulates messages per field. It is not safe for
// concurrent use; build one per request.
type FieldErrorsBuilder struct {
	fields   []string
	messages map[string][]string
}

// Add appends message under field.
func (b *FieldErrorsBuilder) Add(field, message string) {
	if b.messages == nil {
		b.messages = make(map[string][]string)
	}
	if _, seen := b.messages[field]; !seen {
		b.fields = append(b.fields, field)
	}
	b.messages[field] = append(b.messages[field], message)
}

// Build freezes the accumulated messages. The builder can keep being used;
// later additions do not affect FieldErrors already built.
func (b *FieldErrorsBuilder) Build() FieldErrors {
	if len(b.fields) == 0 {
		return FieldErrors{}
	}
	messages := make(map[string][]string, len(b.messages))
	for field, msgs := range b.messages {
		messages[field] = slices.Clone(msgs)
	}
	return FieldErrors{
		fields:   slices.Clone(b.fields),
		messages: messages,
	}
}
