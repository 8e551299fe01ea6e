package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DataKey is the property a wrapped response stores its payload under.
const DataKey = "data"

// ErrUnrecognizedShape reports a single-resource body that is neither a bare
// object nor a {data: object} envelope.
var ErrUnrecognizedShape = errors.New("unrecognized response shape")

// Kind enumerates the response shapes the backend produces.
type Kind int

const (
	// KindOther covers null, scalars and malformed JSON.
	KindOther Kind = iota
	// KindArray is a bare JSON array.
	KindArray
	// KindEnvelope is an object carrying a "data" property.
	KindEnvelope
	// KindObject is a bare object without "data".
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindEnvelope:
		return "envelope"
	case KindObject:
		return "object"
	default:
		return "other"
	}
}

// Shape is a classified response body. Data holds the payload for envelopes
// and the whole body for arrays and bare objects; Meta is only set for
// envelopes that carry one.
type Shape struct {
	Kind Kind
	Data json.RawMessage
	Meta json.RawMessage
}

// Classify decodes raw into exactly one Kind.
func Classify(raw []byte) Shape {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return Shape{Kind: KindOther}
	}
	switch trimmed[0] {
	case '[':
		return Shape{Kind: KindArray, Data: json.RawMessage(trimmed)}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return Shape{Kind: KindOther}
		}
		if data, ok := fields[DataKey]; ok {
			return Shape{Kind: KindEnvelope, Data: data, Meta: fields["meta"]}
		}
		return Shape{Kind: KindObject, Data: json.RawMessage(trimmed)}
	default:
		return Shape{Kind: KindOther}
	}
}

// Collection extracts a list from a bare array or a {data: [...]} envelope.
// Any other shape yields an empty, non-nil slice with recognized=false; the
// caller decides whether that deserves a warning. A recognized shape whose
// items do not decode into T returns an error.
func Collection[T any](raw []byte) (items []T, recognized bool, err error) {
	shape := Classify(raw)
	var list json.RawMessage
	switch shape.Kind {
	case KindArray:
		list = shape.Data
	case KindEnvelope:
		if dataKind := Classify(shape.Data).Kind; dataKind != KindArray {
			return []T{}, false, nil
		}
		list = shape.Data
	default:
		return []T{}, false, nil
	}
	items = []T{}
	if err := json.Unmarshal(list, &items); err != nil {
		return []T{}, true, fmt.Errorf("decode %s items: %w", shape.Kind, err)
	}
	return items, true, nil
}

// Single extracts one resource from a {data: {...}} envelope or a bare object.
func Single[T any](raw []byte) (T, error) {
	var zero T
	shape := Classify(raw)
	var payload json.RawMessage
	switch shape.Kind {
	case KindEnvelope:
		if Classify(shape.Data).Kind == KindArray || !isObject(shape.Data) {
			return zero, fmt.Errorf("%w: data is not an object", ErrUnrecognizedShape)
		}
		payload = shape.Data
	case KindObject:
		payload = shape.Data
	default:
		return zero, fmt.Errorf("%w: %s", ErrUnrecognizedShape, shape.Kind)
	}
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return zero, fmt.Errorf("decode %s: %w", shape.Kind, err)
	}
	return out, nil
}

// Meta decodes the envelope's meta block into T. ok is false for bare bodies
// and envelopes without meta.
func Meta[T any](raw []byte) (meta T, ok bool, err error) {
	shape := Classify(raw)
	if shape.Kind != KindEnvelope || len(shape.Meta) == 0 || bytes.Equal(bytes.TrimSpace(shape.Meta), []byte("null")) {
		return meta, false, nil
	}
	if err := json.Unmarshal(shape.Meta, &meta); err != nil {
		return meta, false, fmt.Errorf("decode meta: %w", err)
	}
	return meta, true, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
