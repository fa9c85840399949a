// Package document holds the open-field JSON object stored for vendors and
// products, and the helpers the repositories share to copy and inspect it.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a free-form JSON object.
type Document map[string]any

// ErrNotObject is returned when a payload is valid JSON but not an object.
var ErrNotObject = errors.New("payload must be a JSON object")

// ErrInvalidKey is returned by CheckKeys for a field name the stores cannot
// hold the same way.
var ErrInvalidKey = errors.New("invalid field name")

// Server-owned keys. Clients may send them but they are never stored.
var reserved = map[string]struct{}{
	"_id":       {},
	"id":        {},
	"__v":       {},
	"createdAt": {},
	"updatedAt": {},
}

// Decode parses raw JSON into a Document. Numbers are kept as json.Number so
// integers survive a round trip through the stores unchanged.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON object")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return Document(obj), nil
}

// Sanitize returns a copy of d without server-owned keys.
func (d Document) Sanitize() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if _, skip := reserved[k]; skip {
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

// CheckKeys rejects empty, dotted and $-prefixed field names at any depth.
// Mongo reads those as paths or operators, so they would not round-trip the
// way they do in Postgres or memory.
func (d Document) CheckKeys() error {
	return checkKeys(map[string]any(d))
}

func checkKeys(v any) error {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if k == "" || strings.Contains(k, ".") || strings.HasPrefix(k, "$") {
				return fmt.Errorf("%w: %q", ErrInvalidKey, k)
			}
			if err := checkKeys(child); err != nil {
				return err
			}
		}
	case Document:
		return checkKeys(map[string]any(t))
	case []any:
		for _, child := range t {
			if err := checkKeys(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// Without returns a copy of d minus the given keys.
func (d Document) Without(keys ...string) Document {
	out := d.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Take removes key from d and returns its value.
func (d Document) Take(key string) (any, bool) {
	v, ok := d[key]
	if ok {
		delete(d, key)
	}
	return v, ok
}

// Clone deep-copies d.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge overwrites top-level keys of d with those in patch, in place.
// Nested objects are replaced whole, not merged.
func (d Document) Merge(patch Document) {
	for k, v := range patch {
		d[k] = cloneValue(v)
	}
}

// Lookup walks a dotted path ("location.city") through nested objects.
func (d Document) Lookup(path string) (any, bool) {
	var cur any = map[string]any(d)
	for _, part := range strings.Split(path, ".") {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// LookupString is Lookup restricted to string values.
func (d Document) LookupString(path string) (string, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Normalize converts driver-specific container types (bson maps, documents
// and arrays) into plain maps and slices so the value encodes as ordinary JSON.
func Normalize(v any) any {
	switch t := v.(type) {
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = Normalize(e.Value)
		}
		return out
	case primitive.M:
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case Document:
		return normalizeMap(t)
	case primitive.A:
		return normalizeSlice(t)
	case []any:
		return normalizeSlice(t)
	default:
		return v
	}
}

// Native returns a deep copy of d with json.Number values converted to int64
// or float64, for stores that would otherwise persist them as strings.
func (d Document) Native() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = nativeValue(v)
	}
	return out
}

func nativeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		return map[string]any(Document(t).Native())
	case Document:
		return t.Native()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = nativeValue(e)
		}
		return out
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Normalize(v)
	}
	return out
}

func normalizeSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = Normalize(v)
	}
	return out
}

func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Document:
		return t, true
	case primitive.M:
		return t, true
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Document:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
