package persistence

import (
	"encoding/json"
	"fmt"
)

// Record is one flat JSON object of a collection. Values are kept as raw
// JSON so that a load followed by a save never alters stored data.
type Record map[string]json.RawMessage

// EncodeRecord converts v, which must marshal to a JSON object, into a Record.
func EncodeRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("encode record: %T is not a JSON object", v)
	}
	return rec, nil
}

// Decode unmarshals the record into v.
func (r Record) Decode(v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Text returns the string value of field, or "" when the field is absent or not a string.
func (r Record) Text(field string) string {
	raw, ok := r[field]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Set stores v under field.
func (r Record) Set(field string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("set %s: %w", field, err)
	}
	r[field] = data
	return nil
}

// Clone returns a shallow copy; raw values are never mutated in place.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
