package user

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Core field names
const (
	FieldID       = "id"
	FieldUsername = "username"
	FieldEmail    = "email"
)

// Record is one user as received from the users endpoint. The three core
// fields are typed; every other key lands in Extra untouched so a record
// round-trips without losing data.
//
// A core field whose JSON value does not fit its Go type (an "id" of "u-1"
// or 1.5, a null "email") is still present: Field, Text and MarshalJSON
// report the decoded value and the typed field stays at its zero value.
type Record struct {
	ID       int64                  `json:"id"`
	Username string                 `json:"username"`
	Email    string                 `json:"email"`
	Extra    map[string]interface{} `json:"-"`

	// absent marks core fields missing from a decoded payload. The zero
	// value means "all present", which is what a Go literal wants.
	absent coreFields
	// loose holds core fields decoded untyped
	loose map[string]interface{}
}

type coreFields uint8

const (
	idField coreFields = 1 << iota
	usernameField
	emailField
)

// Snapshot is an ordered list of records. Length zero means nothing is loaded.
type Snapshot []Record

// SearchParams maps field names to the values a record must hold.
type SearchParams map[string]interface{}

// Has reports whether the record carries key.
func (r Record) Has(key string) bool {
	_, ok := r.Field(key)
	return ok
}

// Field returns the value stored under key and whether the key is present.
func (r Record) Field(key string) (interface{}, bool) {
	if v, ok := r.loose[key]; ok {
		return v, true
	}
	switch key {
	case FieldID:
		if r.absent&idField != 0 {
			return nil, false
		}
		return r.ID, true
	case FieldUsername:
		if r.absent&usernameField != 0 {
			return nil, false
		}
		return r.Username, true
	case FieldEmail:
		if r.absent&emailField != 0 {
			return nil, false
		}
		return r.Email, true
	}
	v, ok := r.Extra[key]
	return v, ok
}

// Text renders the value under key for display. Missing keys and nulls are
// empty, strings are returned as is, anything else is formatted with %v.
func (r Record) Text(key string) string {
	v, ok := r.Field(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// UnmarshalJSON decodes the core fields and keeps the rest in Extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("user record must be a JSON object")
	}

	var rec Record
	if err := rec.decodeCore(raw, FieldID, &rec.ID, idField); err != nil {
		return err
	}
	if err := rec.decodeCore(raw, FieldUsername, &rec.Username, usernameField); err != nil {
		return err
	}
	if err := rec.decodeCore(raw, FieldEmail, &rec.Email, emailField); err != nil {
		return err
	}

	for k, v := range raw {
		if k == FieldID || k == FieldUsername || k == FieldEmail {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]interface{}, len(raw))
		}
		var val interface{}
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("failed to decode field %q: %w", k, err)
		}
		rec.Extra[k] = val
	}

	*r = rec
	return nil
}

// decodeCore fills dst from raw[key]. Values that do not fit dst, and JSON
// null, are kept untyped in r.loose instead of failing the record.
func (r *Record) decodeCore(raw map[string]json.RawMessage, key string, dst interface{}, bit coreFields) error {
	v, ok := raw[key]
	if !ok {
		r.absent |= bit
		return nil
	}
	if !bytes.Equal(bytes.TrimSpace(v), []byte("null")) && json.Unmarshal(v, dst) == nil {
		return nil
	}

	var val interface{}
	if err := json.Unmarshal(v, &val); err != nil {
		return fmt.Errorf("failed to decode field %q: %w", key, err)
	}
	if r.loose == nil {
		r.loose = make(map[string]interface{}, 3)
	}
	r.loose[key] = val
	return nil
}

// MarshalJSON writes the core fields that are present followed by Extra.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Extra)+3)
	for k, v := range r.Extra {
		out[k] = v
	}
	for _, key := range []string{FieldID, FieldUsername, FieldEmail} {
		if v, ok := r.Field(key); ok {
			out[key] = v
		}
	}
	return json.Marshal(out)
}
