package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Entry is one field value captured in a Snapshot.
type Entry struct {
	Field string
	Value validator.Value
}

// Snapshot is the set of values captured at a successful submit. Entries
// keep the definition's field order, and so does the JSON encoding.
type Snapshot struct {
	ID         uuid.UUID
	Form       string
	CapturedAt time.Time
	Entries    []Entry
}

func newSnapshot(def *Definition, values validator.Values, at time.Time) Snapshot {
	s := Snapshot{
		ID:         uuid.New(),
		Form:       def.name,
		CapturedAt: at.UTC(),
		Entries:    make([]Entry, 0, len(def.fields)),
	}
	for _, f := range def.fields {
		s.Entries = append(s.Entries, Entry{Field: f.Name, Value: values[f.Name]})
	}
	return s
}

func (s Snapshot) IsZero() bool { return s.ID == uuid.Nil }

// Get returns the captured value of the field.
func (s Snapshot) Get(field string) (validator.Value, bool) {
	for _, e := range s.Entries {
		if e.Field == field {
			return e.Value, true
		}
	}
	return validator.Value{}, false
}

// Values returns the captured values keyed by field.
func (s Snapshot) Values() validator.Values {
	out := make(validator.Values, len(s.Entries))
	for _, e := range s.Entries {
		out[e.Field] = e.Value
	}
	return out
}

// ValuesJSON renders only the captured values as an indented JSON object,
// the way the snapshot panel shows them.
func (s Snapshot) ValuesJSON() (string, error) {
	raw, err := marshalEntries(s.Entries)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type snapshotJSON struct {
	ID         uuid.UUID       `json:"id"`
	Form       string          `json:"form"`
	CapturedAt time.Time       `json:"capturedAt"`
	Values     json.RawMessage `json:"values"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	values, err := marshalEntries(s.Entries)
	if err != nil {
		return nil, err
	}
	return json.Marshal(snapshotJSON{
		ID:         s.ID,
		Form:       s.Form,
		CapturedAt: s.CapturedAt,
		Values:     values,
	})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	entries, err := unmarshalEntries(raw.Values)
	if err != nil {
		return err
	}
	*s = Snapshot{ID: raw.ID, Form: raw.Form, CapturedAt: raw.CapturedAt, Entries: entries}
	return nil
}

func marshalEntries(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Field)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", e.Field, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalEntries(data []byte) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("snapshot values: expected object, got %v", tok)
	}
	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("snapshot values: unexpected key %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("snapshot values %q: %w", key, err)
		}
		entries = append(entries, Entry{Field: key, Value: validator.FromAny(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
