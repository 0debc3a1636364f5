// Package models defines data structures for presentation chart extraction.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	// KindEmpty is an absent or blank cell.
	KindEmpty ValueKind = iota
	// KindNumber is a numeric cell.
	KindNumber
	// KindText is a string cell.
	KindText
	// KindBool is a boolean cell.
	KindBool
)

// Value is a single cell or chart point value.
// The zero value is Empty.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Bool bool
}

// Empty returns the empty value.
func Empty() Value { return Value{} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Text returns a string value.
func Text(s string) Value { return Value{Kind: KindText, Str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsEmpty reports whether v holds no value.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// Float returns the numeric content of v. ok is false for non-numbers and
// for NaN or infinite numbers.
func (v Value) Float() (f float64, ok bool) {
	if v.Kind != KindNumber || math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
		return 0, false
	}
	return v.Num, true
}

// String renders v the way a spreadsheet displays it in a plain cell.
// Booleans render as TRUE/FALSE, empty values as "".
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Str
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// MarshalJSON encodes numbers as JSON numbers, text and booleans as strings
// and empty values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.Num, 'f', -1, 64)), nil
	case KindText, KindBool:
		return marshalString(v.String())
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes the representation produced by MarshalJSON.
// Booleans come back as text.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Empty()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Number(f)
	return nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
