// Package roster holds the in-memory employee roster: the typed table model,
// the record store with its reconciliation rules, and the filters and derived
// views computed from it. One Store owns the authoritative table for a
// session; everything handed out of the package is a copy.
package roster

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical day-precision date format used everywhere a
// date value is rendered as text (API responses, CSV export, display).
const DateLayout = "2006-01-02"

// Kind identifies the type of a cell value.
type Kind uint8

const (
	// KindNull marks an absent value.
	KindNull Kind = iota
	// KindText is a plain string.
	KindText
	// KindNumber is a float64.
	KindNumber
	// KindDate is a day-precision timestamp.
	KindDate
)

// Value is one scalar cell: absent, text, number, or date. The zero Value is
// null.
type Value struct {
	kind Kind
	text string
	num  float64
	date time.Time
}

// Null returns the absent value.
func Null() Value { return Value{} }

// Text returns a text value. It does not normalize; see Normalize.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Date returns a date value truncated to day precision in UTC.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// TextValue returns the string for text values, "" otherwise.
func (v Value) TextValue() string { return v.text }

// NumberValue returns the number for numeric values, 0 otherwise.
func (v Value) NumberValue() float64 { return v.num }

// DateValue returns the timestamp for date values, the zero time otherwise.
func (v Value) DateValue() time.Time { return v.date }

// String renders the value for display and identity comparison: "" for null,
// the text itself, a minimal decimal for numbers, DateLayout for dates.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Format(DateLayout)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	case KindDate:
		return v.date.Equal(o.date)
	default:
		return true
	}
}

// Normalize maps blank text to null. A cleared form field means "no value",
// not an empty string.
func (v Value) Normalize() Value {
	if v.kind == KindText && strings.TrimSpace(v.text) == "" {
		return Null()
	}
	return v
}

// MarshalJSON renders null, a JSON string, a JSON number, or a DateLayout
// string for dates.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.num)
	case KindDate:
		return json.Marshal(v.date.Format(DateLayout))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, strings, and numbers. Strings stay text;
// callers coerce configured date columns explicitly (see CoerceDate) so that
// free-form text is never misread as a date.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = Text(x)
	case float64:
		*v = Number(x)
	case bool:
		// Spreadsheet booleans show up as text everywhere else in the app.
		*v = Text(strconv.FormatBool(x))
	default:
		return fmt.Errorf("unsupported cell value %T", raw)
	}
	return nil
}

// CoerceDate reinterprets a value as a date when possible. Text is parsed
// against common spreadsheet layouts; unparseable input is returned as null
// rather than an error, matching how file ingestion treats bad dates.
func CoerceDate(v Value) Value {
	switch v.kind {
	case KindDate:
		return v
	case KindNull:
		return v
	case KindText:
		s := strings.TrimSpace(v.text)
		if s == "" {
			return Null()
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return Date(t)
			}
		}
		return Null()
	default:
		return Null()
	}
}

// dateLayouts are tried in order when coercing text to a date.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"Jan 2, 2006",
	"2-Jan-2006",
}
