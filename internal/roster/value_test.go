package roster

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValue(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		tests := []struct {
			name string
			v    Value
			want string
		}{
			{"null", Null(), ""},
			{"text", Text("East"), "East"},
			{"integer number", Number(4410), "4410"},
			{"fractional number", Number(2.5), "2.5"},
			{"date", Date(time.Date(2024, 3, 15, 13, 45, 0, 0, time.Local)), "2024-03-15"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.v.String(); got != tt.want {
					t.Errorf("String() = %q, want %q", got, tt.want)
				}
			})
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		if !Text("").Normalize().IsNull() {
			t.Error("empty text should normalize to null")
		}
		if !Text("   ").Normalize().IsNull() {
			t.Error("whitespace text should normalize to null")
		}
		if Text("x").Normalize().IsNull() {
			t.Error("non-empty text must survive normalization")
		}
		if Number(0).Normalize().IsNull() {
			t.Error("zero is a value, not null")
		}
	})

	t.Run("JSON round trip", func(t *testing.T) {
		tests := []struct {
			name string
			v    Value
			json string
		}{
			{"null", Null(), "null"},
			{"text", Text("SE"), `"SE"`},
			{"number", Number(42), "42"},
			{"date", Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)), `"2024-01-02"`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				data, err := json.Marshal(tt.v)
				if err != nil {
					t.Fatalf("Marshal: %v", err)
				}
				if string(data) != tt.json {
					t.Errorf("Marshal = %s, want %s", data, tt.json)
				}
			})
		}

		// Dates come back as text; CoerceDate recovers the type for
		// configured date columns.
		var v Value
		if err := json.Unmarshal([]byte(`"2024-01-02"`), &v); err != nil {
			t.Fatal(err)
		}
		if v.Kind() != KindText {
			t.Errorf("Kind = %v, strings must stay text on unmarshal", v.Kind())
		}
		if d := CoerceDate(v); d.Kind() != KindDate || d.String() != "2024-01-02" {
			t.Errorf("CoerceDate = %#v", d)
		}
	})

	t.Run("CoerceDate", func(t *testing.T) {
		tests := []struct {
			in   string
			want string
		}{
			{"2024-03-15", "2024-03-15"},
			{"3/15/2024", "2024-03-15"},
			{"03/15/2024", "2024-03-15"},
			{"Mar 15, 2024", "2024-03-15"},
			{"2024-03-15 09:30:00", "2024-03-15"},
			{"not a date", ""},
			{"", ""},
		}
		for _, tt := range tests {
			t.Run(tt.in, func(t *testing.T) {
				got := CoerceDate(Text(tt.in))
				if tt.want == "" {
					if !got.IsNull() {
						t.Errorf("CoerceDate(%q) = %#v, want null", tt.in, got)
					}
					return
				}
				if got.Kind() != KindDate || got.String() != tt.want {
					t.Errorf("CoerceDate(%q) = %q, want %q", tt.in, got.String(), tt.want)
				}
			})
		}
	})
}
