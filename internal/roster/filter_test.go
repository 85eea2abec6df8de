package roster

import (
	"reflect"
	"testing"
)

func sample() *Table {
	t := NewTable("Preferred Name", "Work Email", "Region", "Role", "VILT")
	t.Rows = []Record{
		{"Preferred Name": Text("Alice"), "Work Email": Text("a@x.com"), "Region": Text("East"), "Role": Text("SE"), "VILT": Text("2024-05")},
		{"Preferred Name": Text("Bob"), "Work Email": Text("b@x.com"), "Region": Text("West"), "Role": Text("AM"), "VILT": Null()},
		{"Preferred Name": Text("Cara"), "Work Email": Text("c@x.com"), "Region": Text("East"), "Role": Text("SE"), "VILT": Text("2024-03")},
	}
	return t
}

func TestFilterApply(t *testing.T) {
	tb := sample()

	t.Run("membership", func(t *testing.T) {
		f := &Filter{Allowed: map[string][]string{"Region": {"East"}}}
		got := f.Apply(tb)
		if got.Len() != 2 {
			t.Fatalf("Len = %d, want 2", got.Len())
		}
	})

	t.Run("conjunction", func(t *testing.T) {
		f := &Filter{Allowed: map[string][]string{"Region": {"East"}, "Role": {"AM", "SE"}}}
		if got := f.Apply(tb).Len(); got != 2 {
			t.Errorf("Len = %d, want 2", got)
		}
		f = &Filter{Allowed: map[string][]string{"Region": {"West"}, "Role": {"SE"}}}
		if got := f.Apply(tb).Len(); got != 0 {
			t.Errorf("Len = %d, want 0", got)
		}
	})

	t.Run("predicate over absent column is ignored", func(t *testing.T) {
		f := &Filter{Allowed: map[string][]string{"Business Unit": {"Core"}}}
		if got := f.Apply(tb).Len(); got != 3 {
			t.Errorf("Len = %d, want all 3 rows", got)
		}
	})

	t.Run("empty filter copies everything", func(t *testing.T) {
		var f *Filter
		got := f.Apply(tb)
		if got.Len() != 3 {
			t.Fatalf("Len = %d", got.Len())
		}
		got.Rows[0]["Preferred Name"] = Text("Mallory")
		if tb.Rows[0]["Preferred Name"].String() != "Alice" {
			t.Error("Apply returned a view into the source table")
		}
	})

	t.Run("search", func(t *testing.T) {
		f := &Filter{Search: "b@X.COM", SearchColumns: []string{"Preferred Name", "Work Email"}}
		got := f.Apply(tb)
		if got.Len() != 1 || got.Rows[0]["Preferred Name"].String() != "Bob" {
			t.Errorf("search matched %d rows", got.Len())
		}
	})
}

func TestOptions(t *testing.T) {
	tb := sample()
	if got := Options(tb, "Region"); !reflect.DeepEqual(got, []string{"East", "West"}) {
		t.Errorf("Options(Region) = %v", got)
	}
	// Nulls are skipped, output is sorted.
	if got := Options(tb, "VILT"); !reflect.DeepEqual(got, []string{"2024-03", "2024-05"}) {
		t.Errorf("Options(VILT) = %v", got)
	}
	if got := Options(tb, "Nope"); got != nil {
		t.Errorf("Options(unknown) = %v, want nil", got)
	}
}

func TestNonNull(t *testing.T) {
	tb := sample()
	got := NonNull(tb, "VILT")
	if got.Len() != 2 {
		t.Fatalf("Len = %d, want 2", got.Len())
	}
	for _, r := range got.Rows {
		if r["VILT"].IsNull() {
			t.Error("null row leaked through NonNull")
		}
	}
}
