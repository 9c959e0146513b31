package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestRecordFilter_Matches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		search string
		input  string
		want   bool
	}{
		{name: "empty search matches all", search: "", input: "Alice", want: true},
		{name: "exact", search: "Bob", input: "Bob", want: true},
		{name: "case-insensitive", search: "bob", input: "BOBBY", want: true},
		{name: "substring in middle", search: "ob", input: "Robert", want: true},
		{name: "no match", search: "bob", input: "Alice", want: false},
		{name: "unicode fold", search: "élodie", input: "Élodie", want: true},
		{name: "regex metachars are literal", search: "a.c", input: "abc", want: false},
		{name: "regex metachars literal match", search: "a.c", input: "xa.cx", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := RecordFilter{Search: tt.search}
			if got := f.Matches(tt.input); got != tt.want {
				t.Errorf("Matches(%q) with search %q = %v, want %v", tt.input, tt.search, got, tt.want)
			}
		})
	}
}

func TestRecordFilter_LikePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		search string
		want   string
	}{
		{search: "bob", want: "%bob%"},
		{search: "100%", want: `%100\%%`},
		{search: "a_b", want: `%a\_b%`},
		{search: `c:\tmp`, want: `%c:\\tmp%`},
	}
	for _, tt := range tests {
		if got := (RecordFilter{Search: tt.search}).LikePattern(); got != tt.want {
			t.Errorf("LikePattern(%q) = %q, want %q", tt.search, got, tt.want)
		}
	}
}

func TestRecordUpdate_Apply(t *testing.T) {
	t.Parallel()

	r := &Record{Name: "Bob", Age: 40}
	age := 42
	RecordUpdate{Age: &age}.Apply(r)

	if r.Name != "Bob" {
		t.Errorf("Name = %q, want unchanged %q", r.Name, "Bob")
	}
	if r.Age != 42 {
		t.Errorf("Age = %d, want 42", r.Age)
	}
}

func TestRecordUpdate_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(RecordUpdate{}).IsEmpty() {
		t.Error("zero RecordUpdate should be empty")
	}
	name := "x"
	if (RecordUpdate{Name: &name}).IsEmpty() {
		t.Error("RecordUpdate with Name should not be empty")
	}
}

func TestParseRecordID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got, err := ParseRecordID(id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Errorf("got %s, want %s", got, id)
	}

	for _, bad := range []string{"", "123", "not-a-uuid", uuid.Nil.String(), "64b7f0c2e1a4c2d3e4f5a6b7"} {
		if _, err := ParseRecordID(bad); !errors.Is(err, ErrInvalidID) {
			t.Errorf("ParseRecordID(%q) error = %v, want ErrInvalidID", bad, err)
		}
	}
}
