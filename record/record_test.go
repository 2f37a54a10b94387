package record

import (
	"errors"
	"reflect"
	"testing"
)

func TestZip(t *testing.T) {
	headers := Line{"name", "age"}
	tests := []struct {
		name     string
		line     Line
		policy   MismatchPolicy
		expected Record
	}{
		{
			name:     "same length",
			line:     Line{"Alice", "30"},
			policy:   Truncate,
			expected: Record{{Name: "name", Value: "Alice"}, {Name: "age", Value: "30"}},
		},
		{
			name:     "short line truncated",
			line:     Line{"Alice"},
			policy:   Truncate,
			expected: Record{{Name: "name", Value: "Alice"}},
		},
		{
			name:     "long line truncated",
			line:     Line{"Alice", "30", "extra"},
			policy:   Truncate,
			expected: Record{{Name: "name", Value: "Alice"}, {Name: "age", Value: "30"}},
		},
		{
			name:     "short line padded",
			line:     Line{"Alice"},
			policy:   Pad,
			expected: Record{{Name: "name", Value: "Alice"}, {Name: "age", Null: true}},
		},
		{
			name:     "long line padded",
			line:     Line{"Alice", "30", "extra"},
			policy:   Pad,
			expected: Record{{Name: "name", Value: "Alice"}, {Name: "age", Value: "30"}},
		},
		{
			name:     "strict same length",
			line:     Line{"Bob", "25"},
			policy:   Strict,
			expected: Record{{Name: "name", Value: "Bob"}, {Name: "age", Value: "25"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Zip(headers, tt.line, tt.policy, 2)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if !reflect.DeepEqual(rec, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, rec)
			}
		})
	}
}

func TestZipRepeatedHeaders(t *testing.T) {
	tests := []struct {
		name     string
		headers  Line
		line     Line
		policy   MismatchPolicy
		expected Record
	}{
		{
			name:     "last value wins",
			headers:  Line{"a", "a"},
			line:     Line{"1", "2"},
			policy:   Truncate,
			expected: Record{{Name: "a", Value: "2"}},
		},
		{
			name:     "first position kept",
			headers:  Line{"name", "", ""},
			line:     Line{"Alice", "x", "y"},
			policy:   Truncate,
			expected: Record{{Name: "name", Value: "Alice"}, {Name: "", Value: "y"}},
		},
		{
			name:     "truncated before repeat",
			headers:  Line{"a", "b", "a"},
			line:     Line{"1", "2"},
			policy:   Truncate,
			expected: Record{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
		},
		{
			name:     "padded repeat becomes null",
			headers:  Line{"a", "b", "a"},
			line:     Line{"1", "2"},
			policy:   Pad,
			expected: Record{{Name: "a", Null: true}, {Name: "b", Value: "2"}},
		},
		{
			name:     "strict repeat",
			headers:  Line{"a", "b", "a"},
			line:     Line{"1", "2", "3"},
			policy:   Strict,
			expected: Record{{Name: "a", Value: "3"}, {Name: "b", Value: "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Zip(tt.headers, tt.line, tt.policy, 2)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if !reflect.DeepEqual(rec, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, rec)
			}
		})
	}
}

func TestZipStrictMismatch(t *testing.T) {
	_, err := Zip(Line{"a", "b"}, Line{"1"}, Strict, 7)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *MismatchError, got %v", err)
	}
	if mismatch.Line != 7 || mismatch.Headers != 2 || mismatch.Fields != 1 {
		t.Errorf("unexpected error contents: %+v", mismatch)
	}
	if got := err.Error(); got != "line 7: expected 2 fields, got 1" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestParseMismatchPolicy(t *testing.T) {
	for _, p := range []MismatchPolicy{Truncate, Pad, Strict} {
		parsed, err := ParseMismatchPolicy(p.String())
		if err != nil {
			t.Fatalf("%s: %s", p, err)
		}
		if parsed != p {
			t.Errorf("expected %s, got %s", p, parsed)
		}
	}
	if _, err := ParseMismatchPolicy("nope"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestRecordGet(t *testing.T) {
	rec := Record{{Name: "name", Value: "Alice"}, {Name: "age", Null: true}}
	if v, ok := rec.Get("name"); !ok || v != "Alice" {
		t.Errorf("expected Alice, got %q (%v)", v, ok)
	}
	if _, ok := rec.Get("age"); ok {
		t.Error("null field should not be reported as present")
	}
	if _, ok := rec.Get("missing"); ok {
		t.Error("missing field should not be reported as present")
	}
	if names := rec.Names(); !reflect.DeepEqual(names, []string{"name", "age"}) {
		t.Errorf("unexpected names %v", names)
	}
}
