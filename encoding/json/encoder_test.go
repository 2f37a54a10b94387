package json

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/arnodel/csvjson/internal/format"
	"github.com/arnodel/csvjson/record"
)

func TestEncoderCompact(t *testing.T) {
	tests := []struct {
		name     string
		records  []record.Record
		expected string
	}{
		{
			name:     "no records",
			expected: `{"data": []}`,
		},
		{
			name: "one record",
			records: []record.Record{
				{{Name: "name", Value: "Alice"}, {Name: "age", Value: "30"}},
			},
			expected: `{"data": [{"name": "Alice", "age": "30"}]}`,
		},
		{
			name: "two records",
			records: []record.Record{
				{{Name: "name", Value: "Alice"}, {Name: "age", Value: "30"}},
				{{Name: "name", Value: "Bob, Jr."}, {Name: "age", Value: "25"}},
			},
			expected: `{"data": [{"name": "Alice", "age": "30"}, {"name": "Bob, Jr.", "age": "25"}]}`,
		},
		{
			name: "null field",
			records: []record.Record{
				{{Name: "name", Value: "Alice"}, {Name: "age", Null: true}},
			},
			expected: `{"data": [{"name": "Alice", "age": null}]}`,
		},
		{
			name:     "empty record",
			records:  []record.Record{{}},
			expected: `{"data": [{}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			encodeRecords(t, NewEncoder(&buf), tt.records)
			if buf.String() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, buf.String())
			}
			if !stdjson.Valid(buf.Bytes()) {
				t.Errorf("output is not valid JSON: %s", buf.String())
			}
		})
	}
}

func TestEncoderPretty(t *testing.T) {
	records := []record.Record{
		{{Name: "a", Value: "1"}},
		{{Name: "a", Value: "2"}},
	}
	var buf bytes.Buffer
	encodeRecords(t, NewIndentEncoder(&buf, 2), records)
	expected := "{\"data\": [\n  {\"a\": \"1\"},\n  {\"a\": \"2\"}\n]}\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}

	buf.Reset()
	encodeRecords(t, NewIndentEncoder(&buf, 2), nil)
	if buf.String() != "{\"data\": []}\n" {
		t.Errorf("unexpected empty pretty output %q", buf.String())
	}

	buf.Reset()
	encodeRecords(t, NewIndentEncoder(&buf, 0), records)
	if buf.String() != `{"data": [{"a": "1"}, {"a": "2"}]}` {
		t.Errorf("indent 0 should be compact, got %q", buf.String())
	}
}

func TestEncoderColors(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	enc.Colorizer = &format.DefaultColorizer
	encodeRecords(t, enc, []record.Record{{{Name: "k", Value: "v"}, {Name: "n", Null: true}}})
	out := buf.String()
	for _, want := range []string{
		string(format.BrightBlue) + `"k"` + string(format.Reset),
		string(format.Green) + `"v"` + string(format.Reset),
		string(format.DimWhite) + "null" + string(format.Reset),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestEncoderEscaping(t *testing.T) {
	var buf bytes.Buffer
	rec := record.Record{{Name: `say "hi"`, Value: "back\\slash\nnew line"}}
	encodeRecords(t, NewEncoder(&buf), []record.Record{rec})

	var doc struct {
		Data []map[string]string `json:"data"`
	}
	if err := stdjson.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON %s: %s", buf.String(), err)
	}
	if len(doc.Data) != 1 || doc.Data[0][`say "hi"`] != "back\\slash\nnew line" {
		t.Errorf("unexpected decoded document %v", doc)
	}
}

func TestEncoderStateErrors(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.WriteRecord(record.Record{}); err == nil {
		t.Error("expected error writing before Begin")
	}
	if err := enc.End(); err == nil {
		t.Error("expected error ending before Begin")
	}
	if err := enc.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := enc.Begin(); err == nil {
		t.Error("expected error calling Begin twice")
	}
	if err := enc.End(); err != nil {
		t.Fatal(err)
	}
	if err := enc.WriteRecord(record.Record{}); err == nil {
		t.Error("expected error writing after End")
	}
}

type limitedWriter struct {
	remaining int
}

var errDiskFull = errors.New("disk full")

func (w *limitedWriter) Write(p []byte) (int, error) {
	if len(p) > w.remaining {
		return 0, errDiskFull
	}
	w.remaining -= len(p)
	return len(p), nil
}

func TestEncoderWriteError(t *testing.T) {
	enc := NewEncoder(&limitedWriter{remaining: 12})
	if err := enc.Begin(); err != nil {
		t.Fatalf("Begin should fit: %s", err)
	}
	err := enc.WriteRecord(record.Record{{Name: "name", Value: "a long enough value"}})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected disk full error, got %v", err)
	}
	var perr *format.PrinterError
	if !errors.As(err, &perr) {
		t.Errorf("expected *format.PrinterError, got %T", err)
	}
}

func TestEncoderRecordCount(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	encodeRecords(t, enc, []record.Record{{}, {}, {}})
	if enc.RecordCount() != 3 {
		t.Errorf("expected 3 records, got %d", enc.RecordCount())
	}
}

// Helper functions

func encodeRecords(t *testing.T, enc *Encoder, records []record.Record) {
	t.Helper()
	if err := enc.Begin(); err != nil {
		t.Fatalf("Begin: %s", err)
	}
	for _, rec := range records {
		if err := enc.WriteRecord(rec); err != nil {
			t.Fatalf("WriteRecord: %s", err)
		}
	}
	if err := enc.End(); err != nil {
		t.Fatalf("End: %s", err)
	}
}
