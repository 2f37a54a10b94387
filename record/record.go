// Package record defines the values that flow through a conversion: the
// fields of one parsed line, and the named fields of one output record.
package record

import "fmt"

// A Line is the ordered field values of one line of CSV input.
//
// The first Line of the input is used as the header: its values name the
// fields of every following Line.
type Line []string

// A Field is one named value of a Record.  Null fields are only produced
// when a line is padded to the length of the header (see Pad).
type Field struct {
	Name  string
	Value string
	Null  bool
}

func (f Field) String() string {
	if f.Null {
		return fmt.Sprintf("%s=null", f.Name)
	}
	return fmt.Sprintf("%s=%q", f.Name, f.Value)
}

// A Record is the ordered list of fields obtained by pairing a Line with the
// header.  Field order follows the header and names are unique.
type Record []Field

// Names returns the field names of the record, in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Get returns the value of the field called name, and whether there was
// such a non-null field.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, !f.Null
		}
	}
	return "", false
}

// MismatchPolicy decides what happens when a line does not have as many
// fields as the header.
type MismatchPolicy uint8

const (
	// Truncate pairs as many fields as both the header and the line have,
	// dropping the rest silently.
	Truncate MismatchPolicy = iota

	// Pad emits every header field, using null for missing values.  Extra
	// values are dropped.
	Pad

	// Strict makes any difference in field count an error.
	Strict
)

var policyNames = [...]string{
	Truncate: "truncate",
	Pad:      "pad",
	Strict:   "strict",
}

func (p MismatchPolicy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("MismatchPolicy(%d)", p)
}

// ParseMismatchPolicy returns the policy with the given name.
func ParseMismatchPolicy(name string) (MismatchPolicy, error) {
	for i, n := range policyNames {
		if n == name {
			return MismatchPolicy(i), nil
		}
	}
	return Truncate, fmt.Errorf("invalid mismatch policy: %q (use truncate, pad or strict)", name)
}

// A MismatchError is returned by Zip under the Strict policy.
type MismatchError struct {
	Line    int // 1-based line number in the input, 0 if unknown
	Headers int
	Fields  int
}

func (e *MismatchError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: expected %d fields, got %d", e.Line, e.Headers, e.Fields)
	}
	return fmt.Sprintf("expected %d fields, got %d", e.Headers, e.Fields)
}

// Zip pairs headers[i] with line[i] according to the policy.  lineNo is only
// used to report errors.
//
// A header name that occurs more than once yields a single field, at the
// position of its first occurrence, holding the value of its last one.
func Zip(headers, line Line, policy MismatchPolicy, lineNo int) (Record, error) {
	n := min(len(headers), len(line))
	switch policy {
	case Strict:
		if len(headers) != len(line) {
			return nil, &MismatchError{Line: lineNo, Headers: len(headers), Fields: len(line)}
		}
	case Pad:
		n = len(headers)
	}
	rec := make(Record, 0, n)
	var seen map[string]int
	for i := 0; i < n; i++ {
		f := Field{Name: headers[i]}
		if i < len(line) {
			f.Value = line[i]
		} else {
			f.Null = true
		}
		if j, ok := seen[f.Name]; ok {
			rec[j] = f
			continue
		}
		if seen == nil {
			seen = make(map[string]int, n)
		}
		seen[f.Name] = len(rec)
		rec = append(rec, f)
	}
	return rec, nil
}
