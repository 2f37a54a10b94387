// Package csvline splits single lines of CSV text into fields.
//
// Lines are handled one at a time, so a quoted field cannot contain a line
// break.  Two strategies are available for deciding whether a comma separates
// fields (see Mode).  Both are lenient: badly quoted input is split on a best
// effort basis and never causes an error.
package csvline

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/arnodel/csvjson/record"
)

// A LineParser turns one line of text into its fields.
type LineParser func(raw string) record.Line

// Mode selects how quotes are tracked when looking for separators.
type Mode uint8

const (
	// ModeParity treats a comma as a separator when an even number of quote
	// characters precede it on the line.
	ModeParity Mode = iota

	// ModeQuoted tracks whether the scanner is inside a quoted field.  A
	// quote only opens a quoted field at the start of the field.
	ModeQuoted
)

var modeNames = [...]string{
	ModeParity: "parity",
	ModeQuoted: "quoted",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Parser returns the LineParser implementing the mode.
func (m Mode) Parser() LineParser {
	if m == ModeQuoted {
		return ParseLineQuoted
	}
	return ParseLine
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModeParity, fmt.Errorf("invalid quote mode: %q (use parity or quoted)", name)
}

// ParseLine splits raw into normalized fields.  A single trailing newline is
// ignored.  A comma separates two fields only if the number of quote
// characters seen before it is even.  There is always at least one field.
func ParseLine(raw string) record.Line {
	raw = strings.TrimSuffix(raw, "\n")
	var (
		line   = make(record.Line, 0, 8)
		start  = 0
		quotes = 0
	)
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case ',':
			if quotes%2 == 0 {
				line = append(line, Normalize(raw[start:i]))
				start = i + 1
			}
		case '"':
			quotes++
		}
	}
	return append(line, Normalize(raw[start:]))
}

// Normalize trims surrounding whitespace from a raw field, then removes one
// pair of enclosing quotes if present, then replaces each doubled quote with
// a single one.  The steps must happen in that order.
func Normalize(field string) string {
	field = strings.TrimFunc(field, isSpace)
	if strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		if len(field) == 1 {
			field = ""
		} else {
			field = field[1 : len(field)-1]
		}
	}
	if strings.Contains(field, `""`) {
		field = strings.ReplaceAll(field, `""`, `"`)
	}
	return field
}

// isSpace reports whether r is whitespace.  The ASCII separator controls
// U+001C to U+001F count as whitespace too.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r >= 0x1c && r <= 0x1f
}
