package csvline

import (
	"strings"

	"github.com/arnodel/csvjson/record"
)

// ParseLineQuoted splits raw into normalized fields, tracking whether the
// scanner is inside a quoted field rather than counting quotes.
//
// A quote opens a quoted field only when it is the first non-blank character
// of the field.  Inside a quoted field, a doubled quote is an escaped quote
// and a single quote closes the field.  Elsewhere quotes are ordinary
// characters.  A quoted field that is never closed extends to the end of the
// line.
//
// Separators are found this way but fields are then normalized exactly like
// ParseLine, so both agree on well-formed input.
func ParseLineQuoted(raw string) record.Line {
	raw = strings.TrimSuffix(raw, "\n")
	var (
		line       = make(record.Line, 0, 8)
		start      = 0
		inQuotes   = false
		fieldBlank = true // only blanks seen since start
	)
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if inQuotes {
			if b == '"' {
				if i+1 < len(raw) && raw[i+1] == '"' {
					i++
				} else {
					inQuotes = false
				}
			}
			continue
		}
		switch {
		case b == ',':
			line = append(line, Normalize(raw[start:i]))
			start = i + 1
			fieldBlank = true
		case b == '"' && fieldBlank:
			inQuotes = true
			fieldBlank = false
		case b == ' ' || b == '\t':
		default:
			fieldBlank = false
		}
	}
	return append(line, Normalize(raw[start:]))
}
