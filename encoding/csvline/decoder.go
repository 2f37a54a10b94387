package csvline

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/arnodel/csvjson/record"
)

// A Decoder reads CSV input one line at a time and splits each line into
// fields.  At most one line is held in memory.
type Decoder struct {
	reader *bufio.Reader
	parse  LineParser
	lineNo int
	buf    []byte
}

var _ record.Source = &Decoder{}

// NewDecoder sets up a new Decoder reading from in and parsing lines with
// ParseLine.
func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{
		reader: bufio.NewReader(in),
		parse:  ParseLine,
	}
}

// SetMode changes the way lines are split.  Should be called before Next.
func (d *Decoder) SetMode(m Mode) {
	d.parse = m.Parser()
}

// ReadLine returns the next line of input, including its terminating newline
// if it has one.  Lines may end with "\n", "\r\n" or a lone "\r"; the
// terminator is always returned as "\n".  It returns io.EOF when the input is
// exhausted.
func (d *Decoder) ReadLine() (string, error) {
	d.buf = d.buf[:0]
	for {
		b, err := d.reader.ReadByte()
		if err != nil {
			if err != io.EOF {
				return "", errors.Wrapf(err, "reading line %d", d.lineNo+1)
			}
			if len(d.buf) == 0 {
				return "", io.EOF
			}
			break
		}
		if b == '\r' {
			if next, err := d.reader.Peek(1); err == nil && next[0] == '\n' {
				d.reader.Discard(1)
			}
			b = '\n'
		}
		d.buf = append(d.buf, b)
		if b == '\n' {
			break
		}
	}
	d.lineNo++
	return string(d.buf), nil
}

// Next reads and parses the next line.  It returns io.EOF when the input is
// exhausted.
func (d *Decoder) Next() (record.Line, error) {
	line, err := d.ReadLine()
	if err != nil {
		return nil, err
	}
	return d.parse(line), nil
}

// Parse splits raw with the decoder's LineParser, without reading input.
func (d *Decoder) Parse(raw string) record.Line {
	return d.parse(raw)
}

// LineNumber returns the 1-based number of the last line read, or 0 if no
// line has been read yet.
func (d *Decoder) LineNumber() int {
	return d.lineNo
}
