// Package json writes records as a single JSON document of the form
//
//	{"data": [{"name": "Alice", "age": "30"}, ...]}
//
// Records are written as soon as they are received, so memory use does not
// grow with the number of records.  The separator between two records is
// written before the second one, which means the document never needs to be
// patched once written.
package json

import (
	"io"

	"github.com/pkg/errors"

	"github.com/arnodel/csvjson/internal/format"
	"github.com/arnodel/csvjson/record"
)

// An Encoder writes a stream of records as a JSON document using the given
// Printer instance for formatting.
type Encoder struct {
	format.Printer
	*format.Colorizer

	// ASCII escapes every non-ASCII character as \uXXXX.
	ASCII bool

	// Pretty puts each record on its own line.  The Printer is responsible
	// for indentation.
	Pretty bool

	state   encoderState
	written int
	scratch []byte
}

type encoderState uint8

const (
	notStarted encoderState = iota
	started
	ended
)

var _ record.Sink = &Encoder{}

// NewEncoder returns an Encoder writing compact JSON to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{Printer: &format.DefaultPrinter{Writer: w}}
}

// NewIndentEncoder returns an Encoder writing one record per line to w,
// indented by indent spaces.  If indent is not positive the output is
// compact.
func NewIndentEncoder(w io.Writer, indent int) *Encoder {
	if indent <= 0 {
		return NewEncoder(w)
	}
	return &Encoder{
		Printer: &format.DefaultPrinter{Writer: w, IndentSize: indent},
		Pretty:  true,
	}
}

// Begin writes the opening of the document.
func (e *Encoder) Begin() (err error) {
	if e.state != notStarted {
		return errors.New("json encoder: Begin called twice")
	}
	defer format.CatchPrinterError(&err)
	e.PrintBytes(headerBytes)
	e.state = started
	return nil
}

// WriteRecord writes rec as a JSON object, preceded by a separator unless it
// is the first record.
func (e *Encoder) WriteRecord(rec record.Record) (err error) {
	if e.state != started {
		return errors.New("json encoder: WriteRecord called outside Begin/End")
	}
	defer format.CatchPrinterError(&err)
	if e.written == 0 {
		if e.Pretty {
			e.Indent()
		}
	} else if e.Pretty {
		e.PrintBytes(prettySeparatorBytes)
		e.NewLine()
	} else {
		e.PrintBytes(itemSeparatorBytes)
	}
	e.writeObject(rec)
	e.written++
	e.Flush()
	return nil
}

// End writes the closing of the document.
func (e *Encoder) End() (err error) {
	if e.state != started {
		return errors.New("json encoder: End called outside Begin/End")
	}
	defer format.CatchPrinterError(&err)
	if e.Pretty && e.written > 0 {
		e.Dedent()
	}
	e.PrintBytes(footerBytes)
	if e.Pretty {
		e.PrintBytes(newLineBytes)
	}
	e.state = ended
	e.Flush()
	return nil
}

// RecordCount returns the number of records written so far.
func (e *Encoder) RecordCount() int {
	return e.written
}

func (e *Encoder) writeObject(rec record.Record) {
	e.PrintBytes(openObjectBytes)
	for i, f := range rec {
		if i > 0 {
			e.PrintBytes(itemSeparatorBytes)
		}
		e.scratch = AppendString(e.scratch[:0], f.Name, e.ASCII)
		e.Colorizer.PrintKey(e.Printer, e.scratch)
		e.PrintBytes(keyValueSeparatorBytes)
		if f.Null {
			e.Colorizer.PrintNull(e.Printer)
		} else {
			e.scratch = AppendString(e.scratch[:0], f.Value, e.ASCII)
			e.Colorizer.PrintString(e.Printer, e.scratch)
		}
	}
	e.PrintBytes(closeObjectBytes)
}

var (
	headerBytes            = []byte(`{"data": [`)
	footerBytes            = []byte(`]}`)
	openObjectBytes        = []byte("{")
	closeObjectBytes       = []byte("}")
	itemSeparatorBytes     = []byte(", ")
	prettySeparatorBytes   = []byte(",")
	keyValueSeparatorBytes = []byte(": ")
	newLineBytes           = []byte("\n")
)
