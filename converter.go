package csvjson

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/arnodel/csvjson/encoding/csvline"
	"github.com/arnodel/csvjson/encoding/json"
	"github.com/arnodel/csvjson/internal/format"
	"github.com/arnodel/csvjson/record"
)

// A Converter turns CSV input into a JSON document, one line at a time.
//
// The zero value is ready to use: it splits lines with the parity rule,
// drops fields that have no matching header (or headers with no matching
// field) and writes compact JSON.
type Converter struct {
	Mode   csvline.Mode          // How quotes are tracked when splitting lines
	Policy record.MismatchPolicy // What to do when a line and the header differ in length

	Indent int  // When positive, write one record per line with that indentation
	ASCII  bool // Escape non-ASCII characters in the output
	Color  bool // Colorize keys and values with ANSI codes

	// FlushEachRecord pushes each record to the destination as soon as it is
	// converted, which is useful when the destination is a terminal.
	FlushEachRecord bool

	// Used by ConvertFiles when a path is "-".  Default to os.Stdin and
	// os.Stdout.
	Stdin  io.Reader
	Stdout io.Writer

	// Logger receives debug and summary messages.  Nil means no logging.
	Logger *zerolog.Logger
}

// Stats describes a finished (or failed) conversion.
type Stats struct {
	Headers record.Line // Field names taken from the first line
	Lines   int         // Number of lines read, including the header
	Records int         // Number of records written
}

// Convert reads lines from src and writes one record per line after the
// first to sink.  The first line gives the field names.
//
// Begin is called on the sink before anything is read, so if Convert fails
// the sink may hold an incomplete document.
func (c *Converter) Convert(src io.Reader, sink record.Sink) (*Stats, error) {
	log := c.logger()
	stats := &Stats{}
	dec := csvline.NewDecoder(src)
	dec.SetMode(c.Mode)

	if err := sink.Begin(); err != nil {
		return stats, errors.Wrap(err, "writing document header")
	}

	headers, err := dec.Next()
	switch {
	case err == io.EOF:
		headers = dec.Parse("")
	case err != nil:
		return stats, errors.Wrap(err, "reading header")
	}
	stats.Headers = headers
	stats.Lines = dec.LineNumber()
	log.Debug().Strs("headers", headers).Str("mode", c.Mode.String()).Msg("read header")

	for {
		line, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, err
		}
		stats.Lines = dec.LineNumber()
		if len(line) != len(headers) {
			log.Debug().
				Int("line", stats.Lines).
				Int("fields", len(line)).
				Int("headers", len(headers)).
				Str("policy", c.Policy.String()).
				Msg("field count differs from header")
		}
		rec, err := record.Zip(headers, line, c.Policy, stats.Lines)
		if err != nil {
			return stats, err
		}
		if err := sink.WriteRecord(rec); err != nil {
			return stats, errors.Wrapf(err, "writing record from line %d", stats.Lines)
		}
		stats.Records++
	}

	if err := sink.End(); err != nil {
		return stats, errors.Wrap(err, "writing document footer")
	}
	log.Debug().Int("lines", stats.Lines).Int("records", stats.Records).Msg("conversion done")
	return stats, nil
}

// NewEncoder returns a JSON encoder writing to w with the converter's output
// settings.  If flusher is not nil and FlushEachRecord is set, it is flushed
// after each record.
func (c *Converter) NewEncoder(w io.Writer, flusher format.Flusher) *json.Encoder {
	enc := json.NewIndentEncoder(w, c.Indent)
	enc.ASCII = c.ASCII
	if c.Color {
		enc.Colorizer = &format.DefaultColorizer
	}
	if c.FlushEachRecord && flusher != nil {
		enc.Printer.(*format.DefaultPrinter).Flusher = flusher
	}
	return enc
}

func (c *Converter) logger() *zerolog.Logger {
	if c.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return c.Logger
}
