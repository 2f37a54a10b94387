package record

// A Sink receives the records of one conversion.  Begin is called once
// before any record, and End once after the last one, so that a sink can
// frame the records it writes.
type Sink interface {
	Begin() error
	WriteRecord(Record) error
	End() error
}

// A Source produces the lines of one conversion.  Next returns io.EOF when
// there are no more lines.
type Source interface {
	Next() (Line, error)
}

// Accumulator is a Sink that keeps every record in memory.  It is mostly
// useful in tests.
type Accumulator struct {
	Records []Record
	Begun   bool
	Ended   bool
}

var _ Sink = &Accumulator{}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

func (a *Accumulator) Begin() error {
	a.Begun = true
	return nil
}

func (a *Accumulator) WriteRecord(rec Record) error {
	a.Records = append(a.Records, rec)
	return nil
}

func (a *Accumulator) End() error {
	a.Ended = true
	return nil
}
