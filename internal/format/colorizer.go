// Package format contains the low level output helpers used by the JSON
// encoder: a Printer that handles indentation and write errors, and a
// Colorizer that wraps values in ANSI escape codes.
package format

// A Colorizer surrounds keys and values with terminal colour codes.  A nil
// *Colorizer prints without colours.
type Colorizer struct {
	KeyColorCode    []byte
	StringColorCode []byte
	NullColorCode   []byte
	ResetCode       []byte
}

// PrintKey prints b, the encoded form of an object key.
func (c *Colorizer) PrintKey(p Printer, b []byte) {
	if c == nil {
		p.PrintBytes(b)
		return
	}
	c.print(p, c.KeyColorCode, b)
}

// PrintString prints b, the encoded form of a string value.
func (c *Colorizer) PrintString(p Printer, b []byte) {
	if c == nil {
		p.PrintBytes(b)
		return
	}
	c.print(p, c.StringColorCode, b)
}

// PrintNull prints the null literal.
func (c *Colorizer) PrintNull(p Printer) {
	if c == nil {
		p.PrintBytes(nullBytes)
		return
	}
	c.print(p, c.NullColorCode, nullBytes)
}

func (c *Colorizer) print(p Printer, code, b []byte) {
	p.PrintBytes(code)
	p.PrintBytes(b)
	p.PrintBytes(c.ResetCode)
}

// Some color ANSI codes
var (
	Reset = []byte("\033[0m")

	Green    = []byte("\033[32m")
	DimWhite = []byte("\033[37;2m")

	BrightBlue = []byte("\033[34;1m")
)

// DefaultColorizer gives keys, strings and null distinct colours.
var DefaultColorizer = Colorizer{
	KeyColorCode:    BrightBlue,
	StringColorCode: Green,
	NullColorCode:   DimWhite,
	ResetCode:       Reset,
}

var nullBytes = []byte("null")
