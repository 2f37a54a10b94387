// Package csvjson converts CSV input into a JSON document in a stream.
//
// The input is read one line at a time.  The first line holds the field
// names, and each following line becomes one JSON object:
//
//	name,age
//	Alice,30
//	"Bob, Jr.",25
//
// becomes
//
//	{"data": [{"name": "Alice", "age": "30"}, {"name": "Bob, Jr.", "age": "25"}]}
//
// All values are strings.  Each record is written as soon as its line has
// been read, so memory usage does not grow with the size of the input.
//
// The package is organized into several sub-packages:
//
// - record: the values passed from the parser to the encoder
// - encoding/csvline: splitting lines into fields
// - encoding/json: writing records as a JSON document
//
// A line cannot contain a line break, even inside quotes.
//
// The CLI utility is in the directory cmd/csvjson. You can install it with:
//
//	go install github.com/arnodel/csvjson/cmd/csvjson
package csvjson
