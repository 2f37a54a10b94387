package csvjson

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"
)

// StdStream is the path that stands for standard input or standard output.
const StdStream = "-"

// ErrSourceNotFound is the cause of a *SourceError when the source file does
// not exist.
var ErrSourceNotFound = errors.New("source file not found")

// A SourceError is returned by ConvertFiles when the source cannot be opened.
// In that case the destination has not been created.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("cannot open source %s: %s", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ConvertFiles converts the file at srcPath into a new file at dstPath,
// replacing any existing file.  Both files are closed when it returns, whether
// it succeeded or not.  The source is opened first, so a missing source leaves
// the file system untouched.
func (c *Converter) ConvertFiles(srcPath, dstPath string) (stats *Stats, err error) {
	src, err := c.openSource(srcPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := c.createDestination(dstPath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create destination %s", dstPath)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", dstPath)
		}
	}()

	out := bufio.NewWriter(dst)
	stats, err = c.Convert(src, c.NewEncoder(out, out))
	if ferr := out.Flush(); ferr != nil && err == nil {
		err = errors.Wrapf(ferr, "writing %s", dstPath)
	}
	if err != nil {
		return stats, err
	}
	c.logger().Info().
		Str("source", srcPath).
		Str("destination", dstPath).
		Int("records", stats.Records).
		Msg("converted")
	return stats, nil
}

func (c *Converter) openSource(path string) (io.ReadCloser, error) {
	if path == StdStream {
		in := c.Stdin
		if in == nil {
			in = os.Stdin
		}
		return io.NopCloser(in), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrSourceNotFound
		}
		return nil, &SourceError{Path: path, Err: err}
	}
	return f, nil
}

func (c *Converter) createDestination(path string) (io.WriteCloser, error) {
	if path == StdStream {
		out := c.Stdout
		if out == nil {
			out = os.Stdout
		}
		return nopWriteCloser{out}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
