package writers

import (
	"io"
	"os"
)

// StdoutName is the output location that selects standard output.
const StdoutName = "-"

// Delays initialization until the writer is written to
type LazyWriteCloser struct {
	init   func() (io.WriteCloser, error)
	writer io.WriteCloser
	err    error
}

// Creates a new `LazyWriteCloser`. An initialization function is passed and is
// called once when the `LazyWriteCloser` is first written to. A failed
// initialization is returned by every later write.
func NewLazyWriteCloser(init func() (io.WriteCloser, error)) *LazyWriteCloser {
	return &LazyWriteCloser{init: init}
}

// Opens path for writing only once something is written, so a run that fails
// before producing output leaves an existing file untouched.
func NewLazyFileWriteCloser(path string) *LazyWriteCloser {
	return NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	})
}

// Output returns stdout for "-" and a lazily opened file otherwise.
func Output(location string) io.WriteCloser {
	if location == StdoutName {
		return nopCloser{os.Stdout}
	}
	return NewLazyFileWriteCloser(location)
}

func (f *LazyWriteCloser) Write(p []byte) (int, error) {
	if f.writer == nil {
		if f.err != nil {
			return 0, f.err
		}
		f.writer, f.err = f.init()
		if f.err != nil {
			f.writer = nil
			return 0, f.err
		}
	}

	return f.writer.Write(p)
}

// Opened reports whether the underlying writer has been created.
func (f *LazyWriteCloser) Opened() bool {
	return f.writer != nil
}

func (f *LazyWriteCloser) Close() error {
	if f.writer != nil {
		return f.writer.Close()
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
