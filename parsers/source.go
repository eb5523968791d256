package parsers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const fetchTimeout = 30 * time.Second

// ErrUnreadable marks a location that could not be opened or whose format
// could not be told, as opposed to content that failed to parse.
var ErrUnreadable = errors.New("input unreadable")

type unreadableError struct {
	err error
}

func (e *unreadableError) Error() string {
	return e.err.Error()
}

func (e *unreadableError) Unwrap() []error {
	return []error{ErrUnreadable, e.err}
}

// IsURL reports whether location should be fetched over HTTP.
func IsURL(location string) bool {
	u, err := url.ParseRequestURI(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// Open returns a reader for an http(s) URL or a local file path.
func Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if IsURL(location) {
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			cancel()
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("fetch %s: %w", location, err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			cancel()
			return nil, fmt.Errorf("fetch %s: invalid HTTP status code received: %v", location, resp.Status)
		}
		return &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}, nil
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("provided input was neither a valid URL or a path to existing file: %w", err)
	}
	return f, nil
}

type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

// Parse reads all series from r. name is used for formats that carry no
// series name of their own.
func Parse(r io.Reader, format Format, name string) ([]Table, error) {
	switch format {
	case FormatCSV:
		t, err := ParseCSV(r, name)
		if err != nil {
			return nil, err
		}
		return []Table{*t}, nil
	case FormatHTML:
		return ParseHTML(r)
	case FormatYAML:
		return ParseYAML(r)
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}

// Load opens location and parses it. An empty format is detected from the
// location. Failures to reach the input match ErrUnreadable; parse failures
// are prefixed with the location.
func Load(ctx context.Context, location string, format Format) ([]Table, error) {
	if format == "" {
		var err error
		if format, err = DetectFormat(location); err != nil {
			return nil, &unreadableError{err: err}
		}
	}
	rc, err := Open(ctx, location)
	if err != nil {
		return nil, &unreadableError{err: err}
	}
	defer rc.Close()
	tables, err := Parse(rc, format, SeriesName(location))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return tables, nil
}
