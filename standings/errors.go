package standings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedInput is returned when the input grid cannot describe a
	// season: missing axes, gaps in the week list or missing finish codes.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidConfiguration is returned before any computation when the
	// scoring configuration is unusable.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// InputError locates a malformed input condition. Row and Col are 1-based
// grid coordinates and are 0 when they do not apply.
type InputError struct {
	Kind       error
	Series     string
	Competitor string
	Week       int
	Row        int
	Col        int
	Reason     string
}

func (e *InputError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Series != "" {
		fmt.Fprintf(&b, ": series %q", e.Series)
	}
	if e.Competitor != "" {
		fmt.Fprintf(&b, ": competitor %q", e.Competitor)
	}
	if e.Week > 0 {
		fmt.Fprintf(&b, ": week %d", e.Week)
	}
	if e.Row > 0 || e.Col > 0 {
		fmt.Fprintf(&b, " (row %d, col %d)", e.Row, e.Col)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *InputError) Unwrap() error {
	return e.Kind
}

func malformed(series, reason string) *InputError {
	return &InputError{Kind: ErrMalformedInput, Series: series, Reason: reason}
}
