package collector

import "fmt"

// FetchError is returned for any failure while acquiring the series:
// transport, HTTP status, body read or JSON decode.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// RateError reports a rate that could not be coerced to a number.
// It is only produced when strict rate checking is enabled.
type RateError struct {
	Index int
	Date  string
}

func (e *RateError) Error() string {
	return fmt.Sprintf("invalid rValue at index %d (date %q)", e.Index, e.Date)
}
