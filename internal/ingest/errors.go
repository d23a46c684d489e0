package ingest

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn   = errors.New("missing required column")
	ErrEmptyValue      = errors.New("empty value")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidPresence = errors.New("invalid presence flag")
	ErrInvalidAge      = errors.New("invalid age")
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// MalformedRecordError reports a row that cannot become an attendance
// record. Line is 1-based and counts the header.
type MalformedRecordError struct {
	Line  int    `json:"line"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
	Err   error  `json:"-"`
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Reason is the message of the wrapped error, exposed for JSON reports.
func (e *MalformedRecordError) Reason() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
