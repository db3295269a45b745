// Package bulk implements the output side of the generator: delimited record
// sets with fixed, ordered column lists matching the clinical schema's
// COPY-based load contract, and a PostgreSQL bulk loader for them.
package bulk

import (
	"strconv"
	"time"
)

// Timestamp layouts accepted by the PostgreSQL COPY text parser.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Timestamp formats t for a timestamp column.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// TimestampPtr formats an optional timestamp; nil becomes the empty string,
// which the loader maps to NULL.
func TimestampPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Timestamp(*t)
}

// Date formats t for a date column.
func Date(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Bool formats a boolean column.
func Bool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Int formats an integer column.
func Int(i int) string {
	return strconv.Itoa(i)
}

// IntPtr formats an optional integer column.
func IntPtr(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

// Float formats a numeric column with the given number of decimals.
func Float(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// FloatPtr formats an optional numeric column.
func FloatPtr(f *float64, prec int) string {
	if f == nil {
		return ""
	}
	return Float(*f, prec)
}
