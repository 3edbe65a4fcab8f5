// internal/api/apiutil/dates.go
package apiutil

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD query value and returns it unchanged.
// Dates are kept as strings throughout; the layout guarantees lexicographic
// order matches calendar order.
func ParseDate(field, value string) (string, error) {
	if value == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return "", FieldError{Field: field, Reason: fmt.Sprintf("must be %s", DateLayout)}
	}
	return value, nil
}

// ParseDateRange validates a start/end pair and their ordering.
func ParseDateRange(start, end string) (string, string, error) {
	startDate, err := ParseDate("start_date", start)
	if err != nil {
		return "", "", err
	}
	endDate, err := ParseDate("end_date", end)
	if err != nil {
		return "", "", err
	}
	if endDate < startDate {
		return "", "", FieldError{Field: "end_date", Reason: "must not precede start_date"}
	}
	return startDate, endDate, nil
}
