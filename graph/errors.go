package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResultsFound is returned when a query expected at least one result row and received none.
	ErrNoResultsFound = errors.New("no results found")

	// ErrMissingResultExpectation is returned when a caller scans for more columns than a result row contains.
	ErrMissingResultExpectation = errors.New("result is missing an expected value")

	// ErrUnsupportedDatabaseOperation is returned when a driver is asked to perform an operation it does not implement.
	ErrUnsupportedDatabaseOperation = errors.New("unsupported database operation")

	// ErrPropertyNotFound is returned when a PropertyValue negotiation is attempted against an unset property.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrContextTimedOut is returned when a context deadline elapses while a database operation is in flight.
	ErrContextTimedOut = errors.New("context timed out")

	// ErrConcurrentConnectionSlotTimeOut is returned when no connection pool slot became available in time.
	ErrConcurrentConnectionSlotTimeOut = errors.New("timed out waiting for a concurrent connection slot")
)

func newConversionError(value any, target string) error {
	return fmt.Errorf("unable to convert value %#v of type %T to %s", value, value, target)
}
