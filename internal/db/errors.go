package db

import "errors"

// Sentinel errors for index operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrInvalidQuery  = errors.New("db: invalid query")
)

// Op constants name the provider operation for error context.
const (
	OpSearch     = "FT.SEARCH"
	OpPing       = "PING"
	OpQuery      = "QUERY"
	OpDescribe   = "DESCRIBE_INDEX"
	OpIndexStats = "DESCRIBE_INDEX_STATS"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
