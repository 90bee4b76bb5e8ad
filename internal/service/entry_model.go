package service

import (
	"time"
)

// EntryCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type EntryCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}
