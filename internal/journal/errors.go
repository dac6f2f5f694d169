package journal

import "errors"

var (
	// ErrReadmeNotFound indicates the journal README does not exist.
	ErrReadmeNotFound = errors.New("readme not found")

	// ErrReadmeUnreadable indicates the README exists but could not be read.
	ErrReadmeUnreadable = errors.New("readme unreadable")

	// ErrInvalidPattern indicates the directory pattern could not be compiled or has no capture group.
	ErrInvalidPattern = errors.New("invalid day directory pattern")

	// ErrDaysRootUnreadable indicates the days root exists but could not be listed.
	ErrDaysRootUnreadable = errors.New("days root unreadable")
)
