package domain

import "errors"

var (
	// ErrInvalidRule is returned for malformed rule payloads
	ErrInvalidRule = errors.New("invalid rule")
	// ErrTooManyResponses is returned when a keyword gets more than MaxResponses replies
	ErrTooManyResponses = errors.New("too many responses")
	// ErrKeywordNotFound is returned when deleting a keyword the post doesn't have
	ErrKeywordNotFound = errors.New("keyword not found")
	// ErrInvalidPostID is returned for empty post ids or ids unsafe as file names
	ErrInvalidPostID = errors.New("invalid post id")
	// ErrNotFound is returned by storage backends when a record doesn't exist
	ErrNotFound = errors.New("not found")
)
