package repository

import "errors"

// Repository error kinds. Callers match these with errors.Is; the
// wrapped message carries the offending field or id.
var (
	// ErrDuplicateWord is returned when an add would violate the
	// (folder, english) uniqueness rule.
	ErrDuplicateWord = errors.New("word already exists in folder")

	// ErrNotFound is returned when an operation references a word id
	// that does not exist.
	ErrNotFound = errors.New("word not found")

	// ErrInvalidArgument is returned for malformed input, such as an
	// empty required field or a negative error count.
	ErrInvalidArgument = errors.New("invalid argument")
)
