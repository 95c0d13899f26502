// Package common defines sentinel errors shared by the repositories, the
// statistics engine and the terminal front end. Callers should use errors.Is
// to match these values; repositories wrap them with a message naming the
// offending field or id.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrorValidation is returned for writes the repositories refuse to store,
	// such as an entry with a blank title or a tag without a name.
	ErrorValidation = errors.New("validation error")

	// ErrorStorageUnavailable is returned when the backing store cannot be
	// opened, migrated or seeded.
	ErrorStorageUnavailable = errors.New("storage unavailable")
)
