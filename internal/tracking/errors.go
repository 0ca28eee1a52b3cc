package tracking

import "errors"

var (
	// ErrDuplicateEmail signals a registration attempt with an email that is
	// already taken. The existing person is never merged or overwritten.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrPersonNotFound signals a credential whose id does not resolve to a
	// registered person.
	ErrPersonNotFound = errors.New("person not found")
)
