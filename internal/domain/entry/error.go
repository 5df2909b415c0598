package entry

import "errors"

var (
	ErrNotFound    = errors.New("entry not found")
	ErrForbidden   = errors.New("entry belongs to another user")
	ErrInvalidData = errors.New("missing encrypted title or content")
)
