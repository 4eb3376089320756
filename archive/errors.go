package archive

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	ErrQueryTooShort = fmt.Errorf("%w: query too short", ErrInvalidInput)
	ErrInvalidFilter = fmt.Errorf("%w: unknown type filter", ErrInvalidInput)
)
