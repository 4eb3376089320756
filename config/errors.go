package config

import "errors"

var (
	ErrNoDSN        = errors.New("config: DATABASE_URL or DB_PASS must be set")
	ErrInvalidLimit = errors.New("config: limits must be positive")
)
