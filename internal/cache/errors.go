package cache

import "errors"

var (
	ErrInvalidTTL = errors.New("cache: ttl must be positive")
	ErrStore      = errors.New("cache: store failure")
	ErrCodec      = errors.New("cache: failed to encode or decode value")
)
