package availability

import "errors"

var (
	ErrInvalidWindow   = errors.New("availability: window must have positive length")
	ErrInvalidDuration = errors.New("availability: duration must be positive")
	ErrProviderFailed  = errors.New("availability: unavailability provider failed")
)
