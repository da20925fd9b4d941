package model

import "errors"

// Error taxonomy. Validation failures never reach the store; remote failures
// never leave partial local state behind.
var (
	ErrValidation         = errors.New("validation failed")
	ErrRemoteWrite        = errors.New("remote write failed")
	ErrRemoteSubscription = errors.New("remote subscription failed")
)
