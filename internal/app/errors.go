package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrInvalidCredentials = errors.New("login failed")
)
