package ledger

import "errors"

// Sentinel kinds for submission errors.
var (
	ErrValidation   = errors.New("invalid score submission")
	ErrUnauthorized = errors.New("not authorized")
)
