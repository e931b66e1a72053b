package core

import "errors"

// Error taxonomy for the engine. Every failure an operation can report maps
// onto exactly one of these sentinels so callers and tests can branch with
// errors.Is instead of matching message text.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmptyName         = errors.New("empty name")
	ErrDuplicateName     = errors.New("duplicate name")
	ErrNotFound          = errors.New("not found")
	ErrIndexOutOfRange   = errors.New("item index out of range")
	ErrEmptyInput        = errors.New("no transactions")
	ErrDivisionUndefined = errors.New("no expense days to average over")
)
