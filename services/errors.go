package services

import "errors"

// Failure categories surfaced by the service layer. Controllers map them to
// HTTP statuses with errors.Is; wrapped messages stay human-readable.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrConflict           = errors.New("conflict")
)
