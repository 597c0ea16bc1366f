package domain

import "errors"

// Domain errors.
var (
	ErrValidation           = errors.New("invalid input")
	ErrNotFound             = errors.New("incident not found")
	ErrOperatorNotFound     = errors.New("operator not found")
	ErrOperatorExists       = errors.New("operator already exists")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrOperatorUnavailable  = errors.New("operator not available")
	ErrOperatorRoleMismatch = errors.New("operator cannot handle this incident type")
	ErrCorruptData          = errors.New("corrupt incident data")
	ErrPersistence          = errors.New("persistence failure")
	ErrBackupNotFound       = errors.New("backup not found")
)
