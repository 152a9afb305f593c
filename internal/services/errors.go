package services

import "errors"

// Common service errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidState      = errors.New("invalid state transition")
	ErrInvalidWindow     = errors.New("window end is before its start")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrUnknownEntity     = errors.New("unknown search entity")
)
