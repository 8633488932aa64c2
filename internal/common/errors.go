// Package common defines shared constants and sentinel errors used across
// the SkillSwap server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Concurrent modification detected by the storage layer. The whole
	// operation is safe to retry from a fresh read.
	ErrorConflict = errors.New("conflict")

	// Swap lifecycle errors.
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidState      = errors.New("invalid state")

	// Settlement errors.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
