package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and provider clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: row or file does not exist
// - ErrConflict: unique constraint or duplicate record
// - ErrInvalidState: record in wrong lifecycle state for the operation
// - ErrRateLimited: provider rejected the call with a transient quota error
// - ErrCredential: provider authorization is invalid or expired
// - ErrUnavailable: service or resource temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrRateLimited  = errors.New("rate limited")
	ErrCredential   = errors.New("invalid credential")
	ErrUnavailable  = errors.New("unavailable")
)
