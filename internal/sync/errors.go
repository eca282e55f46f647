package sync

import "errors"

var (
	ErrMissingKey           = errors.New("webhook payload carries no memo uid")
	ErrUnknownActivity      = errors.New("unknown memos activity")
	ErrInvalidToken         = errors.New("invalid webhook token")
	ErrInvalidSignature     = errors.New("signature verification failed")
	ErrIPNotAllowed         = errors.New("source ip not allowed")
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrSyncRetriesExhausted = errors.New("note sync retries exhausted")
)
