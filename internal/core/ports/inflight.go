package ports

import "context"

// InFlightGuard tracks which mint rows currently have a call outstanding.
type InFlightGuard interface {
	// Acquire marks key as in flight and returns the token of this hold. ok is
	// false when key is already held.
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	// Release clears key only while it is still held with token.
	Release(ctx context.Context, key, token string) error
}
