package ai

import (
	"context"
	"fmt"
)

// Completer is an opaque text-completion capability. Implementations may
// block on external latency; callers must treat every failure as recoverable.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ServiceError wraps a provider failure (network, timeout, quota, empty
// response). No ServiceError is fatal to the hosting process.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
