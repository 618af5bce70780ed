package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InFlight is a process-local mint in-flight guard.
type InFlight struct {
	mu   sync.Mutex
	held map[string]string
}

func NewInFlight() *InFlight {
	return &InFlight{held: make(map[string]string)}
}

func (g *InFlight) Acquire(_ context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.held[key]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	g.held[key] = token
	return token, true, nil
}

// Release is a no-op when key is held under another token.
func (g *InFlight) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	if g.held[key] == token {
		delete(g.held, key)
	}
	g.mu.Unlock()
	return nil
}
