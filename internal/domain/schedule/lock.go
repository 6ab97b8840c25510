package schedule

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrInteractionActive = errors.New("another drag or resize is already active")

// InteractionLock makes the one-active-interaction rule explicit: the
// UI must hold the token to start a drag or resize, and hands it back
// on completion or cancel. Only one interaction may run system-wide.
type InteractionLock struct {
	mu    sync.Mutex
	token string
}

// Acquire claims the lock, returning the owner token.
func (l *InteractionLock) Acquire() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.token != "" {
		return "", ErrInteractionActive
	}
	l.token = uuid.NewString()
	return l.token, nil
}

// Release frees the lock if token is the current owner. Releasing with
// a stale token is a no-op, so double release is harmless.
func (l *InteractionLock) Release(token string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if token == "" || token != l.token {
		return false
	}
	l.token = ""
	return true
}

func (l *InteractionLock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.token != ""
}
