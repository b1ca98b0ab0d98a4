package service

import "sync"

// userLocks serializes event processing per user. Activities for different
// users proceed in parallel; two rapid events for the same user queue behind
// one mutex so award sums and unlock uniqueness hold.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the user's mutex and returns it for unlocking.
func (l *userLocks) acquire(userID string) *sync.Mutex {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock
}
