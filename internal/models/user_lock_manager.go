package models

import (
	"sync"
)

type userLock struct {
	mu   sync.Mutex
	refs int // holders plus waiters; guarded by UserLockManager.mapMutex
}

// UserLockManager serializes writes per user.
// Uses per-user locks instead of global lock. An entry lives only while
// someone holds or waits for it.
type UserLockManager struct {
	userLocks map[int64]*userLock // user id -> lock
	mapMutex  sync.Mutex          // protects the map and refs
}

func NewUserLockManager() *UserLockManager {
	return &UserLockManager{
		userLocks: make(map[int64]*userLock),
	}
}

// Lock blocks until userID's lock is held. The returned func releases it.
func (m *UserLockManager) Lock(userID int64) (unlock func()) {
	m.mapMutex.Lock()
	l, ok := m.userLocks[userID]
	if !ok {
		l = &userLock{}
		m.userLocks[userID] = l
	}
	l.refs++
	m.mapMutex.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		m.mapMutex.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.userLocks, userID)
		}
		m.mapMutex.Unlock()
	}
}

// Len reports how many users currently have a lock entry.
func (m *UserLockManager) Len() int {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()
	return len(m.userLocks)
}
