// Package lockmap serializes conflicting mutations per entity id. Two
// harvests writing the same storage take the same lock and cannot both pass
// one capacity check; operations on different entities never contend.
package lockmap

import "sync"

type LockMap struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func New() *LockMap {
	return &LockMap{locks: make(map[uint]*sync.Mutex)}
}

func (l *LockMap) Lock(id uint) {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()
	m.Lock()
}

func (l *LockMap) Unlock(id uint) {
	l.mu.Lock()
	m := l.locks[id]
	l.mu.Unlock()
	if m != nil {
		m.Unlock()
	}
}
