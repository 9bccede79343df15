package util

import (
	"sync"

	"github.com/google/uuid"
)

// KeyedMutex serializes operations per entity id. Sessions and answers
// are locked independently; two distinct ids never contend.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[uuid.UUID]*entry)}
}

// Lock acquires the mutex for key, blocking while another caller holds it.
func (k *KeyedMutex) Lock(key uuid.UUID) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key and frees it once no caller waits on it.
func (k *KeyedMutex) Unlock(key uuid.UUID) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keylock: unlock of unheld key")
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
