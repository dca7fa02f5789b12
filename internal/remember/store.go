// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package remember persists the "remember me" identifier across page sessions.

The store is a single process-wide slot holding at most one identifier under a
fixed key. Values are stored as plain text, matching the page's existing
behaviour; nothing here encrypts.

Implementations:

  - [MemoryStore]: process memory only.
  - [RedisStore]: survives restarts and is shared by every API replica.
  - [FallbackStore]: wraps a primary store and silently degrades to memory
    when the primary is unavailable.
*/
package remember

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable marks an environment failure of the backing store.
var ErrUnavailable = errors.New("remember: store unavailable")

// # Contract

// Store is the remembered-identity slot.
type Store interface {

	/*
		Get returns the remembered identifier.

		Returns:
		  - string: The identifier ("" when absent)
		  - bool: Whether an identifier is remembered
		  - error: ErrUnavailable on backend failures
	*/
	Get(ctx context.Context) (string, bool, error)

	// Set replaces the remembered identifier.
	Set(ctx context.Context, identifier string) error

	// Clear forgets the remembered identifier. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
}

// # In-Memory Store

// MemoryStore keeps the slot in process memory.
type MemoryStore struct {
	mu         sync.RWMutex
	identifier string
	present    bool
}

// NewMemoryStore creates an empty in-memory slot.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get implements [Store].
func (store *MemoryStore) Get(_ context.Context) (string, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.identifier, store.present, nil
}

// Set implements [Store].
func (store *MemoryStore) Set(_ context.Context, identifier string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.identifier = identifier
	store.present = true
	return nil
}

// Clear implements [Store].
func (store *MemoryStore) Clear(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.identifier = ""
	store.present = false
	return nil
}
