// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remember

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// FallbackStore mirrors every write into memory and serves reads from memory
// whenever the primary store fails. Callers never see primary errors.
//
// A write the primary missed marks the memory copy as newer; it is replayed
// into the primary on the next call that reaches it.
type FallbackStore struct {
	primary  Store
	memory   *MemoryStore
	logger   *slog.Logger
	degraded atomic.Bool

	// mu serializes primary access so a replay never races a fresh write.
	mu    sync.Mutex
	dirty bool
}

// NewFallbackStore wraps primary. A nil primary means memory-only operation.
func NewFallbackStore(primary Store, logger *slog.Logger) *FallbackStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackStore{primary: primary, memory: NewMemoryStore(), logger: logger}
}

// Degraded reports whether the last primary call failed.
func (store *FallbackStore) Degraded() bool {
	return store.primary == nil || store.degraded.Load()
}

// Get implements [Store].
func (store *FallbackStore) Get(ctx context.Context) (string, bool, error) {
	if store.primary == nil {
		return store.memory.Get(ctx)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if store.dirty {
		if err := store.replayLocked(ctx); err != nil {
			store.degrade("replay", err)
		}
		return store.memory.Get(ctx)
	}

	identifier, ok, err := store.primary.Get(ctx)
	if err != nil {
		store.degrade("get", err)
		return store.memory.Get(ctx)
	}
	store.recovered()

	// Keep memory on the last value the primary served.
	if ok {
		_ = store.memory.Set(ctx, identifier)
	} else {
		_ = store.memory.Clear(ctx)
	}
	return identifier, ok, nil
}

// Set implements [Store].
func (store *FallbackStore) Set(ctx context.Context, identifier string) error {
	_ = store.memory.Set(ctx, identifier)

	if store.primary == nil {
		return nil
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	store.settleLocked("set", store.primary.Set(ctx, identifier))
	return nil
}

// Clear implements [Store].
func (store *FallbackStore) Clear(ctx context.Context) error {
	_ = store.memory.Clear(ctx)

	if store.primary == nil {
		return nil
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	store.settleLocked("clear", store.primary.Clear(ctx))
	return nil
}

// replayLocked copies the memory value into the primary. Callers hold store.mu.
func (store *FallbackStore) replayLocked(ctx context.Context) error {
	identifier, ok, _ := store.memory.Get(ctx)

	var err error
	if ok {
		err = store.primary.Set(ctx, identifier)
	} else {
		err = store.primary.Clear(ctx)
	}
	if err != nil {
		return err
	}

	store.dirty = false
	store.recovered()
	store.logger.Info("remembered_identity_replayed", slog.Bool("present", ok))
	return nil
}

// settleLocked records the result of a primary write. Callers hold store.mu.
func (store *FallbackStore) settleLocked(operation string, err error) {
	if err != nil {
		store.dirty = true
		store.degrade(operation, err)
		return
	}
	store.dirty = false
	store.recovered()
}

func (store *FallbackStore) degrade(operation string, err error) {
	// Log the transition only, not every failed call.
	if store.degraded.CompareAndSwap(false, true) {
		store.logger.Warn("remembered_identity_store_degraded",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
	}
}

func (store *FallbackStore) recovered() {
	if store.degraded.CompareAndSwap(true, false) {
		store.logger.Info("remembered_identity_store_recovered")
	}
}
