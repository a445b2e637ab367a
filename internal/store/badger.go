// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cubesat-console/internal/logging"
)

const closeTimeout = 10 * time.Second

// BadgerSlot persists the slot in BadgerDB so the CLI and the server can
// share the last captured image across runs.
type BadgerSlot struct {
	db     *badger.DB
	path   string
	mu     sync.Mutex
	closed bool
}

// OpenBadgerSlot opens (or creates) a BadgerDB directory at path.
func OpenBadgerSlot(path string) (*BadgerSlot, error) {
	if path == "" {
		return nil, errors.New("store: badger backend requires a path")
	}
	opts := badger.DefaultOptions(path)
	opts.SyncWrites = true
	opts.Logger = nil
	return openBadger(opts, path)
}

// OpenInMemoryBadgerSlot opens a BadgerDB slot that lives only in memory.
func OpenInMemoryBadgerSlot() (*BadgerSlot, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts, ":memory:")
}

func openBadger(opts badger.Options, path string) (*BadgerSlot, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	logging.Info().Str("backend", BackendBadger).Str("path", path).Msg("Image slot opened")
	return &BadgerSlot{db: db, path: path}, nil
}

func (b *BadgerSlot) checkNotClosed() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return nil
}

func (b *BadgerSlot) Get(_ context.Context) (string, bool, error) {
	if err := b.checkNotClosed(); err != nil {
		return "", false, err
	}
	var url string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(SlotKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			url = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot: %w", err)
	}
	return url, true, nil
}

func (b *BadgerSlot) Set(_ context.Context, url string) error {
	if err := b.checkNotClosed(); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(SlotKey), []byte(url))
	})
	if err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

func (b *BadgerSlot) Clear(_ context.Context) error {
	if err := b.checkNotClosed(); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(SlotKey))
	})
	if err != nil {
		return fmt.Errorf("clear slot: %w", err)
	}
	return nil
}

func (b *BadgerSlot) Backend() string { return BackendBadger }

// Close closes the database, giving up after closeTimeout.
func (b *BadgerSlot) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- b.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		logging.Info().Str("path", b.path).Msg("Image slot closed")
		return nil
	case <-time.After(closeTimeout):
		logging.Warn().Dur("timeout", closeTimeout).Msg("Image slot close timed out")
		return fmt.Errorf("image slot close timeout after %v", closeTimeout)
	}
}
