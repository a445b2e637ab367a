// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package store holds the client-local image slot: the single most recent
// raw RGB image URL produced by a capture or upload. Writes are
// last-write-wins; a slot starts empty.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/logging"
)

// SlotKey is the key the slot value is stored under.
const SlotKey = "local_rgb_url"

// Backend names.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// ErrClosed is returned by operations on a closed slot.
var ErrClosed = errors.New("store: slot closed")

// Slot holds at most one image URL.
type Slot interface {
	// Get returns the stored URL. ok is false when the slot is empty.
	Get(ctx context.Context) (url string, ok bool, err error)
	// Set replaces the stored URL.
	Set(ctx context.Context, url string) error
	// Clear empties the slot.
	Clear(ctx context.Context) error
	// Backend names the implementation for logs and metrics.
	Backend() string
	Close() error
}

// Open creates the slot selected by cfg.Backend.
func Open(cfg config.StorageConfig) (Slot, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendMemory:
		logging.Info().Str("backend", BackendMemory).Msg("Image slot opened")
		return NewMemorySlot(), nil
	case BackendBadger:
		return OpenBadgerSlot(cfg.Path)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}

// MemorySlot is a process-local Slot.
type MemorySlot struct {
	mu     sync.RWMutex
	url    string
	set    bool
	closed bool
}

// NewMemorySlot returns an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Get(_ context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	return m.url, m.set, nil
}

func (m *MemorySlot) Set(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.url, m.set = url, true
	return nil
}

func (m *MemorySlot) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.url, m.set = "", false
	return nil
}

func (m *MemorySlot) Backend() string { return BackendMemory }

func (m *MemorySlot) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
