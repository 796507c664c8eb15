package main

import (
	"errors"
	"testing"
	"time"

	"github.com/Simplici0/breakeven/internal/cache"
)

type closingStore struct {
	*cache.Memory
	closed int
	err    error
}

func (c *closingStore) Close() error {
	c.closed++
	return c.err
}

func TestCloseStore(t *testing.T) {
	store := &closingStore{Memory: cache.NewMemory(time.Minute, 0)}
	closeStore(store)
	if store.closed != 1 {
		t.Fatalf("expected store to be closed once, got %d", store.closed)
	}

	failing := &closingStore{Memory: cache.NewMemory(time.Minute, 0), err: errors.New("boom")}
	closeStore(failing)
	if failing.closed != 1 {
		t.Fatalf("expected failing store to be closed once, got %d", failing.closed)
	}

	// Stores without connections are left alone.
	closeStore(cache.NewMemory(time.Minute, 0))
}
