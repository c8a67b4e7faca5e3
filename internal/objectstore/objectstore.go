// Package objectstore abstracts the documents bucket that holds framework
// agreements, result letters, and other files suppliers download.
package objectstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var ErrKeyNotFound = errors.New("objectstore: key not found")

// Object describes a stored document.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Lister is the read-side interface the frontend needs. Production wires an
// S3-backed implementation; tests and local development use Memory.
type Lister interface {
	ListKeys(ctx context.Context, prefix string) ([]Object, error)
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Memory is an in-memory Lister for tests and local development.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string]Object)}
}

// Put stores an object record; it overwrites any existing record for the key.
func (m *Memory) Put(key string, size int64, lastModified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{Key: key, Size: size, LastModified: lastModified}
}

func (m *Memory) ListKeys(_ context.Context, prefix string) ([]Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []Object
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			matched = append(matched, obj)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Key < matched[j].Key })
	return matched, nil
}

func (m *Memory) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.objects[key]; !ok {
		return "", ErrKeyNotFound
	}
	return "https://documents.local/" + key, nil
}
