package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory keeps entries in process with the same miss and pattern semantics
// as the Redis cache. Values are stored JSON encoded so reads decode a copy.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewMemory() *Memory {
	return &Memory{entries: map[string]entry{}}
}

func (m *Memory) Save(_ context.Context, key string, value any, duration int) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{value: raw, expiresAt: time.Now().Add(time.Second * time.Duration(duration))}

	return nil
}

func (m *Memory) Get(_ context.Context, key string, value any) error {
	m.mu.Lock()
	item, ok := m.entries[key]

	if ok && !time.Now().Before(item.expiresAt) {
		delete(m.entries, key)

		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("failed to get cache value: %w", Nil)
	}

	if err := json.Unmarshal(item.value, value); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)

	return nil
}

// Clear removes every key matching the glob pattern.
func (m *Memory) Clear(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.entries {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return fmt.Errorf("failed to match cache pattern: %w", err)
		}

		if matched {
			delete(m.entries, key)
		}
	}

	return nil
}

