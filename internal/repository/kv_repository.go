package repository

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"kerygma-studio/internal/domain"
)

// SupabaseKeyValueStore persists single-user studio state in the
// studio_state table, one row per key.
type SupabaseKeyValueStore struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

func NewSupabaseKeyValueStore(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseKeyValueStore {
	return &SupabaseKeyValueStore{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

func (r *SupabaseKeyValueStore) Get(key string) (string, bool, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return "", false, fmt.Errorf("supabase client not initialized")
	}

	resp, _, err := client.From("studio_state").
		Select("value", "", false).
		Eq("key", key).
		Limit(1, "").
		Execute()
	if err != nil {
		return "", false, fmt.Errorf("failed to read state key %q: %w", key, err)
	}

	var rows []struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(resp, &rows); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal state row: %w", err)
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].Value, true, nil
}

func (r *SupabaseKeyValueStore) Set(key, value string) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"key":        key,
		"value":      value,
		"updated_at": time.Now(),
	}

	// Upsert on key so repeated saves overwrite the single cell.
	_, _, err := client.From("studio_state").Insert(data, true, "key", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to write state key %q: %w", key, err)
	}
	return nil
}

// MemoryKeyValueStore is the in-process fallback used when Supabase is not
// configured. State lives for the lifetime of the process.
type MemoryKeyValueStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{data: make(map[string]string)}
}

func (m *MemoryKeyValueStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKeyValueStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
