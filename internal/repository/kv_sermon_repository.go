package repository

import (
	"encoding/json"
	"strings"
	"sync"

	"kerygma-studio/internal/domain"

	apperrors "kerygma-studio/pkg/errors"
)

const sermonsKey = "kerygma_sermons"

// KVSermonRepository stores the whole sermon library as one serialized list
// in the state store. It is the fallback when Supabase is not configured and
// keeps the library small enough for single-user use.
type KVSermonRepository struct {
	store  domain.KeyValueStore
	logger domain.Logger
	mu     sync.Mutex
}

func NewKVSermonRepository(store domain.KeyValueStore, logger domain.Logger) *KVSermonRepository {
	return &KVSermonRepository{store: store, logger: logger}
}

func (r *KVSermonRepository) load() ([]*domain.Sermon, error) {
	raw, ok, err := r.store.Get(sermonsKey)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read sermons", err)
	}
	if !ok || raw == "" {
		return []*domain.Sermon{}, nil
	}
	var sermons []*domain.Sermon
	if err := json.Unmarshal([]byte(raw), &sermons); err != nil {
		r.logger.Warn("Stored sermons are unreadable, starting empty", "error", err)
		return []*domain.Sermon{}, nil
	}
	return sermons, nil
}

func (r *KVSermonRepository) save(sermons []*domain.Sermon) error {
	raw, err := json.Marshal(sermons)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize sermons", err)
	}
	if err := r.store.Set(sermonsKey, string(raw)); err != nil {
		return apperrors.NewStorageError("failed to persist sermons", err)
	}
	return nil
}

func (r *KVSermonRepository) Create(sermon *domain.Sermon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sermons, err := r.load()
	if err != nil {
		return err
	}
	sermons = append([]*domain.Sermon{sermon}, sermons...)
	return r.save(sermons)
}

func (r *KVSermonRepository) GetByID(id string) (*domain.Sermon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sermons, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, s := range sermons {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrSermonNotFound
}

func (r *KVSermonRepository) GetAll() ([]*domain.Sermon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *KVSermonRepository) GetByTheme(theme domain.Theme) ([]*domain.Sermon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sermons, err := r.load()
	if err != nil {
		return nil, err
	}
	matched := []*domain.Sermon{}
	for _, s := range sermons {
		if s.Theme == theme {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (r *KVSermonRepository) Update(sermon *domain.Sermon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sermons, err := r.load()
	if err != nil {
		return err
	}
	for i, s := range sermons {
		if s.ID == sermon.ID {
			sermons[i] = sermon
			return r.save(sermons)
		}
	}
	return domain.ErrSermonNotFound
}

func (r *KVSermonRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sermons, err := r.load()
	if err != nil {
		return err
	}
	kept := sermons[:0]
	removed := false
	for _, s := range sermons {
		if s.ID == id {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	if !removed {
		return nil
	}
	return r.save(kept)
}

func (r *KVSermonRepository) Search(query string) ([]*domain.Sermon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sermons, err := r.load()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	matched := []*domain.Sermon{}
	for _, s := range sermons {
		if strings.Contains(strings.ToLower(s.Title), needle) {
			matched = append(matched, s)
			continue
		}
		for _, tag := range s.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched, nil
}
