package repository

import (
	"encoding/json"
	"fmt"

	"kerygma-studio/internal/domain"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	apperrors "kerygma-studio/pkg/errors"
)

// SupabaseSermonRepository stores sermons in the sermons table.
type SupabaseSermonRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

func NewSupabaseSermonRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseSermonRepository {
	return &SupabaseSermonRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

func (r *SupabaseSermonRepository) client() (*supabase.Client, error) {
	c := r.supabaseClient.DB()
	if c == nil {
		return nil, apperrors.NewStorageError("supabase client not initialized", domain.ErrStorageUnavailable)
	}
	return c, nil
}

func sermonRow(sermon *domain.Sermon) map[string]interface{} {
	tags := sermon.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]interface{}{
		"id":      sermon.ID,
		"title":   sermon.Title,
		"theme":   string(sermon.Theme),
		"content": string(sermon.Content),
		"date":    sermon.Date,
		"tags":    tags,
	}
}

type sermonRecord struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Theme   string   `json:"theme"`
	Content string   `json:"content"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
}

func (rec sermonRecord) toDomain() *domain.Sermon {
	return &domain.Sermon{
		ID:      rec.ID,
		Title:   rec.Title,
		Theme:   domain.Theme(rec.Theme),
		Content: json.RawMessage(rec.Content),
		Date:    rec.Date,
		Tags:    rec.Tags,
	}
}

func (r *SupabaseSermonRepository) Create(sermon *domain.Sermon) error {
	client, err := r.client()
	if err != nil {
		return err
	}
	_, _, err = client.From("sermons").Insert(sermonRow(sermon), false, "", "", "").Execute()
	if err != nil {
		return apperrors.NewStorageError("failed to create sermon", err)
	}
	return nil
}

func (r *SupabaseSermonRepository) GetByID(id string) (*domain.Sermon, error) {
	client, err := r.client()
	if err != nil {
		return nil, err
	}
	resp, _, err := client.From("sermons").Select("*", "", false).Eq("id", id).Limit(1, "").Execute()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to get sermon", err)
	}
	var rows []sermonRecord
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sermon: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrSermonNotFound
	}
	return rows[0].toDomain(), nil
}

func (r *SupabaseSermonRepository) GetAll() ([]*domain.Sermon, error) {
	client, err := r.client()
	if err != nil {
		return nil, err
	}
	resp, _, err := client.From("sermons").
		Select("*", "", false).
		Order("date", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list sermons", err)
	}
	return unmarshalSermons(resp)
}

func (r *SupabaseSermonRepository) GetByTheme(theme domain.Theme) ([]*domain.Sermon, error) {
	client, err := r.client()
	if err != nil {
		return nil, err
	}
	resp, _, err := client.From("sermons").
		Select("*", "", false).
		Eq("theme", string(theme)).
		Order("date", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list sermons by theme", err)
	}
	return unmarshalSermons(resp)
}

func (r *SupabaseSermonRepository) Update(sermon *domain.Sermon) error {
	client, err := r.client()
	if err != nil {
		return err
	}
	_, _, err = client.From("sermons").Update(sermonRow(sermon), "", "").Eq("id", sermon.ID).Execute()
	if err != nil {
		return apperrors.NewStorageError("failed to update sermon", err)
	}
	return nil
}

func (r *SupabaseSermonRepository) Delete(id string) error {
	client, err := r.client()
	if err != nil {
		return err
	}
	_, _, err = client.From("sermons").Delete("", "").Eq("id", id).Execute()
	if err != nil {
		return apperrors.NewStorageError("failed to delete sermon", err)
	}
	return nil
}

func (r *SupabaseSermonRepository) Search(query string) ([]*domain.Sermon, error) {
	client, err := r.client()
	if err != nil {
		return nil, err
	}
	resp, _, err := client.From("sermons").
		Select("*", "", false).
		Ilike("title", "%"+query+"%").
		Order("date", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to search sermons", err)
	}
	return unmarshalSermons(resp)
}

func unmarshalSermons(resp []byte) ([]*domain.Sermon, error) {
	var rows []sermonRecord
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sermons: %w", err)
	}
	sermons := make([]*domain.Sermon, len(rows))
	for i, rec := range rows {
		sermons[i] = rec.toDomain()
	}
	return sermons, nil
}
