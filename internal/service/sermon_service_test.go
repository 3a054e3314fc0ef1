package service

import (
	"context"
	"errors"
	"testing"

	"kerygma-studio/internal/domain"

	apperrors "kerygma-studio/pkg/errors"
)

// fakeSermonRepo is an in-memory SermonRepository for service tests.
type fakeSermonRepo struct {
	sermons map[string]*domain.Sermon
	order   []string
}

func newFakeSermonRepo() *fakeSermonRepo {
	return &fakeSermonRepo{sermons: make(map[string]*domain.Sermon)}
}

func (r *fakeSermonRepo) Create(sermon *domain.Sermon) error {
	r.sermons[sermon.ID] = sermon
	r.order = append(r.order, sermon.ID)
	return nil
}

func (r *fakeSermonRepo) GetByID(id string) (*domain.Sermon, error) {
	s, ok := r.sermons[id]
	if !ok {
		return nil, domain.ErrSermonNotFound
	}
	return s, nil
}

func (r *fakeSermonRepo) GetAll() ([]*domain.Sermon, error) {
	out := make([]*domain.Sermon, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sermons[id])
	}
	return out, nil
}

func (r *fakeSermonRepo) GetByTheme(theme domain.Theme) ([]*domain.Sermon, error) {
	out := []*domain.Sermon{}
	for _, id := range r.order {
		if r.sermons[id].Theme == theme {
			out = append(out, r.sermons[id])
		}
	}
	return out, nil
}

func (r *fakeSermonRepo) Update(sermon *domain.Sermon) error {
	if _, ok := r.sermons[sermon.ID]; !ok {
		return domain.ErrSermonNotFound
	}
	r.sermons[sermon.ID] = sermon
	return nil
}

func (r *fakeSermonRepo) Delete(id string) error {
	delete(r.sermons, id)
	return nil
}

func (r *fakeSermonRepo) Search(query string) ([]*domain.Sermon, error) {
	return r.GetAll()
}

// fakeSearchService records ingest and removal calls.
type fakeSearchService struct {
	ingested []string
	removed  []string
	err      error
}

func (f *fakeSearchService) IngestSermon(ctx context.Context, sermon *domain.Sermon) error {
	if f.err != nil {
		return f.err
	}
	f.ingested = append(f.ingested, sermon.ID)
	return nil
}

func (f *fakeSearchService) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	return nil, nil
}

func (f *fakeSearchService) RemoveSermon(ctx context.Context, sermonID string) error {
	f.removed = append(f.removed, sermonID)
	return nil
}

func TestSaveSermon_AssignsIDAndDefaults(t *testing.T) {
	repo := newFakeSermonRepo()
	svc := NewSermonService(repo, nil, NewMockServiceLogger())

	saved, err := svc.SaveSermon(context.Background(), &domain.Sermon{Title: "A graça"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected generated id")
	}
	if saved.Theme != domain.ThemeGeneral {
		t.Fatalf("expected default theme, got %s", saved.Theme)
	}
	if saved.Date == "" {
		t.Fatalf("expected date set")
	}
	if _, err := svc.GetSermon(saved.ID); err != nil {
		t.Fatalf("expected sermon retrievable: %v", err)
	}
}

func TestSaveSermon_RequiresTitle(t *testing.T) {
	svc := NewSermonService(newFakeSermonRepo(), nil, NewMockServiceLogger())

	_, err := svc.SaveSermon(context.Background(), &domain.Sermon{Title: "   "})
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveSermon_RejectsUnknownTheme(t *testing.T) {
	svc := NewSermonService(newFakeSermonRepo(), nil, NewMockServiceLogger())

	_, err := svc.SaveSermon(context.Background(), &domain.Sermon{Title: "x", Theme: "Inventado"})
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveSermon_UpdatesExisting(t *testing.T) {
	repo := newFakeSermonRepo()
	svc := NewSermonService(repo, nil, NewMockServiceLogger())

	saved, err := svc.SaveSermon(context.Background(), &domain.Sermon{Title: "v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved.Title = "v2"
	if _, err := svc.SaveSermon(context.Background(), saved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetSermon(saved.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "v2" {
		t.Fatalf("expected updated title, got %q", got.Title)
	}
	all, _ := svc.ListSermons("")
	if len(all) != 1 {
		t.Fatalf("expected single sermon after update, got %d", len(all))
	}
}

func TestSaveSermon_IndexesForSearch(t *testing.T) {
	repo := newFakeSermonRepo()
	search := &fakeSearchService{}
	svc := NewSermonService(repo, search, NewMockServiceLogger())

	saved, err := svc.SaveSermon(context.Background(), &domain.Sermon{Title: "indexado"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(search.ingested) != 1 || search.ingested[0] != saved.ID {
		t.Fatalf("expected sermon indexed, got %v", search.ingested)
	}
}

func TestSaveSermon_IndexFailureIsNotFatal(t *testing.T) {
	repo := newFakeSermonRepo()
	search := &fakeSearchService{err: errors.New("vertex down")}
	svc := NewSermonService(repo, search, NewMockServiceLogger())

	saved, err := svc.SaveSermon(context.Background(), &domain.Sermon{Title: "salvo mesmo assim"})
	if err != nil {
		t.Fatalf("expected save to succeed despite index failure: %v", err)
	}
	if _, err := svc.GetSermon(saved.ID); err != nil {
		t.Fatalf("expected sermon stored: %v", err)
	}
}

func TestDeleteSermon_DropsEmbeddings(t *testing.T) {
	repo := newFakeSermonRepo()
	search := &fakeSearchService{}
	svc := NewSermonService(repo, search, NewMockServiceLogger())

	saved, _ := svc.SaveSermon(context.Background(), &domain.Sermon{Title: "apagar"})
	if err := svc.DeleteSermon(context.Background(), saved.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(search.removed) != 1 || search.removed[0] != saved.ID {
		t.Fatalf("expected embeddings dropped, got %v", search.removed)
	}
	if _, err := svc.GetSermon(saved.ID); !errors.Is(err, domain.ErrSermonNotFound) {
		t.Fatalf("expected sermon gone, got %v", err)
	}
}

func TestListSermons_ThemeFilter(t *testing.T) {
	repo := newFakeSermonRepo()
	svc := NewSermonService(repo, nil, NewMockServiceLogger())

	svc.SaveSermon(context.Background(), &domain.Sermon{Title: "a", Theme: domain.ThemeDoctrine})
	svc.SaveSermon(context.Background(), &domain.Sermon{Title: "b", Theme: domain.ThemeOffertory})

	doctrine, err := svc.ListSermons(domain.ThemeDoctrine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doctrine) != 1 || doctrine[0].Title != "a" {
		t.Fatalf("unexpected filter result %v", doctrine)
	}

	if _, err := svc.ListSermons("Desconhecido"); !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error for unknown theme, got %v", err)
	}
}
