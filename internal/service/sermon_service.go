package service

import (
	"context"
	"strings"
	"time"

	"kerygma-studio/internal/domain"

	"github.com/google/uuid"

	apperrors "kerygma-studio/pkg/errors"
)

type sermonService struct {
	repo   domain.SermonRepository
	search domain.SearchService
	logger domain.Logger
}

// NewSermonService creates the sermon library service. search may be nil when
// semantic search is not configured.
func NewSermonService(repo domain.SermonRepository, search domain.SearchService, logger domain.Logger) domain.SermonService {
	return &sermonService{
		repo:   repo,
		search: search,
		logger: logger,
	}
}

func validTheme(theme domain.Theme) bool {
	for _, t := range domain.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

func (s *sermonService) SaveSermon(ctx context.Context, sermon *domain.Sermon) (*domain.Sermon, error) {
	if sermon == nil {
		return nil, apperrors.NewValidationError("sermon is required")
	}
	if strings.TrimSpace(sermon.Title) == "" {
		return nil, apperrors.NewValidationError("sermon title is required")
	}
	if sermon.Theme == "" {
		sermon.Theme = domain.ThemeGeneral
	}
	if !validTheme(sermon.Theme) {
		return nil, apperrors.NewValidationError("unknown sermon theme: " + string(sermon.Theme))
	}

	isNew := sermon.ID == ""
	if isNew {
		sermon.ID = uuid.New().String()
	}
	if sermon.Date == "" {
		sermon.Date = time.Now().Format("02/01/2006")
	}
	if sermon.Tags == nil {
		sermon.Tags = []string{}
	}

	var err error
	if isNew {
		err = s.repo.Create(sermon)
	} else {
		err = s.repo.Update(sermon)
	}
	if err != nil {
		s.logger.Error("Failed to save sermon", err, "sermon_id", sermon.ID)
		return nil, err
	}

	if s.search != nil {
		if err := s.search.IngestSermon(ctx, sermon); err != nil {
			// Search indexing is best effort; the sermon itself is saved.
			s.logger.Warn("Failed to index sermon for search", "sermon_id", sermon.ID, "error", err)
		}
	}

	s.logger.Info("Sermon saved", "sermon_id", sermon.ID, "theme", sermon.Theme)
	return sermon, nil
}

func (s *sermonService) GetSermon(id string) (*domain.Sermon, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("sermon id is required")
	}
	return s.repo.GetByID(id)
}

func (s *sermonService) ListSermons(theme domain.Theme) ([]*domain.Sermon, error) {
	if theme == "" {
		return s.repo.GetAll()
	}
	if !validTheme(theme) {
		return nil, apperrors.NewValidationError("unknown sermon theme: " + string(theme))
	}
	return s.repo.GetByTheme(theme)
}

func (s *sermonService) DeleteSermon(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("sermon id is required")
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if s.search != nil {
		if err := s.search.RemoveSermon(ctx, id); err != nil {
			s.logger.Warn("Failed to drop sermon embeddings", "sermon_id", id, "error", err)
		}
	}
	s.logger.Info("Sermon deleted", "sermon_id", id)
	return nil
}

func (s *sermonService) SearchSermons(query string) ([]*domain.Sermon, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	return s.repo.Search(query)
}
