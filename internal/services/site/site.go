// Package site содержит бизнес-логику для работы с мифологическими объектами.
package site

import (
	"context"
	"log/slog"

	"github.com/osam-tourism/tourism-api/internal/models"
)

// SiteRepository определяет методы для работы с мифологическими объектами в хранилище.
type SiteRepository interface {
	CreateSite(ctx context.Context, m models.MythologicalSite) (int64, error)
	GetSiteByID(ctx context.Context, id int64) (*models.MythologicalSite, error)
	ListSites(ctx context.Context, limit, offset int) ([]*models.MythologicalSite, error)
	UpdateSite(ctx context.Context, m models.MythologicalSite) error
	DeleteSite(ctx context.Context, id int64) error
	SearchSitesByName(ctx context.Context, name string) ([]*models.MythologicalSite, error)
	SearchSitesByMythology(ctx context.Context, mythology string) ([]*models.MythologicalSite, error)
	FilterSitesByAccessibility(ctx context.Context, accessibility string) ([]*models.MythologicalSite, error)
	ListSitesWithGuide(ctx context.Context) ([]*models.MythologicalSite, error)
	ListFeaturedSites(ctx context.Context) ([]*models.MythologicalSite, error)
}

// SiteService реализует бизнес-логику работы с мифологическими объектами.
type SiteService struct {
	repo SiteRepository
	log  *slog.Logger
}

// NewSiteService создает новый экземпляр SiteService.
func NewSiteService(repo SiteRepository, log *slog.Logger) *SiteService {
	return &SiteService{
		repo: repo,
		log:  log,
	}
}

// Create создает новый мифологический объект.
func (s *SiteService) Create(ctx context.Context, req models.DummySite, createdBy int64) (int64, error) {
	m := models.MythologicalSite{
		Name:                 req.Name,
		Mythology:            req.Mythology,
		Description:          req.Description,
		LegendSource:         req.LegendSource,
		HistoricalPeriod:     req.HistoricalPeriod,
		Location:             req.Location,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		CulturalSignificance: req.CulturalSignificance,
		Accessibility:        req.Accessibility,
		GuideAvailable:       req.GuideAvailable,
		BestTimeToVisit:      req.BestTimeToVisit,
		IsFeatured:           req.IsFeatured,
		CreatedBy:            &createdBy,
	}
	id, err := s.repo.CreateSite(ctx, m)
	if err != nil {
		return 0, err
	}
	s.log.Info("created mythological site", slog.Int64("id", id))
	return id, nil
}

// Get возвращает мифологический объект по идентификатору.
func (s *SiteService) Get(ctx context.Context, id int64) (*models.MythologicalSite, error) {
	return s.repo.GetSiteByID(ctx, id)
}

// List возвращает страницу мифологических объектов.
func (s *SiteService) List(ctx context.Context, limit, offset int) ([]*models.MythologicalSite, error) {
	return s.repo.ListSites(ctx, limit, offset)
}

// Update применяет частичное обновление: мутируются только переданные поля.
func (s *SiteService) Update(ctx context.Context, id int64, req models.DummySiteUpdate) (*models.MythologicalSite, error) {
	m, err := s.repo.GetSiteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Mythology != nil {
		m.Mythology = *req.Mythology
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.LegendSource != nil {
		m.LegendSource = req.LegendSource
	}
	if req.HistoricalPeriod != nil {
		m.HistoricalPeriod = req.HistoricalPeriod
	}
	if req.Location != nil {
		m.Location = *req.Location
	}
	if req.Latitude != nil {
		m.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		m.Longitude = req.Longitude
	}
	if req.CulturalSignificance != nil {
		m.CulturalSignificance = req.CulturalSignificance
	}
	if req.Accessibility != nil {
		m.Accessibility = req.Accessibility
	}
	if req.GuideAvailable != nil {
		m.GuideAvailable = *req.GuideAvailable
	}
	if req.BestTimeToVisit != nil {
		m.BestTimeToVisit = req.BestTimeToVisit
	}
	if req.IsFeatured != nil {
		m.IsFeatured = *req.IsFeatured
	}
	if err := s.repo.UpdateSite(ctx, *m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete удаляет мифологический объект вместе с зависимыми записями.
func (s *SiteService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSite(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted mythological site", slog.Int64("id", id))
	return nil
}

// ToggleFeatured переключает признак рекомендуемого объекта.
func (s *SiteService) ToggleFeatured(ctx context.Context, id int64) (*models.MythologicalSite, error) {
	m, err := s.repo.GetSiteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.IsFeatured = !m.IsFeatured
	if err := s.repo.UpdateSite(ctx, *m); err != nil {
		return nil, err
	}
	return m, nil
}

// SearchByName ищет мифологические объекты по подстроке имени.
func (s *SiteService) SearchByName(ctx context.Context, name string) ([]*models.MythologicalSite, error) {
	return s.repo.SearchSitesByName(ctx, name)
}

// SearchByMythology ищет объекты по подстроке названия мифологии.
func (s *SiteService) SearchByMythology(ctx context.Context, mythology string) ([]*models.MythologicalSite, error) {
	return s.repo.SearchSitesByMythology(ctx, mythology)
}

// FilterByAccessibility возвращает объекты с указанным уровнем доступности.
func (s *SiteService) FilterByAccessibility(ctx context.Context, accessibility string) ([]*models.MythologicalSite, error) {
	if err := models.ValidateEnum("accessibility", accessibility, models.ValidAccessibilityLevels, false); err != nil {
		return nil, err
	}
	return s.repo.FilterSitesByAccessibility(ctx, accessibility)
}

// ListWithGuide возвращает объекты, где доступен гид.
func (s *SiteService) ListWithGuide(ctx context.Context) ([]*models.MythologicalSite, error) {
	return s.repo.ListSitesWithGuide(ctx)
}

// ListFeatured возвращает рекомендуемые мифологические объекты.
func (s *SiteService) ListFeatured(ctx context.Context) ([]*models.MythologicalSite, error) {
	return s.repo.ListFeaturedSites(ctx)
}
