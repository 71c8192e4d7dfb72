// Package season содержит бизнес-логику сезонов и сезонных рекомендаций
// посещения мест.
package season

import (
	"context"
	"log/slog"

	"github.com/osam-tourism/tourism-api/internal/models"
)

// SeasonRepository определяет методы для работы с сезонами в хранилище.
type SeasonRepository interface {
	CreateSeason(ctx context.Context, season models.Season) (int64, error)
	GetSeasonByID(ctx context.Context, id int64) (*models.Season, error)
	ListSeasons(ctx context.Context, limit, offset int) ([]*models.Season, error)
	UpdateSeason(ctx context.Context, season models.Season) error
	DeleteSeason(ctx context.Context, id int64) error
	SearchSeasonsByName(ctx context.Context, name string) ([]*models.Season, error)
	UpsertAvailability(ctx context.Context, a models.SeasonalAvailability) (int64, error)
	ListAvailabilityForPlace(ctx context.Context, placeID int64) ([]*models.SeasonalAvailability, error)
	ListPlacesForSeason(ctx context.Context, seasonID int64) ([]*models.Place, error)
	DeleteAvailability(ctx context.Context, placeID, seasonID int64) error
	GetPlaceByID(ctx context.Context, id int64) (*models.Place, error)
}

// SeasonService реализует бизнес-логику сезонов.
// Сезон может пересекать границу года: month_start > month_end допустимо.
type SeasonService struct {
	repo SeasonRepository
	log  *slog.Logger
}

// NewSeasonService создает новый экземпляр SeasonService.
func NewSeasonService(repo SeasonRepository, log *slog.Logger) *SeasonService {
	return &SeasonService{
		repo: repo,
		log:  log,
	}
}

// Create создает новый сезон. Имя сезона уникально.
func (s *SeasonService) Create(ctx context.Context, req models.DummySeason) (int64, error) {
	season := models.Season{
		Name:                  req.Name,
		MonthStart:            req.MonthStart,
		MonthEnd:              req.MonthEnd,
		TemperatureMinCelsius: req.TemperatureMinCelsius,
		TemperatureMaxCelsius: req.TemperatureMaxCelsius,
		HumidityPercent:       req.HumidityPercent,
		RainfallMM:            req.RainfallMM,
		Description:           req.Description,
	}
	id, err := s.repo.CreateSeason(ctx, season)
	if err != nil {
		return 0, err
	}
	s.log.Info("created season", slog.Int64("id", id), slog.String("name", req.Name))
	return id, nil
}

// Get возвращает сезон по идентификатору.
func (s *SeasonService) Get(ctx context.Context, id int64) (*models.Season, error) {
	return s.repo.GetSeasonByID(ctx, id)
}

// List возвращает страницу сезонов.
func (s *SeasonService) List(ctx context.Context, limit, offset int) ([]*models.Season, error) {
	return s.repo.ListSeasons(ctx, limit, offset)
}

// Update применяет частичное обновление: мутируются только переданные поля.
func (s *SeasonService) Update(ctx context.Context, id int64, req models.DummySeasonUpdate) (*models.Season, error) {
	season, err := s.repo.GetSeasonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		season.Name = *req.Name
	}
	if req.MonthStart != nil {
		season.MonthStart = *req.MonthStart
	}
	if req.MonthEnd != nil {
		season.MonthEnd = *req.MonthEnd
	}
	if req.TemperatureMinCelsius != nil {
		season.TemperatureMinCelsius = req.TemperatureMinCelsius
	}
	if req.TemperatureMaxCelsius != nil {
		season.TemperatureMaxCelsius = req.TemperatureMaxCelsius
	}
	if req.HumidityPercent != nil {
		season.HumidityPercent = req.HumidityPercent
	}
	if req.RainfallMM != nil {
		season.RainfallMM = req.RainfallMM
	}
	if req.Description != nil {
		season.Description = req.Description
	}
	if err := s.repo.UpdateSeason(ctx, *season); err != nil {
		return nil, err
	}
	return season, nil
}

// Delete удаляет сезон вместе с привязками мест.
func (s *SeasonService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSeason(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted season", slog.Int64("id", id))
	return nil
}

// SearchByName ищет сезоны по подстроке имени.
func (s *SeasonService) SearchByName(ctx context.Context, name string) ([]*models.Season, error) {
	return s.repo.SearchSeasonsByName(ctx, name)
}

// SetAvailability создаёт или обновляет рекомендацию посещения места в сезон.
func (s *SeasonService) SetAvailability(ctx context.Context, placeID int64, req models.DummyAvailability) (int64, error) {
	if _, err := s.repo.GetPlaceByID(ctx, placeID); err != nil {
		return 0, err
	}
	if _, err := s.repo.GetSeasonByID(ctx, req.SeasonID); err != nil {
		return 0, err
	}
	a := models.SeasonalAvailability{
		PlaceID:        placeID,
		SeasonID:       req.SeasonID,
		Recommendation: req.Recommendation,
		Notes:          req.Notes,
	}
	return s.repo.UpsertAvailability(ctx, a)
}

// ListAvailabilityForPlace возвращает сезонные рекомендации места.
func (s *SeasonService) ListAvailabilityForPlace(ctx context.Context, placeID int64) ([]*models.SeasonalAvailability, error) {
	if _, err := s.repo.GetPlaceByID(ctx, placeID); err != nil {
		return nil, err
	}
	return s.repo.ListAvailabilityForPlace(ctx, placeID)
}

// ListPlacesForSeason возвращает места, рекомендованные в указанный сезон.
func (s *SeasonService) ListPlacesForSeason(ctx context.Context, seasonID int64) ([]*models.Place, error) {
	if _, err := s.repo.GetSeasonByID(ctx, seasonID); err != nil {
		return nil, err
	}
	return s.repo.ListPlacesForSeason(ctx, seasonID)
}

// RemoveAvailability удаляет привязку места к сезону.
func (s *SeasonService) RemoveAvailability(ctx context.Context, placeID, seasonID int64) error {
	return s.repo.DeleteAvailability(ctx, placeID, seasonID)
}
