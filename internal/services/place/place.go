// Package place содержит бизнес-логику для работы с туристическими местами
// и кеширование горячих выборок.
package place

import (
	"context"
	"log/slog"
	"time"

	"github.com/osam-tourism/tourism-api/internal/models"
)

// Ключи кеша горячих выборок.
const (
	cacheKeyFeatured = "places:featured"
	cacheKeyPopular  = "places:popular"
	cacheTTL         = 5 * time.Minute
)

// Параметры выборки популярных мест по умолчанию: порог просмотров
// и лимит, если клиент их не указал.
const (
	DefaultPopularMinViews = 100
	DefaultPopularLimit    = 10
)

// PlaceRepository определяет методы для работы с местами в хранилище.
type PlaceRepository interface {
	CreatePlace(ctx context.Context, p models.Place) (int64, error)
	GetPlaceByID(ctx context.Context, id int64) (*models.Place, error)
	GetPlaceAndBumpViews(ctx context.Context, id int64) (*models.Place, error)
	ListPlaces(ctx context.Context, limit, offset int) ([]*models.Place, error)
	UpdatePlace(ctx context.Context, p models.Place) error
	DeletePlace(ctx context.Context, id int64) error
	SearchPlacesByName(ctx context.Context, name string) ([]*models.Place, error)
	SearchPlacesByLocation(ctx context.Context, location string) ([]*models.Place, error)
	FilterPlacesByCategory(ctx context.Context, category string) ([]*models.Place, error)
	FilterPlacesByAccessibility(ctx context.Context, accessibility string) ([]*models.Place, error)
	ListFeaturedPlaces(ctx context.Context) ([]*models.Place, error)
	ListPopularPlaces(ctx context.Context, minViews, limit int) ([]*models.Place, error)
	ListFreePlaces(ctx context.Context) ([]*models.Place, error)
	ListPlacesWithFacilities(ctx context.Context, f models.PlaceFacilityFilter) ([]*models.Place, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// PlaceService реализует бизнес-логику работы с местами.
type PlaceService struct {
	repo  PlaceRepository
	cache Cache
	log   *slog.Logger
}

// NewPlaceService создает новый экземпляр PlaceService.
func NewPlaceService(repo PlaceRepository, cache Cache, log *slog.Logger) *PlaceService {
	return &PlaceService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// invalidateHotLists сбрасывает кеш горячих выборок после любой мутации.
func (s *PlaceService) invalidateHotLists() {
	for _, key := range []string{cacheKeyFeatured, cacheKeyPopular} {
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
		}
	}
}

// Create создает новое место. Валюта платы за вход по умолчанию INR.
func (s *PlaceService) Create(ctx context.Context, req models.DummyPlace, createdBy int64) (int64, error) {
	currency := req.EntryFeeCurrency
	if currency == "" {
		currency = "INR"
	}
	p := models.Place{
		Name:                      req.Name,
		Description:               req.Description,
		Category:                  req.Category,
		Location:                  req.Location,
		Latitude:                  req.Latitude,
		Longitude:                 req.Longitude,
		ElevationMeters:           req.ElevationMeters,
		EntryFee:                  req.EntryFee,
		EntryFeeCurrency:          currency,
		BestTimeToVisit:           req.BestTimeToVisit,
		AverageVisitDurationHours: req.AverageVisitDurationHours,
		Accessibility:             req.Accessibility,
		ParkingAvailable:          req.ParkingAvailable,
		PublicRestrooms:           req.PublicRestrooms,
		FoodNearby:                req.FoodNearby,
		IsFeatured:                req.IsFeatured,
		CreatedBy:                 &createdBy,
	}
	id, err := s.repo.CreatePlace(ctx, p)
	if err != nil {
		return 0, err
	}
	s.log.Info("created place", slog.Int64("id", id))
	s.invalidateHotLists()
	return id, nil
}

// Get возвращает место по идентификатору, увеличивая счётчик просмотров.
func (s *PlaceService) Get(ctx context.Context, id int64) (*models.Place, error) {
	return s.repo.GetPlaceAndBumpViews(ctx, id)
}

// List возвращает страницу мест.
func (s *PlaceService) List(ctx context.Context, limit, offset int) ([]*models.Place, error) {
	return s.repo.ListPlaces(ctx, limit, offset)
}

// Update применяет частичное обновление: мутируются только переданные поля,
// остальные сохраняют текущие значения.
func (s *PlaceService) Update(ctx context.Context, id int64, req models.DummyPlaceUpdate) (*models.Place, error) {
	p, err := s.repo.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Latitude != nil {
		p.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = req.Longitude
	}
	if req.ElevationMeters != nil {
		p.ElevationMeters = req.ElevationMeters
	}
	if req.EntryFee != nil {
		p.EntryFee = req.EntryFee
	}
	if req.EntryFeeCurrency != nil {
		p.EntryFeeCurrency = *req.EntryFeeCurrency
	}
	if req.BestTimeToVisit != nil {
		p.BestTimeToVisit = req.BestTimeToVisit
	}
	if req.AverageVisitDurationHours != nil {
		p.AverageVisitDurationHours = req.AverageVisitDurationHours
	}
	if req.Accessibility != nil {
		p.Accessibility = req.Accessibility
	}
	if req.ParkingAvailable != nil {
		p.ParkingAvailable = *req.ParkingAvailable
	}
	if req.PublicRestrooms != nil {
		p.PublicRestrooms = *req.PublicRestrooms
	}
	if req.FoodNearby != nil {
		p.FoodNearby = *req.FoodNearby
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	if err := s.repo.UpdatePlace(ctx, *p); err != nil {
		return nil, err
	}
	s.invalidateHotLists()
	return p, nil
}

// Delete удаляет место вместе с зависимыми записями.
func (s *PlaceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeletePlace(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted place", slog.Int64("id", id))
	s.invalidateHotLists()
	return nil
}

// ToggleFeatured переключает признак рекомендуемого места.
func (s *PlaceService) ToggleFeatured(ctx context.Context, id int64) (*models.Place, error) {
	p, err := s.repo.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsFeatured = !p.IsFeatured
	if err := s.repo.UpdatePlace(ctx, *p); err != nil {
		return nil, err
	}
	s.invalidateHotLists()
	return p, nil
}

// SearchByName ищет места по подстроке имени.
func (s *PlaceService) SearchByName(ctx context.Context, name string) ([]*models.Place, error) {
	return s.repo.SearchPlacesByName(ctx, name)
}

// SearchByLocation ищет места по подстроке локации.
func (s *PlaceService) SearchByLocation(ctx context.Context, location string) ([]*models.Place, error) {
	return s.repo.SearchPlacesByLocation(ctx, location)
}

// FilterByCategory возвращает места указанной категории.
func (s *PlaceService) FilterByCategory(ctx context.Context, category string) ([]*models.Place, error) {
	if err := models.ValidateEnum("category", category, models.ValidPlaceCategories, false); err != nil {
		return nil, err
	}
	return s.repo.FilterPlacesByCategory(ctx, category)
}

// FilterByAccessibility возвращает места с указанным уровнем доступности.
func (s *PlaceService) FilterByAccessibility(ctx context.Context, accessibility string) ([]*models.Place, error) {
	if err := models.ValidateEnum("accessibility", accessibility, models.ValidAccessibilityLevels, false); err != nil {
		return nil, err
	}
	return s.repo.FilterPlacesByAccessibility(ctx, accessibility)
}

// ListFeatured возвращает рекомендуемые места, используя кеш.
func (s *PlaceService) ListFeatured(ctx context.Context) ([]*models.Place, error) {
	var cached []*models.Place
	found, err := s.cache.Get(cacheKeyFeatured, &cached)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKeyFeatured), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}
	places, err := s.repo.ListFeaturedPlaces(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKeyFeatured, places, cacheTTL); err != nil {
		s.log.Warn("failed to cache places", slog.String("key", cacheKeyFeatured), slog.Any("err", err))
	}
	return places, nil
}

// ListPopular возвращает места, набравшие не меньше minViews просмотров,
// по убыванию счётчика. Кешируется только выборка с параметрами по умолчанию.
func (s *PlaceService) ListPopular(ctx context.Context, minViews, limit int) ([]*models.Place, error) {
	if minViews < 0 {
		minViews = DefaultPopularMinViews
	}
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if minViews != DefaultPopularMinViews || limit != DefaultPopularLimit {
		return s.repo.ListPopularPlaces(ctx, minViews, limit)
	}
	var cached []*models.Place
	found, err := s.cache.Get(cacheKeyPopular, &cached)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKeyPopular), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}
	places, err := s.repo.ListPopularPlaces(ctx, minViews, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKeyPopular, places, cacheTTL); err != nil {
		s.log.Warn("failed to cache places", slog.String("key", cacheKeyPopular), slog.Any("err", err))
	}
	return places, nil
}

// Summary собирает сводную карточку места. Как и чтение по идентификатору,
// учитывается в счётчике просмотров.
func (s *PlaceService) Summary(ctx context.Context, id int64) (*models.PlaceSummary, error) {
	p, err := s.repo.GetPlaceAndBumpViews(ctx, id)
	if err != nil {
		return nil, err
	}
	fee := 0.0
	if p.EntryFee != nil {
		fee = *p.EntryFee
	}
	return &models.PlaceSummary{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Location:      p.Location,
		Accessibility: p.Accessibility,
		ViewCount:     p.ViewCount,
		IsFeatured:    p.IsFeatured,
		Facilities: models.PlaceFacilities{
			Parking:   p.ParkingAvailable,
			Restrooms: p.PublicRestrooms,
			Food:      p.FoodNearby,
		},
		VisitInfo: models.PlaceVisitInfo{
			DurationHours: p.AverageVisitDurationHours,
			BestSeason:    p.BestTimeToVisit,
			EntryFee:      fee,
			Currency:      p.EntryFeeCurrency,
		},
	}, nil
}

// EntryFeeDisplay возвращает плату за вход с валютой, не трогая счётчик
// просмотров. Пустая валюта заменяется на INR.
func (s *PlaceService) EntryFeeDisplay(ctx context.Context, id int64) (*models.EntryFeeDisplay, error) {
	p, err := s.repo.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	amount := 0.0
	if p.EntryFee != nil {
		amount = *p.EntryFee
	}
	currency := p.EntryFeeCurrency
	if currency == "" {
		currency = "INR"
	}
	return &models.EntryFeeDisplay{
		Amount:   amount,
		Currency: currency,
		IsFree:   amount == 0,
	}, nil
}

// ListFree возвращает бесплатные места.
func (s *PlaceService) ListFree(ctx context.Context) ([]*models.Place, error) {
	return s.repo.ListFreePlaces(ctx)
}

// ListWithFacilities возвращает места со всеми запрошенными удобствами.
func (s *PlaceService) ListWithFacilities(ctx context.Context, f models.PlaceFacilityFilter) ([]*models.Place, error) {
	return s.repo.ListPlacesWithFacilities(ctx, f)
}
