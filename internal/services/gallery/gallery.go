// Package gallery содержит бизнес-логику для работы с галереями
// и их изображениями.
package gallery

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

// Ключи кеша горячих выборок.
const (
	cacheKeyFeatured = "galleries:featured"
	cacheKeyPopular  = "galleries:popular"
	cacheTTL         = 5 * time.Minute
)

// Параметры выборки популярных галерей по умолчанию: порог просмотров
// и лимит, если клиент их не указал.
const (
	DefaultPopularMinViews = 100
	DefaultPopularLimit    = 10
)

// GalleryRepository определяет методы для работы с галереями в хранилище.
type GalleryRepository interface {
	CreateGallery(ctx context.Context, g models.Gallery) (int64, error)
	GetGalleryByID(ctx context.Context, id int64) (*models.Gallery, error)
	GetGalleryAndBumpViews(ctx context.Context, id int64) (*models.Gallery, error)
	ListGalleries(ctx context.Context, limit, offset int) ([]*models.Gallery, error)
	UpdateGallery(ctx context.Context, g models.Gallery) error
	DeleteGallery(ctx context.Context, id int64) error
	SearchGalleriesByName(ctx context.Context, name string) ([]*models.Gallery, error)
	FilterGalleriesByType(ctx context.Context, galleryType string) ([]*models.Gallery, error)
	ListFeaturedGalleries(ctx context.Context) ([]*models.Gallery, error)
	ListPopularGalleries(ctx context.Context, minViews, limit int) ([]*models.Gallery, error)
	ListGalleriesForOwner(ctx context.Context, ref models.OwnerRef) ([]*models.Gallery, error)
	AddGalleryImage(ctx context.Context, img models.GalleryImage) (int64, error)
	ListGalleryImages(ctx context.Context, galleryID int64) ([]*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, galleryID, imageID int64) error
	ReorderGalleryImages(ctx context.Context, galleryID int64, order map[int64]int) error
	SetFeaturedGalleryImage(ctx context.Context, galleryID, imageID int64) error
	GetFeaturedGalleryImage(ctx context.Context, galleryID int64) (*models.GalleryImage, error)
}

// OwnerRepository проверяет существование объекта контента, к которому
// привязывается галерея.
type OwnerRepository interface {
	GetPlaceByID(ctx context.Context, id int64) (*models.Place, error)
	GetTempleByID(ctx context.Context, id int64) (*models.Temple, error)
	GetSiteByID(ctx context.Context, id int64) (*models.MythologicalSite, error)
	GetEventByID(ctx context.Context, id int64) (*models.Event, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// GalleryService реализует бизнес-логику работы с галереями.
type GalleryService struct {
	repo   GalleryRepository
	owners OwnerRepository
	cache  Cache
	log    *slog.Logger
}

// NewGalleryService создает новый экземпляр GalleryService.
func NewGalleryService(repo GalleryRepository, owners OwnerRepository, cache Cache, log *slog.Logger) *GalleryService {
	return &GalleryService{
		repo:   repo,
		owners: owners,
		cache:  cache,
		log:    log,
	}
}

func (s *GalleryService) invalidateHotLists() {
	for _, key := range []string{cacheKeyFeatured, cacheKeyPopular} {
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
		}
	}
}

// checkOwnerExists убеждается, что объект контента, на который ссылается
// галерея, существует.
func (s *GalleryService) checkOwnerExists(ctx context.Context, ref models.OwnerRef) error {
	var err error
	switch ref.Kind {
	case models.OwnerPlace:
		_, err = s.owners.GetPlaceByID(ctx, ref.ID)
	case models.OwnerTemple:
		_, err = s.owners.GetTempleByID(ctx, ref.ID)
	case models.OwnerSite:
		_, err = s.owners.GetSiteByID(ctx, ref.ID)
	case models.OwnerEvent:
		_, err = s.owners.GetEventByID(ctx, ref.ID)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return models.NewValidationError("owner", "referenced content does not exist")
	}
	return err
}

// Create создает новую галерею, проверяя, что она привязана ровно к одному
// существующему объекту контента.
func (s *GalleryService) Create(ctx context.Context, req models.DummyGallery, createdBy int64) (int64, error) {
	ref, verr := models.OwnerRefFromIDs(req.PlaceID, req.TempleID, req.SiteID, req.EventID)
	if verr != nil {
		return 0, verr
	}
	if err := s.checkOwnerExists(ctx, ref); err != nil {
		return 0, err
	}
	placeID, templeID, siteID, eventID := ref.IDs()
	g := models.Gallery{
		Name:        req.Name,
		Description: req.Description,
		GalleryType: req.GalleryType,
		IsFeatured:  req.IsFeatured,
		PlaceID:     placeID,
		TempleID:    templeID,
		SiteID:      siteID,
		EventID:     eventID,
		CreatedBy:   &createdBy,
	}
	id, err := s.repo.CreateGallery(ctx, g)
	if err != nil {
		return 0, err
	}
	s.log.Info("created gallery", slog.Int64("id", id), slog.String("owner", ref.Kind))
	s.invalidateHotLists()
	return id, nil
}

// Get возвращает галерею по идентификатору, увеличивая счётчик просмотров.
func (s *GalleryService) Get(ctx context.Context, id int64) (*models.Gallery, error) {
	return s.repo.GetGalleryAndBumpViews(ctx, id)
}

// List возвращает страницу галерей, новые первыми.
func (s *GalleryService) List(ctx context.Context, limit, offset int) ([]*models.Gallery, error) {
	return s.repo.ListGalleries(ctx, limit, offset)
}

// Update применяет частичное обновление. Привязка к объекту контента
// неизменяема после создания.
func (s *GalleryService) Update(ctx context.Context, id int64, req models.DummyGalleryUpdate) (*models.Gallery, error) {
	g, err := s.repo.GetGalleryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Description != nil {
		g.Description = req.Description
	}
	if req.GalleryType != nil {
		g.GalleryType = *req.GalleryType
	}
	if req.IsFeatured != nil {
		g.IsFeatured = *req.IsFeatured
	}
	if err := s.repo.UpdateGallery(ctx, *g); err != nil {
		return nil, err
	}
	s.invalidateHotLists()
	return g, nil
}

// Delete удаляет галерею вместе со всеми её изображениями.
func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteGallery(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted gallery", slog.Int64("id", id))
	s.invalidateHotLists()
	return nil
}

// SearchByName ищет галереи по подстроке имени.
func (s *GalleryService) SearchByName(ctx context.Context, name string) ([]*models.Gallery, error) {
	return s.repo.SearchGalleriesByName(ctx, name)
}

// FilterByType возвращает галереи указанного типа.
func (s *GalleryService) FilterByType(ctx context.Context, galleryType string) ([]*models.Gallery, error) {
	if err := models.ValidateEnum("gallery_type", galleryType, models.ValidGalleryTypes, false); err != nil {
		return nil, err
	}
	return s.repo.FilterGalleriesByType(ctx, galleryType)
}

// ListFeatured возвращает рекомендуемые галереи, используя кеш.
func (s *GalleryService) ListFeatured(ctx context.Context) ([]*models.Gallery, error) {
	var cached []*models.Gallery
	found, err := s.cache.Get(cacheKeyFeatured, &cached)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKeyFeatured), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}
	galleries, err := s.repo.ListFeaturedGalleries(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKeyFeatured, galleries, cacheTTL); err != nil {
		s.log.Warn("failed to cache galleries", slog.String("key", cacheKeyFeatured), slog.Any("err", err))
	}
	return galleries, nil
}

// ListPopular возвращает галереи, набравшие не меньше minViews просмотров,
// по убыванию счётчика. Кешируется только выборка с параметрами по умолчанию.
func (s *GalleryService) ListPopular(ctx context.Context, minViews, limit int) ([]*models.Gallery, error) {
	if minViews < 0 {
		minViews = DefaultPopularMinViews
	}
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if minViews != DefaultPopularMinViews || limit != DefaultPopularLimit {
		return s.repo.ListPopularGalleries(ctx, minViews, limit)
	}
	var cached []*models.Gallery
	found, err := s.cache.Get(cacheKeyPopular, &cached)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKeyPopular), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}
	galleries, err := s.repo.ListPopularGalleries(ctx, minViews, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKeyPopular, galleries, cacheTTL); err != nil {
		s.log.Warn("failed to cache galleries", slog.String("key", cacheKeyPopular), slog.Any("err", err))
	}
	return galleries, nil
}

// ToggleFeatured переключает признак рекомендуемой галереи.
func (s *GalleryService) ToggleFeatured(ctx context.Context, id int64) (*models.Gallery, error) {
	g, err := s.repo.GetGalleryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g.IsFeatured = !g.IsFeatured
	if err := s.repo.UpdateGallery(ctx, *g); err != nil {
		return nil, err
	}
	s.invalidateHotLists()
	return g, nil
}

// Statistics возвращает счётчики галереи: число изображений, просмотры
// самой галереи и суммарные просмотры её изображений.
func (s *GalleryService) Statistics(ctx context.Context, id int64) (*models.GalleryStatistics, error) {
	g, err := s.repo.GetGalleryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.repo.ListGalleryImages(ctx, id)
	if err != nil {
		return nil, err
	}
	var totalImageViews int64
	for _, img := range images {
		totalImageViews += img.ViewCount
	}
	return &models.GalleryStatistics{
		GalleryID:       g.ID,
		Name:            g.Name,
		Type:            g.GalleryType,
		ImageCount:      len(images),
		ViewCount:       g.ViewCount,
		TotalImageViews: totalImageViews,
		IsFeatured:      g.IsFeatured,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}, nil
}

// Summary собирает сводную карточку галереи. Отсутствие заглавного
// изображения — не ошибка: блок просто остаётся пустым.
func (s *GalleryService) Summary(ctx context.Context, id int64) (*models.GallerySummary, error) {
	g, err := s.repo.GetGalleryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.repo.ListGalleryImages(ctx, id)
	if err != nil {
		return nil, err
	}
	var featured *models.GalleryFeaturedImage
	img, err := s.repo.GetFeaturedGalleryImage(ctx, id)
	switch {
	case err == nil:
		featured = &models.GalleryFeaturedImage{
			ID:        img.ID,
			URL:       img.ImageURL,
			Thumbnail: img.ThumbnailURL,
		}
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}
	return &models.GallerySummary{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Type:        g.GalleryType,
		IsFeatured:  g.IsFeatured,
		ViewCount:   g.ViewCount,
		Images: models.GalleryImagesInfo{
			Total:         len(images),
			FeaturedImage: featured,
		},
		ContentAssociation: models.GalleryOwnerInfo{
			PlaceID:  g.PlaceID,
			TempleID: g.TempleID,
			SiteID:   g.SiteID,
			EventID:  g.EventID,
		},
	}, nil
}

// ListForOwner возвращает галереи, привязанные к указанному объекту контента.
func (s *GalleryService) ListForOwner(ctx context.Context, ref models.OwnerRef) ([]*models.Gallery, error) {
	return s.repo.ListGalleriesForOwner(ctx, ref)
}

// AddImage добавляет изображение в существующую галерею.
func (s *GalleryService) AddImage(ctx context.Context, galleryID int64, req models.DummyGalleryImage) (int64, error) {
	if _, err := s.repo.GetGalleryByID(ctx, galleryID); err != nil {
		return 0, err
	}
	img := models.GalleryImage{
		GalleryID:    galleryID,
		ImageURL:     req.ImageURL,
		ThumbnailURL: req.ThumbnailURL,
		Title:        req.Title,
		Caption:      req.Caption,
		Photographer: req.Photographer,
		ImageOrder:   req.ImageOrder,
	}
	id, err := s.repo.AddGalleryImage(ctx, img)
	if err != nil {
		return 0, err
	}
	s.log.Info("added gallery image", slog.Int64("gallery_id", galleryID), slog.Int64("image_id", id))
	return id, nil
}

// ListImages возвращает изображения галереи в порядке, заданном image_order.
func (s *GalleryService) ListImages(ctx context.Context, galleryID int64) ([]*models.GalleryImage, error) {
	if _, err := s.repo.GetGalleryByID(ctx, galleryID); err != nil {
		return nil, err
	}
	return s.repo.ListGalleryImages(ctx, galleryID)
}

// DeleteImage удаляет изображение из галереи.
func (s *GalleryService) DeleteImage(ctx context.Context, galleryID, imageID int64) error {
	return s.repo.DeleteGalleryImage(ctx, galleryID, imageID)
}

// Reorder меняет порядок перечисленных изображений галереи. Неперечисленные
// изображения сохраняют прежний порядок.
func (s *GalleryService) Reorder(ctx context.Context, galleryID int64, req models.DummyReorder) error {
	if _, err := s.repo.GetGalleryByID(ctx, galleryID); err != nil {
		return err
	}
	return s.repo.ReorderGalleryImages(ctx, galleryID, req.Order)
}

// SetFeaturedImage делает изображение заглавным, снимая флаг с прежнего.
func (s *GalleryService) SetFeaturedImage(ctx context.Context, galleryID, imageID int64) error {
	if _, err := s.repo.GetGalleryByID(ctx, galleryID); err != nil {
		return err
	}
	return s.repo.SetFeaturedGalleryImage(ctx, galleryID, imageID)
}

// GetFeaturedImage возвращает заглавное изображение галереи.
func (s *GalleryService) GetFeaturedImage(ctx context.Context, galleryID int64) (*models.GalleryImage, error) {
	if _, err := s.repo.GetGalleryByID(ctx, galleryID); err != nil {
		return nil, err
	}
	return s.repo.GetFeaturedGalleryImage(ctx, galleryID)
}
