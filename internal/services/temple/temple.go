// Package temple содержит бизнес-логику для работы с храмами.
package temple

import (
	"context"
	"log/slog"

	"github.com/osam-tourism/tourism-api/internal/models"
)

// TempleRepository определяет методы для работы с храмами в хранилище.
type TempleRepository interface {
	CreateTemple(ctx context.Context, t models.Temple) (int64, error)
	GetTempleByID(ctx context.Context, id int64) (*models.Temple, error)
	ListTemples(ctx context.Context, limit, offset int) ([]*models.Temple, error)
	UpdateTemple(ctx context.Context, t models.Temple) error
	DeleteTemple(ctx context.Context, id int64) error
	SearchTemplesByName(ctx context.Context, name string) ([]*models.Temple, error)
	SearchTemplesByDeity(ctx context.Context, deity string) ([]*models.Temple, error)
	ListActivePilgrimageTemples(ctx context.Context) ([]*models.Temple, error)
	ListFeaturedTemples(ctx context.Context) ([]*models.Temple, error)
}

// TempleService реализует бизнес-логику работы с храмами.
type TempleService struct {
	repo TempleRepository
	log  *slog.Logger
}

// NewTempleService создает новый экземпляр TempleService.
func NewTempleService(repo TempleRepository, log *slog.Logger) *TempleService {
	return &TempleService{
		repo: repo,
		log:  log,
	}
}

// Create создает новый храм. Паломничество и раздача прасада по умолчанию
// считаются действующими.
func (s *TempleService) Create(ctx context.Context, req models.DummyTemple, createdBy int64) (int64, error) {
	pilgrimage := true
	if req.IsActivePilgrimage != nil {
		pilgrimage = *req.IsActivePilgrimage
	}
	prasad := true
	if req.PrasadAvailable != nil {
		prasad = *req.PrasadAvailable
	}
	t := models.Temple{
		Name:               req.Name,
		Deity:              req.Deity,
		Description:        req.Description,
		ArchitecturalStyle: req.ArchitecturalStyle,
		Location:           req.Location,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		AgeYears:           req.AgeYears,
		IsActivePilgrimage: pilgrimage,
		MainFestival:       req.MainFestival,
		PoojaTimings:       req.PoojaTimings,
		EntryFee:           req.EntryFee,
		ParkingAvailable:   req.ParkingAvailable,
		PrasadAvailable:    prasad,
		IsFeatured:         req.IsFeatured,
		CreatedBy:          &createdBy,
	}
	id, err := s.repo.CreateTemple(ctx, t)
	if err != nil {
		return 0, err
	}
	s.log.Info("created temple", slog.Int64("id", id))
	return id, nil
}

// Get возвращает храм по идентификатору.
func (s *TempleService) Get(ctx context.Context, id int64) (*models.Temple, error) {
	return s.repo.GetTempleByID(ctx, id)
}

// List возвращает страницу храмов.
func (s *TempleService) List(ctx context.Context, limit, offset int) ([]*models.Temple, error) {
	return s.repo.ListTemples(ctx, limit, offset)
}

// Update применяет частичное обновление: мутируются только переданные поля.
func (s *TempleService) Update(ctx context.Context, id int64, req models.DummyTempleUpdate) (*models.Temple, error) {
	t, err := s.repo.GetTempleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Deity != nil {
		t.Deity = *req.Deity
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.ArchitecturalStyle != nil {
		t.ArchitecturalStyle = req.ArchitecturalStyle
	}
	if req.Location != nil {
		t.Location = *req.Location
	}
	if req.Latitude != nil {
		t.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		t.Longitude = req.Longitude
	}
	if req.AgeYears != nil {
		t.AgeYears = req.AgeYears
	}
	if req.IsActivePilgrimage != nil {
		t.IsActivePilgrimage = *req.IsActivePilgrimage
	}
	if req.MainFestival != nil {
		t.MainFestival = req.MainFestival
	}
	if req.PoojaTimings != nil {
		t.PoojaTimings = req.PoojaTimings
	}
	if req.EntryFee != nil {
		t.EntryFee = req.EntryFee
	}
	if req.ParkingAvailable != nil {
		t.ParkingAvailable = *req.ParkingAvailable
	}
	if req.PrasadAvailable != nil {
		t.PrasadAvailable = *req.PrasadAvailable
	}
	if req.IsFeatured != nil {
		t.IsFeatured = *req.IsFeatured
	}
	if err := s.repo.UpdateTemple(ctx, *t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete удаляет храм вместе с зависимыми записями.
func (s *TempleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTemple(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted temple", slog.Int64("id", id))
	return nil
}

// ToggleFeatured переключает признак рекомендуемого храма.
func (s *TempleService) ToggleFeatured(ctx context.Context, id int64) (*models.Temple, error) {
	t, err := s.repo.GetTempleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.IsFeatured = !t.IsFeatured
	if err := s.repo.UpdateTemple(ctx, *t); err != nil {
		return nil, err
	}
	return t, nil
}

// SearchByName ищет храмы по подстроке имени.
func (s *TempleService) SearchByName(ctx context.Context, name string) ([]*models.Temple, error) {
	return s.repo.SearchTemplesByName(ctx, name)
}

// SearchByDeity ищет храмы по подстроке имени божества.
func (s *TempleService) SearchByDeity(ctx context.Context, deity string) ([]*models.Temple, error) {
	return s.repo.SearchTemplesByDeity(ctx, deity)
}

// ListActivePilgrimage возвращает храмы с действующим паломничеством.
func (s *TempleService) ListActivePilgrimage(ctx context.Context) ([]*models.Temple, error) {
	return s.repo.ListActivePilgrimageTemples(ctx)
}

// ListFeatured возвращает рекомендуемые храмы.
func (s *TempleService) ListFeatured(ctx context.Context) ([]*models.Temple, error) {
	return s.repo.ListFeaturedTemples(ctx)
}
