// Package review содержит бизнес-логику для отзывов посетителей
// и их модерации.
package review

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

const dateLayout = "2006-01-02"

// ReviewRepository определяет методы для работы с отзывами в хранилище.
type ReviewRepository interface {
	CreateReview(ctx context.Context, r models.Review) (int64, error)
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	ListReviews(ctx context.Context, limit, offset int) ([]*models.Review, error)
	ListPendingReviews(ctx context.Context) ([]*models.Review, error)
	ListReviewsForOwner(ctx context.Context, ref models.OwnerRef, approvedOnly bool) ([]*models.Review, error)
	UpdateReviewStatus(ctx context.Context, id int64, status string) error
	SetReviewVerified(ctx context.Context, id int64, verified bool) error
	IncrementReviewVote(ctx context.Context, id int64, helpful bool) error
	DeleteReview(ctx context.Context, id int64) error
}

// OwnerRepository проверяет существование объекта контента, о котором
// написан отзыв.
type OwnerRepository interface {
	GetPlaceByID(ctx context.Context, id int64) (*models.Place, error)
	GetTempleByID(ctx context.Context, id int64) (*models.Temple, error)
	GetSiteByID(ctx context.Context, id int64) (*models.MythologicalSite, error)
	GetEventByID(ctx context.Context, id int64) (*models.Event, error)
}

// ReviewService реализует бизнес-логику отзывов. Новый отзыв всегда попадает
// в статус pending и становится публичным только после одобрения.
type ReviewService struct {
	repo   ReviewRepository
	owners OwnerRepository
	log    *slog.Logger
}

// NewReviewService создает новый экземпляр ReviewService.
func NewReviewService(repo ReviewRepository, owners OwnerRepository, log *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:   repo,
		owners: owners,
		log:    log,
	}
}

func (s *ReviewService) checkOwnerExists(ctx context.Context, ref models.OwnerRef) error {
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

// Create создает отзыв в статусе pending. Тип отзыва должен совпадать
// с видом объекта, на который он ссылается.
func (s *ReviewService) Create(ctx context.Context, req models.DummyReview) (int64, error) {
	ref, verr := models.OwnerRefFromIDs(req.PlaceID, req.TempleID, req.SiteID, req.EventID)
	if verr != nil {
		return 0, verr
	}
	if ref.Kind != req.ReviewType {
		return 0, models.NewValidationError("review_type", "must match the referenced content type")
	}
	if err := s.checkOwnerExists(ctx, ref); err != nil {
		return 0, err
	}
	var visitDate *time.Time
	if req.VisitDate != "" {
		parsed, err := time.Parse(dateLayout, req.VisitDate)
		if err != nil {
			return 0, models.NewValidationError("visit_date", "must be a date in format 2006-01-02")
		}
		visitDate = &parsed
	}
	placeID, templeID, siteID, eventID := ref.IDs()
	r := models.Review{
		Title:        req.Title,
		Content:      req.Content,
		Rating:       req.Rating,
		ReviewType:   req.ReviewType,
		PlaceID:      placeID,
		TempleID:     templeID,
		SiteID:       siteID,
		EventID:      eventID,
		VisitorName:  req.VisitorName,
		VisitorEmail: req.VisitorEmail,
		VisitDate:    visitDate,
		Status:       models.ReviewStatusPending,
	}
	id, err := s.repo.CreateReview(ctx, r)
	if err != nil {
		return 0, err
	}
	s.log.Info("created review", slog.Int64("id", id), slog.String("owner", ref.Kind))
	return id, nil
}

// Get возвращает отзыв по идентификатору.
func (s *ReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	return s.repo.GetReviewByID(ctx, id)
}

// List возвращает страницу отзывов независимо от статуса.
func (s *ReviewService) List(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	return s.repo.ListReviews(ctx, limit, offset)
}

// ListPending возвращает отзывы, ожидающие модерации.
func (s *ReviewService) ListPending(ctx context.Context) ([]*models.Review, error) {
	return s.repo.ListPendingReviews(ctx)
}

// ListForOwner возвращает отзывы об объекте контента.
// approvedOnly = true для публичной выдачи.
func (s *ReviewService) ListForOwner(ctx context.Context, ref models.OwnerRef, approvedOnly bool) ([]*models.Review, error) {
	return s.repo.ListReviewsForOwner(ctx, ref, approvedOnly)
}

// Approve публикует отзыв. Повторное одобрение не является ошибкой.
func (s *ReviewService) Approve(ctx context.Context, id int64) error {
	if err := s.repo.UpdateReviewStatus(ctx, id, models.ReviewStatusApproved); err != nil {
		return err
	}
	s.log.Info("approved review", slog.Int64("id", id))
	return nil
}

// Reject отклоняет отзыв: он сохраняется, но не попадает в публичную выдачу.
func (s *ReviewService) Reject(ctx context.Context, id int64) error {
	if err := s.repo.UpdateReviewStatus(ctx, id, models.ReviewStatusRejected); err != nil {
		return err
	}
	s.log.Info("rejected review", slog.Int64("id", id))
	return nil
}

// SetVerified выставляет признак подтверждённого посещения.
func (s *ReviewService) SetVerified(ctx context.Context, id int64, verified bool) error {
	return s.repo.SetReviewVerified(ctx, id, verified)
}

// Vote учитывает голос посетителя о полезности отзыва.
// Голосовать можно только за опубликованные отзывы.
func (s *ReviewService) Vote(ctx context.Context, id int64, helpful bool) (*models.Review, error) {
	r, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != models.ReviewStatusApproved {
		return nil, models.NewValidationError("status", "votes are accepted for approved reviews only")
	}
	if err := s.repo.IncrementReviewVote(ctx, id, helpful); err != nil {
		return nil, err
	}
	if helpful {
		r.HelpfulCount++
	} else {
		r.UnhelpfulCount++
	}
	return r, nil
}

// Delete удаляет отзыв.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteReview(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted review", slog.Int64("id", id))
	return nil
}
