package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osam-tourism/tourism-api/internal/models"
)

const reviewColumns = `review_id, title, content, rating, review_type, place_id, temple_id,
	site_id, event_id, visitor_name, visitor_email, visit_date, is_verified, is_featured,
	helpful_count, unhelpful_count, status, created_at, updated_at`

func scanReview(row rowScanner) (*models.Review, error) {
	var (
		r                                  models.Review
		placeID, templeID, siteID, eventID sql.NullInt64
		visitDate                          sql.NullTime
	)
	err := row.Scan(&r.ID, &r.Title, &r.Content, &r.Rating, &r.ReviewType, &placeID, &templeID,
		&siteID, &eventID, &r.VisitorName, &r.VisitorEmail, &visitDate, &r.IsVerified, &r.IsFeatured,
		&r.HelpfulCount, &r.UnhelpfulCount, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.PlaceID = int64Ptr(placeID)
	r.TempleID = int64Ptr(templeID)
	r.SiteID = int64Ptr(siteID)
	r.EventID = int64Ptr(eventID)
	r.VisitDate = timePtr(visitDate)
	return &r, nil
}

func (s *Storage) queryReviews(ctx context.Context, op, query string, args ...any) ([]*models.Review, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reviews, nil
}

// CreateReview добавляет новый отзыв и возвращает его идентификатор.
// Статус к этому моменту уже выставлен сервисным слоем (pending).
func (s *Storage) CreateReview(ctx context.Context, r models.Review) (int64, error) {
	const op = "storage.repository.CreateReview"

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		INSERT INTO reviews(title, content, rating, review_type, place_id, temple_id,
			site_id, event_id, visitor_name, visitor_email, visit_date, status)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING review_id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		r.Title, r.Content, r.Rating, r.ReviewType, r.PlaceID, r.TempleID,
		r.SiteID, r.EventID, r.VisitorName, r.VisitorEmail, r.VisitDate, r.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetReviewByID возвращает отзыв по идентификатору.
func (s *Storage) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	const op = "storage.repository.GetReviewByID"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE review_id = $1`
	r, err := scanReview(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(op, err)
	}
	return r, nil
}

// ListReviews возвращает страницу отзывов, новые первыми.
func (s *Storage) ListReviews(ctx context.Context, limit, offset int) ([]*models.Review, error) {
	const op = "storage.repository.ListReviews"
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC, review_id DESC LIMIT $1 OFFSET $2`
	return s.queryReviews(ctx, op, query, limit, offset)
}

// ListPendingReviews возвращает отзывы, ожидающие модерации, старые первыми.
func (s *Storage) ListPendingReviews(ctx context.Context) ([]*models.Review, error) {
	const op = "storage.repository.ListPendingReviews"
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE status = 'pending' ORDER BY created_at, review_id`
	return s.queryReviews(ctx, op, query)
}

// ListReviewsForOwner возвращает отзывы об указанном объекте контента.
// При approvedOnly = true возвращаются только опубликованные отзывы.
func (s *Storage) ListReviewsForOwner(ctx context.Context, ref models.OwnerRef, approvedOnly bool) ([]*models.Review, error) {
	const op = "storage.repository.ListReviewsForOwner"

	var column string
	switch ref.Kind {
	case models.OwnerPlace:
		column = "place_id"
	case models.OwnerTemple:
		column = "temple_id"
	case models.OwnerSite:
		column = "site_id"
	case models.OwnerEvent:
		column = "event_id"
	default:
		return nil, fmt.Errorf("%s: unknown owner kind %q", op, ref.Kind)
	}
	query := `
		SELECT ` + reviewColumns + ` FROM reviews
		WHERE ` + column + ` = $1 AND (NOT $2 OR status = 'approved')
		ORDER BY created_at DESC, review_id DESC`
	return s.queryReviews(ctx, op, query, ref.ID, approvedOnly)
}

// UpdateReviewStatus меняет статус модерации отзыва.
func (s *Storage) UpdateReviewStatus(ctx context.Context, id int64, status string) error {
	const op = "storage.repository.UpdateReviewStatus"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reviews SET status = $1, updated_at = now() WHERE review_id = $2`
	res, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// SetReviewVerified выставляет признак подтверждённого посещения.
func (s *Storage) SetReviewVerified(ctx context.Context, id int64, verified bool) error {
	const op = "storage.repository.SetReviewVerified"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reviews SET is_verified = $1, updated_at = now() WHERE review_id = $2`
	res, err := s.DB.ExecContext(ctx, query, verified, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// IncrementReviewVote атомарно увеличивает счётчик полезности отзыва.
func (s *Storage) IncrementReviewVote(ctx context.Context, id int64, helpful bool) error {
	const op = "storage.repository.IncrementReviewVote"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reviews SET unhelpful_count = unhelpful_count + 1 WHERE review_id = $1`
	if helpful {
		query = `UPDATE reviews SET helpful_count = helpful_count + 1 WHERE review_id = $1`
	}
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// DeleteReview удаляет отзыв.
func (s *Storage) DeleteReview(ctx context.Context, id int64) error {
	const op = "storage.repository.DeleteReview"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM reviews WHERE review_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}
