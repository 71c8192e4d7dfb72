package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osam-tourism/tourism-api/internal/models"
)

const placeColumns = `place_id, name, description, category, location, latitude, longitude,
	elevation_meters, entry_fee, entry_fee_currency, best_time_to_visit,
	average_visit_duration_hours, accessibility, parking_available, public_restrooms,
	food_nearby, is_featured, view_count, created_by, created_at, updated_at`

func scanPlace(row rowScanner) (*models.Place, error) {
	var (
		p                  models.Place
		lat, lon, fee      sql.NullFloat64
		elevation, avgDur  sql.NullInt64
		bestTime, access   sql.NullString
		createdBy          sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Location, &lat, &lon,
		&elevation, &fee, &p.EntryFeeCurrency, &bestTime,
		&avgDur, &access, &p.ParkingAvailable, &p.PublicRestrooms,
		&p.FoodNearby, &p.IsFeatured, &p.ViewCount, &createdBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Latitude = floatPtr(lat)
	p.Longitude = floatPtr(lon)
	p.ElevationMeters = intPtr(elevation)
	p.EntryFee = floatPtr(fee)
	p.BestTimeToVisit = strPtr(bestTime)
	p.AverageVisitDurationHours = intPtr(avgDur)
	p.Accessibility = strPtr(access)
	p.CreatedBy = int64Ptr(createdBy)
	return &p, nil
}

func (s *Storage) queryPlaces(ctx context.Context, op, query string, args ...any) ([]*models.Place, error) {
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

	var places []*models.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return places, nil
}

// CreatePlace добавляет новое место и возвращает его идентификатор.
func (s *Storage) CreatePlace(ctx context.Context, p models.Place) (int64, error) {
	const op = "storage.repository.CreatePlace"

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		INSERT INTO places(name, description, category, location, latitude, longitude,
			elevation_meters, entry_fee, entry_fee_currency, best_time_to_visit,
			average_visit_duration_hours, accessibility, parking_available,
			public_restrooms, food_nearby, is_featured, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING place_id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Category, p.Location, p.Latitude, p.Longitude,
		p.ElevationMeters, p.EntryFee, p.EntryFeeCurrency, p.BestTimeToVisit,
		p.AverageVisitDurationHours, p.Accessibility, p.ParkingAvailable,
		p.PublicRestrooms, p.FoodNearby, p.IsFeatured, p.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetPlaceByID возвращает место по идентификатору без изменения счётчика просмотров.
func (s *Storage) GetPlaceByID(ctx context.Context, id int64) (*models.Place, error) {
	const op = "storage.repository.GetPlaceByID"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + placeColumns + ` FROM places WHERE place_id = $1`
	p, err := scanPlace(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(op, err)
	}
	return p, nil
}

// GetPlaceAndBumpViews атомарно увеличивает счётчик просмотров и возвращает
// место уже с новым значением счётчика. Конкурентные чтения не теряют инкременты.
func (s *Storage) GetPlaceAndBumpViews(ctx context.Context, id int64) (*models.Place, error) {
	const op = "storage.repository.GetPlaceAndBumpViews"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		UPDATE places SET view_count = view_count + 1
		WHERE place_id = $1
		RETURNING ` + placeColumns
	p, err := scanPlace(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(op, err)
	}
	return p, nil
}

// ListPlaces возвращает страницу мест в алфавитном порядке.
func (s *Storage) ListPlaces(ctx context.Context, limit, offset int) ([]*models.Place, error) {
	const op = "storage.repository.ListPlaces"
	query := `SELECT ` + placeColumns + ` FROM places ORDER BY name LIMIT $1 OFFSET $2`
	return s.queryPlaces(ctx, op, query, limit, offset)
}

// UpdatePlace перезаписывает изменяемые поля места целиком.
func (s *Storage) UpdatePlace(ctx context.Context, p models.Place) error {
	const op = "storage.repository.UpdatePlace"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		UPDATE places SET name = $1, description = $2, category = $3, location = $4,
			latitude = $5, longitude = $6, elevation_meters = $7, entry_fee = $8,
			entry_fee_currency = $9, best_time_to_visit = $10,
			average_visit_duration_hours = $11, accessibility = $12,
			parking_available = $13, public_restrooms = $14, food_nearby = $15,
			is_featured = $16, updated_at = now()
		WHERE place_id = $17`
	res, err := s.DB.ExecContext(ctx, query,
		p.Name, p.Description, p.Category, p.Location,
		p.Latitude, p.Longitude, p.ElevationMeters, p.EntryFee,
		p.EntryFeeCurrency, p.BestTimeToVisit,
		p.AverageVisitDurationHours, p.Accessibility,
		p.ParkingAvailable, p.PublicRestrooms, p.FoodNearby,
		p.IsFeatured, p.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// DeletePlace удаляет место вместе с зависимыми записями: изображениями его
// галерей, галереями, отзывами и сезонными привязками. Всё выполняется в одной
// транзакции.
func (s *Storage) DeletePlace(ctx context.Context, id int64) error {
	const op = "storage.repository.DeletePlace"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM gallery_images
			WHERE gallery_id IN (SELECT gallery_id FROM galleries WHERE place_id = $1)`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM galleries WHERE place_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE place_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM seasonal_availability WHERE place_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM places WHERE place_id = $1`, id)
		if err != nil {
			return err
		}
		return checkAffected(op, res)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SearchPlacesByName ищет места по подстроке имени без учёта регистра.
func (s *Storage) SearchPlacesByName(ctx context.Context, name string) ([]*models.Place, error) {
	const op = "storage.repository.SearchPlacesByName"
	query := `SELECT ` + placeColumns + ` FROM places WHERE name ILIKE '%' || $1 || '%' ORDER BY name`
	return s.queryPlaces(ctx, op, query, name)
}

// SearchPlacesByLocation ищет места по подстроке локации без учёта регистра.
func (s *Storage) SearchPlacesByLocation(ctx context.Context, location string) ([]*models.Place, error) {
	const op = "storage.repository.SearchPlacesByLocation"
	query := `SELECT ` + placeColumns + ` FROM places WHERE location ILIKE '%' || $1 || '%' ORDER BY name`
	return s.queryPlaces(ctx, op, query, location)
}

// FilterPlacesByCategory возвращает места указанной категории.
func (s *Storage) FilterPlacesByCategory(ctx context.Context, category string) ([]*models.Place, error) {
	const op = "storage.repository.FilterPlacesByCategory"
	query := `SELECT ` + placeColumns + ` FROM places WHERE category = $1 ORDER BY name`
	return s.queryPlaces(ctx, op, query, category)
}

// FilterPlacesByAccessibility возвращает места с указанным уровнем доступности.
func (s *Storage) FilterPlacesByAccessibility(ctx context.Context, accessibility string) ([]*models.Place, error) {
	const op = "storage.repository.FilterPlacesByAccessibility"
	query := `SELECT ` + placeColumns + ` FROM places WHERE accessibility = $1 ORDER BY name`
	return s.queryPlaces(ctx, op, query, accessibility)
}

// ListFeaturedPlaces возвращает рекомендуемые места.
func (s *Storage) ListFeaturedPlaces(ctx context.Context) ([]*models.Place, error) {
	const op = "storage.repository.ListFeaturedPlaces"
	query := `SELECT ` + placeColumns + ` FROM places WHERE is_featured ORDER BY name`
	return s.queryPlaces(ctx, op, query)
}

// ListPopularPlaces возвращает места, набравшие не меньше minViews просмотров,
// по убыванию счётчика.
func (s *Storage) ListPopularPlaces(ctx context.Context, minViews, limit int) ([]*models.Place, error) {
	const op = "storage.repository.ListPopularPlaces"
	query := `SELECT ` + placeColumns + ` FROM places WHERE view_count >= $1 ORDER BY view_count DESC, place_id LIMIT $2`
	return s.queryPlaces(ctx, op, query, minViews, limit)
}

// ListFreePlaces возвращает места с нулевой или незаданной платой за вход.
func (s *Storage) ListFreePlaces(ctx context.Context) ([]*models.Place, error) {
	const op = "storage.repository.ListFreePlaces"
	query := `SELECT ` + placeColumns + ` FROM places WHERE entry_fee IS NULL OR entry_fee = 0 ORDER BY name`
	return s.queryPlaces(ctx, op, query)
}

// ListPlacesWithFacilities возвращает места, у которых есть все запрошенные удобства.
func (s *Storage) ListPlacesWithFacilities(ctx context.Context, f models.PlaceFacilityFilter) ([]*models.Place, error) {
	const op = "storage.repository.ListPlacesWithFacilities"
	query := `
		SELECT ` + placeColumns + ` FROM places
		WHERE (NOT $1 OR parking_available)
		  AND (NOT $2 OR public_restrooms)
		  AND (NOT $3 OR food_nearby)
		ORDER BY name`
	return s.queryPlaces(ctx, op, query, f.Parking, f.Restrooms, f.Food)
}
