package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osam-tourism/tourism-api/internal/models"
)

const templeColumns = `temple_id, name, deity, description, architectural_style, location,
	latitude, longitude, age_years, is_active_pilgrimage, main_festival, pooja_timings,
	entry_fee, parking_available, prasad_available, is_featured, created_by, created_at, updated_at`

func scanTemple(row rowScanner) (*models.Temple, error) {
	var (
		t                        models.Temple
		style, festival, timings sql.NullString
		lat, lon, fee            sql.NullFloat64
		age, createdBy           sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.Name, &t.Deity, &t.Description, &style, &t.Location,
		&lat, &lon, &age, &t.IsActivePilgrimage, &festival, &timings,
		&fee, &t.ParkingAvailable, &t.PrasadAvailable, &t.IsFeatured, &createdBy,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.ArchitecturalStyle = strPtr(style)
	t.Latitude = floatPtr(lat)
	t.Longitude = floatPtr(lon)
	t.AgeYears = intPtr(age)
	t.MainFestival = strPtr(festival)
	t.PoojaTimings = strPtr(timings)
	t.EntryFee = floatPtr(fee)
	t.CreatedBy = int64Ptr(createdBy)
	return &t, nil
}

func (s *Storage) queryTemples(ctx context.Context, op, query string, args ...any) ([]*models.Temple, error) {
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

	var temples []*models.Temple
	for rows.Next() {
		t, err := scanTemple(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		temples = append(temples, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return temples, nil
}

// CreateTemple добавляет новый храм и возвращает его идентификатор.
func (s *Storage) CreateTemple(ctx context.Context, t models.Temple) (int64, error) {
	const op = "storage.repository.CreateTemple"

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		INSERT INTO temples(name, deity, description, architectural_style, location,
			latitude, longitude, age_years, is_active_pilgrimage, main_festival,
			pooja_timings, entry_fee, parking_available, prasad_available,
			is_featured, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING temple_id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		t.Name, t.Deity, t.Description, t.ArchitecturalStyle, t.Location,
		t.Latitude, t.Longitude, t.AgeYears, t.IsActivePilgrimage, t.MainFestival,
		t.PoojaTimings, t.EntryFee, t.ParkingAvailable, t.PrasadAvailable,
		t.IsFeatured, t.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetTempleByID возвращает храм по идентификатору.
func (s *Storage) GetTempleByID(ctx context.Context, id int64) (*models.Temple, error) {
	const op = "storage.repository.GetTempleByID"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + templeColumns + ` FROM temples WHERE temple_id = $1`
	t, err := scanTemple(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(op, err)
	}
	return t, nil
}

// ListTemples возвращает все храмы в алфавитном порядке.
func (s *Storage) ListTemples(ctx context.Context, limit, offset int) ([]*models.Temple, error) {
	const op = "storage.repository.ListTemples"
	query := `SELECT ` + templeColumns + ` FROM temples ORDER BY name LIMIT $1 OFFSET $2`
	return s.queryTemples(ctx, op, query, limit, offset)
}

// UpdateTemple перезаписывает изменяемые поля храма целиком.
func (s *Storage) UpdateTemple(ctx context.Context, t models.Temple) error {
	const op = "storage.repository.UpdateTemple"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		UPDATE temples SET name = $1, deity = $2, description = $3,
			architectural_style = $4, location = $5, latitude = $6, longitude = $7,
			age_years = $8, is_active_pilgrimage = $9, main_festival = $10,
			pooja_timings = $11, entry_fee = $12, parking_available = $13,
			prasad_available = $14, is_featured = $15, updated_at = now()
		WHERE temple_id = $16`
	res, err := s.DB.ExecContext(ctx, query,
		t.Name, t.Deity, t.Description,
		t.ArchitecturalStyle, t.Location, t.Latitude, t.Longitude,
		t.AgeYears, t.IsActivePilgrimage, t.MainFestival,
		t.PoojaTimings, t.EntryFee, t.ParkingAvailable,
		t.PrasadAvailable, t.IsFeatured, t.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// DeleteTemple удаляет храм вместе с его галереями, их изображениями и отзывами.
func (s *Storage) DeleteTemple(ctx context.Context, id int64) error {
	const op = "storage.repository.DeleteTemple"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM gallery_images
			WHERE gallery_id IN (SELECT gallery_id FROM galleries WHERE temple_id = $1)`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM galleries WHERE temple_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE temple_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM temples WHERE temple_id = $1`, id)
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

// SearchTemplesByName ищет храмы по подстроке имени без учёта регистра.
func (s *Storage) SearchTemplesByName(ctx context.Context, name string) ([]*models.Temple, error) {
	const op = "storage.repository.SearchTemplesByName"
	query := `SELECT ` + templeColumns + ` FROM temples WHERE name ILIKE '%' || $1 || '%' ORDER BY name`
	return s.queryTemples(ctx, op, query, name)
}

// SearchTemplesByDeity ищет храмы по подстроке имени божества без учёта регистра.
func (s *Storage) SearchTemplesByDeity(ctx context.Context, deity string) ([]*models.Temple, error) {
	const op = "storage.repository.SearchTemplesByDeity"
	query := `SELECT ` + templeColumns + ` FROM temples WHERE deity ILIKE '%' || $1 || '%' ORDER BY name`
	return s.queryTemples(ctx, op, query, deity)
}

// ListActivePilgrimageTemples возвращает храмы с действующим паломничеством.
func (s *Storage) ListActivePilgrimageTemples(ctx context.Context) ([]*models.Temple, error) {
	const op = "storage.repository.ListActivePilgrimageTemples"
	query := `SELECT ` + templeColumns + ` FROM temples WHERE is_active_pilgrimage ORDER BY name`
	return s.queryTemples(ctx, op, query)
}

// ListFeaturedTemples возвращает рекомендуемые храмы.
func (s *Storage) ListFeaturedTemples(ctx context.Context) ([]*models.Temple, error) {
	const op = "storage.repository.ListFeaturedTemples"
	query := `SELECT ` + templeColumns + ` FROM temples WHERE is_featured ORDER BY name`
	return s.queryTemples(ctx, op, query)
}
