package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osam-tourism/tourism-api/internal/models"
)

const siteColumns = `site_id, name, mythology, description, legend_source, historical_period,
	location, latitude, longitude, cultural_significance, accessibility, guide_available,
	best_time_to_visit, is_featured, created_by, created_at, updated_at`

func scanSite(row rowScanner) (*models.MythologicalSite, error) {
	var (
		m                               models.MythologicalSite
		legend, period, signif, access  sql.NullString
		bestTime                        sql.NullString
		lat, lon                        sql.NullFloat64
		createdBy                       sql.NullInt64
	)
	err := row.Scan(&m.ID, &m.Name, &m.Mythology, &m.Description, &legend, &period,
		&m.Location, &lat, &lon, &signif, &access, &m.GuideAvailable,
		&bestTime, &m.IsFeatured, &createdBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.LegendSource = strPtr(legend)
	m.HistoricalPeriod = strPtr(period)
	m.Latitude = floatPtr(lat)
	m.Longitude = floatPtr(lon)
	m.CulturalSignificance = strPtr(signif)
	m.Accessibility = strPtr(access)
	m.BestTimeToVisit = strPtr(bestTime)
	m.CreatedBy = int64Ptr(createdBy)
	return &m, nil
}

func (s *Storage) querySites(ctx context.Context, op, query string, args ...any) ([]*models.MythologicalSite, error) {
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

	var sites []*models.MythologicalSite
	for rows.Next() {
		m, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sites = append(sites, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sites, nil
}

// CreateSite добавляет новый мифологический объект и возвращает его идентификатор.
func (s *Storage) CreateSite(ctx context.Context, m models.MythologicalSite) (int64, error) {
	const op = "storage.repository.CreateSite"

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		INSERT INTO mythological_sites(name, mythology, description, legend_source,
			historical_period, location, latitude, longitude, cultural_significance,
			accessibility, guide_available, best_time_to_visit, is_featured, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING site_id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		m.Name, m.Mythology, m.Description, m.LegendSource,
		m.HistoricalPeriod, m.Location, m.Latitude, m.Longitude, m.CulturalSignificance,
		m.Accessibility, m.GuideAvailable, m.BestTimeToVisit, m.IsFeatured, m.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetSiteByID возвращает мифологический объект по идентификатору.
func (s *Storage) GetSiteByID(ctx context.Context, id int64) (*models.MythologicalSite, error) {
	const op = "storage.repository.GetSiteByID"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + siteColumns + ` FROM mythological_sites WHERE site_id = $1`
	m, err := scanSite(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(op, err)
	}
	return m, nil
}

// ListSites возвращает все мифологические объекты в алфавитном порядке.
func (s *Storage) ListSites(ctx context.Context, limit, offset int) ([]*models.MythologicalSite, error) {
	const op = "storage.repository.ListSites"
	query := `SELECT ` + siteColumns + ` FROM mythological_sites ORDER BY name LIMIT $1 OFFSET $2`
	return s.querySites(ctx, op, query, limit, offset)
}

// UpdateSite перезаписывает изменяемые поля мифологического объекта целиком.
func (s *Storage) UpdateSite(ctx context.Context, m models.MythologicalSite) error {
	const op = "storage.repository.UpdateSite"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		UPDATE mythological_sites SET name = $1, mythology = $2, description = $3,
			legend_source = $4, historical_period = $5, location = $6,
			latitude = $7, longitude = $8, cultural_significance = $9,
			accessibility = $10, guide_available = $11, best_time_to_visit = $12,
			is_featured = $13, updated_at = now()
		WHERE site_id = $14`
	res, err := s.DB.ExecContext(ctx, query,
		m.Name, m.Mythology, m.Description,
		m.LegendSource, m.HistoricalPeriod, m.Location,
		m.Latitude, m.Longitude, m.CulturalSignificance,
		m.Accessibility, m.GuideAvailable, m.BestTimeToVisit,
		m.IsFeatured, m.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// DeleteSite удаляет мифологический объект вместе с его галереями,
// их изображениями и отзывами.
func (s *Storage) DeleteSite(ctx context.Context, id int64) error {
	const op = "storage.repository.DeleteSite"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM gallery_images
			WHERE gallery_id IN (SELECT gallery_id FROM galleries WHERE site_id = $1)`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM galleries WHERE site_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE site_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM mythological_sites WHERE site_id = $1`, id)
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

// SearchSitesByName ищет мифологические объекты по подстроке имени без учёта регистра.
func (s *Storage) SearchSitesByName(ctx context.Context, name string) ([]*models.MythologicalSite, error) {
	const op = "storage.repository.SearchSitesByName"
	query := `SELECT ` + siteColumns + ` FROM mythological_sites WHERE name ILIKE '%' || $1 || '%' ORDER BY name`
	return s.querySites(ctx, op, query, name)
}

// SearchSitesByMythology ищет объекты по подстроке названия мифологии без учёта регистра.
func (s *Storage) SearchSitesByMythology(ctx context.Context, mythology string) ([]*models.MythologicalSite, error) {
	const op = "storage.repository.SearchSitesByMythology"
	query := `SELECT ` + siteColumns + ` FROM mythological_sites WHERE mythology ILIKE '%' || $1 || '%' ORDER BY name`
	return s.querySites(ctx, op, query, mythology)
}

// FilterSitesByAccessibility возвращает объекты с указанным уровнем доступности.
func (s *Storage) FilterSitesByAccessibility(ctx context.Context, accessibility string) ([]*models.MythologicalSite, error) {
	const op = "storage.repository.FilterSitesByAccessibility"
	query := `SELECT ` + siteColumns + ` FROM mythological_sites WHERE accessibility = $1 ORDER BY name`
	return s.querySites(ctx, op, query, accessibility)
}

// ListSitesWithGuide возвращает объекты, где доступен гид.
func (s *Storage) ListSitesWithGuide(ctx context.Context) ([]*models.MythologicalSite, error) {
	const op = "storage.repository.ListSitesWithGuide"
	query := `SELECT ` + siteColumns + ` FROM mythological_sites WHERE guide_available ORDER BY name`
	return s.querySites(ctx, op, query)
}

// ListFeaturedSites возвращает рекомендуемые мифологические объекты.
func (s *Storage) ListFeaturedSites(ctx context.Context) ([]*models.MythologicalSite, error) {
	const op = "storage.repository.ListFeaturedSites"
	query := `SELECT ` + siteColumns + ` FROM mythological_sites WHERE is_featured ORDER BY name`
	return s.querySites(ctx, op, query)
}
