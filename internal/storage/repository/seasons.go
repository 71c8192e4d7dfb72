package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osam-tourism/tourism-api/internal/models"
)

const seasonColumns = `season_id, name, month_start, month_end, temperature_min_celsius,
	temperature_max_celsius, humidity_percent, rainfall_mm, description, created_at, updated_at`

const availabilityColumns = `id, place_id, season_id, recommendation, notes, created_at`

func scanSeason(row rowScanner) (*models.Season, error) {
	var (
		season                     models.Season
		tMin, tMax, humid, rain    sql.NullInt64
		descr                      sql.NullString
	)
	err := row.Scan(&season.ID, &season.Name, &season.MonthStart, &season.MonthEnd, &tMin,
		&tMax, &humid, &rain, &descr, &season.CreatedAt, &season.UpdatedAt)
	if err != nil {
		return nil, err
	}
	season.TemperatureMinCelsius = intPtr(tMin)
	season.TemperatureMaxCelsius = intPtr(tMax)
	season.HumidityPercent = intPtr(humid)
	season.RainfallMM = intPtr(rain)
	season.Description = strPtr(descr)
	return &season, nil
}

func scanAvailability(row rowScanner) (*models.SeasonalAvailability, error) {
	var (
		a     models.SeasonalAvailability
		notes sql.NullString
	)
	err := row.Scan(&a.ID, &a.PlaceID, &a.SeasonID, &a.Recommendation, &notes, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Notes = strPtr(notes)
	return &a, nil
}

// CreateSeason добавляет новый сезон и возвращает его идентификатор.
// При занятом имени сезона возвращает storage.ErrConflict.
func (s *Storage) CreateSeason(ctx context.Context, season models.Season) (int64, error) {
	const op = "storage.repository.CreateSeason"

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		INSERT INTO seasons(name, month_start, month_end, temperature_min_celsius,
			temperature_max_celsius, humidity_percent, rainfall_mm, description)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING season_id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		season.Name, season.MonthStart, season.MonthEnd, season.TemperatureMinCelsius,
		season.TemperatureMaxCelsius, season.HumidityPercent, season.RainfallMM,
		season.Description).Scan(&id)
	if err != nil {
		return 0, mapUniqueErr(op, err)
	}
	return id, nil
}

// GetSeasonByID возвращает сезон по идентификатору.
func (s *Storage) GetSeasonByID(ctx context.Context, id int64) (*models.Season, error) {
	const op = "storage.repository.GetSeasonByID"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE season_id = $1`
	season, err := scanSeason(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(op, err)
	}
	return season, nil
}

// ListSeasons возвращает страницу сезонов по возрастанию месяца начала.
func (s *Storage) ListSeasons(ctx context.Context, limit, offset int) ([]*models.Season, error) {
	const op = "storage.repository.ListSeasons"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + seasonColumns + ` FROM seasons ORDER BY month_start, season_id LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var seasons []*models.Season
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		seasons = append(seasons, season)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return seasons, nil
}

// UpdateSeason перезаписывает изменяемые поля сезона целиком.
// При занятом имени возвращает storage.ErrConflict.
func (s *Storage) UpdateSeason(ctx context.Context, season models.Season) error {
	const op = "storage.repository.UpdateSeason"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		UPDATE seasons SET name = $1, month_start = $2, month_end = $3,
			temperature_min_celsius = $4, temperature_max_celsius = $5,
			humidity_percent = $6, rainfall_mm = $7, description = $8, updated_at = now()
		WHERE season_id = $9`
	res, err := s.DB.ExecContext(ctx, query,
		season.Name, season.MonthStart, season.MonthEnd,
		season.TemperatureMinCelsius, season.TemperatureMaxCelsius,
		season.HumidityPercent, season.RainfallMM, season.Description, season.ID)
	if err != nil {
		return mapUniqueErr(op, err)
	}
	return checkAffected(op, res)
}

// DeleteSeason удаляет сезон вместе с привязками мест к нему.
func (s *Storage) DeleteSeason(ctx context.Context, id int64) error {
	const op = "storage.repository.DeleteSeason"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM seasonal_availability WHERE season_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM seasons WHERE season_id = $1`, id)
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

// SearchSeasonsByName ищет сезоны по подстроке имени без учёта регистра.
func (s *Storage) SearchSeasonsByName(ctx context.Context, name string) ([]*models.Season, error) {
	const op = "storage.repository.SearchSeasonsByName"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE name ILIKE '%' || $1 || '%' ORDER BY month_start, season_id`
	rows, err := s.DB.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var seasons []*models.Season
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		seasons = append(seasons, season)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return seasons, nil
}

// UpsertAvailability создаёт или обновляет привязку места к сезону.
// Пара (place_id, season_id) уникальна, повторная привязка обновляет
// рекомендацию и заметки.
func (s *Storage) UpsertAvailability(ctx context.Context, a models.SeasonalAvailability) (int64, error) {
	const op = "storage.repository.UpsertAvailability"

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		INSERT INTO seasonal_availability(place_id, season_id, recommendation, notes)
		VALUES($1, $2, $3, $4)
		ON CONFLICT (place_id, season_id)
		DO UPDATE SET recommendation = EXCLUDED.recommendation, notes = EXCLUDED.notes
		RETURNING id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query, a.PlaceID, a.SeasonID, a.Recommendation, a.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListAvailabilityForPlace возвращает сезонные привязки места.
func (s *Storage) ListAvailabilityForPlace(ctx context.Context, placeID int64) ([]*models.SeasonalAvailability, error) {
	const op = "storage.repository.ListAvailabilityForPlace"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + availabilityColumns + ` FROM seasonal_availability WHERE place_id = $1 ORDER BY season_id`
	rows, err := s.DB.QueryContext(ctx, query, placeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []*models.SeasonalAvailability
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// ListPlacesForSeason возвращает места, рекомендованные в указанный сезон.
func (s *Storage) ListPlacesForSeason(ctx context.Context, seasonID int64) ([]*models.Place, error) {
	const op = "storage.repository.ListPlacesForSeason"
	query := `
		SELECT ` + placeColumns + ` FROM places
		WHERE place_id IN (SELECT place_id FROM seasonal_availability WHERE season_id = $1)
		ORDER BY name`
	return s.queryPlaces(ctx, op, query, seasonID)
}

// DeleteAvailability удаляет привязку места к сезону.
func (s *Storage) DeleteAvailability(ctx context.Context, placeID, seasonID int64) error {
	const op = "storage.repository.DeleteAvailability"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM seasonal_availability WHERE place_id = $1 AND season_id = $2`, placeID, seasonID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}
