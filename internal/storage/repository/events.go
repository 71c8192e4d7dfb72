package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osam-tourism/tourism-api/internal/models"
)

const eventColumns = `event_id, name, event_type, description, start_date, end_date, is_annual,
	expected_attendance, location, latitude, longitude, organizing_body, contact_email,
	entry_fee, is_free, parking_available, accommodation_nearby, website, is_featured,
	status, created_by, created_at, updated_at`

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		e                    models.Event
		endDate              sql.NullTime
		attendance           sql.NullInt64
		lat, lon, fee        sql.NullFloat64
		body, email, website sql.NullString
		createdBy            sql.NullInt64
	)
	err := row.Scan(&e.ID, &e.Name, &e.EventType, &e.Description, &e.StartDate, &endDate, &e.IsAnnual,
		&attendance, &e.Location, &lat, &lon, &body, &email,
		&fee, &e.IsFree, &e.ParkingAvailable, &e.AccommodationNearby, &website, &e.IsFeatured,
		&e.Status, &createdBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.EndDate = timePtr(endDate)
	e.ExpectedAttendance = intPtr(attendance)
	e.Latitude = floatPtr(lat)
	e.Longitude = floatPtr(lon)
	e.OrganizingBody = strPtr(body)
	e.ContactEmail = strPtr(email)
	e.EntryFee = floatPtr(fee)
	e.Website = strPtr(website)
	e.CreatedBy = int64Ptr(createdBy)
	return &e, nil
}

func (s *Storage) queryEvents(ctx context.Context, op, query string, args ...any) ([]*models.Event, error) {
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

	var events []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

// CreateEvent добавляет новое событие и возвращает его идентификатор.
// Статус к этому моменту уже вычислен сервисным слоем.
func (s *Storage) CreateEvent(ctx context.Context, e models.Event) (int64, error) {
	const op = "storage.repository.CreateEvent"

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		INSERT INTO events(name, event_type, description, start_date, end_date, is_annual,
			expected_attendance, location, latitude, longitude, organizing_body,
			contact_email, entry_fee, is_free, parking_available, accommodation_nearby,
			website, is_featured, status, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING event_id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		e.Name, e.EventType, e.Description, e.StartDate, e.EndDate, e.IsAnnual,
		e.ExpectedAttendance, e.Location, e.Latitude, e.Longitude, e.OrganizingBody,
		e.ContactEmail, e.EntryFee, e.IsFree, e.ParkingAvailable, e.AccommodationNearby,
		e.Website, e.IsFeatured, e.Status, e.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetEventByID возвращает событие по идентификатору.
func (s *Storage) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	const op = "storage.repository.GetEventByID"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE event_id = $1`
	e, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(op, err)
	}
	return e, nil
}

// ListEvents возвращает все события по возрастанию даты начала.
func (s *Storage) ListEvents(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	const op = "storage.repository.ListEvents"
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_date, event_id LIMIT $1 OFFSET $2`
	return s.queryEvents(ctx, op, query, limit, offset)
}

// UpdateEvent перезаписывает изменяемые поля события целиком, включая статус.
func (s *Storage) UpdateEvent(ctx context.Context, e models.Event) error {
	const op = "storage.repository.UpdateEvent"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		UPDATE events SET name = $1, event_type = $2, description = $3, start_date = $4,
			end_date = $5, is_annual = $6, expected_attendance = $7, location = $8,
			latitude = $9, longitude = $10, organizing_body = $11, contact_email = $12,
			entry_fee = $13, is_free = $14, parking_available = $15,
			accommodation_nearby = $16, website = $17, is_featured = $18, status = $19,
			updated_at = now()
		WHERE event_id = $20`
	res, err := s.DB.ExecContext(ctx, query,
		e.Name, e.EventType, e.Description, e.StartDate,
		e.EndDate, e.IsAnnual, e.ExpectedAttendance, e.Location,
		e.Latitude, e.Longitude, e.OrganizingBody, e.ContactEmail,
		e.EntryFee, e.IsFree, e.ParkingAvailable,
		e.AccommodationNearby, e.Website, e.IsFeatured, e.Status, e.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// UpdateEventStatus меняет только статус события.
func (s *Storage) UpdateEventStatus(ctx context.Context, id int64, status string) error {
	const op = "storage.repository.UpdateEventStatus"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE events SET status = $1, updated_at = now() WHERE event_id = $2`
	res, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// DeleteEvent удаляет событие вместе с его галереями, их изображениями и отзывами.
func (s *Storage) DeleteEvent(ctx context.Context, id int64) error {
	const op = "storage.repository.DeleteEvent"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM gallery_images
			WHERE gallery_id IN (SELECT gallery_id FROM galleries WHERE event_id = $1)`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM galleries WHERE event_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE event_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE event_id = $1`, id)
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

// SearchEventsByName ищет события по подстроке имени без учёта регистра.
func (s *Storage) SearchEventsByName(ctx context.Context, name string) ([]*models.Event, error) {
	const op = "storage.repository.SearchEventsByName"
	query := `SELECT ` + eventColumns + ` FROM events WHERE name ILIKE '%' || $1 || '%' ORDER BY start_date, event_id`
	return s.queryEvents(ctx, op, query, name)
}

// FilterEventsByType возвращает события указанного типа.
func (s *Storage) FilterEventsByType(ctx context.Context, eventType string) ([]*models.Event, error) {
	const op = "storage.repository.FilterEventsByType"
	query := `SELECT ` + eventColumns + ` FROM events WHERE event_type = $1 ORDER BY start_date, event_id`
	return s.queryEvents(ctx, op, query, eventType)
}

// FilterEventsByStatus возвращает события с указанным сохранённым статусом.
func (s *Storage) FilterEventsByStatus(ctx context.Context, status string) ([]*models.Event, error) {
	const op = "storage.repository.FilterEventsByStatus"
	query := `SELECT ` + eventColumns + ` FROM events WHERE status = $1 ORDER BY start_date, event_id`
	return s.queryEvents(ctx, op, query, status)
}

// ListEventsByDateRange возвращает события, дата начала которых попадает в диапазон.
func (s *Storage) ListEventsByDateRange(ctx context.Context, r models.EventDateRange) ([]*models.Event, error) {
	const op = "storage.repository.ListEventsByDateRange"
	query := `SELECT ` + eventColumns + ` FROM events WHERE start_date BETWEEN $1 AND $2 ORDER BY start_date, event_id`
	return s.queryEvents(ctx, op, query, r.From, r.To)
}

// ListAnnualEvents возвращает ежегодные события.
func (s *Storage) ListAnnualEvents(ctx context.Context) ([]*models.Event, error) {
	const op = "storage.repository.ListAnnualEvents"
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_annual ORDER BY start_date, event_id`
	return s.queryEvents(ctx, op, query)
}

// ListFeaturedEvents возвращает рекомендуемые события.
func (s *Storage) ListFeaturedEvents(ctx context.Context) ([]*models.Event, error) {
	const op = "storage.repository.ListFeaturedEvents"
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_featured ORDER BY start_date, event_id`
	return s.queryEvents(ctx, op, query)
}

// ListFreeEvents возвращает события с бесплатным входом.
func (s *Storage) ListFreeEvents(ctx context.Context) ([]*models.Event, error) {
	const op = "storage.repository.ListFreeEvents"
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_free ORDER BY start_date, event_id`
	return s.queryEvents(ctx, op, query)
}

// ListEventsWithFacilities возвращает события, у которых есть все запрошенные удобства.
func (s *Storage) ListEventsWithFacilities(ctx context.Context, f models.EventFacilityFilter) ([]*models.Event, error) {
	const op = "storage.repository.ListEventsWithFacilities"
	query := `
		SELECT ` + eventColumns + ` FROM events
		WHERE (NOT $1 OR parking_available)
		  AND (NOT $2 OR accommodation_nearby)
		ORDER BY start_date, event_id`
	return s.queryEvents(ctx, op, query, f.Parking, f.Accommodation)
}
