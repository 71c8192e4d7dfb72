// Package event содержит бизнес-логику для работы с событиями,
// включая вывод и пересчёт статуса из дат проведения.
package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/osam-tourism/tourism-api/internal/models"
)

const dateLayout = "2006-01-02"

// EventRepository определяет методы для работы с событиями в хранилище.
type EventRepository interface {
	CreateEvent(ctx context.Context, e models.Event) (int64, error)
	GetEventByID(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context, limit, offset int) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, e models.Event) error
	UpdateEventStatus(ctx context.Context, id int64, status string) error
	DeleteEvent(ctx context.Context, id int64) error
	SearchEventsByName(ctx context.Context, name string) ([]*models.Event, error)
	FilterEventsByType(ctx context.Context, eventType string) ([]*models.Event, error)
	FilterEventsByStatus(ctx context.Context, status string) ([]*models.Event, error)
	ListEventsByDateRange(ctx context.Context, r models.EventDateRange) ([]*models.Event, error)
	ListAnnualEvents(ctx context.Context) ([]*models.Event, error)
	ListFeaturedEvents(ctx context.Context) ([]*models.Event, error)
	ListFreeEvents(ctx context.Context) ([]*models.Event, error)
	ListEventsWithFacilities(ctx context.Context, f models.EventFacilityFilter) ([]*models.Event, error)
}

// EventService реализует бизнес-логику работы с событиями.
//
// Статус события выводится из дат при создании и далее хранится как есть:
// пересчёт выполняется только явными операциями RefreshStatus и
// RefreshStatuses, фонового обновления нет.
type EventService struct {
	repo EventRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(repo EventRepository, log *slog.Logger) *EventService {
	return &EventService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// parseDates разбирает даты начала и окончания и проверяет их согласованность.
func parseDates(startDate, endDate string) (time.Time, *time.Time, *models.ValidationError) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError("start_date", "must be a date in format 2006-01-02")
	}
	if endDate == "" {
		return start, nil, nil
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError("end_date", "must be a date in format 2006-01-02")
	}
	if end.Before(start) {
		return time.Time{}, nil, models.NewValidationError("end_date", "must not be earlier than start_date")
	}
	return start, &end, nil
}

// Create создает новое событие. Если статус не задан явно, он выводится
// из даты начала: не позже текущего дня — ongoing, иначе upcoming.
// completed при создании не выставляется даже для прошедших дат,
// этим занимается пересчёт статусов.
func (s *EventService) Create(ctx context.Context, req models.DummyEvent, createdBy int64) (int64, error) {
	start, end, verr := parseDates(req.StartDate, req.EndDate)
	if verr != nil {
		return 0, verr
	}
	isAnnual := true
	if req.IsAnnual != nil {
		isAnnual = *req.IsAnnual
	}
	isFree := true
	if req.IsFree != nil {
		isFree = *req.IsFree
	}
	e := models.Event{
		Name:                req.Name,
		EventType:           req.EventType,
		Description:         req.Description,
		StartDate:           start,
		EndDate:             end,
		IsAnnual:            isAnnual,
		ExpectedAttendance:  req.ExpectedAttendance,
		Location:            req.Location,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		OrganizingBody:      req.OrganizingBody,
		ContactEmail:        req.ContactEmail,
		EntryFee:            req.EntryFee,
		IsFree:              isFree,
		ParkingAvailable:    req.ParkingAvailable,
		AccommodationNearby: req.AccommodationNearby,
		Website:             req.Website,
		IsFeatured:          req.IsFeatured,
		Status:              req.Status,
		CreatedBy:           &createdBy,
	}
	if e.Status == "" {
		e.Status = e.StatusAtCreation(s.now())
	}
	id, err := s.repo.CreateEvent(ctx, e)
	if err != nil {
		return 0, err
	}
	s.log.Info("created event", slog.Int64("id", id), slog.String("status", e.Status))
	return id, nil
}

// Get возвращает событие по идентификатору.
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	return s.repo.GetEventByID(ctx, id)
}

// List возвращает страницу событий по возрастанию даты начала.
func (s *EventService) List(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	return s.repo.ListEvents(ctx, limit, offset)
}

// Update применяет частичное обновление. Сохранённый статус не пересчитывается
// при смене дат: для этого есть явная операция RefreshStatus.
func (s *EventService) Update(ctx context.Context, id int64, req models.DummyEventUpdate) (*models.Event, error) {
	e, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.StartDate != nil || req.EndDate != nil {
		startStr := e.StartDate.Format(dateLayout)
		if req.StartDate != nil {
			startStr = *req.StartDate
		}
		endStr := ""
		if e.EndDate != nil {
			endStr = e.EndDate.Format(dateLayout)
		}
		if req.EndDate != nil {
			endStr = *req.EndDate
		}
		start, end, verr := parseDates(startStr, endStr)
		if verr != nil {
			return nil, verr
		}
		e.StartDate = start
		e.EndDate = end
	}
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.EventType != nil {
		e.EventType = *req.EventType
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.IsAnnual != nil {
		e.IsAnnual = *req.IsAnnual
	}
	if req.ExpectedAttendance != nil {
		e.ExpectedAttendance = req.ExpectedAttendance
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Latitude != nil {
		e.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		e.Longitude = req.Longitude
	}
	if req.OrganizingBody != nil {
		e.OrganizingBody = req.OrganizingBody
	}
	if req.ContactEmail != nil {
		e.ContactEmail = req.ContactEmail
	}
	if req.EntryFee != nil {
		e.EntryFee = req.EntryFee
	}
	if req.IsFree != nil {
		e.IsFree = *req.IsFree
	}
	if req.ParkingAvailable != nil {
		e.ParkingAvailable = *req.ParkingAvailable
	}
	if req.AccommodationNearby != nil {
		e.AccommodationNearby = *req.AccommodationNearby
	}
	if req.Website != nil {
		e.Website = req.Website
	}
	if req.IsFeatured != nil {
		e.IsFeatured = *req.IsFeatured
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	if err := s.repo.UpdateEvent(ctx, *e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete удаляет событие вместе с зависимыми записями.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted event", slog.Int64("id", id))
	return nil
}

// RefreshStatus пересчитывает статус события из дат относительно текущего дня
// и сохраняет его, если он изменился. Возвращает событие с актуальным статусом.
func (s *EventService) RefreshStatus(ctx context.Context, id int64) (*models.Event, error) {
	e, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	derived := e.DeriveStatus(s.now())
	if derived == e.Status {
		return e, nil
	}
	if err := s.repo.UpdateEventStatus(ctx, id, derived); err != nil {
		return nil, err
	}
	s.log.Info("refreshed event status", slog.Int64("id", id),
		slog.String("from", e.Status), slog.String("to", derived))
	e.Status = derived
	return e, nil
}

// RefreshStatuses пересчитывает статусы всех незавершённых событий и
// возвращает число фактически обновлённых записей. Статус completed
// терминален: дата окончания в прошлом не меняется, поэтому завершённые
// события не просматриваются.
func (s *EventService) RefreshStatuses(ctx context.Context) (int, error) {
	updated := 0
	ref := s.now()
	for _, status := range []string{models.EventStatusUpcoming, models.EventStatusOngoing} {
		events, err := s.repo.FilterEventsByStatus(ctx, status)
		if err != nil {
			return updated, err
		}
		for _, e := range events {
			derived := e.DeriveStatus(ref)
			if derived == e.Status {
				continue
			}
			if err := s.repo.UpdateEventStatus(ctx, e.ID, derived); err != nil {
				return updated, err
			}
			updated++
		}
	}
	if updated > 0 {
		s.log.Info("refreshed event statuses", slog.Int("updated", updated))
	}
	return updated, nil
}

// Summary собирает сводную карточку события. Перед выдачей статус
// пересчитывается и сохраняется, чтобы карточка не показывала устаревший.
func (s *EventService) Summary(ctx context.Context, id int64) (*models.EventSummary, error) {
	e, err := s.RefreshStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	var end *string
	if e.EndDate != nil {
		v := e.EndDate.Format(dateLayout)
		end = &v
	}
	fee := 0.0
	if e.EntryFee != nil {
		fee = *e.EntryFee
	}
	return &models.EventSummary{
		ID:         e.ID,
		Name:       e.Name,
		Type:       e.EventType,
		Status:     e.Status,
		Location:   e.Location,
		IsFeatured: e.IsFeatured,
		Dates: models.EventDates{
			StartDate: e.StartDate.Format(dateLayout),
			EndDate:   end,
			IsAnnual:  e.IsAnnual,
		},
		TicketInfo: models.EventTicketInfo{
			EntryFee: fee,
			IsFree:   e.IsFree,
		},
		Facilities: models.EventFacilities{
			Parking:       e.ParkingAvailable,
			Accommodation: e.AccommodationNearby,
		},
		Contact: models.EventContact{
			Organization: e.OrganizingBody,
			Email:        e.ContactEmail,
		},
	}, nil
}

// ToggleFeatured переключает признак рекомендуемого события.
func (s *EventService) ToggleFeatured(ctx context.Context, id int64) (*models.Event, error) {
	e, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.IsFeatured = !e.IsFeatured
	if err := s.repo.UpdateEvent(ctx, *e); err != nil {
		return nil, err
	}
	return e, nil
}

// SearchByName ищет события по подстроке имени.
func (s *EventService) SearchByName(ctx context.Context, name string) ([]*models.Event, error) {
	return s.repo.SearchEventsByName(ctx, name)
}

// FilterByType возвращает события указанного типа.
func (s *EventService) FilterByType(ctx context.Context, eventType string) ([]*models.Event, error) {
	if err := models.ValidateEnum("event_type", eventType, models.ValidEventTypes, false); err != nil {
		return nil, err
	}
	return s.repo.FilterEventsByType(ctx, eventType)
}

// FilterByStatus возвращает события с указанным сохранённым статусом.
func (s *EventService) FilterByStatus(ctx context.Context, status string) ([]*models.Event, error) {
	if err := models.ValidateEnum("status", status, models.ValidEventStatuses, false); err != nil {
		return nil, err
	}
	return s.repo.FilterEventsByStatus(ctx, status)
}

// ListByDateRange возвращает события, начинающиеся в указанном диапазоне дат.
func (s *EventService) ListByDateRange(ctx context.Context, fromStr, toStr string) ([]*models.Event, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return nil, models.NewValidationError("from", "must be a date in format 2006-01-02")
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return nil, models.NewValidationError("to", "must be a date in format 2006-01-02")
	}
	if to.Before(from) {
		return nil, models.NewValidationError("to", "must not be earlier than from")
	}
	return s.repo.ListEventsByDateRange(ctx, models.EventDateRange{From: from, To: to})
}

// ListAnnual возвращает ежегодные события.
func (s *EventService) ListAnnual(ctx context.Context) ([]*models.Event, error) {
	return s.repo.ListAnnualEvents(ctx)
}

// ListFeatured возвращает рекомендуемые события.
func (s *EventService) ListFeatured(ctx context.Context) ([]*models.Event, error) {
	return s.repo.ListFeaturedEvents(ctx)
}

// ListFree возвращает события с бесплатным входом.
func (s *EventService) ListFree(ctx context.Context) ([]*models.Event, error) {
	return s.repo.ListFreeEvents(ctx)
}

// ListWithFacilities возвращает события со всеми запрошенными удобствами.
func (s *EventService) ListWithFacilities(ctx context.Context, f models.EventFacilityFilter) ([]*models.Event, error) {
	return s.repo.ListEventsWithFacilities(ctx, f)
}
