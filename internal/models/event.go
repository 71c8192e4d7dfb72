package models

import "time"

// Типы событий.
var ValidEventTypes = []string{"festival", "fair", "ceremony", "cultural"}

// Статусы событий.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
)

// ValidEventStatuses перечисляет допустимые статусы события.
var ValidEventStatuses = []string{EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted}

// Event представляет фестиваль, ярмарку или иное культурное событие.
//
// Статус выводится из дат при создании и пересчитывается только явным
// вызовом операции пересчёта — фонового обновления нет.
type Event struct {
	ID                  int64      `json:"event_id"`
	Name                string     `json:"name"`
	EventType           string     `json:"event_type"` // festival, fair, ceremony, cultural
	Description         string     `json:"description"`
	StartDate           time.Time  `json:"start_date"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	IsAnnual            bool       `json:"is_annual"`
	ExpectedAttendance  *int       `json:"expected_attendance,omitempty"`
	Location            string     `json:"location"`
	Latitude            *float64   `json:"latitude,omitempty"`
	Longitude           *float64   `json:"longitude,omitempty"`
	OrganizingBody      *string    `json:"organizing_body,omitempty"`
	ContactEmail        *string    `json:"contact_email,omitempty"`
	EntryFee            *float64   `json:"entry_fee,omitempty"`
	IsFree              bool       `json:"is_free"`
	ParkingAvailable    bool       `json:"parking_available"`
	AccommodationNearby bool       `json:"accommodation_nearby"`
	Website             *string    `json:"website,omitempty"`
	IsFeatured          bool       `json:"is_featured"`
	Status              string     `json:"status"` // upcoming, ongoing, completed
	CreatedBy           *int64     `json:"created_by,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// civilDate отбрасывает время и зону, оставляя календарную дату.
// Сравнения статусов идут по локальному календарному дню, а не по
// абсолютному моменту, иначе около полуночи день "уезжает" на сутки.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StatusAtCreation выводит статус нового события: ongoing, если дата начала
// не позже текущего дня, иначе upcoming. Статус completed при создании не
// выставляется — он появляется только при пересчёте.
func (e *Event) StatusAtCreation(ref time.Time) string {
	if civilDate(e.StartDate).After(civilDate(ref)) {
		return EventStatusUpcoming
	}
	return EventStatusOngoing
}

// DeriveStatus вычисляет статус события относительно указанной даты.
//
// completed — если задана дата окончания и ref строго позже неё;
// ongoing — если ref попадает в [start, end-или-start];
// upcoming — во всех остальных случаях.
func (e *Event) DeriveStatus(ref time.Time) string {
	refDay := civilDate(ref)
	start := civilDate(e.StartDate)
	end := start
	if e.EndDate != nil {
		end = civilDate(*e.EndDate)
	}
	switch {
	case e.EndDate != nil && refDay.After(end):
		return EventStatusCompleted
	case !refDay.Before(start) && !refDay.After(end):
		return EventStatusOngoing
	default:
		return EventStatusUpcoming
	}
}

// DummyEvent используется для приёма данных создания события из JSON-запроса.
// Даты приходят строками в формате 2006-01-02 и парсятся вручную.
type DummyEvent struct {
	Name                string   `json:"name" validate:"required,max=255"`
	EventType           string   `json:"event_type" validate:"required,oneof=festival fair ceremony cultural"`
	Description         string   `json:"description" validate:"required"`
	StartDate           string   `json:"start_date" validate:"required"`
	EndDate             string   `json:"end_date,omitempty"`
	IsAnnual            *bool    `json:"is_annual,omitempty"`
	ExpectedAttendance  *int     `json:"expected_attendance,omitempty" validate:"omitempty,gte=0"`
	Location            string   `json:"location" validate:"required,max=255"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	OrganizingBody      *string  `json:"organizing_body,omitempty"`
	ContactEmail        *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
	EntryFee            *float64 `json:"entry_fee,omitempty" validate:"omitempty,gte=0"`
	IsFree              *bool    `json:"is_free,omitempty"`
	ParkingAvailable    bool     `json:"parking_available,omitempty"`
	AccommodationNearby bool     `json:"accommodation_nearby,omitempty"`
	Website             *string  `json:"website,omitempty"`
	IsFeatured          bool     `json:"is_featured,omitempty"`
	Status              string   `json:"status,omitempty" validate:"omitempty,oneof=upcoming ongoing completed"`
}

// DummyEventUpdate используется для частичного обновления события.
type DummyEventUpdate struct {
	Name                *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	EventType           *string  `json:"event_type,omitempty" validate:"omitempty,oneof=festival fair ceremony cultural"`
	Description         *string  `json:"description,omitempty"`
	StartDate           *string  `json:"start_date,omitempty"`
	EndDate             *string  `json:"end_date,omitempty"`
	IsAnnual            *bool    `json:"is_annual,omitempty"`
	ExpectedAttendance  *int     `json:"expected_attendance,omitempty" validate:"omitempty,gte=0"`
	Location            *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	OrganizingBody      *string  `json:"organizing_body,omitempty"`
	ContactEmail        *string  `json:"contact_email,omitempty" validate:"omitempty,email"`
	EntryFee            *float64 `json:"entry_fee,omitempty" validate:"omitempty,gte=0"`
	IsFree              *bool    `json:"is_free,omitempty"`
	ParkingAvailable    *bool    `json:"parking_available,omitempty"`
	AccommodationNearby *bool    `json:"accommodation_nearby,omitempty"`
	Website             *string  `json:"website,omitempty"`
	IsFeatured          *bool    `json:"is_featured,omitempty"`
	Status              *string  `json:"status,omitempty" validate:"omitempty,oneof=upcoming ongoing completed"`
}

// EventDates — блок дат проведения в сводке события.
type EventDates struct {
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
	IsAnnual  bool    `json:"is_annual"`
}

// EventTicketInfo — блок информации о билетах в сводке события.
type EventTicketInfo struct {
	EntryFee float64 `json:"entry_fee"`
	IsFree   bool    `json:"is_free"`
}

// EventFacilities — флаги удобств в сводке события.
type EventFacilities struct {
	Parking       bool `json:"parking"`
	Accommodation bool `json:"accommodation"`
}

// EventContact — контакты организаторов в сводке события.
type EventContact struct {
	Organization *string `json:"organization,omitempty"`
	Email        *string `json:"email,omitempty"`
}

// EventSummary — сводная карточка события для витрины.
// Статус в сводке актуализируется перед выдачей.
type EventSummary struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Status     string          `json:"status"`
	Location   string          `json:"location"`
	IsFeatured bool            `json:"is_featured"`
	Dates      EventDates      `json:"dates"`
	TicketInfo EventTicketInfo `json:"ticket_info"`
	Facilities EventFacilities `json:"facilities"`
	Contact    EventContact    `json:"contact"`
}

// EventDateRange описывает фильтр событий по диапазону дат начала.
type EventDateRange struct {
	From time.Time
	To   time.Time
}

// EventFacilityFilter описывает фильтр по удобствам события.
type EventFacilityFilter struct {
	Parking       bool
	Accommodation bool
}
