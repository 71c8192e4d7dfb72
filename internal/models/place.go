package models

import "time"

// Категории мест.
var ValidPlaceCategories = []string{"place", "landmark", "viewpoint", "parking"}

// Уровни доступности мест и мифологических объектов.
var ValidAccessibilityLevels = []string{"easily_accessible", "moderate", "difficult"}

// Place представляет достопримечательность, смотровую площадку или другой
// туристический объект общего назначения.
//
// ViewCount увеличивается при каждом успешном чтении по идентификатору.
type Place struct {
	ID                        int64      `json:"place_id"`
	Name                      string     `json:"name"`
	Description               string     `json:"description"`
	Category                  string     `json:"category"` // place, landmark, viewpoint, parking
	Location                  string     `json:"location"`
	Latitude                  *float64   `json:"latitude,omitempty"`
	Longitude                 *float64   `json:"longitude,omitempty"`
	ElevationMeters           *int       `json:"elevation_meters,omitempty"`
	EntryFee                  *float64   `json:"entry_fee,omitempty"`
	EntryFeeCurrency          string     `json:"entry_fee_currency"`
	BestTimeToVisit           *string    `json:"best_time_to_visit,omitempty"`
	AverageVisitDurationHours *int       `json:"average_visit_duration_hours,omitempty"`
	Accessibility             *string    `json:"accessibility,omitempty"` // easily_accessible, moderate, difficult
	ParkingAvailable          bool       `json:"parking_available"`
	PublicRestrooms           bool       `json:"public_restrooms"`
	FoodNearby                bool       `json:"food_nearby"`
	IsFeatured                bool       `json:"is_featured"`
	ViewCount                 int64      `json:"view_count"`
	CreatedBy                 *int64     `json:"created_by,omitempty"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

// DummyPlace используется для приёма данных создания места из JSON-запроса.
type DummyPlace struct {
	Name                      string   `json:"name" validate:"required,max=255"`
	Description               string   `json:"description" validate:"required"`
	Category                  string   `json:"category" validate:"required,oneof=place landmark viewpoint parking"`
	Location                  string   `json:"location" validate:"required,max=255"`
	Latitude                  *float64 `json:"latitude,omitempty"`
	Longitude                 *float64 `json:"longitude,omitempty"`
	ElevationMeters           *int     `json:"elevation_meters,omitempty"`
	EntryFee                  *float64 `json:"entry_fee,omitempty" validate:"omitempty,gte=0"`
	EntryFeeCurrency          string   `json:"entry_fee_currency,omitempty"`
	BestTimeToVisit           *string  `json:"best_time_to_visit,omitempty"`
	AverageVisitDurationHours *int     `json:"average_visit_duration_hours,omitempty"`
	Accessibility             *string  `json:"accessibility,omitempty" validate:"omitempty,oneof=easily_accessible moderate difficult"`
	ParkingAvailable          bool     `json:"parking_available,omitempty"`
	PublicRestrooms           bool     `json:"public_restrooms,omitempty"`
	FoodNearby                bool     `json:"food_nearby,omitempty"`
	IsFeatured                bool     `json:"is_featured,omitempty"`
}

// DummyPlaceUpdate используется для частичного обновления места:
// мутируются только переданные поля.
type DummyPlaceUpdate struct {
	Name                      *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Description               *string  `json:"description,omitempty"`
	Category                  *string  `json:"category,omitempty" validate:"omitempty,oneof=place landmark viewpoint parking"`
	Location                  *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Latitude                  *float64 `json:"latitude,omitempty"`
	Longitude                 *float64 `json:"longitude,omitempty"`
	ElevationMeters           *int     `json:"elevation_meters,omitempty"`
	EntryFee                  *float64 `json:"entry_fee,omitempty" validate:"omitempty,gte=0"`
	EntryFeeCurrency          *string  `json:"entry_fee_currency,omitempty"`
	BestTimeToVisit           *string  `json:"best_time_to_visit,omitempty"`
	AverageVisitDurationHours *int     `json:"average_visit_duration_hours,omitempty"`
	Accessibility             *string  `json:"accessibility,omitempty" validate:"omitempty,oneof=easily_accessible moderate difficult"`
	ParkingAvailable          *bool    `json:"parking_available,omitempty"`
	PublicRestrooms           *bool    `json:"public_restrooms,omitempty"`
	FoodNearby                *bool    `json:"food_nearby,omitempty"`
	IsFeatured                *bool    `json:"is_featured,omitempty"`
}

// PlaceFacilityFilter описывает фильтр по удобствам места.
type PlaceFacilityFilter struct {
	Parking   bool
	Restrooms bool
	Food      bool
}

// PlaceFacilities — флаги удобств в сводке места.
type PlaceFacilities struct {
	Parking   bool `json:"parking"`
	Restrooms bool `json:"restrooms"`
	Food      bool `json:"food"`
}

// PlaceVisitInfo — блок планирования посещения в сводке места.
type PlaceVisitInfo struct {
	DurationHours *int    `json:"duration_hours,omitempty"`
	BestSeason    *string `json:"best_season,omitempty"`
	EntryFee      float64 `json:"entry_fee"`
	Currency      string  `json:"currency"`
}

// PlaceSummary — сводная карточка места для витрины.
type PlaceSummary struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Location      string          `json:"location"`
	Accessibility *string         `json:"accessibility,omitempty"`
	ViewCount     int64           `json:"view_count"`
	IsFeatured    bool            `json:"is_featured"`
	Facilities    PlaceFacilities `json:"facilities"`
	VisitInfo     PlaceVisitInfo  `json:"visit_info"`
}

// EntryFeeDisplay — плата за вход с валютой. Незаданная или нулевая плата
// означает бесплатный вход.
type EntryFeeDisplay struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	IsFree   bool    `json:"is_free"`
}
