package models

import "time"

// Рекомендации посещения по сезону.
var ValidRecommendations = []string{"excellent", "good", "moderate", "poor"}

// Season представляет сезон года с климатическими характеристиками.
type Season struct {
	ID                    int64     `json:"season_id"`
	Name                  string    `json:"name"` // уникальное
	MonthStart            int       `json:"month_start"` // 1-12
	MonthEnd              int       `json:"month_end"`   // 1-12
	TemperatureMinCelsius *int      `json:"temperature_min_celsius,omitempty"`
	TemperatureMaxCelsius *int      `json:"temperature_max_celsius,omitempty"`
	HumidityPercent       *int      `json:"humidity_percent,omitempty"`
	RainfallMM            *int      `json:"rainfall_mm,omitempty"`
	Description           *string   `json:"description,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// SeasonalAvailability связывает место с сезоном и рекомендацией посещения.
type SeasonalAvailability struct {
	ID             int64     `json:"id"`
	PlaceID        int64     `json:"place_id"`
	SeasonID       int64     `json:"season_id"`
	Recommendation string    `json:"recommendation"` // excellent, good, moderate, poor
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DummySeason используется для приёма данных создания сезона из JSON-запроса.
type DummySeason struct {
	Name                  string  `json:"name" validate:"required,max=50"`
	MonthStart            int     `json:"month_start" validate:"required,gte=1,lte=12"`
	MonthEnd              int     `json:"month_end" validate:"required,gte=1,lte=12"`
	TemperatureMinCelsius *int    `json:"temperature_min_celsius,omitempty"`
	TemperatureMaxCelsius *int    `json:"temperature_max_celsius,omitempty"`
	HumidityPercent       *int    `json:"humidity_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	RainfallMM            *int    `json:"rainfall_mm,omitempty" validate:"omitempty,gte=0"`
	Description           *string `json:"description,omitempty"`
}

// DummySeasonUpdate используется для частичного обновления сезона.
type DummySeasonUpdate struct {
	Name                  *string `json:"name,omitempty" validate:"omitempty,max=50"`
	MonthStart            *int    `json:"month_start,omitempty" validate:"omitempty,gte=1,lte=12"`
	MonthEnd              *int    `json:"month_end,omitempty" validate:"omitempty,gte=1,lte=12"`
	TemperatureMinCelsius *int    `json:"temperature_min_celsius,omitempty"`
	TemperatureMaxCelsius *int    `json:"temperature_max_celsius,omitempty"`
	HumidityPercent       *int    `json:"humidity_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	RainfallMM            *int    `json:"rainfall_mm,omitempty" validate:"omitempty,gte=0"`
	Description           *string `json:"description,omitempty"`
}

// DummyAvailability используется для приёма привязки места к сезону.
type DummyAvailability struct {
	SeasonID       int64   `json:"season_id" validate:"required,gt=0"`
	Recommendation string  `json:"recommendation" validate:"required,oneof=excellent good moderate poor"`
	Notes          *string `json:"notes,omitempty"`
}
