package models

import "time"

// MythologicalSite представляет мифологический или легендарный объект.
type MythologicalSite struct {
	ID                   int64     `json:"site_id"`
	Name                 string    `json:"name"`
	Mythology            string    `json:"mythology"`
	Description          string    `json:"description"`
	LegendSource         *string   `json:"legend_source,omitempty"`
	HistoricalPeriod     *string   `json:"historical_period,omitempty"`
	Location             string    `json:"location"`
	Latitude             *float64  `json:"latitude,omitempty"`
	Longitude            *float64  `json:"longitude,omitempty"`
	CulturalSignificance *string   `json:"cultural_significance,omitempty"`
	Accessibility        *string   `json:"accessibility,omitempty"` // easily_accessible, moderate, difficult
	GuideAvailable       bool      `json:"guide_available"`
	BestTimeToVisit      *string   `json:"best_time_to_visit,omitempty"`
	IsFeatured           bool      `json:"is_featured"`
	CreatedBy            *int64    `json:"created_by,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DummySite используется для приёма данных создания мифологического объекта из JSON-запроса.
type DummySite struct {
	Name                 string   `json:"name" validate:"required,max=255"`
	Mythology            string   `json:"mythology" validate:"required,max=255"`
	Description          string   `json:"description" validate:"required"`
	LegendSource         *string  `json:"legend_source,omitempty"`
	HistoricalPeriod     *string  `json:"historical_period,omitempty"`
	Location             string   `json:"location" validate:"required,max=255"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
	CulturalSignificance *string  `json:"cultural_significance,omitempty"`
	Accessibility        *string  `json:"accessibility,omitempty" validate:"omitempty,oneof=easily_accessible moderate difficult"`
	GuideAvailable       bool     `json:"guide_available,omitempty"`
	BestTimeToVisit      *string  `json:"best_time_to_visit,omitempty"`
	IsFeatured           bool     `json:"is_featured,omitempty"`
}

// DummySiteUpdate используется для частичного обновления мифологического объекта.
type DummySiteUpdate struct {
	Name                 *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Mythology            *string  `json:"mythology,omitempty" validate:"omitempty,max=255"`
	Description          *string  `json:"description,omitempty"`
	LegendSource         *string  `json:"legend_source,omitempty"`
	HistoricalPeriod     *string  `json:"historical_period,omitempty"`
	Location             *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
	CulturalSignificance *string  `json:"cultural_significance,omitempty"`
	Accessibility        *string  `json:"accessibility,omitempty" validate:"omitempty,oneof=easily_accessible moderate difficult"`
	GuideAvailable       *bool    `json:"guide_available,omitempty"`
	BestTimeToVisit      *string  `json:"best_time_to_visit,omitempty"`
	IsFeatured           *bool    `json:"is_featured,omitempty"`
}
