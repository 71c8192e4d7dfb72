package models

import "time"

// Temple представляет храм как объект паломничества и культурного наследия.
type Temple struct {
	ID                 int64     `json:"temple_id"`
	Name               string    `json:"name"`
	Deity              string    `json:"deity"`
	Description        string    `json:"description"`
	ArchitecturalStyle *string   `json:"architectural_style,omitempty"`
	Location           string    `json:"location"`
	Latitude           *float64  `json:"latitude,omitempty"`
	Longitude          *float64  `json:"longitude,omitempty"`
	AgeYears           *int      `json:"age_years,omitempty"`
	IsActivePilgrimage bool      `json:"is_active_pilgrimage"`
	MainFestival       *string   `json:"main_festival,omitempty"`
	PoojaTimings       *string   `json:"pooja_timings,omitempty"`
	EntryFee           *float64  `json:"entry_fee,omitempty"`
	ParkingAvailable   bool      `json:"parking_available"`
	PrasadAvailable    bool      `json:"prasad_available"`
	IsFeatured         bool      `json:"is_featured"`
	CreatedBy          *int64    `json:"created_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DummyTemple используется для приёма данных создания храма из JSON-запроса.
type DummyTemple struct {
	Name               string   `json:"name" validate:"required,max=255"`
	Deity              string   `json:"deity" validate:"required,max=100"`
	Description        string   `json:"description" validate:"required"`
	ArchitecturalStyle *string  `json:"architectural_style,omitempty"`
	Location           string   `json:"location" validate:"required,max=255"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	AgeYears           *int     `json:"age_years,omitempty" validate:"omitempty,gte=0"`
	IsActivePilgrimage *bool    `json:"is_active_pilgrimage,omitempty"`
	MainFestival       *string  `json:"main_festival,omitempty"`
	PoojaTimings       *string  `json:"pooja_timings,omitempty"`
	EntryFee           *float64 `json:"entry_fee,omitempty" validate:"omitempty,gte=0"`
	ParkingAvailable   bool     `json:"parking_available,omitempty"`
	PrasadAvailable    *bool    `json:"prasad_available,omitempty"`
	IsFeatured         bool     `json:"is_featured,omitempty"`
}

// DummyTempleUpdate используется для частичного обновления храма.
type DummyTempleUpdate struct {
	Name               *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Deity              *string  `json:"deity,omitempty" validate:"omitempty,max=100"`
	Description        *string  `json:"description,omitempty"`
	ArchitecturalStyle *string  `json:"architectural_style,omitempty"`
	Location           *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	AgeYears           *int     `json:"age_years,omitempty" validate:"omitempty,gte=0"`
	IsActivePilgrimage *bool    `json:"is_active_pilgrimage,omitempty"`
	MainFestival       *string  `json:"main_festival,omitempty"`
	PoojaTimings       *string  `json:"pooja_timings,omitempty"`
	EntryFee           *float64 `json:"entry_fee,omitempty" validate:"omitempty,gte=0"`
	ParkingAvailable   *bool    `json:"parking_available,omitempty"`
	PrasadAvailable    *bool    `json:"prasad_available,omitempty"`
	IsFeatured         *bool    `json:"is_featured,omitempty"`
}
