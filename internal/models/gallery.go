package models

import "time"

// Типы галерей.
var ValidGalleryTypes = []string{"photos", "videos", "360photos"}

// Gallery представляет альбом изображений или видео, привязанный ровно к
// одному объекту контента: месту, храму, мифологическому объекту или событию.
//
// ViewCount увеличивается при каждом успешном чтении по идентификатору.
type Gallery struct {
	ID          int64     `json:"gallery_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	GalleryType string    `json:"gallery_type"` // photos, videos, 360photos
	IsFeatured  bool      `json:"is_featured"`
	ViewCount   int64     `json:"view_count"`
	PlaceID     *int64    `json:"place_id,omitempty"`
	TempleID    *int64    `json:"temple_id,omitempty"`
	SiteID      *int64    `json:"site_id,omitempty"`
	EventID     *int64    `json:"event_id,omitempty"`
	CreatedBy   *int64    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GalleryImage представляет отдельное изображение внутри галереи.
//
// Позиция в галерее задаётся явным полем ImageOrder, а не положением в списке;
// в галерее одновременно может быть не больше одного изображения с IsFeatured = true.
type GalleryImage struct {
	ID           int64     `json:"image_id"`
	GalleryID    int64     `json:"gallery_id"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	Title        string    `json:"title"`
	Caption      *string   `json:"caption,omitempty"`
	Photographer *string   `json:"photographer,omitempty"`
	ImageOrder   int       `json:"image_order"`
	IsFeatured   bool      `json:"is_featured"`
	ViewCount    int64     `json:"view_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// DummyGallery используется для приёма данных создания галереи из JSON-запроса.
type DummyGallery struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
	GalleryType string  `json:"gallery_type" validate:"required,oneof=photos videos 360photos"`
	IsFeatured  bool    `json:"is_featured,omitempty"`
	PlaceID     *int64  `json:"place_id,omitempty"`
	TempleID    *int64  `json:"temple_id,omitempty"`
	SiteID      *int64  `json:"site_id,omitempty"`
	EventID     *int64  `json:"event_id,omitempty"`
}

// DummyGalleryUpdate используется для частичного обновления галереи.
// Привязка к объекту контента неизменяема после создания.
type DummyGalleryUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	GalleryType *string `json:"gallery_type,omitempty" validate:"omitempty,oneof=photos videos 360photos"`
	IsFeatured  *bool   `json:"is_featured,omitempty"`
}

// DummyGalleryImage используется для приёма данных добавления изображения в галерею.
type DummyGalleryImage struct {
	ImageURL     string  `json:"image_url" validate:"required,max=500"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" validate:"omitempty,max=500"`
	Title        string  `json:"title" validate:"required,max=255"`
	Caption      *string `json:"caption,omitempty"`
	Photographer *string `json:"photographer,omitempty" validate:"omitempty,max=100"`
	ImageOrder   int     `json:"image_order" validate:"required,gt=0"`
}

// GalleryStatistics — счётчики галереи и её изображений.
type GalleryStatistics struct {
	GalleryID       int64     `json:"gallery_id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	ImageCount      int       `json:"image_count"`
	ViewCount       int64     `json:"view_count"`
	TotalImageViews int64     `json:"total_image_views"`
	IsFeatured      bool      `json:"is_featured"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GalleryFeaturedImage — краткие данные заглавного изображения в сводке галереи.
type GalleryFeaturedImage struct {
	ID        int64   `json:"id"`
	URL       string  `json:"url"`
	Thumbnail *string `json:"thumbnail,omitempty"`
}

// GalleryImagesInfo — блок изображений в сводке галереи.
type GalleryImagesInfo struct {
	Total         int                   `json:"total"`
	FeaturedImage *GalleryFeaturedImage `json:"featured_image,omitempty"`
}

// GalleryOwnerInfo — привязка галереи к объекту контента в сводке.
type GalleryOwnerInfo struct {
	PlaceID  *int64 `json:"place_id,omitempty"`
	TempleID *int64 `json:"temple_id,omitempty"`
	SiteID   *int64 `json:"site_id,omitempty"`
	EventID  *int64 `json:"event_id,omitempty"`
}

// GallerySummary — сводная карточка галереи для витрины.
type GallerySummary struct {
	ID                 int64             `json:"id"`
	Name               string            `json:"name"`
	Description        *string           `json:"description,omitempty"`
	Type               string            `json:"type"`
	IsFeatured         bool              `json:"is_featured"`
	ViewCount          int64             `json:"view_count"`
	Images             GalleryImagesInfo `json:"images"`
	ContentAssociation GalleryOwnerInfo  `json:"content_association"`
}

// DummyReorder используется для приёма отображения image_id -> новый порядок.
// Порядок меняется только у перечисленных изображений; дыры и дубликаты
// порядковых значений допустимы.
type DummyReorder struct {
	Order map[int64]int `json:"order" validate:"required,min=1"`
}
