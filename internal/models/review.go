package models

import "time"

// Статусы модерации отзыва.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// ValidReviewStatuses перечисляет допустимые статусы модерации.
var ValidReviewStatuses = []string{ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected}

// ValidReviewTypes перечисляет типы контента, на который пишется отзыв.
var ValidReviewTypes = []string{OwnerPlace, OwnerTemple, OwnerSite, OwnerEvent}

// Review представляет отзыв посетителя о месте, храме, объекте или событии.
// Новые отзывы попадают в статус pending и публикуются после модерации.
type Review struct {
	ID             int64      `json:"review_id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Rating         int        `json:"rating"` // 1-5
	ReviewType     string     `json:"review_type"`
	PlaceID        *int64     `json:"place_id,omitempty"`
	TempleID       *int64     `json:"temple_id,omitempty"`
	SiteID         *int64     `json:"site_id,omitempty"`
	EventID        *int64     `json:"event_id,omitempty"`
	VisitorName    string     `json:"visitor_name"`
	VisitorEmail   string     `json:"visitor_email"`
	VisitDate      *time.Time `json:"visit_date,omitempty"`
	IsVerified     bool       `json:"is_verified"`
	IsFeatured     bool       `json:"is_featured"`
	HelpfulCount   int        `json:"helpful_count"`
	UnhelpfulCount int        `json:"unhelpful_count"`
	Status         string     `json:"status"` // pending, approved, rejected
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// DummyReview используется для приёма отзыва из JSON-запроса.
// Дата посещения приходит строкой в формате 2006-01-02.
type DummyReview struct {
	Title        string `json:"title" validate:"required,max=255"`
	Content      string `json:"content" validate:"required"`
	Rating       int    `json:"rating" validate:"required,gte=1,lte=5"`
	ReviewType   string `json:"review_type" validate:"required,oneof=place temple site event"`
	PlaceID      *int64 `json:"place_id,omitempty"`
	TempleID     *int64 `json:"temple_id,omitempty"`
	SiteID       *int64 `json:"site_id,omitempty"`
	EventID      *int64 `json:"event_id,omitempty"`
	VisitorName  string `json:"visitor_name" validate:"required,max=100"`
	VisitorEmail string `json:"visitor_email" validate:"required,email"`
	VisitDate    string `json:"visit_date,omitempty"`
}
