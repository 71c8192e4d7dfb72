package models

import (
	"testing"
	"time"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Даты в запросах приходят строками и парсятся в сервисах, поэтому
// структуры запросов должны проходить валидацию без кастомных правил дат.
func TestDummyStructs_ValidateWithoutPanic(t *testing.T) {
	v := validator.New()

	t.Run("корректное событие", func(t *testing.T) {
		err := v.Struct(DummyEvent{
			Name:        "Harvest Fair",
			EventType:   "fair",
			Description: "Annual harvest fair",
			StartDate:   "2026-09-10",
			EndDate:     "2026-09-12",
			Location:    "Town Square",
		})
		require.NoError(t, err)
	})

	t.Run("корректное обновление события", func(t *testing.T) {
		start := "2026-09-11"
		err := v.Struct(DummyEventUpdate{StartDate: &start})
		require.NoError(t, err)
	})

	t.Run("корректный отзыв с датой посещения", func(t *testing.T) {
		placeID := int64(4)
		err := v.Struct(DummyReview{
			Title:        "Great trip",
			Content:      "Worth the climb",
			Rating:       5,
			ReviewType:   "place",
			PlaceID:      &placeID,
			VisitorName:  "Asha",
			VisitorEmail: "asha@example.com",
			VisitDate:    "2026-08-01",
		})
		require.NoError(t, err)
	})
}

func TestEvent_StatusAtCreation(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"будущая дата начала", "2026-09-10", EventStatusUpcoming},
		{"начало сегодня", "2026-08-23", EventStatusOngoing},
		{"начало в прошлом", "2026-08-01", EventStatusOngoing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{StartDate: day(tt.start)}
			assert.Equal(t, tt.want, e.StatusAtCreation(now))
		})
	}
}

// Статус сравнивается по календарному дню в зоне сервера: событие,
// начинающееся "сегодня", идёт уже с первой минуты суток.
func TestEvent_DeriveStatus_LocalMidnight(t *testing.T) {
	start := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	t.Run("первая минута дня начала в восточной зоне", func(t *testing.T) {
		ref := time.Date(2026, 8, 23, 0, 30, 0, 0, time.FixedZone("NZDT", 13*60*60))
		e := Event{StartDate: start}
		assert.Equal(t, EventStatusOngoing, e.DeriveStatus(ref))
	})

	t.Run("канун дня начала в западной зоне", func(t *testing.T) {
		ref := time.Date(2026, 8, 22, 23, 30, 0, 0, time.FixedZone("PDT", -7*60*60))
		e := Event{StartDate: start}
		assert.Equal(t, EventStatusUpcoming, e.DeriveStatus(ref))
	})

	t.Run("день после окончания становится completed", func(t *testing.T) {
		end := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
		ref := time.Date(2026, 8, 26, 0, 10, 0, 0, time.FixedZone("IST", 5*60*60+30*60))
		e := Event{StartDate: start, EndDate: &end}
		assert.Equal(t, EventStatusCompleted, e.DeriveStatus(ref))
	})
}
