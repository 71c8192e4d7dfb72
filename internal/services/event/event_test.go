package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osam-tourism/tourism-api/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateEvent(ctx context.Context, e models.Event) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}
func (m *RepoMock) ListEvents(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) UpdateEvent(ctx context.Context, e models.Event) error {
	return m.Called(ctx, e).Error(0)
}
func (m *RepoMock) UpdateEventStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *RepoMock) DeleteEvent(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *RepoMock) SearchEventsByName(ctx context.Context, name string) ([]*models.Event, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) FilterEventsByType(ctx context.Context, eventType string) ([]*models.Event, error) {
	args := m.Called(ctx, eventType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) FilterEventsByStatus(ctx context.Context, status string) ([]*models.Event, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) ListEventsByDateRange(ctx context.Context, r models.EventDateRange) ([]*models.Event, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) ListAnnualEvents(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) ListFeaturedEvents(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) ListFreeEvents(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) ListEventsWithFacilities(ctx context.Context, f models.EventFacilityFilter) ([]*models.Event, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// newServiceAt создает сервис с фиксированным текущим днём для детерминизма.
func newServiceAt(repo *RepoMock, now time.Time) *EventService {
	svc := NewEventService(repo, newNoopLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestEventService_Create_StatusDerivation(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		startDate  string
		endDate    string
		wantStatus string
		wantErr    bool
	}{
		{
			name:       "будущее событие получает upcoming",
			startDate:  "2026-09-10",
			endDate:    "2026-09-12",
			wantStatus: models.EventStatusUpcoming,
		},
		{
			name:       "идущее событие получает ongoing",
			startDate:  "2026-08-20",
			endDate:    "2026-08-25",
			wantStatus: models.EventStatusOngoing,
		},
		{
			name:       "событие начинается сегодня и получает ongoing",
			startDate:  "2026-08-23",
			endDate:    "2026-08-25",
			wantStatus: models.EventStatusOngoing,
		},
		{
			// completed при создании не выставляется, даже для прошедших дат.
			name:       "полностью прошедшее событие получает ongoing",
			startDate:  "2026-08-01",
			endDate:    "2026-08-05",
			wantStatus: models.EventStatusOngoing,
		},
		{
			name:       "однодневное событие в прошлом получает ongoing без даты окончания",
			startDate:  "2026-08-01",
			wantStatus: models.EventStatusOngoing,
		},
		{
			name:      "окончание раньше начала отклоняется",
			startDate: "2026-09-10",
			endDate:   "2026-09-01",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if !tt.wantErr {
				repo.On("CreateEvent", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
					return e.Status == tt.wantStatus
				})).Return(int64(3), nil).Once()
			}
			svc := newServiceAt(repo, now)

			req := models.DummyEvent{
				Name:        "Harvest Fair",
				EventType:   "fair",
				Description: "Annual harvest fair",
				StartDate:   tt.startDate,
				EndDate:     tt.endDate,
				Location:    "Town Square",
			}
			_, err := svc.Create(context.Background(), req, 1)
			if tt.wantErr {
				require.Error(t, err)
				var verr *models.ValidationError
				assert.True(t, errors.As(err, &verr))
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestEventService_RefreshStatus(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	stale := &models.Event{
		ID:        3,
		Name:      "Harvest Fair",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
		Status:    models.EventStatusUpcoming,
	}

	t.Run("устаревший статус пересчитывается и сохраняется", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetEventByID", mock.Anything, int64(3)).Return(stale, nil).Once()
		repo.On("UpdateEventStatus", mock.Anything, int64(3), models.EventStatusCompleted).Return(nil).Once()
		svc := newServiceAt(repo, now)

		e, err := svc.RefreshStatus(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, models.EventStatusCompleted, e.Status)
		repo.AssertExpectations(t)
	})

	t.Run("актуальный статус не перезаписывается", func(t *testing.T) {
		fresh := *stale
		fresh.Status = models.EventStatusCompleted
		repo := new(RepoMock)
		repo.On("GetEventByID", mock.Anything, int64(3)).Return(&fresh, nil).Once()
		svc := newServiceAt(repo, now)

		e, err := svc.RefreshStatus(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, models.EventStatusCompleted, e.Status)
		repo.AssertNotCalled(t, "UpdateEventStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEventService_Update_KeepsStoredStatus(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	existing := &models.Event{
		ID:        3,
		Name:      "Harvest Fair",
		EventType: "fair",
		StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:    models.EventStatusUpcoming,
	}
	newStart := "2026-07-01"

	repo := new(RepoMock)
	repo.On("GetEventByID", mock.Anything, int64(3)).Return(existing, nil).Once()
	repo.On("UpdateEvent", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
		// Смена дат не пересчитывает статус, для этого есть RefreshStatus.
		return e.Status == models.EventStatusUpcoming &&
			e.StartDate.Format("2006-01-02") == newStart
	})).Return(nil).Once()
	svc := newServiceAt(repo, now)

	_, err := svc.Update(context.Background(), 3, models.DummyEventUpdate{StartDate: &newStart})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestEventService_ListByDateRange_Validation(t *testing.T) {
	repo := new(RepoMock)
	svc := newServiceAt(repo, time.Now())

	_, err := svc.ListByDateRange(context.Background(), "2026-09-10", "2026-09-01")
	require.Error(t, err)
	var verr *models.ValidationError
	assert.True(t, errors.As(err, &verr))
	repo.AssertNotCalled(t, "ListEventsByDateRange", mock.Anything, mock.Anything)
}

func TestEventService_RefreshStatuses_BulkCount(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	endOld := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	upcoming := []*models.Event{
		{ID: 2, StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Status: models.EventStatusUpcoming},
	}
	ongoing := []*models.Event{
		{ID: 1, StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), EndDate: &endOld, Status: models.EventStatusOngoing},
	}

	repo := new(RepoMock)
	repo.On("FilterEventsByStatus", mock.Anything, models.EventStatusUpcoming).Return(upcoming, nil).Once()
	repo.On("FilterEventsByStatus", mock.Anything, models.EventStatusOngoing).Return(ongoing, nil).Once()
	repo.On("UpdateEventStatus", mock.Anything, int64(1), models.EventStatusCompleted).Return(nil).Once()
	svc := newServiceAt(repo, now)

	updated, err := svc.RefreshStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	repo.AssertExpectations(t)
}

func TestEventService_Summary_RefreshesStatus(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	stale := &models.Event{
		ID:        3,
		Name:      "Harvest Fair",
		EventType: "fair",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
		Status:    models.EventStatusOngoing,
		IsFree:    true,
	}

	repo := new(RepoMock)
	repo.On("GetEventByID", mock.Anything, int64(3)).Return(stale, nil).Once()
	repo.On("UpdateEventStatus", mock.Anything, int64(3), models.EventStatusCompleted).Return(nil).Once()
	svc := newServiceAt(repo, now)

	got, err := svc.Summary(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCompleted, got.Status)
	assert.Equal(t, "2026-08-01", got.Dates.StartDate)
	require.NotNil(t, got.Dates.EndDate)
	assert.Equal(t, "2026-08-05", *got.Dates.EndDate)
	assert.True(t, got.TicketInfo.IsFree)
	repo.AssertExpectations(t)
}
