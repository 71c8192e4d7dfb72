package place

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osam-tourism/tourism-api/internal/http/middlewarectx"
	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, req models.DummyPlace, createdBy int64) (int64, error) {
	args := m.Called(ctx, req, createdBy)
	return args.Get(0).(int64), args.Error(1)
}
func (m *ServiceMock) Get(ctx context.Context, id int64) (*models.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}
func (m *ServiceMock) List(ctx context.Context, limit, offset int) ([]*models.Place, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}
func (m *ServiceMock) Update(ctx context.Context, id int64, req models.DummyPlaceUpdate) (*models.Place, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}
func (m *ServiceMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *ServiceMock) ToggleFeatured(ctx context.Context, id int64) (*models.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}
func (m *ServiceMock) SearchByName(ctx context.Context, name string) ([]*models.Place, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}
func (m *ServiceMock) SearchByLocation(ctx context.Context, location string) ([]*models.Place, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}
func (m *ServiceMock) FilterByCategory(ctx context.Context, category string) ([]*models.Place, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}
func (m *ServiceMock) FilterByAccessibility(ctx context.Context, accessibility string) ([]*models.Place, error) {
	args := m.Called(ctx, accessibility)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}
func (m *ServiceMock) ListFeatured(ctx context.Context) ([]*models.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}
func (m *ServiceMock) ListPopular(ctx context.Context, minViews, limit int) ([]*models.Place, error) {
	args := m.Called(ctx, minViews, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}
func (m *ServiceMock) Summary(ctx context.Context, id int64) (*models.PlaceSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaceSummary), args.Error(1)
}
func (m *ServiceMock) EntryFeeDisplay(ctx context.Context, id int64) (*models.EntryFeeDisplay, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EntryFeeDisplay), args.Error(1)
}
func (m *ServiceMock) ListFree(ctx context.Context) ([]*models.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}
func (m *ServiceMock) ListWithFacilities(ctx context.Context, f models.PlaceFacilityFilter) ([]*models.Place, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Place), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// withURLParam кладет параметр маршрута chi в контекст запроса.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middlewarectx.User, u))
}

func TestPlaceHandler_Get(t *testing.T) {
	t.Run("существующее место", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Get", mock.Anything, int64(11)).
			Return(&models.Place{ID: 11, Name: "Sunset Point", ViewCount: 6}, nil).Once()
		handler := New(newNoopLogger(), svcMock)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/places/11", nil), "id", "11")
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "OK", body["status"])
		svcMock.AssertExpectations(t)
	})

	t.Run("несуществующее место", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Get", mock.Anything, int64(99)).
			Return(nil, fmt.Errorf("storage.repository.GetPlaceAndBumpViews: %w", storage.ErrNotFound)).Once()
		handler := New(newNoopLogger(), svcMock)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/places/99", nil), "id", "99")
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("нечисловой идентификатор", func(t *testing.T) {
		svcMock := new(ServiceMock)
		handler := New(newNoopLogger(), svcMock)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/places/abc", nil), "id", "abc")
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svcMock.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestPlaceHandler_Create(t *testing.T) {
	admin := &models.User{ID: 1, Username: "root", Role: models.RoleAdmin}
	reqBody := models.DummyPlace{
		Name:        "Sunset Point",
		Description: "Panoramic viewpoint",
		Category:    "viewpoint",
		Location:    "West Ridge",
	}

	t.Run("создание от имени администратора", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Create", mock.Anything, reqBody, int64(1)).Return(int64(11), nil).Once()
		handler := New(newNoopLogger(), svcMock)

		bodyBytes, err := json.Marshal(reqBody)
		require.NoError(t, err)
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/places", bytes.NewReader(bodyBytes)), admin)
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		data := body["data"].(map[string]any)
		assert.Equal(t, float64(11), data["place_id"])
		svcMock.AssertExpectations(t)
	})

	t.Run("без обязательных полей", func(t *testing.T) {
		svcMock := new(ServiceMock)
		handler := New(newNoopLogger(), svcMock)

		bodyBytes, err := json.Marshal(models.DummyPlace{Name: "No category"})
		require.NoError(t, err)
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/places", bytes.NewReader(bodyBytes)), admin)
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		svcMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("без пользователя в контексте", func(t *testing.T) {
		svcMock := new(ServiceMock)
		handler := New(newNoopLogger(), svcMock)

		bodyBytes, err := json.Marshal(reqBody)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/places", bytes.NewReader(bodyBytes))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPlaceHandler_Search(t *testing.T) {
	t.Run("поиск по имени", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("SearchByName", mock.Anything, "point").
			Return([]*models.Place{{ID: 11, Name: "Sunset Point"}}, nil).Once()
		handler := New(newNoopLogger(), svcMock)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/places/search?name=point", nil)
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		data := body["data"].(map[string]any)
		assert.Equal(t, float64(1), data["count"])
		svcMock.AssertExpectations(t)
	})

	t.Run("без параметров поиска", func(t *testing.T) {
		svcMock := new(ServiceMock)
		handler := New(newNoopLogger(), svcMock)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/places/search", nil)
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPlaceHandler_FilterByCategory_InvalidEnum(t *testing.T) {
	svcMock := new(ServiceMock)
	svcMock.On("FilterByCategory", mock.Anything, "castle").
		Return(nil, models.InvalidEnum("category", "castle", models.ValidPlaceCategories)).Once()
	handler := New(newNoopLogger(), svcMock)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/places/category/castle", nil), "category", "castle")
	rec := httptest.NewRecorder()
	handler.FilterByCategory(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlaceHandler_ListWithFacilities_Flags(t *testing.T) {
	svcMock := new(ServiceMock)
	svcMock.On("ListWithFacilities", mock.Anything, models.PlaceFacilityFilter{Parking: true, Food: true}).
		Return([]*models.Place{}, nil).Once()
	handler := New(newNoopLogger(), svcMock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/places/facilities?parking=true&food=true", nil)
	rec := httptest.NewRecorder()
	handler.ListWithFacilities(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svcMock.AssertExpectations(t)
}

func TestPlaceHandler_ListPopular_MinViews(t *testing.T) {
	t.Run("без параметров порог делегируется сервису", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("ListPopular", mock.Anything, -1, 0).
			Return([]*models.Place{{ID: 11, Name: "Sunset Point", ViewCount: 150}}, nil).Once()
		handler := New(newNoopLogger(), svcMock)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/places/popular", nil)
		rec := httptest.NewRecorder()
		handler.ListPopular(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svcMock.AssertExpectations(t)
	})

	t.Run("явный min_views передается как есть", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("ListPopular", mock.Anything, 0, 5).
			Return([]*models.Place{}, nil).Once()
		handler := New(newNoopLogger(), svcMock)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/places/popular?min_views=0&limit=5", nil)
		rec := httptest.NewRecorder()
		handler.ListPopular(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svcMock.AssertExpectations(t)
	})
}

func TestPlaceHandler_Summary(t *testing.T) {
	t.Run("сводка существующего места", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Summary", mock.Anything, int64(11)).
			Return(&models.PlaceSummary{ID: 11, Name: "Sunset Point", ViewCount: 7}, nil).Once()
		handler := New(newNoopLogger(), svcMock)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/places/11/summary", nil), "id", "11")
		rec := httptest.NewRecorder()
		handler.Summary(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		data := body["data"].(map[string]any)
		assert.Equal(t, "Sunset Point", data["name"])
		svcMock.AssertExpectations(t)
	})

	t.Run("несуществующее место", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Summary", mock.Anything, int64(99)).
			Return(nil, fmt.Errorf("services.place.summary: %w", storage.ErrNotFound)).Once()
		handler := New(newNoopLogger(), svcMock)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/places/99/summary", nil), "id", "99")
		rec := httptest.NewRecorder()
		handler.Summary(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPlaceHandler_EntryFeeDisplay(t *testing.T) {
	svcMock := new(ServiceMock)
	svcMock.On("EntryFeeDisplay", mock.Anything, int64(11)).
		Return(&models.EntryFeeDisplay{Amount: 0, Currency: "INR", IsFree: true}, nil).Once()
	handler := New(newNoopLogger(), svcMock)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/places/11/entry-fee", nil), "id", "11")
	rec := httptest.NewRecorder()
	handler.EntryFeeDisplay(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["is_free"])
	svcMock.AssertExpectations(t)
}
