package gallery

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

	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, req models.DummyGallery, createdBy int64) (int64, error) {
	args := m.Called(ctx, req, createdBy)
	return args.Get(0).(int64), args.Error(1)
}
func (m *ServiceMock) Get(ctx context.Context, id int64) (*models.Gallery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gallery), args.Error(1)
}
func (m *ServiceMock) List(ctx context.Context, limit, offset int) ([]*models.Gallery, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Gallery), args.Error(1)
}
func (m *ServiceMock) Update(ctx context.Context, id int64, req models.DummyGalleryUpdate) (*models.Gallery, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gallery), args.Error(1)
}
func (m *ServiceMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *ServiceMock) SearchByName(ctx context.Context, name string) ([]*models.Gallery, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Gallery), args.Error(1)
}
func (m *ServiceMock) FilterByType(ctx context.Context, galleryType string) ([]*models.Gallery, error) {
	args := m.Called(ctx, galleryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Gallery), args.Error(1)
}
func (m *ServiceMock) ListFeatured(ctx context.Context) ([]*models.Gallery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Gallery), args.Error(1)
}
func (m *ServiceMock) ListPopular(ctx context.Context, minViews, limit int) ([]*models.Gallery, error) {
	args := m.Called(ctx, minViews, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Gallery), args.Error(1)
}
func (m *ServiceMock) ToggleFeatured(ctx context.Context, id int64) (*models.Gallery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gallery), args.Error(1)
}
func (m *ServiceMock) Statistics(ctx context.Context, id int64) (*models.GalleryStatistics, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GalleryStatistics), args.Error(1)
}
func (m *ServiceMock) Summary(ctx context.Context, id int64) (*models.GallerySummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GallerySummary), args.Error(1)
}
func (m *ServiceMock) ListForOwner(ctx context.Context, ref models.OwnerRef) ([]*models.Gallery, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Gallery), args.Error(1)
}
func (m *ServiceMock) AddImage(ctx context.Context, galleryID int64, req models.DummyGalleryImage) (int64, error) {
	args := m.Called(ctx, galleryID, req)
	return args.Get(0).(int64), args.Error(1)
}
func (m *ServiceMock) ListImages(ctx context.Context, galleryID int64) ([]*models.GalleryImage, error) {
	args := m.Called(ctx, galleryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GalleryImage), args.Error(1)
}
func (m *ServiceMock) DeleteImage(ctx context.Context, galleryID, imageID int64) error {
	return m.Called(ctx, galleryID, imageID).Error(0)
}
func (m *ServiceMock) Reorder(ctx context.Context, galleryID int64, req models.DummyReorder) error {
	return m.Called(ctx, galleryID, req).Error(0)
}
func (m *ServiceMock) SetFeaturedImage(ctx context.Context, galleryID, imageID int64) error {
	return m.Called(ctx, galleryID, imageID).Error(0)
}
func (m *ServiceMock) GetFeaturedImage(ctx context.Context, galleryID int64) (*models.GalleryImage, error) {
	args := m.Called(ctx, galleryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GalleryImage), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGalleryHandler_ForOwner(t *testing.T) {
	t.Run("галереи места", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("ListForOwner", mock.Anything, models.OwnerRef{Kind: models.OwnerPlace, ID: 11}).
			Return([]*models.Gallery{{ID: 3, Name: "Morning light"}}, nil).Once()
		handler := New(newNoopLogger(), svcMock)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/places/11/galleries", nil),
			map[string]string{"id": "11"})
		rec := httptest.NewRecorder()
		handler.ForOwner(models.OwnerPlace)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		data := body["data"].(map[string]any)
		assert.Equal(t, float64(1), data["count"])
		svcMock.AssertExpectations(t)
	})

	t.Run("нечисловой идентификатор владельца", func(t *testing.T) {
		svcMock := new(ServiceMock)
		handler := New(newNoopLogger(), svcMock)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/places/abc/galleries", nil),
			map[string]string{"id": "abc"})
		rec := httptest.NewRecorder()
		handler.ForOwner(models.OwnerPlace)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svcMock.AssertNotCalled(t, "ListForOwner", mock.Anything, mock.Anything)
	})
}

func TestGalleryHandler_AddImage(t *testing.T) {
	valid := models.DummyGalleryImage{
		ImageURL:   "https://cdn.example.com/sunrise.jpg",
		Title:      "Sunrise",
		ImageOrder: 1,
	}

	t.Run("успешное добавление", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("AddImage", mock.Anything, int64(3), valid).Return(int64(42), nil).Once()
		handler := New(newNoopLogger(), svcMock)

		bodyBytes, err := json.Marshal(valid)
		require.NoError(t, err)
		req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/galleries/3/images", bytes.NewReader(bodyBytes)),
			map[string]string{"id": "3"})
		rec := httptest.NewRecorder()
		handler.AddImage(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		data := body["data"].(map[string]any)
		assert.Equal(t, float64(42), data["image_id"])
		svcMock.AssertExpectations(t)
	})

	t.Run("без обязательного url", func(t *testing.T) {
		svcMock := new(ServiceMock)
		handler := New(newNoopLogger(), svcMock)

		bodyBytes, err := json.Marshal(models.DummyGalleryImage{Title: "Sunrise", ImageOrder: 1})
		require.NoError(t, err)
		req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/galleries/3/images", bytes.NewReader(bodyBytes)),
			map[string]string{"id": "3"})
		rec := httptest.NewRecorder()
		handler.AddImage(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		svcMock.AssertNotCalled(t, "AddImage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("галерея не найдена", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("AddImage", mock.Anything, int64(99), valid).
			Return(int64(0), fmt.Errorf("storage.repository.AddGalleryImage: %w", storage.ErrNotFound)).Once()
		handler := New(newNoopLogger(), svcMock)

		bodyBytes, err := json.Marshal(valid)
		require.NoError(t, err)
		req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/galleries/99/images", bytes.NewReader(bodyBytes)),
			map[string]string{"id": "99"})
		rec := httptest.NewRecorder()
		handler.AddImage(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGalleryHandler_DeleteImage(t *testing.T) {
	svcMock := new(ServiceMock)
	svcMock.On("DeleteImage", mock.Anything, int64(3), int64(42)).Return(nil).Once()
	handler := New(newNoopLogger(), svcMock)

	req := withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/galleries/3/images/42", nil),
		map[string]string{"id": "3", "imageID": "42"})
	rec := httptest.NewRecorder()
	handler.DeleteImage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svcMock.AssertExpectations(t)
}

func TestGalleryHandler_SetFeaturedImage(t *testing.T) {
	t.Run("назначение обложки", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("SetFeaturedImage", mock.Anything, int64(3), int64(42)).Return(nil).Once()
		handler := New(newNoopLogger(), svcMock)

		bodyBytes, err := json.Marshal(FeaturedImageRequest{ImageID: 42})
		require.NoError(t, err)
		req := withURLParams(httptest.NewRequest(http.MethodPut, "/api/v1/galleries/3/featured-image", bytes.NewReader(bodyBytes)),
			map[string]string{"id": "3"})
		rec := httptest.NewRecorder()
		handler.SetFeaturedImage(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svcMock.AssertExpectations(t)
	})

	t.Run("нулевой image_id", func(t *testing.T) {
		svcMock := new(ServiceMock)
		handler := New(newNoopLogger(), svcMock)

		bodyBytes, err := json.Marshal(FeaturedImageRequest{ImageID: 0})
		require.NoError(t, err)
		req := withURLParams(httptest.NewRequest(http.MethodPut, "/api/v1/galleries/3/featured-image", bytes.NewReader(bodyBytes)),
			map[string]string{"id": "3"})
		rec := httptest.NewRecorder()
		handler.SetFeaturedImage(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		svcMock.AssertNotCalled(t, "SetFeaturedImage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGalleryHandler_Reorder(t *testing.T) {
	reqBody := models.DummyReorder{Order: map[int64]int{42: 2, 43: 1}}

	svcMock := new(ServiceMock)
	svcMock.On("Reorder", mock.Anything, int64(3), reqBody).Return(nil).Once()
	handler := New(newNoopLogger(), svcMock)

	bodyBytes, err := json.Marshal(reqBody)
	require.NoError(t, err)
	req := withURLParams(httptest.NewRequest(http.MethodPut, "/api/v1/galleries/3/images/reorder", bytes.NewReader(bodyBytes)),
		map[string]string{"id": "3"})
	rec := httptest.NewRecorder()
	handler.Reorder(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svcMock.AssertExpectations(t)
}

func TestGalleryHandler_ListPopular_MinViews(t *testing.T) {
	t.Run("без параметров порог делегируется сервису", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("ListPopular", mock.Anything, -1, 0).
			Return([]*models.Gallery{{ID: 3, Name: "Morning light", ViewCount: 120}}, nil).Once()
		handler := New(newNoopLogger(), svcMock)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/galleries/popular", nil)
		rec := httptest.NewRecorder()
		handler.ListPopular(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svcMock.AssertExpectations(t)
	})

	t.Run("явный min_views передается как есть", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("ListPopular", mock.Anything, 0, 3).
			Return([]*models.Gallery{}, nil).Once()
		handler := New(newNoopLogger(), svcMock)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/galleries/popular?min_views=0&limit=3", nil)
		rec := httptest.NewRecorder()
		handler.ListPopular(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svcMock.AssertExpectations(t)
	})
}

func TestGalleryHandler_ToggleFeatured(t *testing.T) {
	svcMock := new(ServiceMock)
	svcMock.On("ToggleFeatured", mock.Anything, int64(3)).
		Return(&models.Gallery{ID: 3, Name: "Morning light", IsFeatured: true}, nil).Once()
	handler := New(newNoopLogger(), svcMock)

	req := withURLParams(httptest.NewRequest(http.MethodPut, "/api/v1/galleries/3/toggle-featured", nil),
		map[string]string{"id": "3"})
	rec := httptest.NewRecorder()
	handler.ToggleFeatured(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["is_featured"])
	svcMock.AssertExpectations(t)
}

func TestGalleryHandler_Statistics(t *testing.T) {
	svcMock := new(ServiceMock)
	svcMock.On("Statistics", mock.Anything, int64(3)).
		Return(&models.GalleryStatistics{GalleryID: 3, Name: "Morning light", ImageCount: 2, TotalImageViews: 15}, nil).Once()
	handler := New(newNoopLogger(), svcMock)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/galleries/3/statistics", nil),
		map[string]string{"id": "3"})
	rec := httptest.NewRecorder()
	handler.Statistics(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(2), data["image_count"])
	svcMock.AssertExpectations(t)
}

func TestGalleryHandler_Summary(t *testing.T) {
	t.Run("сводка существующей галереи", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Summary", mock.Anything, int64(3)).
			Return(&models.GallerySummary{ID: 3, Name: "Morning light", Images: models.GalleryImagesInfo{Total: 2}}, nil).Once()
		handler := New(newNoopLogger(), svcMock)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/galleries/3/summary", nil),
			map[string]string{"id": "3"})
		rec := httptest.NewRecorder()
		handler.Summary(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		data := body["data"].(map[string]any)
		assert.Equal(t, "Morning light", data["name"])
		svcMock.AssertExpectations(t)
	})

	t.Run("несуществующая галерея", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Summary", mock.Anything, int64(99)).
			Return(nil, fmt.Errorf("storage.repository.GetGalleryByID: %w", storage.ErrNotFound)).Once()
		handler := New(newNoopLogger(), svcMock)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/galleries/99/summary", nil),
			map[string]string{"id": "99"})
		rec := httptest.NewRecorder()
		handler.Summary(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
