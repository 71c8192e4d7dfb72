package adminusers

import (
	"context"
	"encoding/json"
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
	"github.com/osam-tourism/tourism-api/internal/services/user"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, req models.DummyUser) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}
func (m *ServiceMock) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *ServiceMock) Activate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *ServiceMock) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *ServiceMock) Promote(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *ServiceMock) Demote(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *ServiceMock) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	return m.Called(ctx, id, newPassword).Error(0)
}
func (m *ServiceMock) Delete(ctx context.Context, actorID, id int64) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middlewarectx.User, u))
}

func TestAdminUsersHandler_Delete(t *testing.T) {
	admin := &models.User{ID: 1, Username: "root", Role: models.RoleAdmin}

	t.Run("удаление другого пользователя", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Delete", mock.Anything, int64(1), int64(7)).Return(nil).Once()
		handler := New(newNoopLogger(), svcMock)

		req := withUser(withURLParam(
			httptest.NewRequest(http.MethodDelete, "/api/v1/auth/admin/users/7", nil), "id", "7"), admin)
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svcMock.AssertExpectations(t)
	})

	t.Run("удаление собственной учётной записи запрещено", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Delete", mock.Anything, int64(1), int64(1)).Return(user.ErrSelfDelete).Once()
		handler := New(newNoopLogger(), svcMock)

		req := withUser(withURLParam(
			httptest.NewRequest(http.MethodDelete, "/api/v1/auth/admin/users/1", nil), "id", "1"), admin)
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Error", body["status"])
		assert.Equal(t, "forbidden", body["error"])
	})

	t.Run("несуществующий пользователь", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Delete", mock.Anything, int64(1), int64(99)).Return(storage.ErrNotFound).Once()
		handler := New(newNoopLogger(), svcMock)

		req := withUser(withURLParam(
			httptest.NewRequest(http.MethodDelete, "/api/v1/auth/admin/users/99", nil), "id", "99"), admin)
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("без пользователя в контексте", func(t *testing.T) {
		svcMock := new(ServiceMock)
		handler := New(newNoopLogger(), svcMock)

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/auth/admin/users/7", nil), "id", "7")
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svcMock.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
