package register

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

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, req models.DummyUser) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	valid := models.DummyUser{Username: "newbie", Email: "n@example.com", Password: "secret1"}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "успешная регистрация",
			requestBody: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, valid).Return(int64(5), nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "некорректный email",
			requestBody:    models.DummyUser{Username: "newbie", Email: "bad", Password: "secret1"},
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Email must be a valid email address",
		},
		{
			name:        "роль admin отклоняется сервисом",
			requestBody: models.DummyUser{Username: "boss", Email: "b@example.com", Password: "secret1", Role: models.RoleAdmin},
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(int64(0), models.NewValidationError("role", "admin accounts are created by administrators only")).Once()
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field role: admin accounts are created by administrators only",
		},
		{
			name:        "занятое имя пользователя",
			requestBody: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, valid).
					Return(int64(0), fmt.Errorf("storage.repository.CreateUser: %w", storage.ErrConflict)).Once()
			},
			wantStatusCode: http.StatusConflict,
			wantError:      "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(ServiceMock)
			tt.setupMock(svcMock)
			handler := New(newNoopLogger(), svcMock)

			bodyBytes, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.wantError != "" {
				assert.Equal(t, "Error", body["status"])
				assert.Equal(t, tt.wantError, body["error"])
			} else {
				assert.Equal(t, "OK", body["status"])
				data := body["data"].(map[string]any)
				assert.Equal(t, float64(5), data["user_id"])
			}
			svcMock.AssertExpectations(t)
		})
	}
}
