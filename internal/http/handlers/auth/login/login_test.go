package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, username, password string) (*auth.LoginResult, error) {
	args := m.Called(ctx, username, password)
	result, _ := args.Get(0).(*auth.LoginResult)
	return result, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	editor := &models.User{ID: 7, Username: "editor1", Role: models.RoleEditor, IsActive: true}

	tests := []struct {
		name           string
		requestBody    any
		mockResult     *auth.LoginResult
		mockErr        error
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "успешный вход",
			requestBody: Request{Username: "editor1", Password: "password123"},
			mockResult: &auth.LoginResult{
				Token:     "tok",
				ExpiresIn: time.Hour,
				User:      editor,
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "отсутствует пароль",
			requestBody:    Request{Username: "editor1"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
		},
		{
			name:           "неверные учетные данные",
			requestBody:    Request{Username: "editor1", Password: "password123"},
			mockErr:        auth.ErrInvalidCredentials,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(ServiceMock)
			if tt.mockResult != nil || tt.mockErr != nil {
				req := tt.requestBody.(Request)
				svcMock.On("Login", mock.Anything, req.Username, req.Password).
					Return(tt.mockResult, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), svcMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(bodyBytes))
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
				assert.Equal(t, "tok", data["token"])
				// Время жизни токена отдаётся в секундах.
				assert.Equal(t, float64(3600), data["expires_in"])
			}
			if tt.wantStatusCode == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
			svcMock.AssertExpectations(t)
		})
	}
}
