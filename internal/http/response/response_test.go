package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

func TestValidationError_Messages(t *testing.T) {
	type form struct {
		Username string `validate:"required,min=3"`
		Email    string `validate:"required,email"`
		Role     string `validate:"omitempty,oneof=admin editor"`
		Rating   int    `validate:"omitempty,gte=1,lte=5"`
		Title    string `validate:"omitempty,max=5"`
	}

	v := validator.New()
	err := v.Struct(form{
		Username: "ab",
		Email:    "not-an-email",
		Role:     "owner",
		Rating:   9,
		Title:    "too long title",
	})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Username is too short")
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
	assert.Contains(t, resp.Error, "field Role must be one of [admin editor]")
	assert.Contains(t, resp.Error, "field Rating must be at most 5")
	assert.Contains(t, resp.Error, "field Title is too long")
}

func TestRenderError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "нарушение бизнес-правила",
			err:        models.NewValidationError("rating", "must be between 1 and 5"),
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "field rating: must be between 1 and 5",
		},
		{
			name:       "отсутствующая запись",
			err:        fmt.Errorf("storage.repository.GetPlaceByID: %w", storage.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    "not found",
		},
		{
			name:       "конфликт уникальности",
			err:        fmt.Errorf("storage.repository.CreateUser: %w", storage.ErrConflict),
			wantStatus: http.StatusConflict,
			wantMsg:    "already exists",
		},
		{
			name:       "внутренняя ошибка не раскрывается",
			err:        fmt.Errorf("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			RenderError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, StatusError, body.Status)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}
