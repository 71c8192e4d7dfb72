// Package adminusers реализует HTTP-обработчики управления учётными записями.
//
// Все маршруты пакета доступны только администраторам: создание пользователей
// с любой ролью, просмотр списка, активация и деактивация, смена роли,
// сброс пароля и удаление. Удаление собственной учётной записи запрещено.
package adminusers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/osam-tourism/tourism-api/internal/http/middlewarectx"
	"github.com/osam-tourism/tourism-api/internal/http/response"
	"github.com/osam-tourism/tourism-api/internal/lib/sl"
	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/services/user"
)

// ResetPasswordRequest — структура входных данных для сброса пароля пользователя.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Handler обрабатывает HTTP-запросы управления пользователями.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики управления пользователями.
type Service interface {
	Create(ctx context.Context, req models.DummyUser) (int64, error)
	List(ctx context.Context) ([]*models.User, error)
	Activate(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
	Promote(ctx context.Context, id int64) error
	Demote(ctx context.Context, id int64) error
	ResetPassword(ctx context.Context, id int64, newPassword string) error
	Delete(ctx context.Context, actorID, id int64) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) opLogger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func userID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid user id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return 0, false
	}
	return id, true
}

// Create godoc
// @Summary Создать пользователя
// @Description Создает учётную запись с указанной ролью, включая admin.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyUser true "Данные нового пользователя"
// @Success 200 {object} map[string]any "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя или email уже заняты"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /auth/admin/create-user [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.adminusers.create"
	log := h.opLogger(r, op)

	var req models.DummyUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("user created", slog.String("username", req.Username), slog.Int64("user_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"user_id": id}))
}

// List godoc
// @Summary Список пользователей
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /auth/admin/users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.adminusers.list"
	log := h.opLogger(r, op)

	users, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"users": users,
		"count": len(users),
	}))
}

// Activate godoc
// @Summary Активировать пользователя
// @Tags Admin
// @Produce  json
// @Param id path int true "ID пользователя"
// @Success 200 {object} response.Response "Учётная запись активирована"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /auth/admin/users/{id}/activate [put]
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.adminusers.activate"
	h.setActive(w, r, op, true)
}

// Deactivate godoc
// @Summary Деактивировать пользователя
// @Tags Admin
// @Produce  json
// @Param id path int true "ID пользователя"
// @Success 200 {object} response.Response "Учётная запись деактивирована"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /auth/admin/users/{id}/deactivate [put]
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.adminusers.deactivate"
	h.setActive(w, r, op, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, op string, active bool) {
	log := h.opLogger(r, op)

	id, ok := userID(w, r, log)
	if !ok {
		return
	}

	var err error
	if active {
		err = h.service.Activate(r.Context(), id)
	} else {
		err = h.service.Deactivate(r.Context(), id)
	}
	if err != nil {
		log.Error("failed to change user activity", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("user activity changed", slog.Int64("user_id", id), slog.Bool("active", active))
	render.JSON(w, r, response.OK())
}

// Promote godoc
// @Summary Повысить пользователя до администратора
// @Tags Admin
// @Produce  json
// @Param id path int true "ID пользователя"
// @Success 200 {object} response.Response "Роль изменена"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /auth/admin/users/{id}/promote [put]
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.adminusers.promote"
	h.setRole(w, r, op, true)
}

// Demote godoc
// @Summary Понизить пользователя до редактора
// @Tags Admin
// @Produce  json
// @Param id path int true "ID пользователя"
// @Success 200 {object} response.Response "Роль изменена"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /auth/admin/users/{id}/demote [put]
func (h *Handler) Demote(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.adminusers.demote"
	h.setRole(w, r, op, false)
}

func (h *Handler) setRole(w http.ResponseWriter, r *http.Request, op string, promote bool) {
	log := h.opLogger(r, op)

	id, ok := userID(w, r, log)
	if !ok {
		return
	}

	var err error
	if promote {
		err = h.service.Promote(r.Context(), id)
	} else {
		err = h.service.Demote(r.Context(), id)
	}
	if err != nil {
		log.Error("failed to change user role", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("user role changed", slog.Int64("user_id", id), slog.Bool("promoted", promote))
	render.JSON(w, r, response.OK())
}

// ResetPassword godoc
// @Summary Сбросить пароль пользователя
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "ID пользователя"
// @Param request body ResetPasswordRequest true "Новый пароль"
// @Success 200 {object} response.Response "Пароль сброшен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /auth/admin/users/{id}/reset-password [put]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.adminusers.resetpassword"
	log := h.opLogger(r, op)

	id, ok := userID(w, r, log)
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ResetPassword(r.Context(), id, req.NewPassword); err != nil {
		log.Error("failed to reset password", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("password reset", slog.Int64("user_id", id))
	render.JSON(w, r, response.OK())
}

// Delete godoc
// @Summary Удалить пользователя
// @Description Удаляет учётную запись. Администратор не может удалить сам себя.
// @Tags Admin
// @Produce  json
// @Param id path int true "ID пользователя"
// @Success 200 {object} response.Response "Пользователь удален"
// @Failure 403 {object} response.ErrorResponse "Попытка удалить собственную учётную запись"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /auth/admin/users/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.adminusers.delete"
	log := h.opLogger(r, op)

	id, ok := userID(w, r, log)
	if !ok {
		return
	}

	actor, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Delete(r.Context(), actor.ID, id); err != nil {
		if errors.Is(err, user.ErrSelfDelete) {
			log.Error("self delete rejected", slog.Int64("user_id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
			return
		}
		log.Error("failed to delete user", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	render.JSON(w, r, response.OK())
}
