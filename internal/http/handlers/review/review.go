// Package review реализует HTTP-обработчики отзывов посетителей.
//
// Отзыв отправляется без аутентификации и попадает в очередь модерации.
// Публичные выборки возвращают только опубликованные отзывы; полный список,
// очередь модерации и решения по отзывам доступны администраторам.
package review

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/osam-tourism/tourism-api/internal/http/response"
	"github.com/osam-tourism/tourism-api/internal/lib/sl"
	"github.com/osam-tourism/tourism-api/internal/models"
)

// VoteRequest — структура входных данных для голоса за полезность отзыва.
type VoteRequest struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

// VerifyRequest — структура входных данных для отметки подтверждённого посещения.
type VerifyRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

// Handler обрабатывает HTTP-запросы отзывов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики отзывов.
type Service interface {
	Create(ctx context.Context, req models.DummyReview) (int64, error)
	Get(ctx context.Context, id int64) (*models.Review, error)
	List(ctx context.Context, limit, offset int) ([]*models.Review, error)
	ListPending(ctx context.Context) ([]*models.Review, error)
	ListForOwner(ctx context.Context, ref models.OwnerRef, approvedOnly bool) ([]*models.Review, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
	SetVerified(ctx context.Context, id int64, verified bool) error
	Vote(ctx context.Context, id int64, helpful bool) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
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

func reviewID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid review id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid review id"))
		return 0, false
	}
	return id, true
}

func renderReviews(w http.ResponseWriter, r *http.Request, reviews []*models.Review) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"reviews": reviews,
		"count":   len(reviews),
	}))
}

// Create godoc
// @Summary Отправить отзыв
// @Description Создает отзыв в статусе pending до решения модератора.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Param request body models.DummyReview true "Данные отзыва"
// @Success 200 {object} map[string]any "Отзыв принят на модерацию"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /reviews [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.create"
	log := h.opLogger(r, op)

	var req models.DummyReview
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
		log.Error("failed to create review", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("review submitted", slog.Int64("review_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"review_id": id}))
}

// Get godoc
// @Summary Карточка отзыва
// @Tags Reviews
// @Produce  json
// @Param id path int true "ID отзыва"
// @Success 200 {object} map[string]any "Данные отзыва"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Router /reviews/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.get"
	log := h.opLogger(r, op)

	id, ok := reviewID(w, r, log)
	if !ok {
		return
	}

	review, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to get review", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(review))
}

// List godoc
// @Summary Все отзывы
// @Tags Reviews
// @Produce  json
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список отзывов"
// @Security BearerAuth
// @Router /reviews [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.list"
	log := h.opLogger(r, op)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	reviews, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list reviews", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderReviews(w, r, reviews)
}

// ListPending godoc
// @Summary Очередь модерации
// @Description Отзывы в статусе pending в порядке поступления.
// @Tags Reviews
// @Produce  json
// @Success 200 {object} map[string]any "Отзывы на модерации"
// @Security BearerAuth
// @Router /reviews/pending [get]
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.listpending"
	log := h.opLogger(r, op)

	reviews, err := h.service.ListPending(r.Context())
	if err != nil {
		log.Error("failed to list pending reviews", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderReviews(w, r, reviews)
}

// ForOwner возвращает обработчик опубликованных отзывов объекта контента
// указанного вида. Используется для маршрутов вида GET /places/{id}/reviews.
func (h *Handler) ForOwner(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.review.forowner"
		log := h.opLogger(r, op)

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Error("invalid owner id", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid owner id"))
			return
		}

		reviews, err := h.service.ListForOwner(r.Context(), models.OwnerRef{Kind: kind, ID: id}, true)
		if err != nil {
			log.Error("failed to list reviews for owner", sl.Err(err))
			response.RenderError(w, r, err)
			return
		}

		renderReviews(w, r, reviews)
	}
}

// Approve godoc
// @Summary Опубликовать отзыв
// @Tags Reviews
// @Produce  json
// @Param id path int true "ID отзыва"
// @Success 200 {object} response.Response "Отзыв опубликован"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Security BearerAuth
// @Router /reviews/{id}/approve [put]
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.approve"
	h.moderate(w, r, op, true)
}

// Reject godoc
// @Summary Отклонить отзыв
// @Tags Reviews
// @Produce  json
// @Param id path int true "ID отзыва"
// @Success 200 {object} response.Response "Отзыв отклонен"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Security BearerAuth
// @Router /reviews/{id}/reject [put]
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.reject"
	h.moderate(w, r, op, false)
}

func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, op string, approve bool) {
	log := h.opLogger(r, op)

	id, ok := reviewID(w, r, log)
	if !ok {
		return
	}

	var err error
	if approve {
		err = h.service.Approve(r.Context(), id)
	} else {
		err = h.service.Reject(r.Context(), id)
	}
	if err != nil {
		log.Error("failed to moderate review", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("review moderated", slog.Int64("review_id", id), slog.Bool("approved", approve))
	render.JSON(w, r, response.OK())
}

// SetVerified godoc
// @Summary Отметить подтверждённое посещение
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Param id path int true "ID отзыва"
// @Param request body VerifyRequest true "Признак подтверждения"
// @Success 200 {object} response.Response "Отметка обновлена"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Security BearerAuth
// @Router /reviews/{id}/verify [put]
func (h *Handler) SetVerified(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.setverified"
	log := h.opLogger(r, op)

	id, ok := reviewID(w, r, log)
	if !ok {
		return
	}

	var req VerifyRequest
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

	if err := h.service.SetVerified(r.Context(), id, *req.Verified); err != nil {
		log.Error("failed to set verified", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("review verification updated", slog.Int64("review_id", id), slog.Bool("verified", *req.Verified))
	render.JSON(w, r, response.OK())
}

// Vote godoc
// @Summary Проголосовать за отзыв
// @Description Учитывает голос "полезно" или "бесполезно" для опубликованного отзыва.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Param id path int true "ID отзыва"
// @Param request body VoteRequest true "Полезен ли отзыв"
// @Success 200 {object} map[string]any "Отзыв с обновленными счётчиками"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Failure 422 {object} response.ErrorResponse "Отзыв не опубликован"
// @Router /reviews/{id}/vote [post]
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.vote"
	log := h.opLogger(r, op)

	id, ok := reviewID(w, r, log)
	if !ok {
		return
	}

	var req VoteRequest
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

	review, err := h.service.Vote(r.Context(), id, *req.Helpful)
	if err != nil {
		log.Error("failed to vote for review", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(review))
}

// Delete godoc
// @Summary Удалить отзыв
// @Tags Reviews
// @Produce  json
// @Param id path int true "ID отзыва"
// @Success 200 {object} response.Response "Отзыв удален"
// @Failure 404 {object} response.ErrorResponse "Отзыв не найден"
// @Security BearerAuth
// @Router /reviews/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.delete"
	log := h.opLogger(r, op)

	id, ok := reviewID(w, r, log)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete review", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("review deleted", slog.Int64("review_id", id))
	render.JSON(w, r, response.OK())
}
