// Package temple реализует HTTP-обработчики справочника храмов.
package temple

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

	"github.com/osam-tourism/tourism-api/internal/http/middlewarectx"
	"github.com/osam-tourism/tourism-api/internal/http/response"
	"github.com/osam-tourism/tourism-api/internal/lib/sl"
	"github.com/osam-tourism/tourism-api/internal/models"
)

// Handler обрабатывает HTTP-запросы справочника храмов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики справочника храмов.
type Service interface {
	Create(ctx context.Context, req models.DummyTemple, createdBy int64) (int64, error)
	Get(ctx context.Context, id int64) (*models.Temple, error)
	List(ctx context.Context, limit, offset int) ([]*models.Temple, error)
	Update(ctx context.Context, id int64, req models.DummyTempleUpdate) (*models.Temple, error)
	Delete(ctx context.Context, id int64) error
	ToggleFeatured(ctx context.Context, id int64) (*models.Temple, error)
	SearchByName(ctx context.Context, name string) ([]*models.Temple, error)
	SearchByDeity(ctx context.Context, deity string) ([]*models.Temple, error)
	ListActivePilgrimage(ctx context.Context) ([]*models.Temple, error)
	ListFeatured(ctx context.Context) ([]*models.Temple, error)
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

func templeID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid temple id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid temple id"))
		return 0, false
	}
	return id, true
}

func renderTemples(w http.ResponseWriter, r *http.Request, temples []*models.Temple) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"temples": temples,
		"count":   len(temples),
	}))
}

// Create godoc
// @Summary Создать храм
// @Tags Temples
// @Accept  json
// @Produce  json
// @Param request body models.DummyTemple true "Данные нового храма"
// @Success 200 {object} map[string]any "Храм создан"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /temples [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.temple.create"
	log := h.opLogger(r, op)

	var req models.DummyTemple
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

	user, ok := middlewarectx.CurrentUser(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), req, user.ID)
	if err != nil {
		log.Error("failed to create temple", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("temple created", slog.Int64("temple_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"temple_id": id}))
}

// Get godoc
// @Summary Карточка храма
// @Tags Temples
// @Produce  json
// @Param id path int true "ID храма"
// @Success 200 {object} map[string]any "Данные храма"
// @Failure 404 {object} response.ErrorResponse "Храм не найден"
// @Router /temples/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.temple.get"
	log := h.opLogger(r, op)

	id, ok := templeID(w, r, log)
	if !ok {
		return
	}

	temple, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to get temple", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(temple))
}

// List godoc
// @Summary Список храмов
// @Tags Temples
// @Produce  json
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список храмов"
// @Router /temples [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.temple.list"
	log := h.opLogger(r, op)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	temples, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list temples", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderTemples(w, r, temples)
}

// Update godoc
// @Summary Обновить храм
// @Tags Temples
// @Accept  json
// @Produce  json
// @Param id path int true "ID храма"
// @Param request body models.DummyTempleUpdate true "Изменяемые поля"
// @Success 200 {object} map[string]any "Обновленный храм"
// @Failure 404 {object} response.ErrorResponse "Храм не найден"
// @Security BearerAuth
// @Router /temples/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.temple.update"
	log := h.opLogger(r, op)

	id, ok := templeID(w, r, log)
	if !ok {
		return
	}

	var req models.DummyTempleUpdate
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

	temple, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update temple", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("temple updated", slog.Int64("temple_id", id))
	render.JSON(w, r, response.OKWithData(temple))
}

// Delete godoc
// @Summary Удалить храм
// @Tags Temples
// @Produce  json
// @Param id path int true "ID храма"
// @Success 200 {object} response.Response "Храм удален"
// @Failure 404 {object} response.ErrorResponse "Храм не найден"
// @Security BearerAuth
// @Router /temples/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.temple.delete"
	log := h.opLogger(r, op)

	id, ok := templeID(w, r, log)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete temple", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("temple deleted", slog.Int64("temple_id", id))
	render.JSON(w, r, response.OK())
}

// ToggleFeatured godoc
// @Summary Переключить признак рекомендованного храма
// @Tags Temples
// @Produce  json
// @Param id path int true "ID храма"
// @Success 200 {object} map[string]any "Обновленный храм"
// @Failure 404 {object} response.ErrorResponse "Храм не найден"
// @Security BearerAuth
// @Router /temples/{id}/toggle-featured [put]
func (h *Handler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.temple.togglefeatured"
	log := h.opLogger(r, op)

	id, ok := templeID(w, r, log)
	if !ok {
		return
	}

	temple, err := h.service.ToggleFeatured(r.Context(), id)
	if err != nil {
		log.Error("failed to toggle featured", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("featured toggled", slog.Int64("temple_id", id), slog.Bool("is_featured", temple.IsFeatured))
	render.JSON(w, r, response.OKWithData(temple))
}

// Search godoc
// @Summary Поиск храмов
// @Description Ищет по подстроке имени (?name=) или божеству (?deity=).
// @Tags Temples
// @Produce  json
// @Param name query string false "Подстрока имени"
// @Param deity query string false "Подстрока имени божества"
// @Success 200 {object} map[string]any "Найденные храмы"
// @Failure 400 {object} response.ErrorResponse "Не задан параметр поиска"
// @Router /temples/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.temple.search"
	log := h.opLogger(r, op)

	var (
		temples []*models.Temple
		err     error
	)
	switch {
	case r.URL.Query().Get("name") != "":
		temples, err = h.service.SearchByName(r.Context(), r.URL.Query().Get("name"))
	case r.URL.Query().Get("deity") != "":
		temples, err = h.service.SearchByDeity(r.Context(), r.URL.Query().Get("deity"))
	default:
		log.Error("missing search query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("query parameter name or deity is required"))
		return
	}
	if err != nil {
		log.Error("failed to search temples", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderTemples(w, r, temples)
}

// ListActivePilgrimage godoc
// @Summary Храмы с действующим паломничеством
// @Tags Temples
// @Produce  json
// @Success 200 {object} map[string]any "Храмы с действующим паломничеством"
// @Router /temples/pilgrimage [get]
func (h *Handler) ListActivePilgrimage(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.temple.listactivepilgrimage"
	log := h.opLogger(r, op)

	temples, err := h.service.ListActivePilgrimage(r.Context())
	if err != nil {
		log.Error("failed to list pilgrimage temples", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderTemples(w, r, temples)
}

// ListFeatured godoc
// @Summary Рекомендованные храмы
// @Tags Temples
// @Produce  json
// @Success 200 {object} map[string]any "Рекомендованные храмы"
// @Router /temples/featured [get]
func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.temple.listfeatured"
	log := h.opLogger(r, op)

	temples, err := h.service.ListFeatured(r.Context())
	if err != nil {
		log.Error("failed to list featured temples", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderTemples(w, r, temples)
}
