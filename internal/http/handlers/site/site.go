// Package site реализует HTTP-обработчики справочника мифологических объектов.
package site

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

// Handler обрабатывает HTTP-запросы справочника мифологических объектов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики справочника мифологических объектов.
type Service interface {
	Create(ctx context.Context, req models.DummySite, createdBy int64) (int64, error)
	Get(ctx context.Context, id int64) (*models.MythologicalSite, error)
	List(ctx context.Context, limit, offset int) ([]*models.MythologicalSite, error)
	Update(ctx context.Context, id int64, req models.DummySiteUpdate) (*models.MythologicalSite, error)
	Delete(ctx context.Context, id int64) error
	ToggleFeatured(ctx context.Context, id int64) (*models.MythologicalSite, error)
	SearchByName(ctx context.Context, name string) ([]*models.MythologicalSite, error)
	SearchByMythology(ctx context.Context, mythology string) ([]*models.MythologicalSite, error)
	FilterByAccessibility(ctx context.Context, accessibility string) ([]*models.MythologicalSite, error)
	ListWithGuide(ctx context.Context) ([]*models.MythologicalSite, error)
	ListFeatured(ctx context.Context) ([]*models.MythologicalSite, error)
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

func siteID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid site id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid site id"))
		return 0, false
	}
	return id, true
}

func renderSites(w http.ResponseWriter, r *http.Request, sites []*models.MythologicalSite) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"sites": sites,
		"count": len(sites),
	}))
}

// Create godoc
// @Summary Создать мифологический объект
// @Tags Sites
// @Accept  json
// @Produce  json
// @Param request body models.DummySite true "Данные нового объекта"
// @Success 200 {object} map[string]any "Объект создан"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /sites [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.site.create"
	log := h.opLogger(r, op)

	var req models.DummySite
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
		log.Error("failed to create site", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("site created", slog.Int64("site_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"site_id": id}))
}

// Get godoc
// @Summary Карточка мифологического объекта
// @Tags Sites
// @Produce  json
// @Param id path int true "ID объекта"
// @Success 200 {object} map[string]any "Данные объекта"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Router /sites/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.site.get"
	log := h.opLogger(r, op)

	id, ok := siteID(w, r, log)
	if !ok {
		return
	}

	site, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to get site", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(site))
}

// List godoc
// @Summary Список мифологических объектов
// @Tags Sites
// @Produce  json
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список объектов"
// @Router /sites [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.site.list"
	log := h.opLogger(r, op)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	sites, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list sites", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderSites(w, r, sites)
}

// Update godoc
// @Summary Обновить мифологический объект
// @Tags Sites
// @Accept  json
// @Produce  json
// @Param id path int true "ID объекта"
// @Param request body models.DummySiteUpdate true "Изменяемые поля"
// @Success 200 {object} map[string]any "Обновленный объект"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Security BearerAuth
// @Router /sites/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.site.update"
	log := h.opLogger(r, op)

	id, ok := siteID(w, r, log)
	if !ok {
		return
	}

	var req models.DummySiteUpdate
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

	site, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update site", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("site updated", slog.Int64("site_id", id))
	render.JSON(w, r, response.OKWithData(site))
}

// Delete godoc
// @Summary Удалить мифологический объект
// @Tags Sites
// @Produce  json
// @Param id path int true "ID объекта"
// @Success 200 {object} response.Response "Объект удален"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Security BearerAuth
// @Router /sites/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.site.delete"
	log := h.opLogger(r, op)

	id, ok := siteID(w, r, log)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete site", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("site deleted", slog.Int64("site_id", id))
	render.JSON(w, r, response.OK())
}

// ToggleFeatured godoc
// @Summary Переключить признак рекомендованного объекта
// @Tags Sites
// @Produce  json
// @Param id path int true "ID объекта"
// @Success 200 {object} map[string]any "Обновленный объект"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Security BearerAuth
// @Router /sites/{id}/toggle-featured [put]
func (h *Handler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.site.togglefeatured"
	log := h.opLogger(r, op)

	id, ok := siteID(w, r, log)
	if !ok {
		return
	}

	site, err := h.service.ToggleFeatured(r.Context(), id)
	if err != nil {
		log.Error("failed to toggle featured", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("featured toggled", slog.Int64("site_id", id), slog.Bool("is_featured", site.IsFeatured))
	render.JSON(w, r, response.OKWithData(site))
}

// Search godoc
// @Summary Поиск мифологических объектов
// @Description Ищет по подстроке имени (?name=) или мифологии (?mythology=).
// @Tags Sites
// @Produce  json
// @Param name query string false "Подстрока имени"
// @Param mythology query string false "Подстрока мифологической традиции"
// @Success 200 {object} map[string]any "Найденные объекты"
// @Failure 400 {object} response.ErrorResponse "Не задан параметр поиска"
// @Router /sites/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.site.search"
	log := h.opLogger(r, op)

	var (
		sites []*models.MythologicalSite
		err   error
	)
	switch {
	case r.URL.Query().Get("name") != "":
		sites, err = h.service.SearchByName(r.Context(), r.URL.Query().Get("name"))
	case r.URL.Query().Get("mythology") != "":
		sites, err = h.service.SearchByMythology(r.Context(), r.URL.Query().Get("mythology"))
	default:
		log.Error("missing search query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("query parameter name or mythology is required"))
		return
	}
	if err != nil {
		log.Error("failed to search sites", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderSites(w, r, sites)
}

// FilterByAccessibility godoc
// @Summary Объекты по уровню доступности
// @Tags Sites
// @Produce  json
// @Param level path string true "Уровень доступности"
// @Success 200 {object} map[string]any "Объекты выбранного уровня"
// @Failure 422 {object} response.ErrorResponse "Недопустимый уровень"
// @Router /sites/accessibility/{level} [get]
func (h *Handler) FilterByAccessibility(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.site.filterbyaccessibility"
	log := h.opLogger(r, op)

	sites, err := h.service.FilterByAccessibility(r.Context(), chi.URLParam(r, "level"))
	if err != nil {
		log.Error("failed to filter sites by accessibility", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderSites(w, r, sites)
}

// ListWithGuide godoc
// @Summary Объекты с экскурсоводом
// @Tags Sites
// @Produce  json
// @Success 200 {object} map[string]any "Объекты с доступным экскурсоводом"
// @Router /sites/with-guide [get]
func (h *Handler) ListWithGuide(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.site.listwithguide"
	log := h.opLogger(r, op)

	sites, err := h.service.ListWithGuide(r.Context())
	if err != nil {
		log.Error("failed to list sites with guide", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderSites(w, r, sites)
}

// ListFeatured godoc
// @Summary Рекомендованные мифологические объекты
// @Tags Sites
// @Produce  json
// @Success 200 {object} map[string]any "Рекомендованные объекты"
// @Router /sites/featured [get]
func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.site.listfeatured"
	log := h.opLogger(r, op)

	sites, err := h.service.ListFeatured(r.Context())
	if err != nil {
		log.Error("failed to list featured sites", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderSites(w, r, sites)
}
