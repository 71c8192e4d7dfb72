// Package gallery реализует HTTP-обработчики медиа-галерей и их изображений.
//
// Галерея всегда привязана ровно к одному объекту контента: месту, храму,
// мифологическому объекту или событию. Привязка неизменяема после создания.
package gallery

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

// FeaturedImageRequest — структура входных данных для выбора обложки галереи.
type FeaturedImageRequest struct {
	ImageID int64 `json:"image_id" validate:"required,gt=0"`
}

// Handler обрабатывает HTTP-запросы медиа-галерей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики медиа-галерей.
type Service interface {
	Create(ctx context.Context, req models.DummyGallery, createdBy int64) (int64, error)
	Get(ctx context.Context, id int64) (*models.Gallery, error)
	List(ctx context.Context, limit, offset int) ([]*models.Gallery, error)
	Update(ctx context.Context, id int64, req models.DummyGalleryUpdate) (*models.Gallery, error)
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, name string) ([]*models.Gallery, error)
	FilterByType(ctx context.Context, galleryType string) ([]*models.Gallery, error)
	ListFeatured(ctx context.Context) ([]*models.Gallery, error)
	ListPopular(ctx context.Context, minViews, limit int) ([]*models.Gallery, error)
	ListForOwner(ctx context.Context, ref models.OwnerRef) ([]*models.Gallery, error)
	ToggleFeatured(ctx context.Context, id int64) (*models.Gallery, error)
	Statistics(ctx context.Context, id int64) (*models.GalleryStatistics, error)
	Summary(ctx context.Context, id int64) (*models.GallerySummary, error)
	AddImage(ctx context.Context, galleryID int64, req models.DummyGalleryImage) (int64, error)
	ListImages(ctx context.Context, galleryID int64) ([]*models.GalleryImage, error)
	DeleteImage(ctx context.Context, galleryID, imageID int64) error
	Reorder(ctx context.Context, galleryID int64, req models.DummyReorder) error
	SetFeaturedImage(ctx context.Context, galleryID, imageID int64) error
	GetFeaturedImage(ctx context.Context, galleryID int64) (*models.GalleryImage, error)
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

func pathID(w http.ResponseWriter, r *http.Request, log *slog.Logger, param, what string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		log.Error("invalid "+what, sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid "+what))
		return 0, false
	}
	return id, true
}

func renderGalleries(w http.ResponseWriter, r *http.Request, galleries []*models.Gallery) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"galleries": galleries,
		"count":     len(galleries),
	}))
}

// Create godoc
// @Summary Создать галерею
// @Description Галерея привязывается ровно к одному объекту контента.
// @Tags Galleries
// @Accept  json
// @Produce  json
// @Param request body models.DummyGallery true "Данные новой галереи"
// @Success 200 {object} map[string]any "Галерея создана"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или некорректная привязка"
// @Security BearerAuth
// @Router /galleries [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.create"
	log := h.opLogger(r, op)

	var req models.DummyGallery
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
		log.Error("failed to create gallery", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("gallery created", slog.Int64("gallery_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"gallery_id": id}))
}

// Get godoc
// @Summary Карточка галереи
// @Description Возвращает галерею и увеличивает счётчик просмотров.
// @Tags Galleries
// @Produce  json
// @Param id path int true "ID галереи"
// @Success 200 {object} map[string]any "Данные галереи"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Router /galleries/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.get"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	gallery, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to get gallery", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(gallery))
}

// List godoc
// @Summary Список галерей
// @Tags Galleries
// @Produce  json
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список галерей"
// @Router /galleries [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.list"
	log := h.opLogger(r, op)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	galleries, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list galleries", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderGalleries(w, r, galleries)
}

// Update godoc
// @Summary Обновить галерею
// @Description Привязка к объекту контента неизменяема и в обновлении не участвует.
// @Tags Galleries
// @Accept  json
// @Produce  json
// @Param id path int true "ID галереи"
// @Param request body models.DummyGalleryUpdate true "Изменяемые поля"
// @Success 200 {object} map[string]any "Обновленная галерея"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Security BearerAuth
// @Router /galleries/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.update"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	var req models.DummyGalleryUpdate
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

	gallery, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update gallery", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("gallery updated", slog.Int64("gallery_id", id))
	render.JSON(w, r, response.OKWithData(gallery))
}

// Delete godoc
// @Summary Удалить галерею
// @Description Удаляет галерею вместе с её изображениями.
// @Tags Galleries
// @Produce  json
// @Param id path int true "ID галереи"
// @Success 200 {object} response.Response "Галерея удалена"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Security BearerAuth
// @Router /galleries/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.delete"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete gallery", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("gallery deleted", slog.Int64("gallery_id", id))
	render.JSON(w, r, response.OK())
}

// Search godoc
// @Summary Поиск галерей по имени
// @Tags Galleries
// @Produce  json
// @Param name query string true "Подстрока имени"
// @Success 200 {object} map[string]any "Найденные галереи"
// @Failure 400 {object} response.ErrorResponse "Не задан параметр поиска"
// @Router /galleries/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.search"
	log := h.opLogger(r, op)

	name := r.URL.Query().Get("name")
	if name == "" {
		log.Error("missing search query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("query parameter name is required"))
		return
	}

	galleries, err := h.service.SearchByName(r.Context(), name)
	if err != nil {
		log.Error("failed to search galleries", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderGalleries(w, r, galleries)
}

// FilterByType godoc
// @Summary Галереи по типу
// @Tags Galleries
// @Produce  json
// @Param type path string true "Тип галереи"
// @Success 200 {object} map[string]any "Галереи выбранного типа"
// @Failure 422 {object} response.ErrorResponse "Недопустимый тип"
// @Router /galleries/type/{type} [get]
func (h *Handler) FilterByType(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.filterbytype"
	log := h.opLogger(r, op)

	galleries, err := h.service.FilterByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		log.Error("failed to filter galleries by type", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderGalleries(w, r, galleries)
}

// ListFeatured godoc
// @Summary Рекомендованные галереи
// @Tags Galleries
// @Produce  json
// @Success 200 {object} map[string]any "Рекомендованные галереи"
// @Router /galleries/featured [get]
func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.listfeatured"
	log := h.opLogger(r, op)

	galleries, err := h.service.ListFeatured(r.Context())
	if err != nil {
		log.Error("failed to list featured galleries", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderGalleries(w, r, galleries)
}

// ListPopular godoc
// @Summary Популярные галереи
// @Tags Galleries
// @Produce  json
// @Param min_views query int false "Минимум просмотров" default(100)
// @Param limit query int false "Максимум записей"
// @Success 200 {object} map[string]any "Популярные галереи"
// @Router /galleries/popular [get]
func (h *Handler) ListPopular(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.listpopular"
	log := h.opLogger(r, op)

	minViews := -1
	if v := r.URL.Query().Get("min_views"); v != "" {
		minViews, _ = strconv.Atoi(v)
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	galleries, err := h.service.ListPopular(r.Context(), minViews, limit)
	if err != nil {
		log.Error("failed to list popular galleries", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	renderGalleries(w, r, galleries)
}

// ForOwner возвращает обработчик списка галерей объекта контента указанного вида.
// Используется для вложенных маршрутов вида GET /places/{id}/galleries.
func (h *Handler) ForOwner(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gallery.forowner"
		log := h.opLogger(r, op)

		id, ok := pathID(w, r, log, "id", "owner id")
		if !ok {
			return
		}

		galleries, err := h.service.ListForOwner(r.Context(), models.OwnerRef{Kind: kind, ID: id})
		if err != nil {
			log.Error("failed to list galleries for owner", sl.Err(err))
			response.RenderError(w, r, err)
			return
		}

		renderGalleries(w, r, galleries)
	}
}

// AddImage godoc
// @Summary Добавить изображение в галерею
// @Tags Galleries
// @Accept  json
// @Produce  json
// @Param id path int true "ID галереи"
// @Param request body models.DummyGalleryImage true "Данные изображения"
// @Success 200 {object} map[string]any "Изображение добавлено"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /galleries/{id}/images [post]
func (h *Handler) AddImage(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.addimage"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	var req models.DummyGalleryImage
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

	imageID, err := h.service.AddImage(r.Context(), id, req)
	if err != nil {
		log.Error("failed to add gallery image", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("gallery image added", slog.Int64("gallery_id", id), slog.Int64("image_id", imageID))
	render.JSON(w, r, response.OKWithData(map[string]any{"image_id": imageID}))
}

// ListImages godoc
// @Summary Изображения галереи
// @Description Возвращает изображения в порядке image_order.
// @Tags Galleries
// @Produce  json
// @Param id path int true "ID галереи"
// @Success 200 {object} map[string]any "Изображения галереи"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Router /galleries/{id}/images [get]
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.listimages"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	images, err := h.service.ListImages(r.Context(), id)
	if err != nil {
		log.Error("failed to list gallery images", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"images": images,
		"count":  len(images),
	}))
}

// DeleteImage godoc
// @Summary Удалить изображение из галереи
// @Tags Galleries
// @Produce  json
// @Param id path int true "ID галереи"
// @Param imageID path int true "ID изображения"
// @Success 200 {object} response.Response "Изображение удалено"
// @Failure 404 {object} response.ErrorResponse "Изображение не найдено"
// @Security BearerAuth
// @Router /galleries/{id}/images/{imageID} [delete]
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.deleteimage"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}
	imageID, ok := pathID(w, r, log, "imageID", "image id")
	if !ok {
		return
	}

	if err := h.service.DeleteImage(r.Context(), id, imageID); err != nil {
		log.Error("failed to delete gallery image", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("gallery image deleted", slog.Int64("gallery_id", id), slog.Int64("image_id", imageID))
	render.JSON(w, r, response.OK())
}

// Reorder godoc
// @Summary Изменить порядок изображений
// @Description Применяет отображение image_id -> новый порядок в одной транзакции.
// @Tags Galleries
// @Accept  json
// @Produce  json
// @Param id path int true "ID галереи"
// @Param request body models.DummyReorder true "Новый порядок изображений"
// @Success 200 {object} response.Response "Порядок обновлен"
// @Failure 404 {object} response.ErrorResponse "Галерея или изображение не найдены"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /galleries/{id}/images/reorder [put]
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.reorder"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	var req models.DummyReorder
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

	if err := h.service.Reorder(r.Context(), id, req); err != nil {
		log.Error("failed to reorder gallery images", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("gallery images reordered", slog.Int64("gallery_id", id))
	render.JSON(w, r, response.OK())
}

// SetFeaturedImage godoc
// @Summary Назначить обложку галереи
// @Description Снимает признак с прежней обложки и ставит на выбранное изображение.
// @Tags Galleries
// @Accept  json
// @Produce  json
// @Param id path int true "ID галереи"
// @Param request body FeaturedImageRequest true "ID изображения"
// @Success 200 {object} response.Response "Обложка назначена"
// @Failure 404 {object} response.ErrorResponse "Галерея или изображение не найдены"
// @Security BearerAuth
// @Router /galleries/{id}/featured-image [put]
func (h *Handler) SetFeaturedImage(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.setfeaturedimage"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	var req FeaturedImageRequest
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

	if err := h.service.SetFeaturedImage(r.Context(), id, req.ImageID); err != nil {
		log.Error("failed to set featured image", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("featured image set", slog.Int64("gallery_id", id), slog.Int64("image_id", req.ImageID))
	render.JSON(w, r, response.OK())
}

// GetFeaturedImage godoc
// @Summary Обложка галереи
// @Tags Galleries
// @Produce  json
// @Param id path int true "ID галереи"
// @Success 200 {object} map[string]any "Изображение-обложка"
// @Failure 404 {object} response.ErrorResponse "Обложка не назначена"
// @Router /galleries/{id}/featured-image [get]
func (h *Handler) GetFeaturedImage(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.getfeaturedimage"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	image, err := h.service.GetFeaturedImage(r.Context(), id)
	if err != nil {
		log.Error("failed to get featured image", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(image))
}

// ToggleFeatured godoc
// @Summary Переключить рекомендацию галереи
// @Description Инвертирует признак рекомендованной галереи.
// @Tags Galleries
// @Produce  json
// @Param id path int true "ID галереи"
// @Success 200 {object} map[string]any "Обновленная галерея"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Security BearerAuth
// @Router /galleries/{id}/toggle-featured [put]
func (h *Handler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.togglefeatured"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	gallery, err := h.service.ToggleFeatured(r.Context(), id)
	if err != nil {
		log.Error("failed to toggle featured flag", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("gallery featured flag toggled",
		slog.Int64("gallery_id", id), slog.Bool("is_featured", gallery.IsFeatured))
	render.JSON(w, r, response.OKWithData(gallery))
}

// Statistics godoc
// @Summary Статистика галереи
// @Description Возвращает счётчики галереи и суммарные просмотры её изображений.
// @Tags Galleries
// @Produce  json
// @Param id path int true "ID галереи"
// @Success 200 {object} map[string]any "Статистика галереи"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Router /galleries/{id}/statistics [get]
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.statistics"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	stats, err := h.service.Statistics(r.Context(), id)
	if err != nil {
		log.Error("failed to get gallery statistics", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(stats))
}

// Summary godoc
// @Summary Сводная карточка галереи
// @Description Возвращает сводку галереи вместе с обложкой и привязкой к контенту.
// @Tags Galleries
// @Produce  json
// @Param id path int true "ID галереи"
// @Success 200 {object} map[string]any "Сводка галереи"
// @Failure 404 {object} response.ErrorResponse "Галерея не найдена"
// @Router /galleries/{id}/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.summary"
	log := h.opLogger(r, op)

	id, ok := pathID(w, r, log, "id", "gallery id")
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		log.Error("failed to get gallery summary", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OKWithData(summary))
}
