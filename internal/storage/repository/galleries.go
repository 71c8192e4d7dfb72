package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

const galleryColumns = `gallery_id, name, description, gallery_type, is_featured, view_count,
	place_id, temple_id, site_id, event_id, created_by, created_at, updated_at`

const galleryImageColumns = `image_id, gallery_id, image_url, thumbnail_url, title, caption,
	photographer, image_order, is_featured, view_count, created_at`

func scanGallery(row rowScanner) (*models.Gallery, error) {
	var (
		g                                    models.Gallery
		descr                                sql.NullString
		placeID, templeID, siteID, eventID   sql.NullInt64
		createdBy                            sql.NullInt64
	)
	err := row.Scan(&g.ID, &g.Name, &descr, &g.GalleryType, &g.IsFeatured, &g.ViewCount,
		&placeID, &templeID, &siteID, &eventID, &createdBy, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.Description = strPtr(descr)
	g.PlaceID = int64Ptr(placeID)
	g.TempleID = int64Ptr(templeID)
	g.SiteID = int64Ptr(siteID)
	g.EventID = int64Ptr(eventID)
	g.CreatedBy = int64Ptr(createdBy)
	return &g, nil
}

func scanGalleryImage(row rowScanner) (*models.GalleryImage, error) {
	var (
		img                     models.GalleryImage
		thumb, caption, photo   sql.NullString
	)
	err := row.Scan(&img.ID, &img.GalleryID, &img.ImageURL, &thumb, &img.Title, &caption,
		&photo, &img.ImageOrder, &img.IsFeatured, &img.ViewCount, &img.CreatedAt)
	if err != nil {
		return nil, err
	}
	img.ThumbnailURL = strPtr(thumb)
	img.Caption = strPtr(caption)
	img.Photographer = strPtr(photo)
	return &img, nil
}

func (s *Storage) queryGalleries(ctx context.Context, op, query string, args ...any) ([]*models.Gallery, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var galleries []*models.Gallery
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		galleries = append(galleries, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return galleries, nil
}

// CreateGallery добавляет новую галерею и возвращает её идентификатор.
// Ровно одна из четырёх ссылок на владельца непустая — это проверяет сервисный слой.
func (s *Storage) CreateGallery(ctx context.Context, g models.Gallery) (int64, error) {
	const op = "storage.repository.CreateGallery"

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		INSERT INTO galleries(name, description, gallery_type, is_featured,
			place_id, temple_id, site_id, event_id, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING gallery_id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		g.Name, g.Description, g.GalleryType, g.IsFeatured,
		g.PlaceID, g.TempleID, g.SiteID, g.EventID, g.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetGalleryByID возвращает галерею без изменения счётчика просмотров.
func (s *Storage) GetGalleryByID(ctx context.Context, id int64) (*models.Gallery, error) {
	const op = "storage.repository.GetGalleryByID"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + galleryColumns + ` FROM galleries WHERE gallery_id = $1`
	g, err := scanGallery(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(op, err)
	}
	return g, nil
}

// GetGalleryAndBumpViews атомарно увеличивает счётчик просмотров и возвращает
// галерею уже с новым значением счётчика.
func (s *Storage) GetGalleryAndBumpViews(ctx context.Context, id int64) (*models.Gallery, error) {
	const op = "storage.repository.GetGalleryAndBumpViews"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		UPDATE galleries SET view_count = view_count + 1
		WHERE gallery_id = $1
		RETURNING ` + galleryColumns
	g, err := scanGallery(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(op, err)
	}
	return g, nil
}

// ListGalleries возвращает все галереи в алфавитном порядке.
func (s *Storage) ListGalleries(ctx context.Context, limit, offset int) ([]*models.Gallery, error) {
	const op = "storage.repository.ListGalleries"
	query := `SELECT ` + galleryColumns + ` FROM galleries ORDER BY created_at DESC, gallery_id DESC LIMIT $1 OFFSET $2`
	return s.queryGalleries(ctx, op, query, limit, offset)
}

// UpdateGallery перезаписывает изменяемые поля галереи.
// Ссылки на владельца не меняются после создания.
func (s *Storage) UpdateGallery(ctx context.Context, g models.Gallery) error {
	const op = "storage.repository.UpdateGallery"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		UPDATE galleries SET name = $1, description = $2, gallery_type = $3,
			is_featured = $4, updated_at = now()
		WHERE gallery_id = $5`
	res, err := s.DB.ExecContext(ctx, query,
		g.Name, g.Description, g.GalleryType, g.IsFeatured, g.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// DeleteGallery удаляет галерею вместе со всеми её изображениями в одной транзакции.
func (s *Storage) DeleteGallery(ctx context.Context, id int64) error {
	const op = "storage.repository.DeleteGallery"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM gallery_images WHERE gallery_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM galleries WHERE gallery_id = $1`, id)
		if err != nil {
			return err
		}
		return checkAffected(op, res)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SearchGalleriesByName ищет галереи по подстроке имени без учёта регистра.
func (s *Storage) SearchGalleriesByName(ctx context.Context, name string) ([]*models.Gallery, error) {
	const op = "storage.repository.SearchGalleriesByName"
	query := `SELECT ` + galleryColumns + ` FROM galleries WHERE name ILIKE '%' || $1 || '%' ORDER BY name`
	return s.queryGalleries(ctx, op, query, name)
}

// FilterGalleriesByType возвращает галереи указанного типа.
func (s *Storage) FilterGalleriesByType(ctx context.Context, galleryType string) ([]*models.Gallery, error) {
	const op = "storage.repository.FilterGalleriesByType"
	query := `SELECT ` + galleryColumns + ` FROM galleries WHERE gallery_type = $1 ORDER BY name`
	return s.queryGalleries(ctx, op, query, galleryType)
}

// ListFeaturedGalleries возвращает рекомендуемые галереи.
func (s *Storage) ListFeaturedGalleries(ctx context.Context) ([]*models.Gallery, error) {
	const op = "storage.repository.ListFeaturedGalleries"
	query := `SELECT ` + galleryColumns + ` FROM galleries WHERE is_featured ORDER BY name`
	return s.queryGalleries(ctx, op, query)
}

// ListPopularGalleries возвращает галереи, набравшие не меньше minViews
// просмотров, по убыванию счётчика.
func (s *Storage) ListPopularGalleries(ctx context.Context, minViews, limit int) ([]*models.Gallery, error) {
	const op = "storage.repository.ListPopularGalleries"
	query := `SELECT ` + galleryColumns + ` FROM galleries WHERE view_count >= $1 ORDER BY view_count DESC, gallery_id LIMIT $2`
	return s.queryGalleries(ctx, op, query, minViews, limit)
}

// ListGalleriesForOwner возвращает галереи, привязанные к указанному объекту контента.
func (s *Storage) ListGalleriesForOwner(ctx context.Context, ref models.OwnerRef) ([]*models.Gallery, error) {
	const op = "storage.repository.ListGalleriesForOwner"

	var query string
	switch ref.Kind {
	case models.OwnerPlace:
		query = `SELECT ` + galleryColumns + ` FROM galleries WHERE place_id = $1 ORDER BY name`
	case models.OwnerTemple:
		query = `SELECT ` + galleryColumns + ` FROM galleries WHERE temple_id = $1 ORDER BY name`
	case models.OwnerSite:
		query = `SELECT ` + galleryColumns + ` FROM galleries WHERE site_id = $1 ORDER BY name`
	case models.OwnerEvent:
		query = `SELECT ` + galleryColumns + ` FROM galleries WHERE event_id = $1 ORDER BY name`
	default:
		return nil, fmt.Errorf("%s: unknown owner kind %q", op, ref.Kind)
	}
	return s.queryGalleries(ctx, op, query, ref.ID)
}

// AddGalleryImage добавляет изображение в галерею и возвращает его идентификатор.
func (s *Storage) AddGalleryImage(ctx context.Context, img models.GalleryImage) (int64, error) {
	const op = "storage.repository.AddGalleryImage"

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		INSERT INTO gallery_images(gallery_id, image_url, thumbnail_url, title, caption,
			photographer, image_order, is_featured)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING image_id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		img.GalleryID, img.ImageURL, img.ThumbnailURL, img.Title, img.Caption,
		img.Photographer, img.ImageOrder, img.IsFeatured).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListGalleryImages возвращает изображения галереи, отсортированные по явному
// порядковому полю; при равных значениях порядок стабилизируется идентификатором.
func (s *Storage) ListGalleryImages(ctx context.Context, galleryID int64) ([]*models.GalleryImage, error) {
	const op = "storage.repository.ListGalleryImages"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + galleryImageColumns + ` FROM gallery_images WHERE gallery_id = $1 ORDER BY image_order, image_id`
	rows, err := s.DB.QueryContext(ctx, query, galleryID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var images []*models.GalleryImage
	for rows.Next() {
		img, err := scanGalleryImage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return images, nil
}

// DeleteGalleryImage удаляет изображение из указанной галереи.
func (s *Storage) DeleteGalleryImage(ctx context.Context, galleryID, imageID int64) error {
	const op = "storage.repository.DeleteGalleryImage"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM gallery_images WHERE image_id = $1 AND gallery_id = $2`, imageID, galleryID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// ReorderGalleryImages обновляет порядок перечисленных изображений галереи
// в одной транзакции. Изображения, не вошедшие в отображение, сохраняют
// прежний порядок; дыры и дубликаты порядковых значений допустимы.
// Если какое-то из изображений не принадлежит галерее, вся операция откатывается.
func (s *Storage) ReorderGalleryImages(ctx context.Context, galleryID int64, order map[int64]int) error {
	const op = "storage.repository.ReorderGalleryImages"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for imageID, pos := range order {
			res, err := tx.ExecContext(ctx,
				`UPDATE gallery_images SET image_order = $1 WHERE image_id = $2 AND gallery_id = $3`,
				pos, imageID, galleryID)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return storage.ErrNotFound
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetFeaturedGalleryImage делает изображение заглавным в галерее, снимая флаг
// с прежнего заглавного изображения в той же транзакции.
func (s *Storage) SetFeaturedGalleryImage(ctx context.Context, galleryID, imageID int64) error {
	const op = "storage.repository.SetFeaturedGalleryImage"

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE gallery_images SET is_featured = FALSE WHERE gallery_id = $1 AND is_featured`, galleryID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE gallery_images SET is_featured = TRUE WHERE image_id = $1 AND gallery_id = $2`,
			imageID, galleryID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetFeaturedGalleryImage возвращает заглавное изображение галереи.
func (s *Storage) GetFeaturedGalleryImage(ctx context.Context, galleryID int64) (*models.GalleryImage, error) {
	const op = "storage.repository.GetFeaturedGalleryImage"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + galleryImageColumns + ` FROM gallery_images WHERE gallery_id = $1 AND is_featured`
	img, err := scanGalleryImage(s.DB.QueryRowContext(ctx, query, galleryID))
	if err != nil {
		return nil, mapRowErr(op, err)
	}
	return img, nil
}
