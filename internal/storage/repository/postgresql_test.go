package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osam-tourism/tourism-api/internal/migrations"
	"github.com/osam-tourism/tourism-api/internal/models"
	"github.com/osam-tourism/tourism-api/internal/storage"
)

// setupTestDb поднимает контейнер PostgreSQL и применяет боевые миграции.
func setupTestDb(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err, "Failed to get port")

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	// Пробуем подключиться несколько раз с ретраями
	var st *Storage
	for range 10 {
		st, err = New(dsn)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(st.DB, migrationsPath), "Failed to run migrations")

	cleanup := func() {
		if st != nil && st.DB != nil {
			_ = st.DB.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return st, cleanup
}

func testPlace(name string) models.Place {
	fee := 150.0
	access := "easily_accessible"
	return models.Place{
		Name:             name,
		Description:      "Panoramic viewpoint above the valley",
		Category:         "viewpoint",
		Location:         "West Ridge",
		EntryFee:         &fee,
		EntryFeeCurrency: "INR",
		Accessibility:    &access,
		ParkingAvailable: true,
	}
}

func testReview(placeID int64) models.Review {
	return models.Review{
		Title:        "Worth the climb",
		Content:      "The sunrise view is unforgettable.",
		Rating:       5,
		ReviewType:   models.OwnerPlace,
		PlaceID:      &placeID,
		VisitorName:  "Asha",
		VisitorEmail: "asha@example.com",
		Status:       models.ReviewStatusPending,
	}
}

func TestStorage_PlaceLifecycle(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	id, err := st.CreatePlace(ctx, testPlace("Sunset Point"))
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := st.GetPlaceByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sunset Point", got.Name)
	assert.Equal(t, int64(0), got.ViewCount)
	require.NotNil(t, got.EntryFee)
	assert.InDelta(t, 150.0, *got.EntryFee, 0.001)

	// Каждое чтение через GetPlaceAndBumpViews увеличивает счётчик
	bumped, err := st.GetPlaceAndBumpViews(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bumped.ViewCount)

	bumped, err = st.GetPlaceAndBumpViews(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), bumped.ViewCount)

	got.Name = "Sunrise Point"
	got.IsFeatured = true
	require.NoError(t, st.UpdatePlace(ctx, *got))

	featured, err := st.ListFeaturedPlaces(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Sunrise Point", featured[0].Name)

	require.NoError(t, st.DeletePlace(ctx, id))
	_, err = st.GetPlaceByID(ctx, id)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_UpdatePlace_NotFound(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()

	p := testPlace("Ghost")
	p.ID = 9999
	err := st.UpdatePlace(context.Background(), p)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_DeletePlace_RemovesReviews(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	placeID, err := st.CreatePlace(ctx, testPlace("Sunset Point"))
	require.NoError(t, err)

	reviewID, err := st.CreateReview(ctx, testReview(placeID))
	require.NoError(t, err)

	require.NoError(t, st.DeletePlace(ctx, placeID))

	_, err = st.GetReviewByID(ctx, reviewID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_SearchAndFilterPlaces(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	p1 := testPlace("Sunset Point")
	_, err := st.CreatePlace(ctx, p1)
	require.NoError(t, err)

	p2 := testPlace("Hidden Waterfall")
	p2.Category = "landmark"
	p2.EntryFee = nil
	_, err = st.CreatePlace(ctx, p2)
	require.NoError(t, err)

	byCategory, err := st.FilterPlacesByCategory(ctx, "landmark")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Hidden Waterfall", byCategory[0].Name)

	// Пагинация: сортировка по имени, H < S
	page, err := st.ListPlaces(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Hidden Waterfall", page[0].Name)

	page, err = st.ListPlaces(ctx, 10, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Sunset Point", page[0].Name)

	byName, err := st.SearchPlacesByName(ctx, "sunset")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Sunset Point", byName[0].Name)

	free, err := st.ListFreePlaces(ctx)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "Hidden Waterfall", free[0].Name)

	withParking, err := st.ListPlacesWithFacilities(ctx, models.PlaceFacilityFilter{Parking: true})
	require.NoError(t, err)
	assert.Len(t, withParking, 2)

	withFood, err := st.ListPlacesWithFacilities(ctx, models.PlaceFacilityFilter{Food: true})
	require.NoError(t, err)
	assert.Empty(t, withFood)
}

func TestStorage_ReviewModerationFlow(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	placeID, err := st.CreatePlace(ctx, testPlace("Sunset Point"))
	require.NoError(t, err)

	reviewID, err := st.CreateReview(ctx, testReview(placeID))
	require.NoError(t, err)

	pending, err := st.ListPendingReviews(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.ReviewStatusPending, pending[0].Status)

	// До одобрения отзыв не виден в публичной выдаче
	ref := models.OwnerRef{Kind: models.OwnerPlace, ID: placeID}
	visible, err := st.ListReviewsForOwner(ctx, ref, true)
	require.NoError(t, err)
	assert.Empty(t, visible)

	require.NoError(t, st.UpdateReviewStatus(ctx, reviewID, models.ReviewStatusApproved))

	visible, err = st.ListReviewsForOwner(ctx, ref, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, models.ReviewStatusApproved, visible[0].Status)

	require.NoError(t, st.IncrementReviewVote(ctx, reviewID, true))
	require.NoError(t, st.IncrementReviewVote(ctx, reviewID, true))
	require.NoError(t, st.IncrementReviewVote(ctx, reviewID, false))

	got, err := st.GetReviewByID(ctx, reviewID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.HelpfulCount)
	assert.Equal(t, 1, got.UnhelpfulCount)

	require.NoError(t, st.SetReviewVerified(ctx, reviewID, true))
	got, err = st.GetReviewByID(ctx, reviewID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
}

func TestStorage_CreateUser_Duplicate(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	u := models.User{
		Username:     "editor1",
		Email:        "editor1@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleEditor,
		IsActive:     true,
	}
	id, err := st.CreateUser(ctx, u)
	require.NoError(t, err)
	require.Positive(t, id)

	u.Email = "other@example.com"
	_, err = st.CreateUser(ctx, u)
	require.ErrorIs(t, err, storage.ErrConflict)

	got, err := st.GetUserByUsername(ctx, "editor1")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, models.RoleEditor, got.Role)
}

func TestStorage_UserRoleAndActivation(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	id, err := st.CreateUser(ctx, models.User{
		Username:     "editor1",
		Email:        "editor1@example.com",
		PasswordHash: "hashedpassword",
		Role:         models.RoleEditor,
		IsActive:     true,
	})
	require.NoError(t, err)

	require.NoError(t, st.SetUserRole(ctx, id, models.RoleAdmin))
	require.NoError(t, st.SetUserActive(ctx, id, false))

	got, err := st.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.False(t, got.IsActive)

	require.ErrorIs(t, st.SetUserRole(ctx, 9999, models.RoleAdmin), storage.ErrNotFound)
}

func testGallery(placeID int64) models.Gallery {
	return models.Gallery{
		Name:        "Morning light",
		GalleryType: "photos",
		PlaceID:     &placeID,
	}
}

func addTestImage(t *testing.T, st *Storage, galleryID int64, title string, order int) int64 {
	t.Helper()
	id, err := st.AddGalleryImage(context.Background(), models.GalleryImage{
		GalleryID:  galleryID,
		ImageURL:   "https://cdn.example.com/" + title + ".jpg",
		Title:      title,
		ImageOrder: order,
	})
	require.NoError(t, err)
	return id
}

func TestStorage_ReorderGalleryImages(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	placeID, err := st.CreatePlace(ctx, testPlace("Sunset Point"))
	require.NoError(t, err)
	galleryID, err := st.CreateGallery(ctx, testGallery(placeID))
	require.NoError(t, err)

	img1 := addTestImage(t, st, galleryID, "first", 1)
	img2 := addTestImage(t, st, galleryID, "second", 2)
	img3 := addTestImage(t, st, galleryID, "third", 3)

	// Неперечисленное изображение сохраняет прежний порядок, дыры допустимы.
	require.NoError(t, st.ReorderGalleryImages(ctx, galleryID, map[int64]int{
		img1: 10,
		img2: 1,
	}))

	images, err := st.ListGalleryImages(ctx, galleryID)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, img2, images[0].ID)
	assert.Equal(t, img3, images[1].ID)
	assert.Equal(t, img1, images[2].ID)
	assert.Equal(t, 3, images[1].ImageOrder)

	// Дубликаты порядковых значений допустимы, ничья решается идентификатором.
	require.NoError(t, st.ReorderGalleryImages(ctx, galleryID, map[int64]int{
		img1: 5,
		img2: 5,
		img3: 5,
	}))

	images, err = st.ListGalleryImages(ctx, galleryID)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, img1, images[0].ID)
	assert.Equal(t, img2, images[1].ID)
	assert.Equal(t, img3, images[2].ID)
}

func TestStorage_ReorderGalleryImages_ForeignImageRollsBack(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	placeID, err := st.CreatePlace(ctx, testPlace("Sunset Point"))
	require.NoError(t, err)
	galleryID, err := st.CreateGallery(ctx, testGallery(placeID))
	require.NoError(t, err)
	otherID, err := st.CreateGallery(ctx, testGallery(placeID))
	require.NoError(t, err)

	img1 := addTestImage(t, st, galleryID, "first", 1)
	foreign := addTestImage(t, st, otherID, "stranger", 1)

	err = st.ReorderGalleryImages(ctx, galleryID, map[int64]int{
		img1:    7,
		foreign: 8,
	})
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Транзакция откатилась целиком, своё изображение не сдвинулось.
	images, err := st.ListGalleryImages(ctx, galleryID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, 1, images[0].ImageOrder)
}

func TestStorage_SetFeaturedGalleryImage_Swap(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	placeID, err := st.CreatePlace(ctx, testPlace("Sunset Point"))
	require.NoError(t, err)
	galleryID, err := st.CreateGallery(ctx, testGallery(placeID))
	require.NoError(t, err)

	img1 := addTestImage(t, st, galleryID, "first", 1)
	img2 := addTestImage(t, st, galleryID, "second", 2)

	_, err = st.GetFeaturedGalleryImage(ctx, galleryID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, st.SetFeaturedGalleryImage(ctx, galleryID, img1))
	featured, err := st.GetFeaturedGalleryImage(ctx, galleryID)
	require.NoError(t, err)
	assert.Equal(t, img1, featured.ID)

	// Назначение новой обложки снимает флаг с прежней в той же транзакции.
	require.NoError(t, st.SetFeaturedGalleryImage(ctx, galleryID, img2))
	featured, err = st.GetFeaturedGalleryImage(ctx, galleryID)
	require.NoError(t, err)
	assert.Equal(t, img2, featured.ID)

	images, err := st.ListGalleryImages(ctx, galleryID)
	require.NoError(t, err)
	for _, img := range images {
		if img.ID == img1 {
			assert.False(t, img.IsFeatured)
		}
	}

	require.ErrorIs(t, st.SetFeaturedGalleryImage(ctx, galleryID, 9999), storage.ErrNotFound)
}

func TestStorage_DeleteGallery_RemovesImages(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	placeID, err := st.CreatePlace(ctx, testPlace("Sunset Point"))
	require.NoError(t, err)
	galleryID, err := st.CreateGallery(ctx, testGallery(placeID))
	require.NoError(t, err)

	addTestImage(t, st, galleryID, "first", 1)
	addTestImage(t, st, galleryID, "second", 2)

	require.NoError(t, st.DeleteGallery(ctx, galleryID))

	_, err = st.GetGalleryByID(ctx, galleryID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	images, err := st.ListGalleryImages(ctx, galleryID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestStorage_ListPopularGalleries_Threshold(t *testing.T) {
	st, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	placeID, err := st.CreatePlace(ctx, testPlace("Sunset Point"))
	require.NoError(t, err)

	coldID, err := st.CreateGallery(ctx, testGallery(placeID))
	require.NoError(t, err)
	hotID, err := st.CreateGallery(ctx, testGallery(placeID))
	require.NoError(t, err)

	for range 3 {
		_, err = st.GetGalleryAndBumpViews(ctx, hotID)
		require.NoError(t, err)
	}

	popular, err := st.ListPopularGalleries(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, hotID, popular[0].ID)

	// Нулевой порог возвращает все галереи по убыванию просмотров.
	popular, err = st.ListPopularGalleries(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, hotID, popular[0].ID)
	assert.Equal(t, coldID, popular[1].ID)
}
