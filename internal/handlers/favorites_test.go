package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anonto42/picly/internal/models"
	"github.com/anonto42/picly/internal/repositories"
)

type memoryFavoriteRepo struct {
	favorites []models.Favorite
}

func (r *memoryFavoriteRepo) CreateFavorite(_ context.Context, favorite *models.Favorite) error {
	favorite.ID = primitive.NewObjectID()
	r.favorites = append(r.favorites, *favorite)
	return nil
}

func (r *memoryFavoriteRepo) Find(_ context.Context, photoID, userID string) ([]models.Favorite, error) {
	out := []models.Favorite{}
	for _, f := range r.favorites {
		if photoID != "" && f.PhotoID != photoID {
			continue
		}
		if userID != "" && f.UserID != userID {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *memoryFavoriteRepo) DeleteFavorite(_ context.Context, id string) error {
	for i, f := range r.favorites {
		if f.ID.Hex() == id {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memoryPhotoRepo struct {
	photos map[string]models.Photo
}

func (r *memoryPhotoRepo) CreatePhoto(_ context.Context, photo *models.Photo) error {
	photo.ID = primitive.NewObjectID()
	r.photos[photo.ID.Hex()] = *photo
	return nil
}

func (r *memoryPhotoRepo) GetPhotoByID(_ context.Context, id string) (*models.Photo, error) {
	photo, ok := r.photos[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &photo, nil
}

func (r *memoryPhotoRepo) GetPhotos(_ context.Context) ([]models.Photo, error) {
	out := []models.Photo{}
	for _, p := range r.photos {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryPhotoRepo) GetPhotosByUserID(_ context.Context, userID string) ([]models.Photo, error) {
	out := []models.Photo{}
	for _, p := range r.photos {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryPhotoRepo) UpdatePhoto(_ context.Context, id string, photo *models.Photo) error {
	if _, ok := r.photos[id]; !ok {
		return repositories.ErrNotFound
	}
	r.photos[id] = *photo
	return nil
}

func (r *memoryPhotoRepo) DeletePhoto(_ context.Context, id string) error {
	if _, ok := r.photos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

func seedPhoto(t *testing.T, repo *memoryPhotoRepo, title, userID string) models.Photo {
	t.Helper()
	photo := models.Photo{Title: title, UserID: userID}
	if err := repo.CreatePhoto(t.Context(), &photo); err != nil {
		t.Fatalf("seed photo: %v", err)
	}
	return photo
}

func TestListFavoritesMembershipCheck(t *testing.T) {
	favRepo := &memoryFavoriteRepo{}
	photoRepo := &memoryPhotoRepo{photos: map[string]models.Photo{}}
	photo := seedPhoto(t, photoRepo, "Sunset", "u1")

	fav := models.Favorite{PhotoID: photo.ID.Hex(), UserID: "u1"}
	if err := favRepo.CreateFavorite(t.Context(), &fav); err != nil {
		t.Fatalf("seed favorite: %v", err)
	}

	h := NewFavoriteHandler(favRepo, photoRepo)
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/favorites?photoId="+photo.ID.Hex()+"&userId=u1", nil)
	rec := httptest.NewRecorder()
	if err := h.ListFavorites(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListFavorites returned error: %v", err)
	}

	var resp struct {
		Data []models.Favorite `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("got %d favorites, want 1", len(resp.Data))
	}
	if resp.Data[0].ID != fav.ID {
		t.Fatalf("favorite id = %s, want %s", resp.Data[0].ID.Hex(), fav.ID.Hex())
	}

	// A different user has no record for the same photo.
	req = httptest.NewRequest(http.MethodGet, "/favorites?photoId="+photo.ID.Hex()+"&userId=u2", nil)
	rec = httptest.NewRecorder()
	if err := h.ListFavorites(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListFavorites returned error: %v", err)
	}
	resp.Data = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Fatalf("got %d favorites for u2, want 0", len(resp.Data))
	}
}

func TestListFavoritesByUserPopulatesPhotos(t *testing.T) {
	favRepo := &memoryFavoriteRepo{}
	photoRepo := &memoryPhotoRepo{photos: map[string]models.Photo{}}
	kept := seedPhoto(t, photoRepo, "Sunset", "u1")
	removed := seedPhoto(t, photoRepo, "Gone", "u1")

	for _, p := range []models.Photo{kept, removed} {
		fav := models.Favorite{PhotoID: p.ID.Hex(), UserID: "u1"}
		if err := favRepo.CreateFavorite(t.Context(), &fav); err != nil {
			t.Fatalf("seed favorite: %v", err)
		}
	}
	if err := photoRepo.DeletePhoto(t.Context(), removed.ID.Hex()); err != nil {
		t.Fatalf("delete photo: %v", err)
	}

	h := NewFavoriteHandler(favRepo, photoRepo)
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/favorites?userId=u1", nil)
	rec := httptest.NewRecorder()
	if err := h.ListFavorites(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListFavorites returned error: %v", err)
	}

	var resp struct {
		Data []models.FavoriteWithPhoto `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("got %d populated favorites, want 1 (orphan skipped)", len(resp.Data))
	}
	if resp.Data[0].Photo.Title != "Sunset" {
		t.Fatalf("photo title = %q, want Sunset", resp.Data[0].Photo.Title)
	}
}

func TestCreateThenDeleteFavorite(t *testing.T) {
	favRepo := &memoryFavoriteRepo{}
	photoRepo := &memoryPhotoRepo{photos: map[string]models.Photo{}}
	h := NewFavoriteHandler(favRepo, photoRepo)
	e := newTestEcho()

	body := `{"photoId":"507f1f77bcf86cd799439011","userId":"u1"}`
	req := httptest.NewRequest(http.MethodPost, "/favorites", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.CreateFavorite(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateFavorite returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp struct {
		Data models.Favorite `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ID.IsZero() {
		t.Fatal("expected server-assigned favorite id")
	}

	req = httptest.NewRequest(http.MethodDelete, "/favorites/"+resp.Data.ID.Hex(), nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/favorites/:id")
	c.SetParamNames("id")
	c.SetParamValues(resp.Data.ID.Hex())
	if err := h.DeleteFavorite(c); err != nil {
		t.Fatalf("DeleteFavorite returned error: %v", err)
	}

	if len(favRepo.favorites) != 0 {
		t.Fatalf("store still holds %d favorites after delete", len(favRepo.favorites))
	}
}
