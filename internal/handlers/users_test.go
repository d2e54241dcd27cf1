package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/picly/internal/models"
	"github.com/anonto42/picly/internal/repositories"
	"github.com/anonto42/picly/validators"
)

type memoryUserRepo struct {
	users map[string]*models.User
	next  int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*models.User{}}
}

func (r *memoryUserRepo) CreateUser(user *models.User) error {
	if user.ID == "" {
		r.next++
		user.ID = fmt.Sprintf("u%d", r.next)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) GetUserByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) GetUsers() ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memoryUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) DeleteUser(id string) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

func TestCreateUserWrapsResponseInDataEnvelope(t *testing.T) {
	repo := newMemoryUserRepo()
	h := NewUserHandler(repo)
	e := newTestEcho()

	body := `{"name":"Ada","account":{"email":"ada@example.com","password":"secret1"}}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.CreateUser(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp struct {
		Data models.User `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ID == "" {
		t.Fatal("expected server-assigned user id")
	}
	if resp.Data.Account.Email != "ada@example.com" {
		t.Fatalf("email = %q, want ada@example.com", resp.Data.Account.Email)
	}
}

func TestCreateUserRejectsInvalidBody(t *testing.T) {
	h := NewUserHandler(newMemoryUserRepo())
	e := newTestEcho()

	// Missing the required account block.
	body := `{"name":"Ada"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.CreateUser(e.NewContext(req, rec))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("error = %v, want 400 HTTPError", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	h := NewUserHandler(newMemoryUserRepo())
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/users/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.GetUser(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("error = %v, want 404 HTTPError", err)
	}
}

func TestUpdateUserMergesPartialFields(t *testing.T) {
	repo := newMemoryUserRepo()
	existing := &models.User{
		ID:     "u1",
		Name:   "Ada",
		Avatar: "https://cdn.example.com/a.jpg",
		Account: models.Account{
			Email:    "ada@example.com",
			Password: "secret1",
			IsActive: true,
		},
		Address: models.Address{Street: "Old Rd", City: "Door", ZipCode: 1000},
	}
	if err := repo.CreateUser(existing); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	h := NewUserHandler(repo)
	e := newTestEcho()

	body := `{"name":"Ada L","address":{"street":"New Rd","city":"Door","zipCode":2000}}`
	req := httptest.NewRequest(http.MethodPut, "/users/u1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.UpdateUser(c); err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}

	saved, err := repo.GetUserByID("u1")
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if saved.Name != "Ada L" {
		t.Fatalf("name = %q, want Ada L", saved.Name)
	}
	if saved.Address.Street != "New Rd" || saved.Address.ZipCode != 2000 {
		t.Fatalf("address not updated: %+v", saved.Address)
	}
	if saved.Avatar != "https://cdn.example.com/a.jpg" {
		t.Fatal("avatar should be untouched when omitted")
	}
	if saved.Account.Email != "ada@example.com" {
		t.Fatal("account block should survive a profile update")
	}
}

func TestUpdateUserReplacesPassword(t *testing.T) {
	repo := newMemoryUserRepo()
	existing := &models.User{
		ID:   "u1",
		Name: "Ada",
		Account: models.Account{
			Email:    "ada@example.com",
			Password: "secret1",
			IsActive: true,
		},
	}
	if err := repo.CreateUser(existing); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	h := NewUserHandler(repo)
	e := newTestEcho()

	body := `{"password":"newsecret"}`
	req := httptest.NewRequest(http.MethodPut, "/users/u1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.UpdateUser(c); err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}

	saved, err := repo.GetUserByID("u1")
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if saved.Account.Password != "newsecret" {
		t.Fatalf("password = %q, want newsecret", saved.Account.Password)
	}
	if saved.Name != "Ada" || saved.Account.Email != "ada@example.com" {
		t.Fatal("other fields should be untouched by a password change")
	}
}
