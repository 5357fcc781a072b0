package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmomatt/referralpro/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	byID  map[string]*models.User
	order []string
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[string]*models.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if s.err != nil {
		return s.err
	}
	if existing, ok := s.byID[user.ID]; ok {
		*user = *existing
		return nil
	}
	s.byID[user.ID] = user
	s.order = append(s.order, user.ID)
	return nil
}

func (s *fakeUserStore) List(ctx context.Context) ([]*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	users := make([]*models.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, s.byID[id])
	}
	return users, nil
}

func setupUserRouter(store *fakeUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(store)
	r.GET("/api/users", h.ListUsers)
	r.POST("/api/users", h.CreateUser)
	return r
}

func TestListUsers_Empty(t *testing.T) {
	r := setupUserRouter(newFakeUserStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/users", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                     `json:"success"`
		Data    []map[string]interface{} `json:"data"`
		Count   int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, 0, resp.Count)
}

func TestCreateUser(t *testing.T) {
	store := newFakeUserStore()
	r := setupUserRouter(store)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool        `json:"success"`
		Data    models.User `json:"data"`
		Message string      `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, "Ada Lovelace", resp.Data.Name)
	assert.Equal(t, "ada@example.com", resp.Data.Email)
	assert.Equal(t, "User created successfully", resp.Message)
	assert.Len(t, store.byID, 1)
}

func TestCreateUser_MissingFields(t *testing.T) {
	store := newFakeUserStore()
	r := setupUserRouter(store)

	body := `{"first_name":"Ada"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Missing required fields: first_name, last_name, email", resp.Error)
	assert.Empty(t, store.byID, "no row should be written for an invalid request")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	r := setupUserRouter(store)

	// users.email carries a unique constraint; the insert surfaces it as
	// an error and the handler must not report success.
	store.err = errors.New(`duplicate key value violates unique constraint "users_email_key"`)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "unique constraint")
	assert.Empty(t, store.byID, "a failed insert must not retain a row")
}

func TestCreateUser_IdempotencyKeyRetry(t *testing.T) {
	store := newFakeUserStore()
	r := setupUserRouter(store)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`

	send := func() string {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "retry-abc-123")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data models.User `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Data.ID
	}

	first := send()
	second := send()

	assert.Equal(t, first, second, "retried create should land on the same row")
	assert.Len(t, store.byID, 1)
}

func TestCreateUser_ListAfterCreate(t *testing.T) {
	store := newFakeUserStore()
	r := setupUserRouter(store)

	body := `{"first_name":"Grace","last_name":"Hopper","email":"grace@example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/users", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []map[string]interface{} `json:"data"`
		Count int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Grace Hopper", resp.Data[0]["name"])
	assert.Equal(t, "grace@example.com", resp.Data[0]["email"])
}
