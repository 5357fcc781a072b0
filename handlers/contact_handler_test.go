package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmomatt/referralpro/models"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactStore struct {
	byID  map[string]*models.Contact
	order []string
	err   error
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{byID: make(map[string]*models.Contact)}
}

func (s *fakeContactStore) Create(ctx context.Context, contact *models.Contact) error {
	if s.err != nil {
		return s.err
	}
	if existing, ok := s.byID[contact.ID]; ok {
		*contact = *existing
		return nil
	}
	s.byID[contact.ID] = contact
	s.order = append(s.order, contact.ID)
	return nil
}

func (s *fakeContactStore) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	if s.err != nil {
		return nil, s.err
	}
	contact, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return contact, nil
}

func (s *fakeContactStore) List(ctx context.Context) ([]*models.Contact, error) {
	if s.err != nil {
		return nil, s.err
	}
	contacts := make([]*models.Contact, 0, len(s.order))
	for _, id := range s.order {
		contacts = append(contacts, s.byID[id])
	}
	return contacts, nil
}

func setupContactRouter(store *fakeContactStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewContactHandler(store)
	r.GET("/api/contacts", h.ListContacts)
	r.POST("/api/contacts", h.CreateContact)
	r.GET("/api/contacts/:id", h.GetContact)
	return r
}

func TestCreateContact(t *testing.T) {
	store := newFakeContactStore()
	r := setupContactRouter(store)

	body := `{"user_id":"u-1","first_name":"Sarah","last_name":"Wilson","company":"Wilson Law Firm","reputation_score":95}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/contacts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    models.Contact `json:"data"`
		Message string         `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, "u-1", resp.Data.UserID)
	assert.Equal(t, "Sarah", resp.Data.FirstName)
	assert.Equal(t, "Wilson", resp.Data.LastName)
	require.NotNil(t, resp.Data.Company)
	assert.Equal(t, "Wilson Law Firm", *resp.Data.Company)
	require.NotNil(t, resp.Data.ReputationScore)
	assert.Equal(t, 95, *resp.Data.ReputationScore)
	assert.Equal(t, "Contact created successfully", resp.Message)
}

func TestCreateContact_MissingFields(t *testing.T) {
	store := newFakeContactStore()
	r := setupContactRouter(store)

	body := `{"first_name":"Sarah","last_name":"Wilson"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/contacts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Missing required fields: user_id, first_name, last_name", resp.Error)
	assert.Empty(t, store.byID)
}

func TestGetContact_NotFound(t *testing.T) {
	r := setupContactRouter(newFakeContactStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/contacts/nope", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Contact not found", resp.Error)
}

func TestGetContact_StoreError(t *testing.T) {
	store := newFakeContactStore()
	store.err = assert.AnError
	r := setupContactRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/contacts/c-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to fetch contact", resp.Error)
}

func TestListContacts_CamelCaseProjection(t *testing.T) {
	store := newFakeContactStore()
	email := "sarah@example.com"
	store.byID["c-1"] = &models.Contact{
		ID:        "c-1",
		UserID:    "u-1",
		FirstName: "Sarah",
		LastName:  "Wilson",
		Email:     &email,
	}
	store.order = []string{"c-1"}
	r := setupContactRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/contacts", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []map[string]interface{} `json:"data"`
		Count int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)

	row := resp.Data[0]
	assert.Equal(t, "Sarah", row["firstName"])
	assert.Equal(t, "Wilson", row["lastName"])
	assert.Equal(t, "u-1", row["userId"])
	assert.NotContains(t, row, "createdAt", "list projection omits timestamps")
}
