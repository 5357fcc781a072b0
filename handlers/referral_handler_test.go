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

type fakeReferralStore struct {
	byID  map[string]*models.Referral
	order []string
}

func newFakeReferralStore() *fakeReferralStore {
	return &fakeReferralStore{byID: make(map[string]*models.Referral)}
}

func (s *fakeReferralStore) Create(ctx context.Context, referral *models.Referral) error {
	if existing, ok := s.byID[referral.ID]; ok {
		*referral = *existing
		return nil
	}
	s.byID[referral.ID] = referral
	s.order = append(s.order, referral.ID)
	return nil
}

func (s *fakeReferralStore) GetByID(ctx context.Context, id string) (*models.Referral, error) {
	referral, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return referral, nil
}

func (s *fakeReferralStore) List(ctx context.Context) ([]*models.Referral, error) {
	referrals := make([]*models.Referral, 0, len(s.order))
	for _, id := range s.order {
		referrals = append(referrals, s.byID[id])
	}
	return referrals, nil
}

func setupReferralRouter(store *fakeReferralStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReferralHandler(store)
	r.GET("/api/referrals", h.ListReferrals)
	r.POST("/api/referrals", h.CreateReferral)
	r.GET("/api/referrals/:id", h.GetReferral)
	return r
}

func TestCreateReferral(t *testing.T) {
	store := newFakeReferralStore()
	r := setupReferralRouter(store)

	body := `{"referrer_id":"u-1","referee_email":"lead@example.com","status":"pending"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/referrals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool            `json:"success"`
		Data    models.Referral `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, models.ReferralStatusPending, resp.Data.Status)
}

func TestCreateReferral_MissingFields(t *testing.T) {
	store := newFakeReferralStore()
	r := setupReferralRouter(store)

	body := `{"referrer_id":"u-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/referrals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Missing required fields: referrer_id, referee_email, status", resp.Error)
	assert.Empty(t, store.byID)
}

func TestCreateReferral_InvalidStatus(t *testing.T) {
	store := newFakeReferralStore()
	r := setupReferralRouter(store)

	body := `{"referrer_id":"u-1","referee_email":"lead@example.com","status":"bogus"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/referrals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid status: must be one of pending, contacted, accepted, rejected, completed", resp.Error)
	assert.Empty(t, store.byID)
}

func TestGetReferral_NotFound(t *testing.T) {
	r := setupReferralRouter(newFakeReferralStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/referrals/missing", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Referral not found", resp.Error)
}
