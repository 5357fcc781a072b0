package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmomatt/referralpro/models"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// ReferralStore is the slice of referral persistence the handler needs
type ReferralStore interface {
	Create(ctx context.Context, referral *models.Referral) error
	GetByID(ctx context.Context, id string) (*models.Referral, error)
	List(ctx context.Context) ([]*models.Referral, error)
}

// ReferralHandler handles HTTP requests for referrals
type ReferralHandler struct {
	referrals ReferralStore
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referrals ReferralStore) *ReferralHandler {
	return &ReferralHandler{referrals: referrals}
}

// ListReferrals handles GET /api/referrals
func (h *ReferralHandler) ListReferrals(c *gin.Context) {
	referrals, err := h.referrals.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	data := make([]gin.H, 0, len(referrals))
	for _, referral := range referrals {
		data = append(data, gin.H{
			"id":           referral.ID,
			"referrerId":   referral.ReferrerID,
			"refereeEmail": referral.RefereeEmail,
			"refereeName":  referral.RefereeName,
			"status":       referral.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// CreateReferralRequest represents the request body for creating a referral
type CreateReferralRequest struct {
	ReferrerID   string  `json:"referrer_id"`
	RefereeEmail string  `json:"referee_email"`
	RefereeName  *string `json:"referee_name"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes"`
}

// CreateReferral handles POST /api/referrals
func (h *ReferralHandler) CreateReferral(c *gin.Context) {
	var req CreateReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON body",
		})
		return
	}

	if req.ReferrerID == "" || req.RefereeEmail == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing required fields: referrer_id, referee_email, status",
		})
		return
	}

	status := models.ReferralStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid status: must be one of pending, contacted, accepted, rejected, completed",
		})
		return
	}

	referral := &models.Referral{
		ID:           newRowID(c, "referrals"),
		ReferrerID:   req.ReferrerID,
		RefereeEmail: req.RefereeEmail,
		RefereeName:  req.RefereeName,
		Status:       status,
		Notes:        req.Notes,
	}

	if err := h.referrals.Create(c.Request.Context(), referral); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    referral,
		"message": "Referral created successfully",
	})
}

// GetReferral handles GET /api/referrals/:id
func (h *ReferralHandler) GetReferral(c *gin.Context) {
	referral, err := h.referrals.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Referral not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch referral",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    referral,
	})
}
