package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmomatt/referralpro/models"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// RewardStore is the slice of reward persistence the handler needs
type RewardStore interface {
	GetByID(ctx context.Context, id string) (*models.ReferralReward, error)
	List(ctx context.Context) ([]*models.ReferralReward, error)
}

// RewardHandler handles HTTP requests for referral rewards
type RewardHandler struct {
	rewards RewardStore
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(rewards RewardStore) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

// ListRewards handles GET /api/rewards
func (h *RewardHandler) ListRewards(c *gin.Context) {
	rewards, err := h.rewards.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	data := make([]gin.H, 0, len(rewards))
	for _, reward := range rewards {
		data = append(data, gin.H{
			"id":          reward.ID,
			"referralId":  reward.ReferralID,
			"type":        reward.Type,
			"amount":      reward.Amount,
			"description": reward.Description,
			"status":      reward.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// GetReward handles GET /api/rewards/:id
func (h *RewardHandler) GetReward(c *gin.Context) {
	reward, err := h.rewards.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reward not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch reward",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reward,
	})
}
