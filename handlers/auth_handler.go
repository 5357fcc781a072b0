package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/cmomatt/referralpro/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore looks up users for password login
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionWriter persists freshly minted sessions and revokes them on logout
type SessionWriter interface {
	Create(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, token string) error
}

// sessionTTL matches the 30-day session window of the hosted auth provider
// the web frontend uses.
const sessionTTL = 30 * 24 * time.Hour

// AuthHandler handles credentials login
type AuthHandler struct {
	users    CredentialStore
	sessions SessionWriter
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users CredentialStore, sessions SessionWriter) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// LoginRequest represents the request body for credentials login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing required fields: email, password",
		})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || user.PasswordHash == nil {
		// Same response for unknown email and password-less account.
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Invalid email or password",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Invalid email or password",
		})
		return
	}

	token, err := newSessionToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	session := &models.Session{
		ID:           uuid.NewString(),
		SessionToken: token,
		UserID:       user.ID,
		Expires:      time.Now().Add(sessionTTL),
	}
	if err := h.sessions.Create(c.Request.Context(), session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"sessionToken": session.SessionToken,
			"userId":       session.UserID,
			"expires":      session.Expires,
		},
		"message": "Login successful",
	})
}

// Logout handles POST /api/auth/logout. Revoking an unknown token still
// succeeds so a logout retry cannot fail.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing or malformed Authorization header",
		})
		return
	}

	if err := h.sessions.Delete(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
