package handlers

import (
	"context"
	"net/http"

	"github.com/cmomatt/referralpro/models"

	"github.com/gin-gonic/gin"
)

// UserStore is the slice of user persistence the handler needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
}

// UserHandler handles HTTP requests for users
type UserHandler struct {
	users UserStore
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	data := make([]gin.H, 0, len(users))
	for _, user := range users {
		data = append(data, gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// CreateUserRequest represents the request body for creating a user.
// Industry, specialty, and goals are accepted for forward compatibility but
// have no backing columns yet.
type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Industry  string `json:"industry"`
	Specialty string `json:"specialty"`
	Goals     string `json:"goals"`
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON body",
		})
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing required fields: first_name, last_name, email",
		})
		return
	}

	user := &models.User{
		ID:    newRowID(c, "users"),
		Email: req.Email,
		Name:  req.FirstName + " " + req.LastName,
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
		"message": "User created successfully",
	})
}
