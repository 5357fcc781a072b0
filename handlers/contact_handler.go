package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmomatt/referralpro/models"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// ContactStore is the slice of contact persistence the handler needs
type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	List(ctx context.Context) ([]*models.Contact, error)
}

// ContactHandler handles HTTP requests for contacts
type ContactHandler struct {
	contacts ContactStore
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts ContactStore) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// ListContacts handles GET /api/contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	data := make([]gin.H, 0, len(contacts))
	for _, contact := range contacts {
		data = append(data, gin.H{
			"id":              contact.ID,
			"userId":          contact.UserID,
			"firstName":       contact.FirstName,
			"lastName":        contact.LastName,
			"email":           contact.Email,
			"phone":           contact.Phone,
			"company":         contact.Company,
			"title":           contact.Title,
			"website":         contact.Website,
			"linkedinUrl":     contact.LinkedinURL,
			"industry":        contact.Industry,
			"specialty":       contact.Specialty,
			"expertise":       contact.Expertise,
			"idealCustomer":   contact.IdealCustomer,
			"reputationScore": contact.ReputationScore,
			"notes":           contact.Notes,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// CreateContactRequest represents the request body for creating a contact
type CreateContactRequest struct {
	UserID          string  `json:"user_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Company         *string `json:"company"`
	Title           *string `json:"title"`
	Website         *string `json:"website"`
	LinkedinURL     *string `json:"linkedin_url"`
	Industry        *string `json:"industry"`
	Specialty       *string `json:"specialty"`
	Expertise       *string `json:"expertise"`
	IdealCustomer   *string `json:"ideal_customer"`
	ReputationScore *int    `json:"reputation_score"`
	Notes           *string `json:"notes"`
}

// CreateContact handles POST /api/contacts
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON body",
		})
		return
	}

	if req.UserID == "" || req.FirstName == "" || req.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing required fields: user_id, first_name, last_name",
		})
		return
	}

	contact := &models.Contact{
		ID:              newRowID(c, "contacts"),
		UserID:          req.UserID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		Title:           req.Title,
		Website:         req.Website,
		LinkedinURL:     req.LinkedinURL,
		Industry:        req.Industry,
		Specialty:       req.Specialty,
		Expertise:       req.Expertise,
		IdealCustomer:   req.IdealCustomer,
		ReputationScore: req.ReputationScore,
		Notes:           req.Notes,
	}

	if err := h.contacts.Create(c.Request.Context(), contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contact,
		"message": "Contact created successfully",
	})
}

// GetContact handles GET /api/contacts/:id
func (h *ContactHandler) GetContact(c *gin.Context) {
	contact, err := h.contacts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Contact not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch contact",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contact,
	})
}
