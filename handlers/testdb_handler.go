package handlers

import (
	"net/http"
	"time"

	"github.com/cmomatt/referralpro/service"

	"github.com/gin-gonic/gin"
)

// TestDBHandler handles the diagnostic /api/test-db routes
type TestDBHandler struct {
	diagnostics *service.Diagnostics
}

// NewTestDBHandler creates a new diagnostics handler
func NewTestDBHandler(diagnostics *service.Diagnostics) *TestDBHandler {
	return &TestDBHandler{diagnostics: diagnostics}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CheckConnection handles GET /api/test-db
func (h *TestDBHandler) CheckConnection(c *gin.Context) {
	result, err := h.diagnostics.Check(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"message":   "Database test error",
			"error":     err.Error(),
			"timestamp": timestamp(),
		})
		return
	}

	if !result.Success {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"message":   "Database connection test failed",
			"results":   result.Results,
			"timestamp": timestamp(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Database connection and schema test successful!",
		"results":   result.Results,
		"timestamp": timestamp(),
	})
}

// SeedTestData handles POST /api/test-db
func (h *TestDBHandler) SeedTestData(c *gin.Context) {
	result, err := h.diagnostics.Seed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"message":   "Test data creation error",
			"error":     err.Error(),
			"timestamp": timestamp(),
		})
		return
	}

	if !result.Success {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"message":   "Failed to create test data",
			"data":      result,
			"timestamp": timestamp(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Test data created successfully!",
		"data":      result,
		"timestamp": timestamp(),
	})
}

// ClearTestData handles DELETE /api/test-db
func (h *TestDBHandler) ClearTestData(c *gin.Context) {
	result, err := h.diagnostics.Clear(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"message":   "Test data clearing error",
			"error":     err.Error(),
			"timestamp": timestamp(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Test data cleared successfully!",
		"deletedCount": result.DeletedCount,
		"perTable":     result.PerTable,
		"timestamp":    timestamp(),
	})
}
