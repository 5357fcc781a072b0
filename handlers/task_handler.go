package handlers

import (
	"context"
	"net/http"

	"github.com/cmomatt/referralpro/models"

	"github.com/gin-gonic/gin"
)

// TaskStore is the slice of task persistence the handler needs
type TaskStore interface {
	List(ctx context.Context) ([]*models.Task, error)
}

// TaskHandler handles HTTP requests for tasks
type TaskHandler struct {
	tasks TaskStore
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	data := make([]gin.H, 0, len(tasks))
	for _, task := range tasks {
		data = append(data, gin.H{
			"id":          task.ID,
			"userId":      task.UserID,
			"contactId":   task.ContactID,
			"referralId":  task.ReferralID,
			"meetingId":   task.MeetingID,
			"title":       task.Title,
			"description": task.Description,
			"dueDate":     task.DueDate,
			"status":      task.Status,
			"priority":    task.Priority,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}
