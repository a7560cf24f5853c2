package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cobraflex/printercare/internal/api/dto"
	"github.com/cobraflex/printercare/internal/api/middleware"
	"github.com/cobraflex/printercare/internal/domain/maintenance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// MaintenanceHandler handles HTTP requests for checklist and log operations
type MaintenanceHandler struct {
	service maintenance.Service
}

// NewMaintenanceHandler creates a new MaintenanceHandler instance
func NewMaintenanceHandler(service maintenance.Service) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// ListTasks godoc
// @Summary List maintenance tasks
// @Description Get the authenticated user's checklist, seeded from the catalog on first access
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TaskListResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/tasks [get]
func (h *MaintenanceHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	views, err := h.service.ListTasks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tasks := make([]dto.TaskResponse, 0, len(views))
	for _, v := range views {
		tasks = append(tasks, TaskToResponse(v))
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.TaskListResponse{Tasks: tasks, Total: len(tasks)}})
}

// AddTask godoc
// @Summary Add a custom maintenance task
// @Description Add a user-defined task to the checklist
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body dto.AddTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/tasks [post]
func (h *MaintenanceHandler) AddTask(c *gin.Context) {
	var req dto.AddTaskRequest
	validatedModel, exists := c.Get("validated_model")
	if exists {
		if validatedPtr, ok := validatedModel.(*dto.AddTaskRequest); ok {
			req = *validatedPtr
		} else {
			log.Errorf("Invalid model type: %T, expected *dto.AddTaskRequest", validatedModel)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	task, err := h.service.AddTask(c.Request.Context(), maintenance.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    maintenance.Category(req.Category),
		UserID:      userID,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, maintenance.ErrInvalidInput) {
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": TaskToResponse(maintenance.TaskView{Task: *task})})
}

// ToggleTask godoc
// @Summary Toggle a task's completion state
// @Description Completing a task writes a log entry and evaluates awards; un-completing does neither
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param body body dto.ToggleTaskRequest false "Completion details"
// @Success 200 {object} dto.ToggleTaskResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/tasks/{id}/toggle [post]
func (h *MaintenanceHandler) ToggleTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task id is required"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.ToggleTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.service.ToggleTask(c.Request.Context(), taskID, maintenance.ToggleTaskInput{
		UserID:      userID,
		CompletedBy: req.CompletedBy,
		Notes:       req.Notes,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, maintenance.ErrTaskNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	if result.Task.Completed {
		middleware.TaskCompletions.WithLabelValues(string(result.Task.Category)).Inc()
	}

	newAwards := make([]dto.AwardResponse, 0, len(result.NewAwards))
	for _, a := range result.NewAwards {
		middleware.AwardsGranted.WithLabelValues(string(a.Tier)).Inc()
		newAwards = append(newAwards, AwardToResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToggleTaskResponse{
		Task:      TaskToResponse(result.Task),
		NewAwards: newAwards,
	}})
}

// ListLogs godoc
// @Summary List maintenance logs
// @Description Get the authenticated user's completion history, newest first
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param task_id query string false "Filter by task id"
// @Param category query string false "Filter by category"
// @Param from query string false "Start date (RFC 3339)"
// @Param to query string false "End date (RFC 3339)"
// @Success 200 {object} dto.LogListResponse
// @Failure 401 {object} map[string]string
// @Router /api/logs [get]
func (h *MaintenanceHandler) ListLogs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filter, err := h.logFilter(c, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, total, err := h.service.ListLogs(c.Request.Context(), *filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, LogToResponse(l))
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.LogListResponse{Logs: out, Total: total}})
}

// ExportLogs godoc
// @Summary Export maintenance logs
// @Description Download the completion history as CSV or JSON
// @Tags logs
// @Produce text/csv
// @Produce json
// @Security BearerAuth
// @Param format query string false "Export format (csv or json, default csv)"
// @Success 200 {string} string "Exported file"
// @Failure 401 {object} map[string]string
// @Router /api/logs/export [get]
func (h *MaintenanceHandler) ExportLogs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filter, err := h.logFilter(c, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format := c.DefaultQuery("format", "csv")
	data, contentType, err := h.service.ExportLogs(c.Request.Context(), *filter, format)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, maintenance.ErrInvalidInput) {
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("maintenance-logs-%s.%s", time.Now().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func (h *MaintenanceHandler) logFilter(c *gin.Context, userID uuid.UUID) (*maintenance.LogFilter, error) {
	filter := maintenance.LogFilter{UserID: &userID}

	if taskID := c.Query("task_id"); taskID != "" {
		filter.TaskID = &taskID
	}
	if category := c.Query("category"); category != "" {
		if !maintenance.ValidCategory(category) {
			return nil, fmt.Errorf("unknown category %q", category)
		}
		cat := maintenance.Category(category)
		filter.Category = &cat
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %v", err)
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %v", err)
		}
		filter.To = &t
	}

	return &filter, nil
}
