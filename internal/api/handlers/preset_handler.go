package handlers

import (
	"errors"
	"net/http"

	"github.com/cobraflex/printercare/internal/api/dto"
	"github.com/cobraflex/printercare/internal/domain/preset"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PresetHandler handles HTTP requests for task presets and their assignments
type PresetHandler struct {
	service preset.Service
}

// NewPresetHandler creates a new PresetHandler instance
func NewPresetHandler(service preset.Service) *PresetHandler {
	return &PresetHandler{service: service}
}

// CreatePreset godoc
// @Summary Create a task preset
// @Description Create a named subset of catalog task ids (admin only)
// @Tags presets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preset body dto.CreatePresetRequest true "Preset creation request"
// @Success 201 {object} dto.PresetResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/presets [post]
func (h *PresetHandler) CreatePreset(c *gin.Context) {
	var req dto.CreatePresetRequest
	validatedModel, exists := c.Get("validated_model")
	if exists {
		if validatedPtr, ok := validatedModel.(*dto.CreatePresetRequest); ok {
			req = *validatedPtr
		} else {
			log.Errorf("Invalid model type: %T, expected *dto.CreatePresetRequest", validatedModel)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	created, err := h.service.CreatePreset(c.Request.Context(), preset.CreatePresetInput{
		Name:        req.Name,
		Description: req.Description,
		TaskIDs:     req.TaskIDs,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp, err := PresetToResponse(created)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// ListPresets godoc
// @Summary List task presets
// @Tags presets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PresetListResponse
// @Failure 403 {object} map[string]string
// @Router /api/presets [get]
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets, err := h.service.ListPresets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.PresetResponse, 0, len(presets))
	for i := range presets {
		resp, err := PresetToResponse(&presets[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.PresetListResponse{Presets: out, Total: len(out)}})
}

// UpdatePreset godoc
// @Summary Update a task preset
// @Tags presets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preset ID" format(uuid)
// @Param preset body dto.UpdatePresetRequest true "Preset update request"
// @Success 200 {object} dto.PresetResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/presets/{id} [put]
func (h *PresetHandler) UpdatePreset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preset ID"})
		return
	}

	var req dto.UpdatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdatePreset(c.Request.Context(), id, preset.UpdatePresetInput{
		Name:        req.Name,
		Description: req.Description,
		TaskIDs:     req.TaskIDs,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, preset.ErrPresetNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	resp, err := PresetToResponse(updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// DeletePreset godoc
// @Summary Delete a task preset
// @Description Printers assigned the deleted preset fall back to the full catalog
// @Tags presets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preset ID" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/presets/{id} [delete]
func (h *PresetHandler) DeletePreset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preset ID"})
		return
	}

	if err := h.service.DeletePreset(c.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, preset.ErrPresetNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "preset deleted"})
}

// Assign godoc
// @Summary Assign a preset to a printer
// @Description Bind a preset to an email and serial number pair; seeds that printer's checklist
// @Tags presets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body dto.AssignPresetRequest true "Assignment request"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/presets/assignments [post]
func (h *PresetHandler) Assign(c *gin.Context) {
	var req dto.AssignPresetRequest
	validatedModel, exists := c.Get("validated_model")
	if exists {
		if validatedPtr, ok := validatedModel.(*dto.AssignPresetRequest); ok {
			req = *validatedPtr
		} else {
			log.Errorf("Invalid model type: %T, expected *dto.AssignPresetRequest", validatedModel)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model type from validation"})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	presetID, err := uuid.Parse(req.PresetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preset ID"})
		return
	}

	assignment, err := h.service.Assign(c.Request.Context(), preset.AssignInput{
		UserEmail:    req.UserEmail,
		SerialNumber: req.SerialNumber,
		PresetID:     presetID,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, preset.ErrPresetNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, preset.ErrAlreadyAssigned):
			statusCode = http.StatusConflict
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": AssignmentToResponse(*assignment)})
}

// ListAssignments godoc
// @Summary List preset assignments
// @Tags presets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AssignmentListResponse
// @Failure 403 {object} map[string]string
// @Router /api/presets/assignments [get]
func (h *PresetHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.service.ListAssignments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, AssignmentToResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AssignmentListResponse{Assignments: out, Total: len(out)}})
}

// Unassign godoc
// @Summary Remove a preset assignment
// @Tags presets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/presets/assignments/{id} [delete]
func (h *PresetHandler) Unassign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment ID"})
		return
	}

	if err := h.service.Unassign(c.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, preset.ErrAssignmentNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "assignment removed"})
}
