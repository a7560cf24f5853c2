package dto

import "time"

// CreatePresetRequest is the payload for creating a task preset
type CreatePresetRequest struct {
	Name        string   `json:"name" validate:"required,not_empty,max=255"`
	Description string   `json:"description" validate:"max=2000"`
	TaskIDs     []string `json:"task_ids" validate:"required"`
}

// UpdatePresetRequest is the payload for updating a task preset
type UpdatePresetRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,not_empty,max=255"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	TaskIDs     *[]string `json:"task_ids,omitempty"`
}

// PresetResponse is the public view of a task preset
type PresetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TaskIDs     []string  `json:"task_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PresetListResponse is the body of GET /api/presets
type PresetListResponse struct {
	Presets []PresetResponse `json:"presets"`
	Total   int              `json:"total"`
}

// AssignPresetRequest is the payload for binding a preset to a printer
type AssignPresetRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	SerialNumber string `json:"serial_number" validate:"required,not_empty,max=64"`
	PresetID     string `json:"preset_id" validate:"required,uuid"`
}

// AssignmentResponse is one preset assignment record
type AssignmentResponse struct {
	ID           string    `json:"id"`
	UserEmail    string    `json:"user_email"`
	SerialNumber string    `json:"serial_number"`
	PresetID     string    `json:"preset_id"`
	PresetName   string    `json:"preset_name"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// AssignmentListResponse is the body of GET /api/presets/assignments
type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Total       int                  `json:"total"`
}
