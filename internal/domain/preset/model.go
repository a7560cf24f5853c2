package preset

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskPreset is an admin-defined subset of the task catalog. The task id
// list is stored as a JSONB array of catalog slugs.
type TaskPreset struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string         `gorm:"size:255;not null;unique" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	TaskIDs     datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"task_ids"`
	CreatedAt   time.Time      `gorm:"not null;default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the TaskPreset model
func (TaskPreset) TableName() string {
	return "task_presets"
}

// BeforeCreate is called before creating a new preset record
func (p *TaskPreset) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a preset record
func (p *TaskPreset) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}

// TaskIDList decodes the JSONB task id array.
func (p *TaskPreset) TaskIDList() ([]string, error) {
	var ids []string
	if len(p.TaskIDs) == 0 {
		return ids, nil
	}
	err := json.Unmarshal(p.TaskIDs, &ids)
	return ids, err
}

// PresetAssignment binds a preset to a printer identified by the owner's
// email and serial number. The preset name is snapshotted so the admin
// screen survives preset renames.
type PresetAssignment struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserEmail    string    `gorm:"size:255;not null;uniqueIndex:idx_assignment_target,priority:1" json:"user_email"`
	SerialNumber string    `gorm:"size:64;not null;uniqueIndex:idx_assignment_target,priority:2" json:"serial_number"`
	PresetID     uuid.UUID `gorm:"type:uuid;not null" json:"preset_id"`
	PresetName   string    `gorm:"size:255;not null" json:"preset_name"`
	AssignedAt   time.Time `gorm:"not null" json:"assigned_at"`
	CreatedAt    time.Time `gorm:"not null;default:current_timestamp" json:"created_at"`
}

// TableName specifies the table name for the PresetAssignment model
func (PresetAssignment) TableName() string {
	return "preset_assignments"
}

// BeforeCreate is called before creating a new assignment record
func (a *PresetAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	a.CreatedAt = time.Now()
	return nil
}

// CreatePresetInput represents the input for creating a preset
type CreatePresetInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TaskIDs     []string `json:"task_ids"`
}

// UpdatePresetInput represents the input for updating a preset
type UpdatePresetInput struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	TaskIDs     *[]string `json:"task_ids,omitempty"`
}

// AssignInput represents the input for assigning a preset to a printer
type AssignInput struct {
	UserEmail    string    `json:"user_email"`
	SerialNumber string    `json:"serial_number"`
	PresetID     uuid.UUID `json:"preset_id"`
}
