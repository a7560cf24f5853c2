package awards

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tier is the prestige level of an award.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// RequirementType enumerates the award requirement kinds.
type RequirementType string

const (
	ReqTasksCompleted RequirementType = "tasks_completed"
	ReqStreakDays     RequirementType = "streak_days"
	ReqCategoryMaster RequirementType = "category_master"
)

// Requirement is the machine-checkable condition for granting an award.
// Exactly one interpretation applies per Type: TasksCompleted and StreakDays
// read Value, CategoryMaster reads Category.
type Requirement struct {
	Type     RequirementType `json:"type"`
	Value    int             `json:"value,omitempty"`
	Category string          `json:"category,omitempty"`
}

// Award is a static catalog entry. The catalog is immutable and loaded once.
type Award struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Points      int         `json:"points"`
	Tier        Tier        `json:"tier"`
	Requirement Requirement `json:"requirement"`
}

// UserAward records one earned award. At most one row per (user, award),
// enforced by the unique index and the evaluator's earned guard.
type UserAward struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_award,priority:1" json:"user_id"`
	AwardID   string    `gorm:"size:64;not null;uniqueIndex:idx_user_award,priority:2" json:"award_id"`
	EarnedAt  time.Time `gorm:"not null" json:"earned_at"`
	TaskID    string    `gorm:"size:64" json:"task_id,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:current_timestamp" json:"created_at"`
}

// TableName specifies the table name for the UserAward model
func (UserAward) TableName() string {
	return "user_awards"
}

// BeforeCreate is called before creating a new user award record
func (ua *UserAward) BeforeCreate(tx *gorm.DB) error {
	if ua.ID == uuid.Nil {
		ua.ID = uuid.New()
	}
	ua.CreatedAt = time.Now()
	return nil
}

// UserStreak tracks consecutive days with at least one task completion.
// Bumped at most once per distinct calendar day.
type UserStreak struct {
	UserID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	CurrentStreak int        `gorm:"default:0;not null" json:"current_streak"`
	LongestStreak int        `gorm:"default:0;not null" json:"longest_streak"`
	LastActiveDay *time.Time `gorm:"default:null" json:"last_active_day,omitempty"`
	UpdatedAt     time.Time  `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the UserStreak model
func (UserStreak) TableName() string {
	return "user_streaks"
}

// TaskSnapshot is the slice of task state the evaluator needs. The caller
// passes the pre-toggle snapshot of the user's full task list.
type TaskSnapshot struct {
	ID        string
	Category  string
	Completed bool
}
