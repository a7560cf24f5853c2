package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles assignable to an account.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is one printer operator account. Accounts are identified by the
// company name + printer serial number + operator name triple, which is what
// the login form collects.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CompanyName  string     `gorm:"size:255;not null;uniqueIndex:idx_user_identity,priority:1" json:"company_name"`
	SerialNumber string     `gorm:"size:64;not null;uniqueIndex:idx_user_identity,priority:2" json:"serial_number"`
	OperatorName string     `gorm:"size:255;not null;uniqueIndex:idx_user_identity,priority:3" json:"operator_name"`
	Email        string     `gorm:"size:255;not null;index" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         string     `gorm:"size:32;not null;default:'customer'" json:"role"`
	Location     string     `gorm:"size:255" json:"location,omitempty"`
	Department   string     `gorm:"size:255" json:"department,omitempty"`
	Timezone     string     `gorm:"size:64;default:'UTC'" json:"timezone"`
	PurchaseDate time.Time  `gorm:"type:date;not null" json:"purchase_date"`
	LastLogin    *time.Time `gorm:"default:null" json:"last_login,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:current_timestamp;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is called before creating a new user record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a user record
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// IsAdmin reports whether the account has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSession is one login/logout record, listed on the admin tracking screen.
type UserSession struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_session_user" json:"user_id"`
	LoginTime  time.Time  `gorm:"not null" json:"login_time"`
	LogoutTime *time.Time `gorm:"default:null" json:"logout_time,omitempty"`
	Timezone   string     `gorm:"size:64" json:"timezone,omitempty"`
	IPAddress  string     `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent  string     `gorm:"size:512" json:"user_agent,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:current_timestamp" json:"created_at"`
}

// TableName specifies the table name for the UserSession model
func (UserSession) TableName() string {
	return "user_sessions"
}

// BeforeCreate is called before creating a new session record
func (s *UserSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	return nil
}

// RegisterInput represents the input for creating an account
type RegisterInput struct {
	CompanyName  string    `json:"company_name"`
	SerialNumber string    `json:"serial_number"`
	OperatorName string    `json:"operator_name"`
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	Location     string    `json:"location"`
	Department   string    `json:"department"`
	Timezone     string    `json:"timezone"`
	PurchaseDate time.Time `json:"purchase_date"`
}

// LoginInput represents the credentials collected by the login form
type LoginInput struct {
	CompanyName  string `json:"company_name"`
	SerialNumber string `json:"serial_number"`
	OperatorName string `json:"operator_name"`
	Password     string `json:"password"`
	Timezone     string `json:"timezone"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}

// UpdateProfileInput represents the fields an account owner may change
type UpdateProfileInput struct {
	Email        *string    `json:"email,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Department   *string    `json:"department,omitempty"`
	Timezone     *string    `json:"timezone,omitempty"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
}
