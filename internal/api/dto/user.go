package dto

import "time"

// RegisterRequest is the payload for account creation
type RegisterRequest struct {
	CompanyName  string `json:"company_name" validate:"required,not_empty,max=255"`
	SerialNumber string `json:"serial_number" validate:"required,not_empty,max=64"`
	OperatorName string `json:"operator_name" validate:"required,not_empty,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Location     string `json:"location" validate:"max=255"`
	Department   string `json:"department" validate:"max=255"`
	Timezone     string `json:"timezone" validate:"max=64"`
	PurchaseDate string `json:"purchase_date" validate:"required"`
}

// LoginRequest is the payload for the login form
type LoginRequest struct {
	CompanyName  string `json:"company_name" validate:"required,not_empty"`
	SerialNumber string `json:"serial_number" validate:"required,not_empty"`
	OperatorName string `json:"operator_name" validate:"required,not_empty"`
	Password     string `json:"password" validate:"required"`
	Timezone     string `json:"timezone" validate:"max=64"`
}

// UpdateProfileRequest is the payload for PUT /api/users/me
type UpdateProfileRequest struct {
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Department   *string `json:"department,omitempty" validate:"omitempty,max=255"`
	Timezone     *string `json:"timezone,omitempty" validate:"omitempty,max=64"`
	PurchaseDate *string `json:"purchase_date,omitempty"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID           string     `json:"id"`
	CompanyName  string     `json:"company_name"`
	SerialNumber string     `json:"serial_number"`
	OperatorName string     `json:"operator_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Location     string     `json:"location,omitempty"`
	Department   string     `json:"department,omitempty"`
	Timezone     string     `json:"timezone"`
	PurchaseDate string     `json:"purchase_date"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// LoginResponse is the body of POST /api/users/login
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserListResponse is the body of the admin user listing
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

// SessionResponse is one login/logout record
type SessionResponse struct {
	ID         string     `json:"id"`
	LoginTime  time.Time  `json:"login_time"`
	LogoutTime *time.Time `json:"logout_time,omitempty"`
	Timezone   string     `json:"timezone,omitempty"`
	IPAddress  string     `json:"ip_address,omitempty"`
	UserAgent  string     `json:"user_agent,omitempty"`
}

// SessionListResponse is the body of the admin session listing
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}
