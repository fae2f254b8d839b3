package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterPatientRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=20"`
}

type RegisterDoctorRequest struct {
	Username        string          `json:"username" validate:"required,min=3,max=100"`
	Email           string          `json:"email" validate:"required,email"`
	Password        string          `json:"password" validate:"required,min=6"`
	FullName        string          `json:"full_name" validate:"required,min=2"`
	Phone           string          `json:"phone" validate:"omitempty,min=7,max=20"`
	Specialization  string          `json:"specialization" validate:"required"`
	LicenseNumber   string          `json:"license_number" validate:"required"`
	ConsultationFee decimal.Decimal `json:"consultation_fee" validate:"omitempty"`
	Biography       string          `json:"biography" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID              uuid.UUID        `json:"id"`
	Username        string           `json:"username"`
	Email           string           `json:"email"`
	FullName        string           `json:"full_name"`
	Role            string           `json:"role"`
	Phone           string           `json:"phone,omitempty"`
	Specialization  string           `json:"specialization,omitempty"`
	LicenseNumber   string           `json:"license_number,omitempty"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee,omitempty"`
	Biography       string           `json:"biography,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
