package dto

import (
	"github.com/shopspring/decimal"
)

// Request DTOs

type UpdateDoctorProfileRequest struct {
	FullName        string           `json:"full_name" validate:"omitempty,min=2"`
	Phone           string           `json:"phone" validate:"omitempty,min=7,max=20"`
	Specialization  string           `json:"specialization" validate:"omitempty"`
	LicenseNumber   string           `json:"license_number" validate:"omitempty"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee" validate:"omitempty"`
	Biography       string           `json:"biography" validate:"omitempty"`
}

// Response DTOs

type DoctorListResponse struct {
	Doctors []UserResponse `json:"doctors"`
	Total   int            `json:"total"`
}
