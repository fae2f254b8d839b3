package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateAppointmentRequest books one slot. PatientID may be omitted by
// patients (they book for themselves); doctors booking on behalf of a
// patient must supply it.
type CreateAppointmentRequest struct {
	DoctorID    uuid.UUID  `json:"doctor_id" validate:"required"`
	PatientID   *uuid.UUID `json:"patient_id" validate:"omitempty"`
	Date        string     `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string     `json:"time" validate:"required,datetime=15:04"`
	Duration    int        `json:"duration" validate:"omitempty,gt=0"`
	Type        string     `json:"type" validate:"required"`
	Notes       string     `json:"notes" validate:"omitempty"`
	Granularity int        `json:"granularity" validate:"omitempty,gt=0"`
}

type UpdateAppointmentRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Type   string `json:"type" validate:"omitempty"`
	Notes  string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID     `json:"id"`
	PatientID uuid.UUID     `json:"patient_id"`
	DoctorID  uuid.UUID     `json:"doctor_id"`
	Date      time.Time     `json:"date"`
	Duration  int           `json:"duration"`
	Type      string        `json:"type"`
	Status    string        `json:"status"`
	Notes     string        `json:"notes,omitempty"`
	Doctor    *UserResponse `json:"doctor,omitempty"`
	Patient   *UserResponse `json:"patient,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
