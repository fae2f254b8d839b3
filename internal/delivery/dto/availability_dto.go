package dto

import (
	"clinic-appointment-api/internal/scheduling"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAvailabilityRequest struct {
	DayOfWeek   int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	IsAvailable *bool  `json:"is_available" validate:"omitempty"`
}

type UpdateAvailabilityRequest struct {
	StartTime   string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"omitempty,datetime=15:04"`
	IsAvailable *bool  `json:"is_available" validate:"omitempty"`
}

// SaveDaySlotsRequest carries the toggle-then-save workflow: the doctor
// picks a date, toggles slot times, and saves. Persistence is per
// day-of-week, so the save applies to all future occurrences of that
// weekday.
type SaveDaySlotsRequest struct {
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Granularity int      `json:"granularity" validate:"omitempty,gt=0"`
	Toggles     []string `json:"toggles" validate:"required,dive,datetime=15:04"`
}

// Response DTOs

type AvailabilityResponse struct {
	ID          int       `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

type AvailabilityListResponse struct {
	Windows []AvailabilityResponse `json:"windows"`
	Total   int                    `json:"total"`
}

type DaySlotsResponse struct {
	DoctorID    uuid.UUID         `json:"doctor_id"`
	Date        string            `json:"date"`
	Granularity int               `json:"granularity"`
	Slots       []scheduling.Slot `json:"slots"`
}
