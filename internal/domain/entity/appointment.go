package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// DefaultAppointmentDuration is the slot length in minutes when none is given
const DefaultAppointmentDuration = 30

// Appointment occupies exactly one slot on its doctor's calendar for its
// duration. Appointments are never hard-deleted; cancellation frees the
// slot immediately. At most one non-cancelled appointment may exist per
// (doctor, start time) pair, enforced by a partial unique index.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Date      time.Time         `gorm:"type:timestamp;not null;index" json:"date"`
	Duration  int               `gorm:"not null;default:30" json:"duration"`
	Type      string            `gorm:"type:varchar(100);not null" json:"type"`
	Status    AppointmentStatus `gorm:"type:appointment_status;not null;default:'scheduled';index" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment is still scheduled
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Complete changes the appointment status to completed
func (a *Appointment) Complete() {
	a.Status = AppointmentStatusCompleted
}

// Cancel changes the appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}

// CanTransitionTo reports whether the status change is allowed.
// Scheduled appointments may complete or cancel; terminal states only
// allow re-asserting themselves (idempotent updates).
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.Status == next {
		return true
	}
	return a.Status == AppointmentStatusScheduled &&
		(next == AppointmentStatusCompleted || next == AppointmentStatusCancelled)
}
