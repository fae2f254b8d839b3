package entity

import (
	"github.com/google/uuid"
)

// AvailabilityWindow is a recurring weekly time range during which a doctor
// accepts bookings. DayOfWeek is 0-6, Sunday origin. Times are wall-clock
// HH:MM strings; no timezone is embedded. Windows may overlap: a slot is
// offerable when any covering window has IsAvailable=true, unless booked.
// A window with IsAvailable=false explicitly marks its range unavailable.
type AvailabilityWindow struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_windows_doctor_day" json:"doctor_id"`
	DayOfWeek int       `gorm:"not null;index:idx_windows_doctor_day" json:"day_of_week"`
	StartTime string    `gorm:"type:time;not null" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
	IsAvailable bool    `gorm:"not null;default:true" json:"is_available"`

	// Relationships
	Doctor User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilityWindow) TableName() string {
	return "availability_windows"
}
