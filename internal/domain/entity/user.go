package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRole represents a user's role in the system
type UserRole string

const (
	RoleDoctor  UserRole = "doctor"
	RolePatient UserRole = "patient"
)

// User represents an account, either a doctor or a patient.
// Doctor-specific columns are nullable and only populated for doctors.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`
	FullName string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Role     UserRole  `gorm:"type:user_role;not null;index" json:"role"`
	Phone    string    `gorm:"type:varchar(20)" json:"phone,omitempty"`

	// Doctor-only fields
	Specialization  string          `gorm:"type:varchar(100);index" json:"specialization,omitempty"`
	LicenseNumber   string          `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2)" json:"consultation_fee,omitempty"`
	Biography       string          `gorm:"type:text" json:"biography,omitempty"`

	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	AvailabilityWindows []AvailabilityWindow `gorm:"foreignKey:DoctorID" json:"availability_windows,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsDoctor checks if the user holds the doctor role
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

// IsPatient checks if the user holds the patient role
func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}
