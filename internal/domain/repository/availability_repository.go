package repository

import (
	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	Create(db *gorm.DB, window *entity.AvailabilityWindow) error
	FindByID(db *gorm.DB, id int) (*entity.AvailabilityWindow, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityWindow, error)
	FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) ([]entity.AvailabilityWindow, error)
	Update(db *gorm.DB, window *entity.AvailabilityWindow) error
	ReplaceDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int, windows []entity.AvailabilityWindow) error
}
