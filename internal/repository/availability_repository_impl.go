package repository

import (
	"errors"

	"clinic-appointment-api/internal/domain/entity"
	domainRepo "clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) Create(db *gorm.DB, window *entity.AvailabilityWindow) error {
	return db.Create(window).Error
}

func (r *availabilityRepository) FindByID(db *gorm.DB, id int) (*entity.AvailabilityWindow, error) {
	var window entity.AvailabilityWindow
	err := db.Where("id = ?", id).First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &window, nil
}

func (r *availabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityWindow, error) {
	var windows []entity.AvailabilityWindow
	err := db.Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *availabilityRepository) FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) ([]entity.AvailabilityWindow, error) {
	var windows []entity.AvailabilityWindow
	err := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, dayOfWeek).
		Order("start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *availabilityRepository) Update(db *gorm.DB, window *entity.AvailabilityWindow) error {
	return db.Omit("Doctor").Save(window).Error
}

// ReplaceDay swaps out all of a doctor's windows for one weekday. Callers
// are expected to run this inside a transaction.
func (r *availabilityRepository) ReplaceDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int, windows []entity.AvailabilityWindow) error {
	err := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, dayOfWeek).
		Delete(&entity.AvailabilityWindow{}).Error
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		return nil
	}
	return db.Create(&windows).Error
}
