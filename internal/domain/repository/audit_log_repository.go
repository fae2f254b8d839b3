package repository

import (
	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.AuditLog, error)
}
