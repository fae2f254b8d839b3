package usecase

import (
	"context"
	"errors"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

type DoctorUsecase interface {
	GetDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.UserResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) GetDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	doctors, err := u.userRepo.FindActiveDoctors(u.db.WithContext(ctx), specialization)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.UsersToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.UserResponse, error) {
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	old := *doctor

	if req.FullName != "" {
		doctor.FullName = req.FullName
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.LicenseNumber != "" {
		doctor.LicenseNumber = req.LicenseNumber
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if req.Biography != "" {
		doctor.Biography = req.Biography
	}

	if err := u.userRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	u.auditService.LogChange(tx, &doctorID, entity.AuditActionProfileUpdate, "user", doctorID.String(),
		converter.UserToResponse(&old), converter.UserToResponse(doctor))

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(doctor), nil
}

func (u *doctorUsecase) findDoctor(ctx context.Context, doctorID uuid.UUID) (*entity.User, error) {
	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
