package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/config"
	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/scheduling"
	"clinic-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrWindowNotFound    = errors.New("availability window not found")
	ErrWindowNotOwned    = errors.New("availability window does not belong to you")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
)

type AvailabilityUsecase interface {
	GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error)
	GetDaySlots(ctx context.Context, doctorID uuid.UUID, date string, granularity int) (*dto.DaySlotsResponse, error)
	CreateWindow(ctx context.Context, doctorID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	UpdateWindow(ctx context.Context, doctorID uuid.UUID, windowID int, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	SaveDaySlots(ctx context.Context, doctorID uuid.UUID, req *dto.SaveDaySlotsRequest) (*dto.DaySlotsResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	clinic          config.ClinicConfig
	userRepo        repository.UserRepository
	windowRepo      repository.AvailabilityRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinic config.ClinicConfig,
	userRepo repository.UserRepository,
	windowRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		clinic:          clinic,
		userRepo:        userRepo,
		windowRepo:      windowRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *availabilityUsecase) GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	if err := u.ensureDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	windows, err := u.windowRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find availability windows: %+v", err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Windows: converter.AvailabilitiesToResponses(windows),
		Total:   len(windows),
	}, nil
}

// GetDaySlots resolves the bookable slots for one doctor and date. A zero
// granularity falls back to the clinic default.
func (u *availabilityUsecase) GetDaySlots(ctx context.Context, doctorID uuid.UUID, date string, granularity int) (*dto.DaySlotsResponse, error) {
	if err := u.ensureDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if granularity == 0 {
		granularity = u.clinic.SlotMinutes
	}

	slots, err := u.resolveDay(ctx, u.db.WithContext(ctx), doctorID, day, granularity)
	if err != nil {
		return nil, err
	}

	return &dto.DaySlotsResponse{
		DoctorID:    doctorID,
		Date:        date,
		Granularity: granularity,
		Slots:       slots,
	}, nil
}

func (u *availabilityUsecase) CreateWindow(ctx context.Context, doctorID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	window := &entity.AvailabilityWindow{
		DoctorID:    doctorID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: isAvailable,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.windowRepo.Create(tx, window); err != nil {
		u.log.Warnf("Failed to create availability window: %+v", err)
		return nil, err
	}

	u.auditService.Log(tx, &doctorID, entity.AuditActionAvailabilityCreate, entity.JSON{
		"window_id":   window.ID,
		"day_of_week": window.DayOfWeek,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(window), nil
}

func (u *availabilityUsecase) UpdateWindow(ctx context.Context, doctorID uuid.UUID, windowID int, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	window, err := u.windowRepo.FindByID(tx, windowID)
	if err != nil {
		u.log.Warnf("Failed to find availability window: %+v", err)
		return nil, err
	}
	if window == nil {
		return nil, ErrWindowNotFound
	}
	if window.DoctorID != doctorID {
		return nil, ErrWindowNotOwned
	}

	old := *window

	if req.StartTime != "" {
		window.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		window.EndTime = req.EndTime
	}
	if err := validateTimeRange(window.StartTime, window.EndTime); err != nil {
		return nil, err
	}
	if req.IsAvailable != nil {
		window.IsAvailable = *req.IsAvailable
	}

	if err := u.windowRepo.Update(tx, window); err != nil {
		u.log.Warnf("Failed to update availability window: %+v", err)
		return nil, err
	}

	u.auditService.LogChange(tx, &doctorID, entity.AuditActionAvailabilityUpdate, "availability_window",
		"", converter.AvailabilityToResponse(&old), converter.AvailabilityToResponse(window))

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(window), nil
}

// SaveDaySlots runs the toggle-then-save workflow: resolve the date's
// slots, flip the toggled ones (booked slots are untouched), and persist
// the result as the weekday's recurring windows. The whole swap happens in
// one transaction so readers never see a half-replaced day.
func (u *availabilityUsecase) SaveDaySlots(ctx context.Context, doctorID uuid.UUID, req *dto.SaveDaySlotsRequest) (*dto.DaySlotsResponse, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	granularity := req.Granularity
	if granularity == 0 {
		granularity = u.clinic.SlotMinutes
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slots, err := u.resolveDay(ctx, tx, doctorID, day, granularity)
	if err != nil {
		return nil, err
	}

	for _, clock := range req.Toggles {
		scheduling.ApplyToggle(slots, clock)
	}

	dayOfWeek := int(day.Weekday())
	windows := scheduling.WindowsForDay(doctorID, dayOfWeek, slots, granularity)

	if err := u.windowRepo.ReplaceDay(tx, doctorID, dayOfWeek, windows); err != nil {
		u.log.Warnf("Failed to replace availability for weekday %d: %+v", dayOfWeek, err)
		return nil, err
	}

	u.auditService.Log(tx, &doctorID, entity.AuditActionAvailabilitySave, entity.JSON{
		"date":        req.Date,
		"day_of_week": dayOfWeek,
		"toggles":     len(req.Toggles),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Availability saved: doctor=%s, weekday=%d, windows=%d", doctorID, dayOfWeek, len(windows))

	return &dto.DaySlotsResponse{
		DoctorID:    doctorID,
		Date:        req.Date,
		Granularity: granularity,
		Slots:       slots,
	}, nil
}

func (u *availabilityUsecase) resolveDay(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, day time.Time, granularity int) ([]scheduling.Slot, error) {
	windows, err := u.windowRepo.FindByDoctorAndDay(db, doctorID, int(day.Weekday()))
	if err != nil {
		u.log.Warnf("Failed to find availability windows: %+v", err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindActiveByDoctorAndDay(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	operating := scheduling.OperatingWindow{Start: u.clinic.OpeningTime, End: u.clinic.ClosingTime}
	return scheduling.ResolveDaySlots(operating, granularity, day, windows, appointments)
}

func (u *availabilityUsecase) ensureDoctor(ctx context.Context, doctorID uuid.UUID) error {
	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return ErrDoctorNotFound
	}
	return nil
}

func validateTimeRange(start, end string) error {
	s, err := scheduling.ParseClock(start)
	if err != nil {
		return err
	}
	e, err := scheduling.ParseClock(end)
	if err != nil {
		return err
	}
	if s >= e {
		return ErrInvalidTimeRange
	}
	return nil
}
