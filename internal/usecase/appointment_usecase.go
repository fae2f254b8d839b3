package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/config"
	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/scheduling"
	"clinic-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentForbidden = errors.New("appointment does not belong to you")
	ErrNotAParticipant      = errors.New("only the patient or the doctor may update an appointment")
	ErrPatientRequired      = errors.New("patient id is required when booking on behalf of a patient")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrBookOwnOnly          = errors.New("you can only book appointments for yourself")
	ErrSlotNotBookable      = errors.New("slot is not available for booking")
	ErrSlotConflict         = errors.New("slot is no longer available")
	ErrInvalidTransition    = errors.New("invalid appointment status transition")
	ErrAppointmentPast      = errors.New("cannot book a past slot")
)

type AppointmentUsecase interface {
	GetByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	clinic          config.ClinicConfig
	userRepo        repository.UserRepository
	windowRepo      repository.AvailabilityRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinic config.ClinicConfig,
	userRepo repository.UserRepository,
	windowRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		clinic:          clinic,
		userRepo:        userRepo,
		windowRepo:      windowRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// GetByDoctor returns a doctor's appointments. Accessible to the doctor
// themselves and to any doctor account.
func (u *appointmentUsecase) GetByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	if err := u.requireSelfOrDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetByPatient returns a patient's appointments. Accessible to the patient
// themselves and to doctors.
func (u *appointmentUsecase) GetByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	if err := u.requireSelfOrDoctor(ctx, patientID); err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Create books one slot.
//
// Flow:
// 1. Resolve the caller and the patient the appointment is for
// 2. Parse and validate the slot start (must align to a slot boundary)
// 3. Resolve the day's slots; the target must classify as available
// 4. Insert inside a transaction; the partial unique index on
//    (doctor_id, date) for non-cancelled rows catches the race where two
//    requests pass step 3 for the same free slot
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	caller, err := u.callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patientID := caller.ID
	if caller.IsDoctor() {
		if req.PatientID == nil {
			return nil, ErrPatientRequired
		}
		patientID = *req.PatientID
	} else if req.PatientID != nil && *req.PatientID != caller.ID {
		return nil, ErrBookOwnOnly
	}

	start, err := parseSlotStart(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if start.Before(time.Now()) {
		return nil, ErrAppointmentPast
	}

	granularity := req.Granularity
	if granularity == 0 {
		granularity = u.clinic.SlotMinutes
	}
	duration := req.Duration
	if duration == 0 {
		duration = entity.DefaultAppointmentDuration
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.userRepo.FindByID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	if patientID != caller.ID {
		patient, err := u.userRepo.FindByID(tx, patientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return nil, err
		}
		if patient == nil || !patient.IsPatient() {
			return nil, ErrPatientNotFound
		}
	}

	if err := u.ensureSlotBookable(tx, req.DoctorID, start, granularity); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      start,
		Duration:  duration,
		Type:      req.Type,
		Status:    entity.AppointmentStatusScheduled,
		Notes:     req.Notes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_slot") {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Log(tx, &caller.ID, entity.AuditActionAppointmentCreate, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      req.DoctorID.String(),
		"date":           start.Format(time.RFC3339),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, start=%s", appointment.ID, req.DoctorID, start)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// Update applies status transitions and note edits. Either participant may
// update; appointments are never hard-deleted, cancellation is a status.
func (u *appointmentUsecase) Update(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	caller, err := u.callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.PatientID != caller.ID && appointment.DoctorID != caller.ID {
		return nil, ErrNotAParticipant
	}

	oldStatus := appointment.Status

	if req.Status != "" {
		next := entity.AppointmentStatus(req.Status)
		if !appointment.CanTransitionTo(next) {
			return nil, ErrInvalidTransition
		}
		appointment.Status = next
	}
	if req.Type != "" {
		appointment.Type = req.Type
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	u.auditService.Log(tx, &caller.ID, entity.AuditActionAppointmentUpdate, entity.JSON{
		"appointment_id": appointmentID.String(),
		"old_status":     string(oldStatus),
		"new_status":     string(appointment.Status),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if oldStatus != appointment.Status {
		u.log.Infof("Appointment %s: %s -> %s", appointmentID, oldStatus, appointment.Status)
	}

	return converter.AppointmentToResponse(appointment), nil
}

// ensureSlotBookable resolves the day and refuses anything but an
// available classification for the requested start.
func (u *appointmentUsecase) ensureSlotBookable(db *gorm.DB, doctorID uuid.UUID, start time.Time, granularity int) error {
	windows, err := u.windowRepo.FindByDoctorAndDay(db, doctorID, int(start.Weekday()))
	if err != nil {
		u.log.Warnf("Failed to find availability windows: %+v", err)
		return err
	}

	appointments, err := u.appointmentRepo.FindActiveByDoctorAndDay(db, doctorID, start)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return err
	}

	operating := scheduling.OperatingWindow{Start: u.clinic.OpeningTime, End: u.clinic.ClosingTime}
	slots, err := scheduling.ResolveDaySlots(operating, granularity, start, windows, appointments)
	if err != nil {
		return err
	}

	clock := start.Format("15:04")
	for _, slot := range slots {
		if slot.Time != clock {
			continue
		}
		switch slot.Status {
		case scheduling.SlotAvailable:
			return nil
		case scheduling.SlotBooked:
			return ErrSlotConflict
		default:
			return ErrSlotNotBookable
		}
	}
	// Start does not align to any slot boundary of the operating window
	return ErrSlotNotBookable
}

func (u *appointmentUsecase) requireSelfOrDoctor(ctx context.Context, subjectID uuid.UUID) error {
	caller, err := u.callerFromContext(ctx)
	if err != nil {
		return err
	}
	if caller.ID == subjectID || caller.IsDoctor() {
		return nil
	}
	return ErrAppointmentForbidden
}

func (u *appointmentUsecase) callerFromContext(ctx context.Context) (*entity.User, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	caller, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find caller %s: %+v", userID, err)
		return nil, err
	}
	if caller == nil {
		return nil, ErrUserNotFound
	}
	return caller, nil
}

func parseSlotStart(date, clock string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	minutes, err := scheduling.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, time.Local), nil
}
