package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/carebook/backend/internal/actor"
	"github.com/carebook/backend/internal/dto"
	"github.com/carebook/backend/internal/models"
	"github.com/carebook/backend/internal/schedule"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("Appointment not found")
	ErrDoctorProfileMissing = errors.New("Doctor profile not found")
	ErrSlotTaken            = errors.New("This appointment slot is already booked")
	ErrOutsideHours         = errors.New("Appointment time is outside doctor's working hours")
	ErrNotParticipant       = errors.New("Not authorized to access this appointment")
	ErrNotUpdateAuthorized  = errors.New("Not authorized to update this appointment")
	ErrPatientsOnlyCancel   = errors.New("Patients can only cancel appointments")
	ErrInvalidStatus        = errors.New("Invalid status")
	ErrInvalidDate          = errors.New("Invalid appointment date")
)

// UnavailableDayError rejects a booking on a weekday the doctor does not work.
type UnavailableDayError struct {
	Day models.Weekday
}

func (e *UnavailableDayError) Error() string {
	return fmt.Sprintf("Doctor is not available on %s", e.Day)
}

// InvalidTransitionError rejects an illegal status change.
type InvalidTransitionError struct {
	From, To models.AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	if e.From.Terminal() {
		return fmt.Sprintf("Appointment is already %s", e.From)
	}
	return fmt.Sprintf("Cannot change appointment status from %s to %s", e.From, e.To)
}

type AppointmentService struct {
	db *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// Book runs the booking pipeline in fixed order: doctor exists, weekday
// available, time within the working window, slot free. On success exactly
// one pending appointment is created with the doctor's fee snapshotted onto
// it; on any failure nothing is written.
func (s *AppointmentService) Book(act actor.Context, req *dto.BookAppointmentRequest) (*models.Appointment, error) {
	var doctor models.Doctor
	if err := s.db.Preload("Timings").First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	window, ok := schedule.Resolve(doctor.Timings, date)
	if !ok {
		return nil, &UnavailableDayError{Day: models.WeekdayOf(date)}
	}

	at, err := schedule.ParseTimeOfDay(req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	if !window.Contains(at) {
		return nil, ErrOutsideHours
	}

	appointment := models.Appointment{
		ID:              uuid.New(),
		DoctorID:        doctor.ID,
		PatientID:       act.ID,
		AppointmentDate: date,
		AppointmentTime: at.String(),
		Reason:          req.Reason,
		Status:          models.StatusPending,
		Fees:            doctor.Fees,
		IsPaid:          req.IsPaid,
		PaymentMethod:   req.PaymentMethod,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if taken, err := s.hasConflict(tx, doctor.ID, date, at.String()); err != nil {
			return err
		} else if taken {
			return ErrSlotTaken
		}

		if err := tx.Create(&appointment).Error; err != nil {
			// A concurrent booking can slip between the check and the
			// insert; the partial unique slot index turns that race into a
			// duplicate-key error here.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.load(appointment.ID)
}

// hasConflict reports whether a non-cancelled appointment already occupies
// the exact (doctor, date, time) slot. Cancelled appointments free the slot.
func (s *AppointmentService) hasConflict(tx *gorm.DB, doctorID uuid.UUID, date time.Time, at string) (bool, error) {
	var count int64
	err := tx.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ?",
			doctorID, date, at, models.StatusCancelled).
		Count(&count).Error
	return count > 0, err
}

// List returns the caller's appointments: a patient sees their own bookings,
// a doctor the bookings against their profile, an admin everything.
func (s *AppointmentService) List(act actor.Context, q dto.AppointmentListQuery) ([]models.Appointment, error) {
	tx := s.db.Model(&models.Appointment{})

	switch act.Role {
	case models.RolePatient:
		tx = tx.Where("patient_id = ?", act.ID)
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := s.db.First(&doctor, "user_id = ?", act.ID).Error; err != nil {
			return nil, ErrDoctorProfileMissing
		}
		tx = tx.Where("doctor_id = ?", doctor.ID)
	case models.RoleAdmin:
		// unscoped
	default:
		return nil, ErrNotParticipant
	}

	if q.Date != "" {
		date, err := parseDate(q.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		tx = tx.Where("appointment_date >= ? AND appointment_date < ?", date, date.AddDate(0, 0, 1))
	}
	if q.Status != "" {
		status := models.AppointmentStatus(q.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		tx = tx.Where("status = ?", status)
	}

	var appointments []models.Appointment
	err := tx.Preload("Doctor").Preload("Doctor.User").Preload("Patient").
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	return appointments, nil
}

// Get returns one appointment if the caller participates in it (or is an
// admin).
func (s *AppointmentService) Get(act actor.Context, id uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if !s.mayAccess(act, appointment) {
		return nil, ErrNotParticipant
	}

	return appointment, nil
}

// UpdateStatus is the status transition guard. Authorization is checked
// before the state machine: the caller must be the appointment's patient,
// the doctor owning its profile, or an admin. Patients may only cancel.
// Legal transitions: pending→confirmed (stamps ConfirmedAt),
// confirmed→completed, and any non-terminal state→cancelled. Cancelled and
// completed are terminal.
func (s *AppointmentService) UpdateStatus(act actor.Context, id uuid.UUID, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	appointment, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if !s.mayAccess(act, appointment) {
		return nil, ErrNotUpdateAuthorized
	}

	if act.IsPatient() && status != models.StatusCancelled {
		return nil, ErrPatientsOnlyCancel
	}

	if err := checkTransition(appointment.Status, status); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if status == models.StatusConfirmed {
		now := time.Now().UTC()
		updates["confirmed_at"] = &now
	}

	if err := s.db.Model(appointment).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.load(id)
}

func checkTransition(from, to models.AppointmentStatus) error {
	if from.Terminal() {
		return &InvalidTransitionError{From: from, To: to}
	}
	switch {
	case to == models.StatusCancelled:
		return nil
	case from == models.StatusPending && to == models.StatusConfirmed:
		return nil
	case from == models.StatusConfirmed && to == models.StatusCompleted:
		return nil
	}
	return &InvalidTransitionError{From: from, To: to}
}

// mayAccess implements the participant rule shared by reads and updates.
func (s *AppointmentService) mayAccess(act actor.Context, appointment *models.Appointment) bool {
	switch act.Role {
	case models.RolePatient:
		return appointment.PatientID == act.ID
	case models.RoleDoctor:
		return appointment.Doctor.UserID == act.ID
	case models.RoleAdmin:
		return true
	}
	return false
}

func (s *AppointmentService) load(id uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.Preload("Doctor").Preload("Doctor.User").Preload("Patient").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appointment, nil
}
