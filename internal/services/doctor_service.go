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
	ErrDoctorNotFound      = errors.New("Doctor not found")
	ErrDoctorProfileExists = errors.New("Doctor profile already exists for this user")
	ErrNotProfileOwner     = errors.New("Not authorized to update this profile")
)

type DoctorService struct {
	db *gorm.DB
}

func NewDoctorService(db *gorm.DB) *DoctorService {
	return &DoctorService{db: db}
}

// List returns a page of doctor profiles with their owning users preloaded.
// Search matches the owning user's name case-insensitively.
func (s *DoctorService) List(q dto.DoctorListQuery) ([]models.Doctor, int64, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	tx := s.db.Model(&models.Doctor{}).
		Joins("JOIN users ON users.id = doctors.user_id AND users.deleted_at IS NULL")

	if q.Specialization != "" {
		tx = tx.Where("doctors.specialization = ?", q.Specialization)
	}
	if q.Search != "" {
		tx = tx.Where("LOWER(users.name) LIKE LOWER(?)", "%"+q.Search+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []models.Doctor
	err := tx.Preload("User").Preload("Timings").
		Offset((page - 1) * limit).Limit(limit).
		Find(&doctors).Error
	if err != nil {
		return nil, 0, err
	}

	return doctors, total, nil
}

func (s *DoctorService) Get(id uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	err := s.db.Preload("User").Preload("Timings").First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

// CreateProfile creates the single doctor profile owned by the acting user.
func (s *DoctorService) CreateProfile(act actor.Context, req *dto.CreateDoctorRequest) (*models.Doctor, error) {
	if req.Specialization == "" {
		return nil, errors.New("specialization is required")
	}
	if req.Experience < 0 || req.Fees < 0 {
		return nil, errors.New("experience and fees must be non-negative")
	}

	var existing models.Doctor
	if err := s.db.First(&existing, "user_id = ?", act.ID).Error; err == nil {
		return nil, ErrDoctorProfileExists
	}

	timings, err := buildTimings(req.Timings)
	if err != nil {
		return nil, err
	}

	doctor := models.Doctor{
		ID:             uuid.New(),
		UserID:         act.ID,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Fees:           req.Fees,
		Address:        req.Address,
		Bio:            req.Bio,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doctor).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDoctorProfileExists
			}
			return err
		}
		for i := range timings {
			timings[i].DoctorID = doctor.ID
		}
		if len(timings) > 0 {
			if err := tx.Create(&timings).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	doctor.Timings = timings
	return &doctor, nil
}

// Update applies a partial profile update. Only the owning doctor or an
// admin may update a profile. Replacing timings swaps the whole template.
func (s *DoctorService) Update(act actor.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	if doctor.UserID != act.ID && !act.IsAdmin() {
		return nil, ErrNotProfileOwner
	}

	if req.Specialization != nil && *req.Specialization != "" {
		doctor.Specialization = *req.Specialization
	}
	if req.Experience != nil {
		if *req.Experience < 0 {
			return nil, errors.New("experience must be non-negative")
		}
		doctor.Experience = *req.Experience
	}
	if req.Fees != nil {
		if *req.Fees < 0 {
			return nil, errors.New("fees must be non-negative")
		}
		doctor.Fees = *req.Fees
	}
	if req.Address != nil {
		doctor.Address = *req.Address
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}

	var newTimings []models.DoctorTiming
	if req.Timings != nil {
		var err error
		newTimings, err = buildTimings(*req.Timings)
		if err != nil {
			return nil, err
		}
		for i := range newTimings {
			newTimings[i].DoctorID = doctor.ID
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&doctor).Error; err != nil {
			return err
		}
		if req.Timings != nil {
			if err := tx.Where("doctor_id = ?", doctor.ID).Delete(&models.DoctorTiming{}).Error; err != nil {
				return err
			}
			if len(newTimings) > 0 {
				if err := tx.Create(&newTimings).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(doctor.ID)
}

// Delete removes a doctor profile. Route middleware restricts this to
// admins; the doctor's open appointments are cancelled first so their
// patients are not left with orphaned bookings.
func (s *DoctorService) Delete(id uuid.UUID) error {
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDoctorNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND status IN ?", doctor.ID,
				[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
			Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}
		if err := tx.Where("doctor_id = ?", doctor.ID).Delete(&models.DoctorTiming{}).Error; err != nil {
			return err
		}
		return tx.Delete(&doctor).Error
	})
}

// buildTimings validates a weekly template: known weekdays, parsable
// zero-padded times, at most one entry per weekday, start before end.
func buildTimings(inputs []dto.TimingInput) ([]models.DoctorTiming, error) {
	seen := make(map[models.Weekday]bool, len(inputs))
	timings := make([]models.DoctorTiming, 0, len(inputs))

	for _, in := range inputs {
		if !in.Day.Valid() {
			return nil, fmt.Errorf("invalid weekday %q", in.Day)
		}
		if seen[in.Day] {
			return nil, fmt.Errorf("duplicate timing entry for %s", in.Day)
		}
		seen[in.Day] = true

		start, err := schedule.ParseTimeOfDay(in.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%s start time: %w", in.Day, err)
		}
		end, err := schedule.ParseTimeOfDay(in.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%s end time: %w", in.Day, err)
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("%s start time must be before end time", in.Day)
		}

		timings = append(timings, models.DoctorTiming{
			ID:          uuid.New(),
			Day:         in.Day,
			StartTime:   start.String(),
			EndTime:     end.String(),
			IsAvailable: in.IsAvailable,
		})
	}

	return timings, nil
}

// parseDate accepts an ISO calendar date or a full RFC 3339 timestamp and
// truncates it to midnight UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return schedule.Midnight(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Midnight(t), nil
}
