package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus is the closed set of appointment states.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment occupies one (doctor, date, time) slot while its status is not
// cancelled. AppointmentDate is stored with the time-of-day zeroed; the actual
// time lives in AppointmentTime as a zero-padded "HH:MM" string. Fees is a
// snapshot of the doctor's fee at booking time and is never re-derived.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null" json:"appointment_date"`
	AppointmentTime string            `gorm:"size:5;not null" json:"appointment_time"`
	Reason          string            `gorm:"size:500;not null" json:"reason"`
	Status          AppointmentStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	Fees            float64           `gorm:"not null" json:"fees"`
	IsPaid          bool              `gorm:"default:false" json:"is_paid"`
	PaymentMethod   *string           `gorm:"size:50" json:"payment_method,omitempty"`
	ConfirmedAt     *time.Time        `json:"confirmed_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`

	Doctor  Doctor `gorm:"foreignKey:DoctorID" json:"doctor"`
	Patient User   `gorm:"foreignKey:PatientID" json:"patient"`
}
