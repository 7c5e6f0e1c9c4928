package dto

import (
	"github.com/carebook/backend/internal/models"
	"github.com/google/uuid"
)

type BookAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Reason          string    `json:"reason"`
	IsPaid          bool      `json:"is_paid"`
	PaymentMethod   *string   `json:"payment_method"`
}

type UpdateStatusRequest struct {
	Status models.AppointmentStatus `json:"status"`
}

// AppointmentListQuery mirrors the list endpoint's optional filters.
type AppointmentListQuery struct {
	Date   string
	Status string
}
