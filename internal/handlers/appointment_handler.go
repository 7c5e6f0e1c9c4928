package handlers

import (
	"errors"

	"github.com/carebook/backend/internal/actor"
	"github.com/carebook/backend/internal/dto"
	"github.com/carebook/backend/internal/schedule"
	"github.com/carebook/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Book handles POST /api/appointments. Route middleware restricts it to
// patients.
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	act, err := actor.FromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}

	var req dto.BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	appointment, err := h.appointmentService.Book(act, &req)
	if err != nil {
		var unavailable *services.UnavailableDayError
		switch {
		case errors.Is(err, services.ErrDoctorNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.As(err, &unavailable),
			errors.Is(err, services.ErrOutsideHours),
			errors.Is(err, services.ErrSlotTaken),
			errors.Is(err, services.ErrInvalidDate),
			errors.Is(err, schedule.ErrInvalidTimeOfDay):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to book appointment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Success: true, Data: appointment})
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	act, err := actor.FromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}

	q := dto.AppointmentListQuery{
		Date:   c.Query("date"),
		Status: c.Query("status"),
	}

	appointments, err := h.appointmentService.List(act, q)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDoctorProfileMissing):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidDate), errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to retrieve appointments",
		})
	}

	return c.JSON(dto.ListResponse{Success: true, Count: len(appointments), Data: appointments})
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	act, err := actor.FromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid appointment ID",
		})
	}

	appointment, err := h.appointmentService.Get(act, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAppointmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNotParticipant):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to retrieve appointment",
		})
	}

	return c.JSON(dto.DataResponse{Success: true, Data: appointment})
}

func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	act, err := actor.FromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid appointment ID",
		})
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	appointment, err := h.appointmentService.UpdateStatus(act, id, req.Status)
	if err != nil {
		var transition *services.InvalidTransitionError
		switch {
		case errors.Is(err, services.ErrAppointmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNotUpdateAuthorized),
			errors.Is(err, services.ErrPatientsOnlyCancel):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidStatus), errors.As(err, &transition):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to update appointment",
		})
	}

	return c.JSON(dto.DataResponse{Success: true, Data: appointment})
}
