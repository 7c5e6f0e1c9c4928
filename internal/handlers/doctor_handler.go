package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/carebook/backend/internal/actor"
	"github.com/carebook/backend/internal/dto"
	"github.com/carebook/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DoctorHandler struct {
	doctorService *services.DoctorService
}

func NewDoctorHandler(doctorService *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

func (h *DoctorHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	q := dto.DoctorListQuery{
		Page:           page,
		Limit:          limit,
		Specialization: c.Query("specialization"),
		Search:         c.Query("search"),
	}

	doctors, total, err := h.doctorService.List(q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to retrieve doctors",
		})
	}

	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}
	if q.Page < 1 {
		q.Page = 1
	}

	return c.JSON(dto.DoctorListResponse{
		Success:     true,
		Count:       len(doctors),
		Total:       total,
		Pages:       int(math.Ceil(float64(total) / float64(q.Limit))),
		CurrentPage: q.Page,
		Data:        doctors,
	})
}

func (h *DoctorHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid doctor ID",
		})
	}

	doctor, err := h.doctorService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to retrieve doctor",
		})
	}

	return c.JSON(dto.DataResponse{Success: true, Data: doctor})
}

func (h *DoctorHandler) Create(c *fiber.Ctx) error {
	act, err := actor.FromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}

	var req dto.CreateDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	doctor, err := h.doctorService.CreateProfile(act, &req)
	if err != nil {
		if errors.Is(err, services.ErrDoctorProfileExists) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Success: true, Data: doctor})
}

func (h *DoctorHandler) Update(c *fiber.Ctx) error {
	act, err := actor.FromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid doctor ID",
		})
	}

	var req dto.UpdateDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	doctor, err := h.doctorService.Update(act, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDoctorNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNotProfileOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	}

	return c.JSON(dto.DataResponse{Success: true, Data: doctor})
}

func (h *DoctorHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid doctor ID",
		})
	}

	if err := h.doctorService.Delete(id); err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to delete doctor",
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Doctor profile removed"})
}
