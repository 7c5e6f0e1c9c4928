package routes

import (
	"time"

	"github.com/carebook/backend/internal/config"
	"github.com/carebook/backend/internal/handlers"
	"github.com/carebook/backend/internal/middleware"
	"github.com/carebook/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	doctorHandler *handlers.DoctorHandler,
	appointmentHandler *handlers.AppointmentHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Users — registration and login are public, with a stricter limiter
	users := api.Group("/users")
	auth := users.Group("")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	users.Post("/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	users.Get("/profile", middleware.JWTProtected(cfg), authHandler.GetProfile)
	users.Put("/profile", middleware.JWTProtected(cfg), authHandler.UpdateProfile)

	// Doctors — browsing is public, profile management is role-gated
	doctors := api.Group("/doctors")
	doctors.Get("/", doctorHandler.List)
	doctors.Get("/:id", doctorHandler.Get)
	doctors.Post("/", middleware.JWTProtected(cfg), middleware.RequireRole(models.RoleDoctor), doctorHandler.Create)
	doctors.Put("/:id", middleware.JWTProtected(cfg), middleware.RequireRole(models.RoleDoctor, models.RoleAdmin), doctorHandler.Update)
	doctors.Delete("/:id", middleware.JWTProtected(cfg), middleware.RequireRole(models.RoleAdmin), doctorHandler.Delete)

	// Appointments — all protected; booking is patient-only
	appointments := api.Group("/appointments", middleware.JWTProtected(cfg))
	appointments.Post("/", middleware.RequireRole(models.RolePatient), appointmentHandler.Book)
	appointments.Get("/", appointmentHandler.List)
	appointments.Get("/:id", appointmentHandler.Get)
	appointments.Put("/:id", appointmentHandler.UpdateStatus)
}
