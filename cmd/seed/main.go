package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/carebook/backend/internal/config"
	"github.com/carebook/backend/internal/database"
	"github.com/carebook/backend/internal/logging"
	"github.com/carebook/backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var specializations = []string{
	"Cardiology", "Dermatology", "Neurology", "Orthopedics",
	"Pediatrics", "Psychiatry", "General Medicine",
}

var doctorNames = []string{
	"Arjun Mehta", "Sunita Rao", "Vikram Nair", "Ananya Iyer",
	"Rahul Verma", "Kavita Desai", "Sanjay Kulkarni",
}

var patientSeeds = []struct {
	name, email, phone string
}{
	{"Rohit Sharma", "patient@example.com", "+91 98765 43210"},
	{"Virat Kohli", "virat@example.com", "+91 98765 43211"},
	{"Priya Sharma", "priya@example.com", "+91 98765 43212"},
	{"Amit Patel", "amit@example.com", "+91 98765 43213"},
	{"Neha Singh", "neha@example.com", "+91 98765 43214"},
}

// Seeds sample patients and doctors for local development. Doctors get a
// Monday–Friday 09:00–17:00 template. Existing accounts are left alone, so
// re-running is safe.
func main() {
	logging.Setup()

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash seed password", "error", err)
		os.Exit(1)
	}

	for _, p := range patientSeeds {
		if err := ensureUser(p.name, p.email, p.phone, models.RolePatient, string(hash)); err != nil {
			slog.Error("failed to seed patient", "email", p.email, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("patients seeded", "count", len(patientSeeds))

	for i, name := range doctorNames {
		email := fmt.Sprintf("doctor%d@example.com", i+1)
		if err := ensureDoctor(name, email, specializations[i%len(specializations)], string(hash)); err != nil {
			slog.Error("failed to seed doctor", "email", email, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("doctors seeded", "count", len(doctorNames))
}

func ensureUser(name, email, phone string, role models.Role, passwordHash string) error {
	var existing models.User
	if err := database.DB.Where("LOWER(email) = LOWER(?)", email).First(&existing).Error; err == nil {
		return nil
	}
	return database.DB.Create(&models.User{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		Password:    passwordHash,
		PhoneNumber: phone,
		Role:        role,
	}).Error
}

func ensureDoctor(name, email, specialization, passwordHash string) error {
	if err := ensureUser(name, email, "+91 90000 00000", models.RoleDoctor, passwordHash); err != nil {
		return err
	}

	var user models.User
	if err := database.DB.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return err
	}

	var existing models.Doctor
	if err := database.DB.First(&existing, "user_id = ?", user.ID).Error; err == nil {
		return nil
	}

	doctor := models.Doctor{
		ID:             uuid.New(),
		UserID:         user.ID,
		Specialization: specialization,
		Experience:     rand.Intn(15) + 3,
		Fees:           float64(rand.Intn(500) + 500),
		Address:        fmt.Sprintf("Medical Center, %d Main Street, Mumbai, India", rand.Intn(100)+1),
		Bio:            fmt.Sprintf("Dr. %s is a highly skilled %s specialist with extensive experience.", name, specialization),
		Rating:         rand.Float64()*2 + 3,
		ReviewCount:    rand.Intn(50) + 5,
	}
	if err := database.DB.Create(&doctor).Error; err != nil {
		return err
	}

	weekdays := []models.Weekday{
		models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday,
	}
	timings := make([]models.DoctorTiming, 0, len(weekdays))
	for _, day := range weekdays {
		timings = append(timings, models.DoctorTiming{
			ID:          uuid.New(),
			DoctorID:    doctor.ID,
			Day:         day,
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: true,
		})
	}
	return database.DB.Create(&timings).Error
}
