package services

import (
	"testing"
	"time"

	"github.com/carebook/backend/internal/actor"
	"github.com/carebook/backend/internal/config"
	"github.com/carebook/backend/internal/database"
	"github.com/carebook/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 2026-01-05 is a Monday.
const mondayDate = "2026-01-05"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A pooled second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.MigrateSchema(db); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		Password:    string(hash),
		PhoneNumber: "+91 98765 43210",
		Role:        role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

// createDoctor sets up a doctor user with a profile available Monday
// 09:00-17:00 and no other days.
func createDoctor(t *testing.T, db *gorm.DB, email string, fees float64) (*models.User, *models.Doctor) {
	t.Helper()

	user := createUser(t, db, "Dr. "+email, email, models.RoleDoctor)
	doctor := &models.Doctor{
		ID:             uuid.New(),
		UserID:         user.ID,
		Specialization: "Cardiology",
		Experience:     10,
		Fees:           fees,
		Address:        "Medical Center, Mumbai",
		Bio:            "Test doctor",
	}
	if err := db.Create(doctor).Error; err != nil {
		t.Fatalf("failed to create doctor profile: %v", err)
	}

	timing := &models.DoctorTiming{
		ID:          uuid.New(),
		DoctorID:    doctor.ID,
		Day:         models.Monday,
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsAvailable: true,
	}
	if err := db.Create(timing).Error; err != nil {
		t.Fatalf("failed to create doctor timing: %v", err)
	}

	return user, doctor
}

func asActor(u *models.User) actor.Context {
	return actor.Context{ID: u.ID, Role: u.Role}
}
