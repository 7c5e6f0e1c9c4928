package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carebook/backend/internal/config"
	"github.com/carebook/backend/internal/database"
	"github.com/carebook/backend/internal/handlers"
	"github.com/carebook/backend/internal/routes"
	"github.com/carebook/backend/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 2026-01-05 is a Monday.
const mondayDate = "2026-01-05"

func setupTestApp(t *testing.T) *fiber.App {
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
	sqlDB.SetMaxOpenConns(1)

	if err := database.MigrateSchema(db); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	}

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		handlers.NewDoctorHandler(services.NewDoctorService(db)),
		handlers.NewAppointmentHandler(services.NewAppointmentService(db)),
		handlers.NewHealthHandler(),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("%s %s: failed to decode response: %v", method, path, err)
	}
	return resp.StatusCode, decoded
}

func register(t *testing.T, app *fiber.App, name, email, role string) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"name":         name,
		"email":        email,
		"password":     "password123",
		"phone_number": "+91 98765 43210",
		"role":         role,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %v", email, status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in response", email)
	}
	return token
}

func createDoctorProfile(t *testing.T, app *fiber.App, token string) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/doctors", token, map[string]interface{}{
		"specialization": "Cardiology",
		"experience":     10,
		"fees":           500,
		"address":        "Medical Center, Mumbai",
		"bio":            "Test doctor",
		"timings": []map[string]interface{}{
			{"day": "Monday", "start_time": "09:00", "end_time": "17:00", "is_available": true},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create doctor profile: status = %d, body = %v", status, body)
	}
	data := body["data"].(map[string]interface{})
	return data["id"].(string)
}

func bookBody(doctorID, at string) map[string]interface{} {
	return map[string]interface{}{
		"doctor_id":        doctorID,
		"appointment_date": mondayDate,
		"appointment_time": at,
		"reason":           "checkup",
	}
}

func TestBookingFlow(t *testing.T) {
	app := setupTestApp(t)
	patientToken := register(t, app, "Rohit Sharma", "rohit@example.com", "patient")
	doctorToken := register(t, app, "Dr. Mehta", "mehta@example.com", "doctor")
	doctorID := createDoctorProfile(t, app, doctorToken)

	// Patient books the slot.
	status, body := doJSON(t, app, http.MethodPost, "/api/appointments", patientToken, bookBody(doctorID, "10:00"))
	if status != http.StatusCreated {
		t.Fatalf("booking: status = %d, body = %v", status, body)
	}
	data := body["data"].(map[string]interface{})
	if data["status"] != "pending" {
		t.Errorf("status = %v, want pending", data["status"])
	}
	if data["fees"] != float64(500) {
		t.Errorf("fees = %v, want snapshot 500", data["fees"])
	}
	appointmentID := data["id"].(string)

	// Second patient hits the occupied slot.
	otherToken := register(t, app, "Virat Kohli", "virat@example.com", "patient")
	status, body = doJSON(t, app, http.MethodPost, "/api/appointments", otherToken, bookBody(doctorID, "10:00"))
	if status != http.StatusBadRequest {
		t.Fatalf("double booking: status = %d, body = %v", status, body)
	}
	if msg, _ := body["message"].(string); msg != "This appointment slot is already booked" {
		t.Errorf("double booking message = %q", msg)
	}

	// Patient cannot confirm; the owning doctor can.
	status, _ = doJSON(t, app, http.MethodPut, "/api/appointments/"+appointmentID, patientToken,
		map[string]string{"status": "confirmed"})
	if status != http.StatusForbidden {
		t.Errorf("patient confirm: status = %d, want 403", status)
	}

	status, body = doJSON(t, app, http.MethodPut, "/api/appointments/"+appointmentID, doctorToken,
		map[string]string{"status": "confirmed"})
	if status != http.StatusOK {
		t.Fatalf("doctor confirm: status = %d, body = %v", status, body)
	}
	data = body["data"].(map[string]interface{})
	if data["confirmed_at"] == nil {
		t.Error("confirmed_at not set after confirmation")
	}

	// Listing is scoped to the caller.
	status, body = doJSON(t, app, http.MethodGet, "/api/appointments", otherToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list: status = %d", status)
	}
	if count, _ := body["count"].(float64); count != 0 {
		t.Errorf("other patient sees %v appointments, want 0", count)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/appointments", patientToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list: status = %d", status)
	}
	if count, _ := body["count"].(float64); count != 1 {
		t.Errorf("booking patient sees %v appointments, want 1", count)
	}

	// Reads are participant-only.
	status, _ = doJSON(t, app, http.MethodGet, "/api/appointments/"+appointmentID, otherToken, nil)
	if status != http.StatusForbidden {
		t.Errorf("stranger read: status = %d, want 403", status)
	}
}

func TestBooking_Failures(t *testing.T) {
	app := setupTestApp(t)
	patientToken := register(t, app, "Rohit Sharma", "rohit@example.com", "patient")
	doctorToken := register(t, app, "Dr. Mehta", "mehta@example.com", "doctor")
	doctorID := createDoctorProfile(t, app, doctorToken)

	// Unknown doctor.
	status, _ := doJSON(t, app, http.MethodPost, "/api/appointments", patientToken,
		bookBody("00000000-0000-0000-0000-000000000001", "10:00"))
	if status != http.StatusNotFound {
		t.Errorf("unknown doctor: status = %d, want 404", status)
	}

	// Unavailable weekday.
	req := bookBody(doctorID, "10:00")
	req["appointment_date"] = "2026-01-06" // Tuesday
	status, body := doJSON(t, app, http.MethodPost, "/api/appointments", patientToken, req)
	if status != http.StatusBadRequest {
		t.Errorf("unavailable weekday: status = %d, want 400", status)
	}
	if msg, _ := body["message"].(string); msg != "Doctor is not available on Tuesday" {
		t.Errorf("unavailable weekday message = %q", msg)
	}

	// Outside working hours.
	status, body = doJSON(t, app, http.MethodPost, "/api/appointments", patientToken, bookBody(doctorID, "08:00"))
	if status != http.StatusBadRequest {
		t.Errorf("outside hours: status = %d, want 400", status)
	}
	if msg, _ := body["message"].(string); msg != "Appointment time is outside doctor's working hours" {
		t.Errorf("outside hours message = %q", msg)
	}

	// Doctors cannot book.
	status, _ = doJSON(t, app, http.MethodPost, "/api/appointments", doctorToken, bookBody(doctorID, "10:00"))
	if status != http.StatusForbidden {
		t.Errorf("doctor booking: status = %d, want 403", status)
	}

	// No token at all.
	status, _ = doJSON(t, app, http.MethodPost, "/api/appointments", "", bookBody(doctorID, "10:00"))
	if status != http.StatusUnauthorized {
		t.Errorf("anonymous booking: status = %d, want 401", status)
	}
}

func TestDoctorListing_Public(t *testing.T) {
	app := setupTestApp(t)
	for i := 1; i <= 3; i++ {
		token := register(t, app, fmt.Sprintf("Dr. Number%d", i), fmt.Sprintf("doc%d@example.com", i), "doctor")
		createDoctorProfile(t, app, token)
	}

	status, body := doJSON(t, app, http.MethodGet, "/api/doctors?limit=2", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list doctors: status = %d", status)
	}
	if total, _ := body["total"].(float64); total != 3 {
		t.Errorf("total = %v, want 3", total)
	}
	if pages, _ := body["pages"].(float64); pages != 2 {
		t.Errorf("pages = %v, want 2", pages)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/doctors?search=number2", "", nil)
	if status != http.StatusOK {
		t.Fatalf("search doctors: status = %d", status)
	}
	if count, _ := body["count"].(float64); count != 1 {
		t.Errorf("search count = %v, want 1", count)
	}
}
