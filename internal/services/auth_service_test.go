package services

import (
	"errors"
	"testing"

	"github.com/carebook/backend/internal/dto"
	"github.com/carebook/backend/internal/models"
)

func registerRequest(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:        "Rohit Sharma",
		Email:       email,
		Password:    "password123",
		PhoneNumber: "+91 98765 43210",
		Role:        models.RolePatient,
	}
}

func TestRegister_and_Login(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(registerRequest("rohit@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("register did not issue a token pair")
	}
	if resp.User.Role != models.RolePatient {
		t.Errorf("role = %s, want patient", resp.User.Role)
	}

	login, err := svc.Login(&dto.LoginRequest{Email: "ROHIT@EXAMPLE.COM", Password: "password123"})
	if err != nil {
		t.Fatalf("case-insensitive login failed: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Error("login resolved a different user")
	}

	if _, err := svc.Login(&dto.LoginRequest{Email: "rohit@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegister_DuplicateEmail_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	if _, err := svc.Register(registerRequest("rohit@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(registerRequest("Rohit@Example.com")); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	short := registerRequest("short@example.com")
	short.Password = "short"
	if _, err := svc.Register(short); err == nil {
		t.Error("expected error for short password")
	}

	asAdmin := registerRequest("admin@example.com")
	asAdmin.Role = models.RoleAdmin
	if _, err := svc.Register(asAdmin); err == nil {
		t.Error("expected error for self-registered admin")
	}

	noRole := registerRequest("norole@example.com")
	noRole.Role = ""
	resp, err := svc.Register(noRole)
	if err != nil {
		t.Fatalf("register without role failed: %v", err)
	}
	if resp.User.Role != models.RolePatient {
		t.Errorf("default role = %s, want patient", resp.User.Role)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(registerRequest("rohit@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.RefreshToken == reg.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The consumed token is revoked.
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("reused token: err = %v, want ErrInvalidToken", err)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(registerRequest("rohit@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(&dto.LogoutRequest{RefreshToken: reg.RefreshToken}); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh after logout: err = %v, want ErrInvalidToken", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(registerRequest("rohit@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	name := "Rohit G. Sharma"
	resp, err := svc.UpdateProfile(reg.User.ID, &dto.UpdateProfileRequest{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if resp.User.Name != name {
		t.Errorf("name = %q, want %q", resp.User.Name, name)
	}
	if resp.Token == "" {
		t.Error("profile update did not re-issue a token")
	}

	password := "new-password-123"
	if _, err := svc.UpdateProfile(reg.User.ID, &dto.UpdateProfileRequest{Password: &password}); err != nil {
		t.Fatalf("password update failed: %v", err)
	}
	if _, err := svc.Login(&dto.LoginRequest{Email: "rohit@example.com", Password: password}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(&dto.LoginRequest{Email: "rohit@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still accepted")
	}
}
