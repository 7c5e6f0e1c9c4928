package actor

import (
	"testing"

	"github.com/carebook/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestFromClaims(t *testing.T) {
	id := uuid.New()

	act, err := FromClaims(jwt.MapClaims{"sub": id.String(), "role": "doctor"})
	if err != nil {
		t.Fatalf("FromClaims() error = %v", err)
	}
	if act.ID != id {
		t.Errorf("ID = %v, want %v", act.ID, id)
	}
	if act.Role != models.RoleDoctor {
		t.Errorf("Role = %v, want doctor", act.Role)
	}
	if !act.IsDoctor() || act.IsPatient() || act.IsAdmin() {
		t.Errorf("role predicates inconsistent for %v", act.Role)
	}
}

func TestFromClaims_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing sub", jwt.MapClaims{"role": "patient"}},
		{"malformed sub", jwt.MapClaims{"sub": "not-a-uuid", "role": "patient"}},
		{"missing role", jwt.MapClaims{"sub": uuid.NewString()}},
		{"unknown role", jwt.MapClaims{"sub": uuid.NewString(), "role": "superuser"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromClaims(tc.claims); err == nil {
				t.Error("FromClaims() succeeded, want error")
			}
		})
	}
}
