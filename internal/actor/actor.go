package actor

import (
	"errors"

	"github.com/carebook/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoActor = errors.New("no authenticated actor in request context")

// Context identifies the authenticated actor of a request. It is built once
// at the HTTP boundary and threaded explicitly into the services so that
// authorization decisions never depend on ambient state.
type Context struct {
	ID   uuid.UUID
	Role models.Role
}

func (a Context) IsPatient() bool { return a.Role == models.RolePatient }
func (a Context) IsDoctor() bool  { return a.Role == models.RoleDoctor }
func (a Context) IsAdmin() bool   { return a.Role == models.RoleAdmin }

// FromRequest extracts the actor from the verified JWT placed in Fiber
// locals by the auth middleware.
func FromRequest(c *fiber.Ctx) (Context, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Context{}, ErrNoActor
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Context{}, ErrNoActor
	}

	return FromClaims(claims)
}

// FromClaims builds an actor context from raw JWT claims.
func FromClaims(claims jwt.MapClaims) (Context, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return Context{}, errors.New("missing sub claim")
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return Context{}, err
	}

	roleStr, _ := claims["role"].(string)
	role := models.Role(roleStr)
	if !role.Valid() {
		return Context{}, errors.New("missing or invalid role claim")
	}

	return Context{ID: id, Role: role}, nil
}
