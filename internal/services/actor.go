package services

import (
	"codama/internal/models"

	"github.com/google/uuid"
)

// Actor is the authenticated user a service call is made on behalf of.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// SystemActor acts with admin rights for maintenance commands.
var SystemActor = Actor{Role: models.RoleAdmin}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Owns reports whether the actor is the owner identified by userID.
func (a Actor) Owns(userID uuid.UUID) bool {
	return a.ID != uuid.Nil && a.ID == userID
}

func requireAdmin(actor Actor) error {
	if !actor.IsAdmin() {
		return forbidden("admin privileges required")
	}
	return nil
}

// prepareList normalizes q and rejects trashed listings for non-admins.
func prepareList(actor Actor, q *models.ListQuery) error {
	q.Normalize()
	if q.Trashed != "" && !actor.IsAdmin() {
		return forbidden("only admins can list deleted records")
	}
	return nil
}
