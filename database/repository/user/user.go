package userRepo

import (
	"context"
	"errors"

	"bookhive/models"
)

// ErrNotFound is returned when no user matches the given id.
var ErrNotFound = errors.New("user not found")

// UserRepository defines the read-only user lookup this service needs for
// calendar display enrichment.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}
