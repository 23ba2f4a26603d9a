package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/auth"
	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

// Register creates a user with a bcrypt-hashed password. Email is unique;
// an unknown role is rejected, an empty one defaults to technician.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleTechnician
	}
	if !models.ValidRole(role) {
		return models.User{}, invalid("unknown role %q", role)
	}

	_, err := s.store.Users.FindOne(ctx, bson.M{"email": req.Email})
	if err == nil {
		return models.User{}, conflict("email %s already registered", req.Email)
	}
	if !errors.Is(err, store.ErrNoDocument) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        newID(),
		Email:     req.Email,
		Password:  hash,
		Name:      req.Name,
		Role:      role,
		CreatedAt: nowISO(),
	}
	if err := s.store.Users.Insert(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login verifies credentials and returns the user. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	user, err := s.store.Users.FindOne(ctx, bson.M{"email": req.Email})
	if errors.Is(err, store.ErrNoDocument) {
		return models.User{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return models.User{}, auth.ErrInvalidCredentials
	}
	return user, nil
}
