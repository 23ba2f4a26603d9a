package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

// ListUsers returns all users, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.Users.Find(ctx, bson.M{}, store.FindOptions{SortField: "created_at", SortDesc: true})
}

// ListTechnicians returns the users that can be assigned to work orders.
func (s *Service) ListTechnicians(ctx context.Context) ([]models.User, error) {
	return s.store.Users.Find(ctx, bson.M{"role": bson.M{"$in": []string{models.RoleTechnician, models.RoleSupervisor}}})
}

// UpdateUserRole changes a user's role.
func (s *Service) UpdateUserRole(ctx context.Context, userID, role string) (models.User, error) {
	if !models.ValidRole(role) {
		return models.User{}, invalid("unknown role %q", role)
	}
	matched, err := s.store.Users.Update(ctx, bson.M{"id": userID}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return models.User{}, err
	}
	if matched == 0 {
		return models.User{}, notFound("user")
	}
	return s.store.Users.FindOne(ctx, bson.M{"id": userID})
}

// DeleteUser removes a user. A user cannot delete themselves, and deletion
// is refused while the user still has open assigned orders.
func (s *Service) DeleteUser(ctx context.Context, actor models.User, userID string) error {
	if actor.ID == userID {
		return conflict("cannot delete your own account")
	}
	_, err := s.store.Users.FindOne(ctx, bson.M{"id": userID})
	if errors.Is(err, store.ErrNoDocument) {
		return notFound("user")
	}
	if err != nil {
		return err
	}

	open, err := s.store.WorkOrders.Count(ctx, bson.M{
		"assigned_to": userID,
		"status":      bson.M{"$ne": models.StatusCompleted},
	})
	if err != nil {
		return err
	}
	if open > 0 {
		return conflict("user has %d open assigned work orders", open)
	}

	_, err = s.store.Users.Delete(ctx, bson.M{"id": userID})
	return err
}

// userName resolves a user id to a display name, empty when unresolvable.
func (s *Service) userName(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}
	user, err := s.store.Users.FindOne(ctx, bson.M{"id": userID})
	if err != nil {
		return ""
	}
	return user.Name
}
