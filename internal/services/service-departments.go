package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

func (s *Service) CreateDepartment(ctx context.Context, req models.DepartmentRequest) (models.Department, error) {
	dept := models.Department{
		ID:          newID(),
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		CreatedAt:   nowISO(),
	}
	if err := s.store.Departments.Insert(ctx, dept); err != nil {
		return models.Department{}, err
	}
	return dept, nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return s.store.Departments.Find(ctx, bson.M{}, store.FindOptions{SortField: "name"})
}

func (s *Service) GetDepartment(ctx context.Context, id string) (models.Department, error) {
	dept, err := s.store.Departments.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return models.Department{}, notFound("department")
	}
	return dept, err
}

func (s *Service) UpdateDepartment(ctx context.Context, id string, req models.DepartmentRequest) (models.Department, error) {
	matched, err := s.store.Departments.Update(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"name":        req.Name,
		"description": req.Description,
		"location":    req.Location,
	}})
	if err != nil {
		return models.Department{}, err
	}
	if matched == 0 {
		return models.Department{}, notFound("department")
	}
	return s.store.Departments.FindOne(ctx, bson.M{"id": id})
}

// DeleteDepartment refuses while machines still belong to the department.
func (s *Service) DeleteDepartment(ctx context.Context, id string) error {
	if _, err := s.GetDepartment(ctx, id); err != nil {
		return err
	}
	machines, err := s.store.Machines.Count(ctx, bson.M{"department_id": id})
	if err != nil {
		return err
	}
	if machines > 0 {
		return conflict("department still has %d machines", machines)
	}
	_, err = s.store.Departments.Delete(ctx, bson.M{"id": id})
	return err
}

func (s *Service) departmentName(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	dept, err := s.store.Departments.FindOne(ctx, bson.M{"id": id})
	if err != nil {
		return ""
	}
	return dept.Name
}
