package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

func (s *Service) CreateProductionLine(ctx context.Context, req models.ProductionLineRequest) (models.ProductionLineView, error) {
	if _, err := s.GetDepartment(ctx, req.DepartmentID); err != nil {
		return models.ProductionLineView{}, err
	}
	target := req.TargetStartTime
	if target == "" {
		target = "06:00"
	}
	line := models.ProductionLine{
		ID:              newID(),
		Name:            req.Name,
		Code:            req.Code,
		DepartmentID:    req.DepartmentID,
		Description:     req.Description,
		TargetStartTime: target,
		Status:          models.LineActive,
		CreatedAt:       nowISO(),
	}
	if err := s.store.ProductionLines.Insert(ctx, line); err != nil {
		return models.ProductionLineView{}, err
	}
	return s.lineView(ctx, line), nil
}

func (s *Service) ListProductionLines(ctx context.Context, departmentID string) ([]models.ProductionLineView, error) {
	filter := bson.M{}
	if departmentID != "" {
		filter["department_id"] = departmentID
	}
	lines, err := s.store.ProductionLines.Find(ctx, filter, store.FindOptions{SortField: "name"})
	if err != nil {
		return nil, err
	}
	views := make([]models.ProductionLineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, s.lineView(ctx, line))
	}
	return views, nil
}

func (s *Service) GetProductionLine(ctx context.Context, id string) (models.ProductionLineView, error) {
	line, err := s.store.ProductionLines.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return models.ProductionLineView{}, notFound("production line")
	}
	if err != nil {
		return models.ProductionLineView{}, err
	}
	return s.lineView(ctx, line), nil
}

func (s *Service) UpdateProductionLine(ctx context.Context, id string, req models.ProductionLineRequest) (models.ProductionLineView, error) {
	set := bson.M{
		"name":          req.Name,
		"code":          req.Code,
		"department_id": req.DepartmentID,
		"description":   req.Description,
	}
	if req.TargetStartTime != "" {
		set["target_start_time"] = req.TargetStartTime
	}
	matched, err := s.store.ProductionLines.Update(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return models.ProductionLineView{}, err
	}
	if matched == 0 {
		return models.ProductionLineView{}, notFound("production line")
	}
	return s.GetProductionLine(ctx, id)
}

// ToggleProductionLineStatus flips a line between active and inactive.
func (s *Service) ToggleProductionLineStatus(ctx context.Context, id string) (models.ProductionLineView, error) {
	line, err := s.store.ProductionLines.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return models.ProductionLineView{}, notFound("production line")
	}
	if err != nil {
		return models.ProductionLineView{}, err
	}
	next := models.LineActive
	if line.Status == models.LineActive {
		next = models.LineInactive
	}
	if _, err := s.store.ProductionLines.Update(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": next}}); err != nil {
		return models.ProductionLineView{}, err
	}
	return s.GetProductionLine(ctx, id)
}

// DeleteProductionLine refuses while line starts reference the line.
func (s *Service) DeleteProductionLine(ctx context.Context, id string) error {
	if _, err := s.GetProductionLine(ctx, id); err != nil {
		return err
	}
	starts, err := s.store.LineStarts.Count(ctx, bson.M{"line_id": id})
	if err != nil {
		return err
	}
	if starts > 0 {
		return conflict("production line has %d recorded starts", starts)
	}
	_, err = s.store.ProductionLines.Delete(ctx, bson.M{"id": id})
	return err
}

func (s *Service) lineView(ctx context.Context, line models.ProductionLine) models.ProductionLineView {
	return models.ProductionLineView{
		ProductionLine: line,
		DepartmentName: s.departmentName(ctx, line.DepartmentID),
	}
}
