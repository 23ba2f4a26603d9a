package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

// ListChecklistTemplates returns all templates, seeding the built-in default
// on first read so a fresh installation always has one.
func (s *Service) ListChecklistTemplates(ctx context.Context) ([]models.ChecklistTemplate, error) {
	if err := s.seedDefaultTemplate(ctx); err != nil {
		return nil, err
	}
	return s.store.ChecklistTemplates.Find(ctx, bson.M{}, store.FindOptions{SortField: "name"})
}

func (s *Service) CreateChecklistTemplate(ctx context.Context, req models.ChecklistTemplateRequest) (models.ChecklistTemplate, error) {
	tpl := models.ChecklistTemplate{
		ID:        newID(),
		Name:      req.Name,
		Items:     templateItems(req),
		CreatedAt: nowISO(),
	}
	if err := s.store.ChecklistTemplates.Insert(ctx, tpl); err != nil {
		return models.ChecklistTemplate{}, err
	}
	return tpl, nil
}

// UpdateChecklistTemplate replaces name and items; items get fresh ids.
func (s *Service) UpdateChecklistTemplate(ctx context.Context, id string, req models.ChecklistTemplateRequest) (models.ChecklistTemplate, error) {
	matched, err := s.store.ChecklistTemplates.Update(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"name":  req.Name,
		"items": templateItems(req),
	}})
	if err != nil {
		return models.ChecklistTemplate{}, err
	}
	if matched == 0 {
		return models.ChecklistTemplate{}, notFound("checklist template")
	}
	return s.store.ChecklistTemplates.FindOne(ctx, bson.M{"id": id})
}

// SetDefaultChecklistTemplate flags one template as the default, clearing
// the flag everywhere else.
func (s *Service) SetDefaultChecklistTemplate(ctx context.Context, id string) (models.ChecklistTemplate, error) {
	tpl, err := s.store.ChecklistTemplates.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return models.ChecklistTemplate{}, notFound("checklist template")
	}
	if err != nil {
		return models.ChecklistTemplate{}, err
	}
	current, err := s.store.ChecklistTemplates.Find(ctx, bson.M{"is_default": true})
	if err != nil {
		return models.ChecklistTemplate{}, err
	}
	for _, c := range current {
		if _, err := s.store.ChecklistTemplates.Update(ctx, bson.M{"id": c.ID}, bson.M{"$set": bson.M{"is_default": false}}); err != nil {
			return models.ChecklistTemplate{}, err
		}
	}
	if _, err := s.store.ChecklistTemplates.Update(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"is_default": true}}); err != nil {
		return models.ChecklistTemplate{}, err
	}
	tpl.IsDefault = true
	return tpl, nil
}

// DeleteChecklistTemplate refuses to delete the default template.
func (s *Service) DeleteChecklistTemplate(ctx context.Context, id string) error {
	tpl, err := s.store.ChecklistTemplates.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return notFound("checklist template")
	}
	if err != nil {
		return err
	}
	if tpl.IsDefault {
		return conflict("the default checklist template cannot be deleted")
	}
	_, err = s.store.ChecklistTemplates.Delete(ctx, bson.M{"id": id})
	return err
}

// DefaultChecklist returns a ready-to-use checklist from the default
// template, all items unchecked with fresh ids.
func (s *Service) DefaultChecklist(ctx context.Context) ([]models.ChecklistItem, error) {
	if err := s.seedDefaultTemplate(ctx); err != nil {
		return nil, err
	}
	return s.freshChecklist(ctx), nil
}

// seedDefaultTemplate inserts the built-in default template when no default
// exists yet.
func (s *Service) seedDefaultTemplate(ctx context.Context) error {
	_, err := s.store.ChecklistTemplates.FindOne(ctx, bson.M{"is_default": true})
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoDocument) {
		return err
	}
	return s.store.ChecklistTemplates.Insert(ctx, models.ChecklistTemplate{
		ID:   newID(),
		Name: "Standard preventive checklist",
		Items: []models.ChecklistTemplateItem{
			{ID: newID(), Name: "Area or machine cleared", IsRequired: true, Order: 1},
			{ID: newID(), Name: "Order and cleanliness", IsRequired: true, Order: 2},
		},
		IsDefault: true,
		CreatedAt: nowISO(),
	})
}

func templateItems(req models.ChecklistTemplateRequest) []models.ChecklistTemplateItem {
	items := make([]models.ChecklistTemplateItem, 0, len(req.Items))
	for i, item := range req.Items {
		order := item.Order
		if order == 0 {
			order = i + 1
		}
		items = append(items, models.ChecklistTemplateItem{
			ID:         newID(),
			Name:       item.Name,
			IsRequired: item.IsRequired,
			Order:      order,
		})
	}
	return items
}
