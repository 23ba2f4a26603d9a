package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

func (s *Service) CreateSparePart(ctx context.Context, req models.CreateSparePartRequest) (models.SparePartView, error) {
	part := models.SparePart{
		ID:                newID(),
		Name:              req.Name,
		InternalReference: req.InternalReference,
		ExternalReference: req.ExternalReference,
		Description:       req.Description,
		Location:          req.Location,
		MachineID:         req.MachineID,
		StockCurrent:      req.StockCurrent,
		StockMin:          req.StockMin,
		StockMax:          req.StockMax,
		Unit:              req.Unit,
		Supplier:          req.Supplier,
		Price:             req.Price,
		CreatedAt:         nowISO(),
	}
	if err := s.store.SpareParts.Insert(ctx, part); err != nil {
		return models.SparePartView{}, err
	}
	return s.sparePartView(ctx, part), nil
}

func (s *Service) ListSpareParts(ctx context.Context, machineID string) ([]models.SparePartView, error) {
	filter := bson.M{}
	if machineID != "" {
		filter["machine_id"] = machineID
	}
	parts, err := s.store.SpareParts.Find(ctx, filter, store.FindOptions{SortField: "name"})
	if err != nil {
		return nil, err
	}
	views := make([]models.SparePartView, 0, len(parts))
	for _, part := range parts {
		views = append(views, s.sparePartView(ctx, part))
	}
	return views, nil
}

func (s *Service) GetSparePart(ctx context.Context, id string) (models.SparePartView, error) {
	part, err := s.store.SpareParts.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return models.SparePartView{}, notFound("spare part")
	}
	if err != nil {
		return models.SparePartView{}, err
	}
	return s.sparePartView(ctx, part), nil
}

func (s *Service) UpdateSparePart(ctx context.Context, id string, req models.CreateSparePartRequest) (models.SparePartView, error) {
	matched, err := s.store.SpareParts.Update(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"name":               req.Name,
		"internal_reference": req.InternalReference,
		"external_reference": req.ExternalReference,
		"description":        req.Description,
		"location":           req.Location,
		"machine_id":         req.MachineID,
		"stock_current":      req.StockCurrent,
		"stock_min":          req.StockMin,
		"stock_max":          req.StockMax,
		"unit":               req.Unit,
		"supplier":           req.Supplier,
		"price":              req.Price,
	}})
	if err != nil {
		return models.SparePartView{}, err
	}
	if matched == 0 {
		return models.SparePartView{}, notFound("spare part")
	}
	return s.GetSparePart(ctx, id)
}

func (s *Service) DeleteSparePart(ctx context.Context, id string) error {
	deleted, err := s.store.SpareParts.Delete(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFound("spare part")
	}
	return nil
}

// CreatePartRequest opens a pending restock request for a spare part.
func (s *Service) CreatePartRequest(ctx context.Context, actor models.User, req models.CreatePartRequestRequest) (models.SparePartRequestView, error) {
	if _, err := s.GetSparePart(ctx, req.SparePartID); err != nil {
		return models.SparePartRequestView{}, err
	}
	urgency := req.Urgency
	if urgency == "" {
		urgency = models.UrgencyMedium
	}
	doc := models.SparePartRequestDoc{
		ID:          newID(),
		SparePartID: req.SparePartID,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		Urgency:     urgency,
		Status:      models.RequestPending,
		RequestedBy: actor.ID,
		CreatedAt:   nowISO(),
	}
	if err := s.store.SparePartRequests.Insert(ctx, doc); err != nil {
		return models.SparePartRequestView{}, err
	}
	return s.partRequestView(ctx, doc), nil
}

func (s *Service) ListPartRequests(ctx context.Context, status string) ([]models.SparePartRequestView, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	docs, err := s.store.SparePartRequests.Find(ctx, filter, store.FindOptions{SortField: "created_at", SortDesc: true})
	if err != nil {
		return nil, err
	}
	views := make([]models.SparePartRequestView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, s.partRequestView(ctx, doc))
	}
	return views, nil
}

// ResolvePartRequest moves a pending request to approved, delivered or
// rejected. Delivery decrements the part's stock, the only stock mutation
// besides a direct part update. Resolving a non-pending request is a
// conflict.
func (s *Service) ResolvePartRequest(ctx context.Context, actor models.User, id, status string) (models.SparePartRequestView, error) {
	switch status {
	case models.RequestApproved, models.RequestDelivered, models.RequestRejected:
	default:
		return models.SparePartRequestView{}, invalid("unknown resolution status %q", status)
	}

	doc, err := s.store.SparePartRequests.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return models.SparePartRequestView{}, notFound("spare part request")
	}
	if err != nil {
		return models.SparePartRequestView{}, err
	}
	if doc.Status != models.RequestPending {
		return models.SparePartRequestView{}, conflict("request already %s", doc.Status)
	}

	if _, err := s.store.SparePartRequests.Update(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"status":      status,
		"resolved_by": actor.ID,
		"resolved_at": nowISO(),
	}}); err != nil {
		return models.SparePartRequestView{}, err
	}

	if status == models.RequestDelivered {
		if _, err := s.store.SpareParts.Update(ctx, bson.M{"id": doc.SparePartID},
			bson.M{"$inc": bson.M{"stock_current": -doc.Quantity}}); err != nil {
			return models.SparePartRequestView{}, err
		}
	}

	doc, err = s.store.SparePartRequests.FindOne(ctx, bson.M{"id": id})
	if err != nil {
		return models.SparePartRequestView{}, err
	}
	return s.partRequestView(ctx, doc), nil
}

func (s *Service) sparePartView(ctx context.Context, part models.SparePart) models.SparePartView {
	machineName, _ := s.machineName(ctx, part.MachineID)
	return models.SparePartView{
		SparePart:   part,
		Status:      part.StockStatus(),
		MachineName: machineName,
	}
}

func (s *Service) partRequestView(ctx context.Context, doc models.SparePartRequestDoc) models.SparePartRequestView {
	view := models.SparePartRequestView{
		SparePartRequestDoc: doc,
		RequestedByName:     s.userName(ctx, doc.RequestedBy),
	}
	if part, err := s.store.SpareParts.FindOne(ctx, bson.M{"id": doc.SparePartID}); err == nil {
		view.SparePartName = part.Name
	}
	return view
}
