// Copyright 2024 Bonchef Industrial
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

// Fields an assigned technician without elevated rights may change. Anything
// else in their payload is dropped without error.
var technicianEditableFields = map[string]bool{
	"checklist":            true,
	"description":          true,
	"technician_signature": true,
	"notes":                true,
}

// recurrenceOffsets maps a recurrence period to its fixed day offset. Monthly
// and longer periods are calendar-naive on purpose.
var recurrenceOffsets = map[string]int{
	models.RecurrenceDaily:     1,
	models.RecurrenceWeekly:    7,
	models.RecurrenceMonthly:   30,
	models.RecurrenceQuarterly: 90,
	models.RecurrenceYearly:    365,
}

// CreateWorkOrder validates the machine reference, partitions type-specific
// fields and persists the new order plus its "created" history entry. The
// returned view has no history attached.
func (s *Service) CreateWorkOrder(ctx context.Context, actor models.User, req models.WorkOrderCreateRequest) (models.WorkOrderView, error) {
	if req.Type != models.OrderPreventive && req.Type != models.OrderCorrective {
		return models.WorkOrderView{}, invalid("unknown work order type %q", req.Type)
	}
	if _, err := s.GetMachine(ctx, req.MachineID); err != nil {
		return models.WorkOrderView{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := nowISO()
	order := models.WorkOrder{
		ID:             newID(),
		Title:          req.Title,
		Description:    req.Description,
		Type:           req.Type,
		Priority:       priority,
		Status:         models.StatusPending,
		MachineID:      req.MachineID,
		AssignedTo:     req.AssignedTo,
		CreatedBy:      actor.ID,
		ScheduledDate:  req.ScheduledDate,
		EstimatedHours: req.EstimatedHours,
		Checklist:      []models.ChecklistItem{},
		Attachments:    []models.Attachment{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	switch req.Type {
	case models.OrderCorrective:
		order.PartNumber = req.PartNumber
		order.FailureCause = req.FailureCause
		order.SparePartUsed = req.SparePartUsed
		order.SparePartReference = req.SparePartReference
	case models.OrderPreventive:
		order.Recurrence = req.Recurrence
		order.TechnicianSignature = req.TechnicianSignature
		for _, item := range req.Checklist {
			if item.ID == "" {
				item.ID = newID()
			}
			order.Checklist = append(order.Checklist, item)
		}
	}

	if err := s.store.WorkOrders.Insert(ctx, order); err != nil {
		return models.WorkOrderView{}, err
	}
	s.appendHistory(ctx, actor, order.ID, models.ActionCreated, "", "", "")

	return s.orderView(ctx, order, nil), nil
}

// WorkOrderFilter narrows list results. DepartmentID filters through the
// machine's owning department.
type WorkOrderFilter struct {
	Type         string
	Status       string
	MachineID    string
	DepartmentID string
}

// ListWorkOrders returns matching orders newest first, history omitted.
func (s *Service) ListWorkOrders(ctx context.Context, f WorkOrderFilter) ([]models.WorkOrderView, error) {
	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.MachineID != "" {
		filter["machine_id"] = f.MachineID
	}
	if f.DepartmentID != "" {
		machines, err := s.store.Machines.Find(ctx, bson.M{"department_id": f.DepartmentID})
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(machines))
		for _, m := range machines {
			ids = append(ids, m.ID)
		}
		filter["machine_id"] = bson.M{"$in": ids}
	}

	orders, err := s.store.WorkOrders.Find(ctx, filter, store.FindOptions{SortField: "created_at", SortDesc: true})
	if err != nil {
		return nil, err
	}
	views := make([]models.WorkOrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, s.orderView(ctx, order, nil))
	}
	return views, nil
}

// GetWorkOrder returns the denormalized order with its history, newest first.
func (s *Service) GetWorkOrder(ctx context.Context, id string) (models.WorkOrderView, error) {
	order, err := s.store.WorkOrders.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return models.WorkOrderView{}, notFound("work order")
	}
	if err != nil {
		return models.WorkOrderView{}, err
	}
	history, err := s.store.WorkOrderHistory.Find(ctx, bson.M{"work_order_id": id},
		store.FindOptions{SortField: "timestamp", SortDesc: true})
	if err != nil {
		return models.WorkOrderView{}, err
	}
	return s.orderView(ctx, order, history), nil
}

// UpdateWorkOrder merges a sparse update into the stored order.
//
// An assigned technician without elevated rights can only touch checklist,
// description, signature and notes; other supplied fields are dropped, not
// rejected. Entering status completed stamps closed_date, leaving it clears
// it. Every effective field whose value actually changes gets one history
// entry. Completing a preventive order with a recurrence spawns the next
// occurrence; that spawn never fails this call.
func (s *Service) UpdateWorkOrder(ctx context.Context, actor models.User, id string, upd models.WorkOrderUpdate) (models.WorkOrderView, error) {
	prev, err := s.store.WorkOrders.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return models.WorkOrderView{}, notFound("work order")
	}
	if err != nil {
		return models.WorkOrderView{}, err
	}

	changes := upd.Changes()
	restricted := actor.Role == models.RoleTechnician && actor.ID == prev.AssignedTo
	if restricted {
		kept := changes[:0]
		for _, ch := range changes {
			if technicianEditableFields[ch.Field] {
				kept = append(kept, ch)
			}
		}
		changes = kept
	}

	newStatus := prev.Status
	for _, ch := range changes {
		if ch.Field == "status" {
			newStatus = ch.Value.(string)
		}
	}
	if newStatus == models.StatusCompleted && prev.Status != models.StatusCompleted {
		changes = append(changes, models.FieldChange{Field: "closed_date", Value: nowISO()})
	} else if newStatus != models.StatusCompleted && prev.Status == models.StatusCompleted {
		changes = append(changes, models.FieldChange{Field: "closed_date", Value: ""})
	}

	set := bson.M{"updated_at": nowISO()}
	for _, ch := range changes {
		set[ch.Field] = ch.Value

		oldStr := stringify(prev.FieldValue(ch.Field))
		newStr := stringify(ch.Value)
		if oldStr != newStr {
			s.appendHistory(ctx, actor, id, models.ActionUpdated, ch.Field, oldStr, newStr)
		}
	}

	if _, err := s.store.WorkOrders.Update(ctx, bson.M{"id": id}, bson.M{"$set": set}); err != nil {
		return models.WorkOrderView{}, err
	}

	completing := newStatus == models.StatusCompleted && prev.Status != models.StatusCompleted
	if completing && prev.Type == models.OrderPreventive && prev.Recurrence != "" && prev.Recurrence != models.RecurrenceNone {
		if err := s.spawnNextOccurrence(ctx, actor, prev); err != nil {
			zap.S().Warnw("Failed to generate next occurrence",
				"work_order", id,
				"recurrence", prev.Recurrence,
				"error", err,
			)
		}
	}

	return s.GetWorkOrder(ctx, id)
}

// DeleteWorkOrder removes an order and cascades the delete to its history.
func (s *Service) DeleteWorkOrder(ctx context.Context, id string) error {
	deleted, err := s.store.WorkOrders.Delete(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFound("work order")
	}
	_, err = s.store.WorkOrderHistory.Delete(ctx, bson.M{"work_order_id": id})
	return err
}

// MyOrders groups the actor's assigned orders for the technician view.
type MyOrders struct {
	Preventive []models.WorkOrderView `json:"preventive"`
	Corrective []models.WorkOrderView `json:"corrective"`
	Completed  []models.WorkOrderView `json:"completed"`
	Summary    struct {
		Total      int `json:"total"`
		Pending    int `json:"pending"`
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
	} `json:"summary"`
}

// MyWorkOrders lists the actor's assigned orders grouped into open
// preventive, open corrective and completed buckets, newest first.
func (s *Service) MyWorkOrders(ctx context.Context, actor models.User) (MyOrders, error) {
	out := MyOrders{
		Preventive: []models.WorkOrderView{},
		Corrective: []models.WorkOrderView{},
		Completed:  []models.WorkOrderView{},
	}
	orders, err := s.store.WorkOrders.Find(ctx, bson.M{"assigned_to": actor.ID},
		store.FindOptions{SortField: "created_at", SortDesc: true})
	if err != nil {
		return out, err
	}
	for _, order := range orders {
		view := s.orderView(ctx, order, nil)
		out.Summary.Total++
		switch order.Status {
		case models.StatusPending:
			out.Summary.Pending++
		case models.StatusInProgress:
			out.Summary.InProgress++
		case models.StatusCompleted:
			out.Summary.Completed++
		}
		if order.Status == models.StatusCompleted {
			out.Completed = append(out.Completed, view)
			continue
		}
		if order.Type == models.OrderPreventive {
			out.Preventive = append(out.Preventive, view)
		} else {
			out.Corrective = append(out.Corrective, view)
		}
	}
	return out, nil
}

// AddWorkOrderAttachment appends an inline file to the order and records it
// in the history.
func (s *Service) AddWorkOrderAttachment(ctx context.Context, actor models.User, orderID string, att models.Attachment) (models.AttachmentInfo, error) {
	att.ID = newID()
	att.UploadedAt = nowISO()
	att.UploadedBy = actor.ID
	matched, err := s.store.WorkOrders.Push(ctx, bson.M{"id": orderID}, "attachments", att)
	if err != nil {
		return models.AttachmentInfo{}, err
	}
	if matched == 0 {
		return models.AttachmentInfo{}, notFound("work order")
	}
	s.appendHistory(ctx, actor, orderID, models.ActionAttachmentAdded, "attachments", "", att.Filename)
	return att.Info(), nil
}

func (s *Service) ListWorkOrderAttachments(ctx context.Context, orderID string) ([]models.AttachmentInfo, error) {
	order, err := s.store.WorkOrders.FindOne(ctx, bson.M{"id": orderID})
	if errors.Is(err, store.ErrNoDocument) {
		return nil, notFound("work order")
	}
	if err != nil {
		return nil, err
	}
	infos := make([]models.AttachmentInfo, 0, len(order.Attachments))
	for _, att := range order.Attachments {
		infos = append(infos, att.Info())
	}
	return infos, nil
}

func (s *Service) GetWorkOrderAttachment(ctx context.Context, orderID, attachmentID string) (models.Attachment, error) {
	order, err := s.store.WorkOrders.FindOne(ctx, bson.M{"id": orderID})
	if errors.Is(err, store.ErrNoDocument) {
		return models.Attachment{}, notFound("work order")
	}
	if err != nil {
		return models.Attachment{}, err
	}
	for _, att := range order.Attachments {
		if att.ID == attachmentID {
			return att, nil
		}
	}
	return models.Attachment{}, notFound("attachment")
}

// RemoveWorkOrderAttachment pulls the attachment and records the removal.
func (s *Service) RemoveWorkOrderAttachment(ctx context.Context, actor models.User, orderID, attachmentID string) error {
	if _, err := s.store.WorkOrders.FindOne(ctx, bson.M{"id": orderID}); err != nil {
		if errors.Is(err, store.ErrNoDocument) {
			return notFound("work order")
		}
		return err
	}
	modified, err := s.store.WorkOrders.Pull(ctx, bson.M{"id": orderID}, "attachments", bson.M{"id": attachmentID})
	if err != nil {
		return err
	}
	if modified == 0 {
		return notFound("attachment")
	}
	s.appendHistory(ctx, actor, orderID, models.ActionAttachmentRemoved, "attachments", attachmentID, "")
	return nil
}

// spawnNextOccurrence builds and creates the successor of a completed
// recurring preventive order. Observations and signature reset, the
// technician carries forward, the checklist comes fresh from the default
// template.
func (s *Service) spawnNextOccurrence(ctx context.Context, actor models.User, prev models.WorkOrder) error {
	if prev.ScheduledDate == "" || prev.Recurrence == "" {
		return nil
	}
	days, ok := recurrenceOffsets[prev.Recurrence]
	if !ok {
		return fmt.Errorf("unknown recurrence period %q", prev.Recurrence)
	}

	base, err := parseTimestamp(prev.ScheduledDate)
	if err != nil {
		base = time.Now().UTC()
	}
	next := base.Add(time.Duration(days) * 24 * time.Hour)

	req := models.WorkOrderCreateRequest{
		Title:          prev.Title,
		Type:           models.OrderPreventive,
		Priority:       prev.Priority,
		MachineID:      prev.MachineID,
		AssignedTo:     prev.AssignedTo,
		ScheduledDate:  next.UTC().Format(time.RFC3339),
		Recurrence:     prev.Recurrence,
		EstimatedHours: prev.EstimatedHours,
		Checklist:      s.freshChecklist(ctx),
	}
	_, err = s.CreateWorkOrder(ctx, actor, req)
	return err
}

// freshChecklist builds an all-unchecked checklist from the default template,
// falling back to the built-in two items when no template exists. Item ids
// are always newly generated.
func (s *Service) freshChecklist(ctx context.Context) []models.ChecklistItem {
	tpl, err := s.store.ChecklistTemplates.FindOne(ctx, bson.M{"is_default": true})
	if err != nil {
		return []models.ChecklistItem{
			{ID: newID(), Name: "Area or machine cleared", IsRequired: true, Order: 1},
			{ID: newID(), Name: "Order and cleanliness", IsRequired: true, Order: 2},
		}
	}
	items := make([]models.ChecklistItem, 0, len(tpl.Items))
	for _, item := range tpl.Items {
		items = append(items, models.ChecklistItem{
			ID:         newID(),
			Name:       item.Name,
			IsRequired: item.IsRequired,
			Order:      item.Order,
		})
	}
	return items
}

func (s *Service) appendHistory(ctx context.Context, actor models.User, orderID, action, field, oldValue, newValue string) {
	entry := models.HistoryEntry{
		ID:            newID(),
		WorkOrderID:   orderID,
		Action:        action,
		FieldChanged:  field,
		OldValue:      oldValue,
		NewValue:      newValue,
		ChangedBy:     actor.ID,
		ChangedByName: actor.Name,
		Timestamp:     nowISO(),
	}
	if err := s.store.WorkOrderHistory.Insert(ctx, entry); err != nil {
		// Audit gaps are accepted; the order write itself is what counts.
		zap.S().Warnw("Failed to append work order history", "work_order", orderID, "error", err)
	}
}

func (s *Service) orderView(ctx context.Context, order models.WorkOrder, history []models.HistoryEntry) models.WorkOrderView {
	machineName, departmentID := s.machineName(ctx, order.MachineID)
	return models.WorkOrderView{
		WorkOrder:      order,
		MachineName:    machineName,
		DepartmentName: s.departmentName(ctx, departmentID),
		AssignedToName: s.userName(ctx, order.AssignedTo),
		CreatedByName:  s.userName(ctx, order.CreatedBy),
		History:        history,
	}
}

// stringify renders a field value for history comparison. Strings pass
// through verbatim, anything structured is JSON-encoded.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}
