package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

func (s *Service) CreateMachine(ctx context.Context, req models.MachineRequest) (models.MachineView, error) {
	if _, err := s.GetDepartment(ctx, req.DepartmentID); err != nil {
		return models.MachineView{}, err
	}
	status := req.Status
	if status == "" {
		status = models.MachineOperational
	}
	machine := models.Machine{
		ID:           newID(),
		Name:         req.Name,
		Code:         req.Code,
		DepartmentID: req.DepartmentID,
		Description:  req.Description,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Status:       status,
		Attachments:  []models.Attachment{},
		CreatedAt:    nowISO(),
	}
	if err := s.store.Machines.Insert(ctx, machine); err != nil {
		return models.MachineView{}, err
	}
	return s.machineView(ctx, machine), nil
}

func (s *Service) ListMachines(ctx context.Context, departmentID string) ([]models.MachineView, error) {
	filter := bson.M{}
	if departmentID != "" {
		filter["department_id"] = departmentID
	}
	machines, err := s.store.Machines.Find(ctx, filter, store.FindOptions{SortField: "name"})
	if err != nil {
		return nil, err
	}
	views := make([]models.MachineView, 0, len(machines))
	for _, m := range machines {
		views = append(views, s.machineView(ctx, m))
	}
	return views, nil
}

func (s *Service) GetMachine(ctx context.Context, id string) (models.MachineView, error) {
	machine, err := s.store.Machines.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return models.MachineView{}, notFound("machine")
	}
	if err != nil {
		return models.MachineView{}, err
	}
	return s.machineView(ctx, machine), nil
}

func (s *Service) UpdateMachine(ctx context.Context, id string, req models.MachineRequest) (models.MachineView, error) {
	set := bson.M{
		"name":          req.Name,
		"code":          req.Code,
		"department_id": req.DepartmentID,
		"description":   req.Description,
		"brand":         req.Brand,
		"model":         req.Model,
		"serial_number": req.SerialNumber,
	}
	if req.Status != "" {
		set["status"] = req.Status
	}
	matched, err := s.store.Machines.Update(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return models.MachineView{}, err
	}
	if matched == 0 {
		return models.MachineView{}, notFound("machine")
	}
	return s.GetMachine(ctx, id)
}

// DeleteMachine refuses while work orders still reference the machine.
func (s *Service) DeleteMachine(ctx context.Context, id string) error {
	if _, err := s.GetMachine(ctx, id); err != nil {
		return err
	}
	orders, err := s.store.WorkOrders.Count(ctx, bson.M{"machine_id": id})
	if err != nil {
		return err
	}
	if orders > 0 {
		return conflict("machine has %d work orders", orders)
	}
	_, err = s.store.Machines.Delete(ctx, bson.M{"id": id})
	return err
}

// AddMachineAttachment appends an inline file to the machine document.
func (s *Service) AddMachineAttachment(ctx context.Context, machineID string, att models.Attachment) (models.AttachmentInfo, error) {
	att.ID = newID()
	att.UploadedAt = nowISO()
	matched, err := s.store.Machines.Push(ctx, bson.M{"id": machineID}, "attachments", att)
	if err != nil {
		return models.AttachmentInfo{}, err
	}
	if matched == 0 {
		return models.AttachmentInfo{}, notFound("machine")
	}
	return att.Info(), nil
}

func (s *Service) ListMachineAttachments(ctx context.Context, machineID string) ([]models.AttachmentInfo, error) {
	machine, err := s.store.Machines.FindOne(ctx, bson.M{"id": machineID})
	if errors.Is(err, store.ErrNoDocument) {
		return nil, notFound("machine")
	}
	if err != nil {
		return nil, err
	}
	infos := make([]models.AttachmentInfo, 0, len(machine.Attachments))
	for _, att := range machine.Attachments {
		infos = append(infos, att.Info())
	}
	return infos, nil
}

// GetMachineAttachment returns the full attachment including its payload.
func (s *Service) GetMachineAttachment(ctx context.Context, machineID, attachmentID string) (models.Attachment, error) {
	machine, err := s.store.Machines.FindOne(ctx, bson.M{"id": machineID})
	if errors.Is(err, store.ErrNoDocument) {
		return models.Attachment{}, notFound("machine")
	}
	if err != nil {
		return models.Attachment{}, err
	}
	for _, att := range machine.Attachments {
		if att.ID == attachmentID {
			return att, nil
		}
	}
	return models.Attachment{}, notFound("attachment")
}

func (s *Service) RemoveMachineAttachment(ctx context.Context, machineID, attachmentID string) error {
	if _, err := s.GetMachine(ctx, machineID); err != nil {
		return err
	}
	modified, err := s.store.Machines.Pull(ctx, bson.M{"id": machineID}, "attachments", bson.M{"id": attachmentID})
	if err != nil {
		return err
	}
	if modified == 0 {
		return notFound("attachment")
	}
	return nil
}

func (s *Service) machineView(ctx context.Context, machine models.Machine) models.MachineView {
	return models.MachineView{
		Machine:        machine,
		DepartmentName: s.departmentName(ctx, machine.DepartmentID),
	}
}

func (s *Service) machineName(ctx context.Context, id string) (name, departmentID string) {
	if id == "" {
		return "", ""
	}
	machine, err := s.store.Machines.FindOne(ctx, bson.M{"id": id})
	if err != nil {
		return "", ""
	}
	return machine.Name, machine.DepartmentID
}
