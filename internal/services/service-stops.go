package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

// CreateStop records a machine stoppage. Duration is derived from the
// start/end timestamps; when either is missing or unparsable it stays unset.
func (s *Service) CreateStop(ctx context.Context, actor models.User, req models.StopRequest) (models.StopView, error) {
	if _, err := s.GetMachine(ctx, req.MachineID); err != nil {
		return models.StopView{}, err
	}
	stop := models.Stop{
		ID:              newID(),
		MachineID:       req.MachineID,
		StopType:        req.StopType,
		Reason:          req.Reason,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: durationMinutes(req.StartTime, req.EndTime),
		Notes:           req.Notes,
		CreatedBy:       actor.ID,
		CreatedAt:       nowISO(),
	}
	if err := s.store.Stops.Insert(ctx, stop); err != nil {
		return models.StopView{}, err
	}
	return s.stopView(ctx, stop), nil
}

func (s *Service) ListStops(ctx context.Context, machineID, stopType string) ([]models.StopView, error) {
	filter := bson.M{}
	if machineID != "" {
		filter["machine_id"] = machineID
	}
	if stopType != "" {
		filter["stop_type"] = stopType
	}
	stops, err := s.store.Stops.Find(ctx, filter, store.FindOptions{SortField: "start_time", SortDesc: true})
	if err != nil {
		return nil, err
	}
	views := make([]models.StopView, 0, len(stops))
	for _, stop := range stops {
		views = append(views, s.stopView(ctx, stop))
	}
	return views, nil
}

// UpdateStop applies the supplied fields and rederives the duration when the
// end time changes.
func (s *Service) UpdateStop(ctx context.Context, id string, upd models.StopUpdate) (models.StopView, error) {
	stop, err := s.store.Stops.FindOne(ctx, bson.M{"id": id})
	if errors.Is(err, store.ErrNoDocument) {
		return models.StopView{}, notFound("stop")
	}
	if err != nil {
		return models.StopView{}, err
	}

	set := bson.M{}
	if upd.StopType != nil {
		set["stop_type"] = *upd.StopType
	}
	if upd.Reason != nil {
		set["reason"] = *upd.Reason
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if upd.EndTime != nil {
		set["end_time"] = *upd.EndTime
		set["duration_minutes"] = durationMinutes(stop.StartTime, *upd.EndTime)
	}
	if len(set) > 0 {
		if _, err := s.store.Stops.Update(ctx, bson.M{"id": id}, bson.M{"$set": set}); err != nil {
			return models.StopView{}, err
		}
	}
	stop, err = s.store.Stops.FindOne(ctx, bson.M{"id": id})
	if err != nil {
		return models.StopView{}, err
	}
	return s.stopView(ctx, stop), nil
}

func (s *Service) DeleteStop(ctx context.Context, id string) error {
	deleted, err := s.store.Stops.Delete(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFound("stop")
	}
	return nil
}

func (s *Service) stopView(ctx context.Context, stop models.Stop) models.StopView {
	machineName, departmentID := s.machineName(ctx, stop.MachineID)
	return models.StopView{
		Stop:           stop,
		MachineName:    machineName,
		DepartmentName: s.departmentName(ctx, departmentID),
		CreatedByName:  s.userName(ctx, stop.CreatedBy),
	}
}

// durationMinutes computes end-start in whole minutes, nil when either
// timestamp is absent or unparsable.
func durationMinutes(start, end string) *int {
	if start == "" || end == "" {
		return nil
	}
	st, err := parseTimestamp(start)
	if err != nil {
		return nil
	}
	et, err := parseTimestamp(end)
	if err != nil {
		return nil
	}
	minutes := int(et.Sub(st).Minutes())
	return &minutes
}

// parseTimestamp accepts RFC3339 with or without offset or sub-second parts.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp " + value)
}
