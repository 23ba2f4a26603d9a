package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	Orders struct {
		Total      int `json:"total"`
		Pending    int `json:"pending"`
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
		Preventive int `json:"preventive"`
		Corrective int `json:"corrective"`
	} `json:"orders"`
	Machines struct {
		Total        int `json:"total"`
		Operational  int `json:"operational"`
		Maintenance  int `json:"in_maintenance"`
		OutOfService int `json:"out_of_service"`
	} `json:"machines"`
	LowStockParts   int `json:"low_stock_parts"`
	PendingRequests int `json:"pending_part_requests"`
}

func (s *Service) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	orders, err := s.store.WorkOrders.Find(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	for _, order := range orders {
		stats.Orders.Total++
		switch order.Status {
		case models.StatusPending:
			stats.Orders.Pending++
		case models.StatusInProgress:
			stats.Orders.InProgress++
		case models.StatusCompleted:
			stats.Orders.Completed++
		}
		switch order.Type {
		case models.OrderPreventive:
			stats.Orders.Preventive++
		case models.OrderCorrective:
			stats.Orders.Corrective++
		}
	}

	machines, err := s.store.Machines.Find(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	for _, m := range machines {
		stats.Machines.Total++
		switch m.Status {
		case models.MachineOperational:
			stats.Machines.Operational++
		case models.MachineInMaintenance:
			stats.Machines.Maintenance++
		case models.MachineOutOfService:
			stats.Machines.OutOfService++
		}
	}

	parts, err := s.store.SpareParts.Find(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	for _, part := range parts {
		if part.StockStatus() == models.StockLow {
			stats.LowStockParts++
		}
	}

	pending, err := s.store.SparePartRequests.Count(ctx, bson.M{"status": models.RequestPending})
	if err != nil {
		return stats, err
	}
	stats.PendingRequests = int(pending)
	return stats, nil
}

// RecentWorkOrders returns the newest orders, history omitted.
func (s *Service) RecentWorkOrders(ctx context.Context, limit int64) ([]models.WorkOrderView, error) {
	if limit <= 0 {
		limit = 10
	}
	orders, err := s.store.WorkOrders.Find(ctx, bson.M{},
		store.FindOptions{SortField: "created_at", SortDesc: true, Limit: limit})
	if err != nil {
		return nil, err
	}
	views := make([]models.WorkOrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, s.orderView(ctx, order, nil))
	}
	return views, nil
}

// CalendarEntry groups scheduled orders by day.
type CalendarEntry struct {
	Date   string                 `json:"date"`
	Orders []models.WorkOrderView `json:"orders"`
}

// WorkOrderCalendar buckets orders by their scheduled day. Orders without a
// parsable scheduled date are skipped.
func (s *Service) WorkOrderCalendar(ctx context.Context) ([]CalendarEntry, error) {
	orders, err := s.store.WorkOrders.Find(ctx, bson.M{"scheduled_date": bson.M{"$ne": ""}})
	if err != nil {
		return nil, err
	}
	byDay := map[string][]models.WorkOrderView{}
	for _, order := range orders {
		t, err := parseTimestamp(order.ScheduledDate)
		if err != nil {
			continue
		}
		day := t.Format("2006-01-02")
		byDay[day] = append(byDay[day], s.orderView(ctx, order, nil))
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	entries := make([]CalendarEntry, 0, len(days))
	for _, day := range days {
		entries = append(entries, CalendarEntry{Date: day, Orders: byDay[day]})
	}
	return entries, nil
}

// MonthlyTypeCount is one month's preventive/corrective split.
type MonthlyTypeCount struct {
	Month      string `json:"month"`
	Preventive int    `json:"preventive"`
	Corrective int    `json:"corrective"`
}

// PreventiveVsCorrective counts orders per creation month and type. Orders
// with unparsable creation dates are skipped.
func (s *Service) PreventiveVsCorrective(ctx context.Context) ([]MonthlyTypeCount, error) {
	orders, err := s.store.WorkOrders.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	byMonth := map[string]*MonthlyTypeCount{}
	for _, order := range orders {
		t, err := parseTimestamp(order.CreatedAt)
		if err != nil {
			continue
		}
		month := t.Format("2006-01")
		entry, ok := byMonth[month]
		if !ok {
			entry = &MonthlyTypeCount{Month: month}
			byMonth[month] = entry
		}
		switch order.Type {
		case models.OrderPreventive:
			entry.Preventive++
		case models.OrderCorrective:
			entry.Corrective++
		}
	}
	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	out := make([]MonthlyTypeCount, 0, len(months))
	for _, month := range months {
		out = append(out, *byMonth[month])
	}
	return out, nil
}

// CauseCount is one failure cause's share of corrective orders.
type CauseCount struct {
	Cause string `json:"cause"`
	Count int    `json:"count"`
}

// FailureCauses tallies corrective orders by failure cause, most frequent
// first. Orders without a recorded cause are skipped.
func (s *Service) FailureCauses(ctx context.Context) ([]CauseCount, error) {
	orders, err := s.store.WorkOrders.Find(ctx, bson.M{"type": models.OrderCorrective})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, order := range orders {
		if order.FailureCause == "" {
			continue
		}
		counts[order.FailureCause]++
	}
	out := make([]CauseCount, 0, len(counts))
	for cause, count := range counts {
		out = append(out, CauseCount{Cause: cause, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Cause < out[j].Cause
	})
	return out, nil
}

// PreventiveCompliance summarizes how preventive orders close against their
// schedule.
type PreventiveCompliance struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletedLate  int     `json:"completed_late"`
	Open           int     `json:"open"`
	CompletionRate float64 `json:"completion_rate"`
	OnTimeRate     float64 `json:"on_time_rate"`
}

// PreventiveComplianceStats computes completion and punctuality rates over
// all preventive orders. An order counts as late when it closed after its
// scheduled day; orders with unparsable dates count as on time.
func (s *Service) PreventiveComplianceStats(ctx context.Context) (PreventiveCompliance, error) {
	var stats PreventiveCompliance

	orders, err := s.store.WorkOrders.Find(ctx, bson.M{"type": models.OrderPreventive})
	if err != nil {
		return stats, err
	}
	for _, order := range orders {
		stats.Total++
		if order.Status != models.StatusCompleted {
			stats.Open++
			continue
		}
		stats.Completed++
		scheduled, err1 := parseTimestamp(order.ScheduledDate)
		closed, err2 := parseTimestamp(order.ClosedDate)
		if err1 == nil && err2 == nil && closed.Format("2006-01-02") > scheduled.Format("2006-01-02") {
			stats.CompletedLate++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = round1(100 * float64(stats.Completed) / float64(stats.Total))
	}
	if stats.Completed > 0 {
		stats.OnTimeRate = round1(100 * float64(stats.Completed-stats.CompletedLate) / float64(stats.Completed))
	}
	return stats, nil
}

// StopsAnalytics breaks stoppage time down by type and machine.
type StopsAnalytics struct {
	TotalStops   int          `json:"total_stops"`
	TotalMinutes int          `json:"total_minutes"`
	ByType       []StopsGroup `json:"by_type"`
	ByMachine    []StopsGroup `json:"by_machine"`
}

type StopsGroup struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Minutes int    `json:"minutes"`
}

// AnalyzeStops aggregates recorded stops. Stops without a derived duration
// still count but contribute no minutes.
func (s *Service) AnalyzeStops(ctx context.Context) (StopsAnalytics, error) {
	var stats StopsAnalytics

	stops, err := s.store.Stops.Find(ctx, bson.M{})
	if err != nil {
		return stats, err
	}
	byType := map[string]*StopsGroup{}
	byMachine := map[string]*StopsGroup{}
	var typeOrder, machineOrder []string

	for _, stop := range stops {
		stats.TotalStops++
		minutes := 0
		if stop.DurationMinutes != nil {
			minutes = *stop.DurationMinutes
		}
		stats.TotalMinutes += minutes

		if _, ok := byType[stop.StopType]; !ok {
			byType[stop.StopType] = &StopsGroup{Key: stop.StopType, Name: stop.StopType}
			typeOrder = append(typeOrder, stop.StopType)
		}
		byType[stop.StopType].Count++
		byType[stop.StopType].Minutes += minutes

		if _, ok := byMachine[stop.MachineID]; !ok {
			name, _ := s.machineName(ctx, stop.MachineID)
			byMachine[stop.MachineID] = &StopsGroup{Key: stop.MachineID, Name: name}
			machineOrder = append(machineOrder, stop.MachineID)
		}
		byMachine[stop.MachineID].Count++
		byMachine[stop.MachineID].Minutes += minutes
	}

	for _, key := range typeOrder {
		stats.ByType = append(stats.ByType, *byType[key])
	}
	for _, key := range machineOrder {
		stats.ByMachine = append(stats.ByMachine, *byMachine[key])
	}
	return stats, nil
}

// AnalyzeLineStarts is the reporting view over line-start punctuality, the
// same aggregation the compliance endpoint serves.
func (s *Service) AnalyzeLineStarts(ctx context.Context, dateFrom, dateTo string) (ComplianceStats, error) {
	return s.LineStartComplianceStats(ctx, dateFrom, dateTo)
}
