package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

// CreateLineStart records one day's start of a production line. Delay is
// derived from the line's target start time; a malformed clock value leaves
// the record on time with zero delay.
func (s *Service) CreateLineStart(ctx context.Context, actor models.User, req models.LineStartRequest) (models.LineStartView, error) {
	line, err := s.GetProductionLine(ctx, req.LineID)
	if err != nil {
		return models.LineStartView{}, err
	}

	delay, onTime := startDelay(line.TargetStartTime, req.ActualStartTime)
	start := models.LineStart{
		ID:              newID(),
		LineID:          req.LineID,
		Date:            req.Date,
		ActualStartTime: req.ActualStartTime,
		DelayMinutes:    delay,
		DelayReason:     req.DelayReason,
		OnTime:          onTime,
		Notes:           req.Notes,
		CreatedBy:       actor.ID,
		CreatedAt:       nowISO(),
	}
	if err := s.store.LineStarts.Insert(ctx, start); err != nil {
		return models.LineStartView{}, err
	}
	return s.lineStartView(ctx, start), nil
}

func (s *Service) ListLineStarts(ctx context.Context, lineID, dateFrom, dateTo string) ([]models.LineStartView, error) {
	filter := bson.M{}
	if lineID != "" {
		filter["line_id"] = lineID
	}
	if dateFrom != "" || dateTo != "" {
		dates := bson.M{}
		if dateFrom != "" {
			dates["$gte"] = dateFrom
		}
		if dateTo != "" {
			dates["$lte"] = dateTo
		}
		filter["date"] = dates
	}
	starts, err := s.store.LineStarts.Find(ctx, filter, store.FindOptions{SortField: "date", SortDesc: true})
	if err != nil {
		return nil, err
	}
	views := make([]models.LineStartView, 0, len(starts))
	for _, start := range starts {
		views = append(views, s.lineStartView(ctx, start))
	}
	return views, nil
}

func (s *Service) DeleteLineStart(ctx context.Context, id string) error {
	deleted, err := s.store.LineStarts.Delete(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFound("line start")
	}
	return nil
}

// ComplianceStats summarizes line-start punctuality.
type ComplianceStats struct {
	Summary struct {
		TotalStarts    int     `json:"total_starts"`
		OnTime         int     `json:"on_time"`
		Late           int     `json:"late"`
		ComplianceRate float64 `json:"compliance_rate"`
		AvgDelay       float64 `json:"avg_delay_minutes"`
	} `json:"summary"`
	ByDepartment []GroupCompliance `json:"by_department"`
	ByLine       []GroupCompliance `json:"by_line"`
	Daily        []DailyCompliance `json:"daily"`
}

type GroupCompliance struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TotalStarts    int     `json:"total_starts"`
	OnTime         int     `json:"on_time"`
	ComplianceRate float64 `json:"compliance_rate"`
	AvgDelay       float64 `json:"avg_delay_minutes"`
}

type DailyCompliance struct {
	Date        string `json:"date"`
	TotalStarts int    `json:"total_starts"`
	OnTime      int    `json:"on_time"`
	Late        int    `json:"late"`
}

// LineStartComplianceStats aggregates all recorded starts in the optional
// date window into an overall summary plus per-department, per-line and
// per-day breakdowns.
func (s *Service) LineStartComplianceStats(ctx context.Context, dateFrom, dateTo string) (ComplianceStats, error) {
	var stats ComplianceStats

	starts, err := s.ListLineStarts(ctx, "", dateFrom, dateTo)
	if err != nil {
		return stats, err
	}

	type bucket struct {
		name   string
		total  int
		onTime int
		delay  int
	}
	byDept := map[string]*bucket{}
	byLine := map[string]*bucket{}
	byDay := map[string]*DailyCompliance{}
	var deptOrder, lineOrder, dayOrder []string
	totalDelay := 0

	for _, start := range starts {
		stats.Summary.TotalStarts++
		if start.OnTime {
			stats.Summary.OnTime++
		} else {
			stats.Summary.Late++
		}
		totalDelay += start.DelayMinutes

		line, err := s.store.ProductionLines.FindOne(ctx, bson.M{"id": start.LineID})
		if err != nil {
			continue
		}
		if _, ok := byLine[line.ID]; !ok {
			byLine[line.ID] = &bucket{name: line.Name}
			lineOrder = append(lineOrder, line.ID)
		}
		if _, ok := byDept[line.DepartmentID]; !ok {
			byDept[line.DepartmentID] = &bucket{name: s.departmentName(ctx, line.DepartmentID)}
			deptOrder = append(deptOrder, line.DepartmentID)
		}
		for _, b := range []*bucket{byLine[line.ID], byDept[line.DepartmentID]} {
			b.total++
			if start.OnTime {
				b.onTime++
			}
			b.delay += start.DelayMinutes
		}
		if _, ok := byDay[start.Date]; !ok {
			byDay[start.Date] = &DailyCompliance{Date: start.Date}
			dayOrder = append(dayOrder, start.Date)
		}
		day := byDay[start.Date]
		day.TotalStarts++
		if start.OnTime {
			day.OnTime++
		} else {
			day.Late++
		}
	}

	if stats.Summary.TotalStarts > 0 {
		stats.Summary.ComplianceRate = round1(100 * float64(stats.Summary.OnTime) / float64(stats.Summary.TotalStarts))
		stats.Summary.AvgDelay = round1(float64(totalDelay) / float64(stats.Summary.TotalStarts))
	}

	collect := func(order []string, m map[string]*bucket) []GroupCompliance {
		out := make([]GroupCompliance, 0, len(order))
		for _, id := range order {
			b := m[id]
			g := GroupCompliance{ID: id, Name: b.name, TotalStarts: b.total, OnTime: b.onTime}
			if b.total > 0 {
				g.ComplianceRate = round1(100 * float64(b.onTime) / float64(b.total))
				g.AvgDelay = round1(float64(b.delay) / float64(b.total))
			}
			out = append(out, g)
		}
		return out
	}
	stats.ByDepartment = collect(deptOrder, byDept)
	stats.ByLine = collect(lineOrder, byLine)
	stats.Daily = make([]DailyCompliance, 0, len(dayOrder))
	for _, date := range dayOrder {
		stats.Daily = append(stats.Daily, *byDay[date])
	}
	return stats, nil
}

func (s *Service) lineStartView(ctx context.Context, start models.LineStart) models.LineStartView {
	view := models.LineStartView{
		LineStart:     start,
		CreatedByName: s.userName(ctx, start.CreatedBy),
	}
	line, err := s.store.ProductionLines.FindOne(ctx, bson.M{"id": start.LineID})
	if err == nil {
		view.LineName = line.Name
		view.TargetStartTime = line.TargetStartTime
		view.DepartmentName = s.departmentName(ctx, line.DepartmentID)
	}
	return view
}

// startDelay compares "HH:MM" clock values. Parse failure yields on time
// with zero delay.
func startDelay(target, actual string) (delayMinutes int, onTime bool) {
	tt, err1 := time.Parse("15:04", target)
	at, err2 := time.Parse("15:04", actual)
	if err1 != nil || err2 != nil {
		return 0, true
	}
	delta := int(at.Sub(tt).Minutes())
	if delta <= 0 {
		return 0, true
	}
	return delta, false
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
