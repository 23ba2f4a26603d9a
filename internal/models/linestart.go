package models

// LineStart records one day's start of a production line against its target
// time. OnTime/DelayMinutes are derived at write time; a malformed clock
// value leaves the record on time with zero delay.
type LineStart struct {
	ID              string `bson:"id" json:"id"`
	LineID          string `bson:"line_id" json:"line_id"`
	Date            string `bson:"date" json:"date"`
	ActualStartTime string `bson:"actual_start_time" json:"actual_start_time"`
	DelayMinutes    int    `bson:"delay_minutes" json:"delay_minutes"`
	DelayReason     string `bson:"delay_reason" json:"delay_reason"`
	OnTime          bool   `bson:"on_time" json:"on_time"`
	Notes           string `bson:"notes" json:"notes"`
	CreatedBy       string `bson:"created_by" json:"created_by"`
	CreatedAt       string `bson:"created_at" json:"created_at"`
}

type LineStartView struct {
	LineStart
	LineName        string `json:"line_name"`
	TargetStartTime string `json:"target_start_time"`
	DepartmentName  string `json:"department_name"`
	CreatedByName   string `json:"created_by_name"`
}

type LineStartRequest struct {
	LineID          string `json:"line_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	ActualStartTime string `json:"actual_start_time" binding:"required"`
	DelayReason     string `json:"delay_reason"`
	Notes           string `json:"notes"`
}
