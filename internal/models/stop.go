package models

// Stop type taxonomy for machine stoppages.
const (
	StopBreakdown       = "breakdown"
	StopQuality         = "quality"
	StopLackOfResources = "lack_of_resources"
	StopMaintenance     = "maintenance"
	StopFormatChange    = "format_change"
	StopOther           = "other"
)

// Stop records one machine stoppage. DurationMinutes is derived from
// start/end and stays nil when either timestamp is missing or unparsable.
type Stop struct {
	ID              string `bson:"id" json:"id"`
	MachineID       string `bson:"machine_id" json:"machine_id"`
	StopType        string `bson:"stop_type" json:"stop_type"`
	Reason          string `bson:"reason" json:"reason"`
	StartTime       string `bson:"start_time" json:"start_time"`
	EndTime         string `bson:"end_time" json:"end_time"`
	DurationMinutes *int   `bson:"duration_minutes" json:"duration_minutes"`
	Notes           string `bson:"notes" json:"notes"`
	CreatedBy       string `bson:"created_by" json:"created_by"`
	CreatedAt       string `bson:"created_at" json:"created_at"`
}

type StopView struct {
	Stop
	MachineName    string `json:"machine_name"`
	DepartmentName string `json:"department_name"`
	CreatedByName  string `json:"created_by_name"`
}

type StopRequest struct {
	MachineID string `json:"machine_id" binding:"required"`
	StopType  string `json:"stop_type" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

// StopUpdate is sparse; only non-nil fields are applied.
type StopUpdate struct {
	StopType *string `json:"stop_type"`
	Reason   *string `json:"reason"`
	EndTime  *string `json:"end_time"`
	Notes    *string `json:"notes"`
}
