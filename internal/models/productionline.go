package models

// Production line status values.
const (
	LineActive   = "active"
	LineInactive = "inactive"
)

// ProductionLine groups machines of a department and carries the target
// start-of-shift time ("HH:MM") used for punctuality tracking.
type ProductionLine struct {
	ID              string `bson:"id" json:"id"`
	Name            string `bson:"name" json:"name"`
	Code            string `bson:"code" json:"code"`
	DepartmentID    string `bson:"department_id" json:"department_id"`
	Description     string `bson:"description" json:"description"`
	TargetStartTime string `bson:"target_start_time" json:"target_start_time"`
	Status          string `bson:"status" json:"status"`
	CreatedAt       string `bson:"created_at" json:"created_at"`
}

// ProductionLineView adds display names resolved from related documents.
type ProductionLineView struct {
	ProductionLine
	DepartmentName string `json:"department_name"`
}

type ProductionLineRequest struct {
	Name            string `json:"name" binding:"required"`
	Code            string `json:"code" binding:"required"`
	DepartmentID    string `json:"department_id" binding:"required"`
	Description     string `json:"description"`
	TargetStartTime string `json:"target_start_time"`
}
