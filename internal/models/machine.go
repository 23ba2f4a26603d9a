package models

// Machine status values.
const (
	MachineOperational   = "operational"
	MachineInMaintenance = "in_maintenance"
	MachineOutOfService  = "out_of_service"
)

type Machine struct {
	ID           string       `bson:"id" json:"id"`
	Name         string       `bson:"name" json:"name"`
	Code         string       `bson:"code" json:"code"`
	DepartmentID string       `bson:"department_id" json:"department_id"`
	Description  string       `bson:"description" json:"description"`
	Brand        string       `bson:"brand" json:"brand"`
	Model        string       `bson:"model" json:"model"`
	SerialNumber string       `bson:"serial_number" json:"serial_number"`
	Status       string       `bson:"status" json:"status"`
	Attachments  []Attachment `bson:"attachments" json:"attachments"`
	CreatedAt    string       `bson:"created_at" json:"created_at"`
}

type MachineView struct {
	Machine
	DepartmentName string `json:"department_name"`
}

type MachineRequest struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required"`
	Description  string `json:"description"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Status       string `json:"status"`
}
