package models

// Work order types.
const (
	OrderPreventive = "preventive"
	OrderCorrective = "corrective"
)

// Work order priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Work order statuses.
const (
	StatusPending         = "pending"
	StatusInProgress      = "in_progress"
	StatusCompleted       = "completed"
	StatusPostponed       = "postponed"
	StatusPartiallyClosed = "partially_closed"
	StatusCancelled       = "cancelled"
)

// Recurrence periods for preventive orders.
const (
	RecurrenceNone      = "none"
	RecurrenceDaily     = "daily"
	RecurrenceWeekly    = "weekly"
	RecurrenceMonthly   = "monthly"
	RecurrenceQuarterly = "quarterly"
	RecurrenceYearly    = "yearly"
)

// ChecklistItem is one entry of a preventive order's checklist.
type ChecklistItem struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	IsRequired bool   `bson:"is_required" json:"is_required"`
	Checked    bool   `bson:"checked" json:"checked"`
	Order      int    `bson:"order" json:"order"`
}

// WorkOrder is the stored maintenance task document. Date fields hold
// ISO 8601 strings as written by the API; ClosedDate is maintained solely by
// status transitions. Corrective-only and preventive-only fields are blanked
// for the other type at creation.
type WorkOrder struct {
	ID                  string          `bson:"id" json:"id"`
	Title               string          `bson:"title" json:"title"`
	Description         string          `bson:"description" json:"description"`
	Type                string          `bson:"type" json:"type"`
	Priority            string          `bson:"priority" json:"priority"`
	Status              string          `bson:"status" json:"status"`
	MachineID           string          `bson:"machine_id" json:"machine_id"`
	AssignedTo          string          `bson:"assigned_to" json:"assigned_to"`
	CreatedBy           string          `bson:"created_by" json:"created_by"`
	ScheduledDate       string          `bson:"scheduled_date" json:"scheduled_date"`
	CompletedDate       string          `bson:"completed_date" json:"completed_date"`
	ClosedDate          string          `bson:"closed_date" json:"closed_date"`
	Recurrence          string          `bson:"recurrence" json:"recurrence"`
	EstimatedHours      float64         `bson:"estimated_hours" json:"estimated_hours"`
	PartNumber          string          `bson:"part_number" json:"part_number"`
	FailureCause        string          `bson:"failure_cause" json:"failure_cause"`
	SparePartUsed       string          `bson:"spare_part_used" json:"spare_part_used"`
	SparePartReference  string          `bson:"spare_part_reference" json:"spare_part_reference"`
	Checklist           []ChecklistItem `bson:"checklist" json:"checklist"`
	TechnicianSignature string          `bson:"technician_signature" json:"technician_signature"`
	Notes               string          `bson:"notes" json:"notes"`
	Attachments         []Attachment    `bson:"attachments" json:"attachments"`
	PostponedDate       string          `bson:"postponed_date" json:"postponed_date"`
	PostponeReason      string          `bson:"postpone_reason" json:"postpone_reason"`
	PartialCloseNotes   string          `bson:"partial_close_notes" json:"partial_close_notes"`
	CreatedAt           string          `bson:"created_at" json:"created_at"`
	UpdatedAt           string          `bson:"updated_at" json:"updated_at"`
}

// WorkOrderView is the denormalized representation returned by the API.
type WorkOrderView struct {
	WorkOrder
	MachineName    string         `json:"machine_name"`
	DepartmentName string         `json:"department_name"`
	AssignedToName string         `json:"assigned_to_name"`
	CreatedByName  string         `json:"created_by_name"`
	History        []HistoryEntry `json:"history"`
}

type WorkOrderCreateRequest struct {
	Title               string          `json:"title" binding:"required"`
	Description         string          `json:"description"`
	Type                string          `json:"type" binding:"required"`
	Priority            string          `json:"priority"`
	MachineID           string          `json:"machine_id" binding:"required"`
	AssignedTo          string          `json:"assigned_to"`
	ScheduledDate       string          `json:"scheduled_date"`
	Recurrence          string          `json:"recurrence"`
	EstimatedHours      float64         `json:"estimated_hours"`
	PartNumber          string          `json:"part_number"`
	FailureCause        string          `json:"failure_cause"`
	SparePartUsed       string          `json:"spare_part_used"`
	SparePartReference  string          `json:"spare_part_reference"`
	Checklist           []ChecklistItem `json:"checklist"`
	TechnicianSignature string          `json:"technician_signature"`
}

// WorkOrderUpdate is a sparse update: only non-nil fields apply.
type WorkOrderUpdate struct {
	Title               *string          `json:"title"`
	Description         *string          `json:"description"`
	Priority            *string          `json:"priority"`
	Status              *string          `json:"status"`
	AssignedTo          *string          `json:"assigned_to"`
	ScheduledDate       *string          `json:"scheduled_date"`
	CompletedDate       *string          `json:"completed_date"`
	Notes               *string          `json:"notes"`
	PartNumber          *string          `json:"part_number"`
	FailureCause        *string          `json:"failure_cause"`
	SparePartUsed       *string          `json:"spare_part_used"`
	SparePartReference  *string          `json:"spare_part_reference"`
	Checklist           *[]ChecklistItem `json:"checklist"`
	TechnicianSignature *string          `json:"technician_signature"`
	PostponedDate       *string          `json:"postponed_date"`
	PostponeReason      *string          `json:"postpone_reason"`
	PartialCloseNotes   *string          `json:"partial_close_notes"`
}

// FieldChange pairs a document field name with its requested new value.
type FieldChange struct {
	Field string
	Value any
}

// Changes lists the supplied fields in stable document order.
func (u WorkOrderUpdate) Changes() []FieldChange {
	var out []FieldChange
	add := func(field string, p *string) {
		if p != nil {
			out = append(out, FieldChange{Field: field, Value: *p})
		}
	}
	add("title", u.Title)
	add("description", u.Description)
	add("priority", u.Priority)
	add("status", u.Status)
	add("assigned_to", u.AssignedTo)
	add("scheduled_date", u.ScheduledDate)
	add("completed_date", u.CompletedDate)
	add("notes", u.Notes)
	add("part_number", u.PartNumber)
	add("failure_cause", u.FailureCause)
	add("spare_part_used", u.SparePartUsed)
	add("spare_part_reference", u.SparePartReference)
	if u.Checklist != nil {
		out = append(out, FieldChange{Field: "checklist", Value: *u.Checklist})
	}
	add("technician_signature", u.TechnicianSignature)
	add("postponed_date", u.PostponedDate)
	add("postpone_reason", u.PostponeReason)
	add("partial_close_notes", u.PartialCloseNotes)
	return out
}

// FieldValue returns the stored value of a document field tracked by updates.
func (o WorkOrder) FieldValue(field string) any {
	switch field {
	case "title":
		return o.Title
	case "description":
		return o.Description
	case "priority":
		return o.Priority
	case "status":
		return o.Status
	case "assigned_to":
		return o.AssignedTo
	case "scheduled_date":
		return o.ScheduledDate
	case "completed_date":
		return o.CompletedDate
	case "closed_date":
		return o.ClosedDate
	case "notes":
		return o.Notes
	case "part_number":
		return o.PartNumber
	case "failure_cause":
		return o.FailureCause
	case "spare_part_used":
		return o.SparePartUsed
	case "spare_part_reference":
		return o.SparePartReference
	case "checklist":
		return o.Checklist
	case "technician_signature":
		return o.TechnicianSignature
	case "postponed_date":
		return o.PostponedDate
	case "postpone_reason":
		return o.PostponeReason
	case "partial_close_notes":
		return o.PartialCloseNotes
	}
	return nil
}
