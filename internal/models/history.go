package models

// History actions.
const (
	ActionCreated           = "created"
	ActionUpdated           = "updated"
	ActionAttachmentAdded   = "attachment_added"
	ActionAttachmentRemoved = "attachment_removed"
)

// HistoryEntry is an append-only audit record of one lifecycle event or
// field change on a work order. Entries are never mutated; they are deleted
// only when their work order is deleted.
type HistoryEntry struct {
	ID            string `bson:"id" json:"id"`
	WorkOrderID   string `bson:"work_order_id" json:"work_order_id"`
	Action        string `bson:"action" json:"action"`
	FieldChanged  string `bson:"field_changed" json:"field_changed"`
	OldValue      string `bson:"old_value" json:"old_value"`
	NewValue      string `bson:"new_value" json:"new_value"`
	ChangedBy     string `bson:"changed_by" json:"changed_by"`
	ChangedByName string `bson:"changed_by_name" json:"changed_by_name"`
	Timestamp     string `bson:"timestamp" json:"timestamp"`
}
