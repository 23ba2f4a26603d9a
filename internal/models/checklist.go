package models

// ChecklistTemplate is a reusable named checklist. Exactly one template is
// flagged as default and is the source of fresh checklists for recurring
// preventive orders.
type ChecklistTemplate struct {
	ID        string                  `bson:"id" json:"id"`
	Name      string                  `bson:"name" json:"name"`
	Items     []ChecklistTemplateItem `bson:"items" json:"items"`
	IsDefault bool                    `bson:"is_default" json:"is_default"`
	CreatedAt string                  `bson:"created_at" json:"created_at"`
}

type ChecklistTemplateItem struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	IsRequired bool   `bson:"is_required" json:"is_required"`
	Order      int    `bson:"order" json:"order"`
}

type ChecklistTemplateRequest struct {
	Name  string `json:"name" binding:"required"`
	Items []struct {
		Name       string `json:"name" binding:"required"`
		IsRequired bool   `json:"is_required"`
		Order      int    `json:"order"`
	} `json:"items" binding:"required"`
}
