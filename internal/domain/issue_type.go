package domain

import "github.com/google/uuid"

// IssueType categorizes work items within a project (Bug, Task, Story, ...)
type IssueType struct {
	BaseModel
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index:idx_issue_types_project_id" json:"project_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	ColorTag    string    `gorm:"type:varchar(20)" json:"color_tag"`
	IconTag     string    `gorm:"type:varchar(50)" json:"icon_tag"`
	Description string    `gorm:"type:text" json:"description"`
	Project     Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// TableName specifies the table name for IssueType
func (IssueType) TableName() string {
	return "issue_types"
}
