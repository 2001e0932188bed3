package domain

import "github.com/google/uuid"

// Project is the owning scope for issue types and custom fields. Project
// management itself lives in another service; this table exists so the
// configuration entities have a real foreign-key target.
type Project struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Issue is the minimal projection of an issue record. Issue CRUD is owned by
// the issue service; rows here only guard status/type deletion against
// orphaning live issues.
type Issue struct {
	BaseModel
	ProjectID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_issues_project_id" json:"project_id"`
	IssueTypeID uuid.UUID   `gorm:"type:uuid;not null;index:idx_issues_issue_type_id" json:"issue_type_id"`
	StatusID    uuid.UUID   `gorm:"type:uuid;not null;index:idx_issues_status_id" json:"status_id"`
	Title       string      `gorm:"type:varchar(255);not null" json:"title"`
	IssueType   IssueType   `gorm:"foreignKey:IssueTypeID;constraint:OnDelete:RESTRICT" json:"issue_type,omitempty"`
	Status      IssueStatus `gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT" json:"status,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// TableName specifies the table name for Issue
func (Issue) TableName() string {
	return "issues"
}
