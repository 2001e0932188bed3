package domain

import "github.com/google/uuid"

// Workflow is one directed transition edge between two statuses. An edge
// applies only to the issue types listed in its WorkflowIssueType rows.
type Workflow struct {
	BaseModel
	FromStatusID uuid.UUID   `gorm:"type:uuid;not null;index:idx_workflows_from_status_id" json:"from_status_id"`
	ToStatusID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_workflows_to_status_id" json:"to_status_id"`
	Name         string      `gorm:"type:varchar(100);not null" json:"name"`
	Description  string      `gorm:"type:text" json:"description"`
	FromStatus   IssueStatus `gorm:"foreignKey:FromStatusID;constraint:OnDelete:RESTRICT" json:"from_status,omitempty"`
	ToStatus     IssueStatus `gorm:"foreignKey:ToStatusID;constraint:OnDelete:RESTRICT" json:"to_status,omitempty"`

	IssueTypes []WorkflowIssueType `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE" json:"issue_types,omitempty"`
	Statuses   []WorkflowStatus    `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE" json:"statuses,omitempty"`
}

// WorkflowIssueType scopes a transition edge to one issue type
type WorkflowIssueType struct {
	BaseModel
	WorkflowID  uuid.UUID `gorm:"type:uuid;not null;index:idx_wit_workflow_id;uniqueIndex:uq_wit_workflow_issue_type,priority:1" json:"workflow_id"`
	IssueTypeID uuid.UUID `gorm:"type:uuid;not null;index:idx_wit_issue_type_id;uniqueIndex:uq_wit_workflow_issue_type,priority:2" json:"issue_type_id"`
	IssueType   IssueType `gorm:"foreignKey:IssueTypeID;constraint:OnDelete:CASCADE" json:"issue_type,omitempty"`
}

// WorkflowStatus records the position of a status in a workflow's linear
// ordering. Order values are rewritten to 1-based positions on every repair
// or reorder; ties are broken by insertion time.
type WorkflowStatus struct {
	BaseModel
	WorkflowID uuid.UUID   `gorm:"type:uuid;not null;index:idx_ws_workflow_id;uniqueIndex:uq_ws_workflow_status,priority:1" json:"workflow_id"`
	StatusID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_ws_status_id;uniqueIndex:uq_ws_workflow_status,priority:2" json:"status_id"`
	Order      int         `gorm:"column:position;type:int;not null;default:0" json:"order"`
	Status     IssueStatus `gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT" json:"status,omitempty"`
}

// TableName specifies the table name for Workflow
func (Workflow) TableName() string {
	return "workflows"
}

// TableName specifies the table name for WorkflowIssueType
func (WorkflowIssueType) TableName() string {
	return "workflow_issue_types"
}

// TableName specifies the table name for WorkflowStatus
func (WorkflowStatus) TableName() string {
	return "workflow_statuses"
}
