package domain

// IssueStatus is a lifecycle state shared across workflows; statuses are not
// owned by a single workflow.
type IssueStatus struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Order       int    `gorm:"column:display_order;type:int;not null;default:0;index:idx_issue_statuses_display_order" json:"order"`
	ColorTag    string `gorm:"type:varchar(20)" json:"color_tag"`
	Description string `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for IssueStatus
func (IssueStatus) TableName() string {
	return "issue_statuses"
}
