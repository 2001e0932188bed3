package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FieldType represents the input type of a custom field
type FieldType string

// FieldType constants
const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeDatetime    FieldType = "datetime"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeUser        FieldType = "user"
	FieldTypeURL         FieldType = "url"
	FieldTypeEmail       FieldType = "email"
	FieldTypePhone       FieldType = "phone"
	FieldTypeFile        FieldType = "file"
)

// ValidFieldType reports whether t is one of the supported field types
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate,
		FieldTypeDatetime, FieldTypeCheckbox, FieldTypeSelect,
		FieldTypeMultiselect, FieldTypeRadio, FieldTypeUser, FieldTypeURL,
		FieldTypeEmail, FieldTypePhone, FieldTypeFile:
		return true
	default:
		return false
	}
}

// HasOptions reports whether the field type carries an option list
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeMultiselect || t == FieldTypeRadio
}

// CustomField is a project-scoped field definition that can be bound to issue
// types. Options holds an ordered JSON array of strings and is only meaningful
// for select, multiselect and radio fields.
type CustomField struct {
	BaseModel
	ProjectID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_custom_fields_project_id" json:"project_id"`
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`
	FieldType    FieldType      `gorm:"type:varchar(50);not null" json:"field_type"`
	Description  string         `gorm:"type:text" json:"description"`
	Required     bool           `gorm:"type:boolean;not null;default:false" json:"required"`
	Searchable   bool           `gorm:"type:boolean;not null;default:false" json:"searchable"`
	Options      datatypes.JSON `gorm:"type:jsonb" json:"options"`
	DefaultValue string         `gorm:"type:text" json:"default_value"`
	UsageCount   int            `gorm:"type:int;not null;default:0" json:"usage_count"`
	Project      Project        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// IssueTypeCustomField binds a custom field to an issue type. IsRequired
// overrides the field's own required flag for that issue type only.
type IssueTypeCustomField struct {
	BaseModel
	IssueTypeID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_itcf_issue_type_id;uniqueIndex:uq_itcf_issue_type_field,priority:1" json:"issue_type_id"`
	CustomFieldID uuid.UUID   `gorm:"type:uuid;not null;index:idx_itcf_custom_field_id;uniqueIndex:uq_itcf_issue_type_field,priority:2" json:"custom_field_id"`
	IsRequired    bool        `gorm:"type:boolean;not null;default:false" json:"is_required"`
	DisplayOrder  int         `gorm:"type:int;not null;default:0" json:"display_order"`
	IssueType     IssueType   `gorm:"foreignKey:IssueTypeID;constraint:OnDelete:CASCADE" json:"issue_type,omitempty"`
	CustomField   CustomField `gorm:"foreignKey:CustomFieldID;constraint:OnDelete:RESTRICT" json:"custom_field,omitempty"`
}

// TableName specifies the table name for CustomField
func (CustomField) TableName() string {
	return "custom_fields"
}

// TableName specifies the table name for IssueTypeCustomField
func (IssueTypeCustomField) TableName() string {
	return "issue_type_custom_fields"
}
