package dto

import (
	"time"

	"github.com/google/uuid"
)

// CustomFieldResponse represents the custom field response
type CustomFieldResponse struct {
	FieldID      uuid.UUID `json:"fieldId"`
	ProjectID    uuid.UUID `json:"projectId"`
	Name         string    `json:"name"`
	FieldType    string    `json:"fieldType"`
	Description  string    `json:"description"`
	Required     bool      `json:"required"`
	Searchable   bool      `json:"searchable"`
	Options      []string  `json:"options,omitempty"`
	DefaultValue string    `json:"defaultValue,omitempty"`
	UsageCount   int       `json:"usageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateCustomFieldRequest represents the request to create a new custom field
type CreateCustomFieldRequest struct {
	ProjectID    uuid.UUID `json:"projectId" binding:"required"`
	Name         string    `json:"name" binding:"required,max=100"`
	FieldType    string    `json:"fieldType" binding:"required,max=50"`
	Description  string    `json:"description"`
	Required     bool      `json:"required"`
	Searchable   bool      `json:"searchable"`
	Options      []string  `json:"options"`
	DefaultValue string    `json:"defaultValue"`
}

// UpdateCustomFieldRequest represents the request to update a custom field.
// FieldType is immutable once created; changing it would invalidate stored
// issue values.
type UpdateCustomFieldRequest struct {
	Name         *string   `json:"name" binding:"omitempty,max=100"`
	Description  *string   `json:"description"`
	Required     *bool     `json:"required"`
	Searchable   *bool     `json:"searchable"`
	Options      *[]string `json:"options"`
	DefaultValue *string   `json:"defaultValue"`
}
