package dto

import "github.com/google/uuid"

// BindingInput is one desired binding in a replace-set request
type BindingInput struct {
	CustomFieldID uuid.UUID `json:"customFieldId" binding:"required"`
	IsRequired    bool      `json:"isRequired"`
	DisplayOrder  int       `json:"displayOrder"`
}

// ReplaceBindingsRequest carries the complete desired binding set for an
// issue type. The admin UI always submits the whole form, never a diff.
type ReplaceBindingsRequest struct {
	Bindings []BindingInput `json:"bindings"`
}

// BindingResponse represents one field binding with its field definition
type BindingResponse struct {
	BindingID    uuid.UUID           `json:"bindingId"`
	IssueTypeID  uuid.UUID           `json:"issueTypeId"`
	CustomField  CustomFieldResponse `json:"customField"`
	IsRequired   bool                `json:"isRequired"`
	DisplayOrder int                 `json:"displayOrder"`
}
