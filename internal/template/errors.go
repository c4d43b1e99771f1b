// Package template holds check templates, their validation, and the ordered registry they live in.
package template

import (
	"fmt"
	"strings"
)

// TemplateNotFoundError indicates no template has the requested id.
type TemplateNotFoundError struct {
	ID string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template not found: %s", e.ID)
}

// DuplicateIDError indicates a template with the same id is already registered.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("template id already exists: %s", e.ID)
}

// MissingIDError indicates a candidate was submitted without an id.
type MissingIDError struct{}

func (e *MissingIDError) Error() string {
	return "template id is required"
}

// EmptyTitleError indicates a candidate title was empty or whitespace-only.
type EmptyTitleError struct {
	ID string
}

func (e *EmptyTitleError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("template %s: title is required", e.ID)
	}
	return "template title is required"
}

// UnknownProtocolError indicates a candidate named a protocol outside the supported set.
type UnknownProtocolError struct {
	ID       string
	Protocol string
}

func (e *UnknownProtocolError) Error() string {
	if strings.TrimSpace(e.Protocol) == "" {
		return fmt.Sprintf("template %s: protocol is required", e.ID)
	}
	return fmt.Sprintf("template %s: unknown protocol %q", e.ID, e.Protocol)
}

// ValidationError reports which field of a candidate failed validation.
// It wraps one of the specific errors above.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("template validation failed: %s - %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
