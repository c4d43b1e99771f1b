package template

import "github.com/tormodhaugland/ct/internal/protocol"

// Template is a named check definition. Once validated it is treated as immutable.
type Template struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Protocol    protocol.Protocol `json:"protocol"`
}

// Candidate is raw, unvalidated template input as a user submitted it.
type Candidate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Protocol    string `json:"protocol"`
}

// Candidate converts t back into raw input form.
func (t Template) Candidate() Candidate {
	return Candidate{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Protocol:    string(t.Protocol),
	}
}

// SeedTemplate returns the example template every new registry starts with.
func SeedTemplate() Template {
	return Template{
		ID:          "0001",
		Title:       "Wordpress - Twenty Twenty",
		Description: "Checks the content of the index page for the Wordpress default Twenty Twenty theme.",
		Protocol:    protocol.HTTP,
	}
}
