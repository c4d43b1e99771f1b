package template

import (
	"strings"

	"github.com/tormodhaugland/ct/internal/protocol"
)

// Validate checks the shape of c and returns the normalized template.
// Fields are checked in order id, title, protocol and only the first failure is
// reported. Id uniqueness is left to Registry.Insert.
func Validate(c Candidate) (Template, error) {
	id := strings.TrimSpace(c.ID)
	if id == "" {
		return Template{}, &ValidationError{Field: "id", Err: &MissingIDError{}}
	}

	title := strings.TrimSpace(c.Title)
	if title == "" {
		return Template{}, &ValidationError{Field: "title", Err: &EmptyTitleError{ID: id}}
	}

	p, err := protocol.Parse(c.Protocol)
	if err != nil {
		return Template{}, &ValidationError{
			Field: "protocol",
			Err:   &UnknownProtocolError{ID: id, Protocol: c.Protocol},
		}
	}

	return Template{
		ID:          id,
		Title:       title,
		Description: c.Description,
		Protocol:    p,
	}, nil
}
