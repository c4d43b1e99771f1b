// Package doctor inspects a template store for rows that would stop the
// registry from loading.
package doctor

import (
	"fmt"

	"github.com/tormodhaugland/ct/internal/template"
)

// Problem is one stored template that cannot be loaded.
type Problem struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Reason   string `json:"reason"`
	Err      error  `json:"-"`
}

// Source yields stored templates in insertion order.
type Source interface {
	Templates() ([]template.Template, error)
}

// Check validates every stored template the way the registry does on load and
// reports each failure instead of stopping at the first one.
func Check(src Source) ([]Problem, error) {
	rows, err := src.Templates()
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	problems := make([]Problem, 0)
	reg, err := template.NewRegistry()
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		valid, err := template.Validate(row.Candidate())
		if err == nil {
			err = reg.Insert(valid)
		}
		if err != nil {
			problems = append(problems, Problem{
				Position: i + 1,
				ID:       row.ID,
				Reason:   err.Error(),
				Err:      err,
			})
		}
	}

	return problems, nil
}
