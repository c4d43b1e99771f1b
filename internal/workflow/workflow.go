// Package workflow drives the template creation flow: whether a creator is open,
// and whether a submission made it into the registry.
package workflow

import (
	"fmt"

	"github.com/tormodhaugland/ct/internal/log"
	"github.com/tormodhaugland/ct/internal/template"
)

// State is the creation flow state.
type State int

const (
	Idle State = iota
	Creating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Creating:
		return "creating"
	default:
		return "unknown"
	}
}

// Registry is what the controller reads from and writes to.
// *template.Registry and *store.Registry both satisfy it.
type Registry interface {
	List() []template.Template
	Get(id string) (template.Template, bool)
	Insert(t template.Template) error
}

// TransitionError indicates an action that is not legal in the current state.
type TransitionError struct {
	Action string
	State  State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Action, e.State)
}

// Controller tracks the creation flow for one session. It is not safe for
// concurrent use; the registry behind it is.
type Controller struct {
	registry Registry
	state    State
}

// NewController returns an Idle controller bound to registry.
func NewController(registry Registry) *Controller {
	return &Controller{registry: registry, state: Idle}
}

// State returns the current flow state.
func (c *Controller) State() State {
	return c.state
}

// BeginCreate opens the creation flow.
func (c *Controller) BeginCreate() error {
	if c.state != Idle {
		return &TransitionError{Action: "begin create", State: c.state}
	}
	c.state = Creating
	log.Debug(log.CatWorkflow, "creation started")
	return nil
}

// CancelCreate closes the creation flow without touching the registry.
func (c *Controller) CancelCreate() error {
	if c.state != Creating {
		return &TransitionError{Action: "cancel create", State: c.state}
	}
	c.state = Idle
	log.Debug(log.CatWorkflow, "creation cancelled")
	return nil
}

// SubmitCreate validates candidate and inserts it. On success the flow returns
// to Idle and the stored template is returned. On failure the flow stays in
// Creating and the validation or insert error is returned unchanged.
func (c *Controller) SubmitCreate(candidate template.Candidate) (template.Template, error) {
	if c.state != Creating {
		return template.Template{}, &TransitionError{Action: "submit", State: c.state}
	}

	t, err := template.Validate(candidate)
	if err != nil {
		log.Warn(log.CatWorkflow, "candidate rejected", "id", candidate.ID, "error", err)
		return template.Template{}, err
	}

	if err := c.registry.Insert(t); err != nil {
		log.Warn(log.CatWorkflow, "insert rejected", "id", t.ID, "error", err)
		return template.Template{}, err
	}

	c.state = Idle
	log.Info(log.CatWorkflow, "template created", "id", t.ID, "protocol", t.Protocol)
	return t, nil
}

// ListTemplates returns the registry contents in insertion order.
func (c *Controller) ListTemplates() []template.Template {
	return c.registry.List()
}

// GetTemplate looks up a template by id.
func (c *Controller) GetTemplate(id string) (template.Template, bool) {
	return c.registry.Get(id)
}
