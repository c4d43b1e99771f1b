package workflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tormodhaugland/ct/internal/protocol"
	"github.com/tormodhaugland/ct/internal/template"
)

func listIDs(c *Controller) []string {
	var out []string
	for _, t := range c.ListTemplates() {
		out = append(out, t.ID)
	}
	return out
}

func TestControllerStartsIdle(t *testing.T) {
	c := NewController(template.NewSeededRegistry())
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, "idle", c.State().String())
}

func TestSubmitCreateSuccess(t *testing.T) {
	c := NewController(template.NewSeededRegistry())

	require.NoError(t, c.BeginCreate())
	assert.Equal(t, Creating, c.State())

	created, err := c.SubmitCreate(template.Candidate{
		ID:          "0002",
		Title:       "My Check",
		Description: "d",
		Protocol:    "tcp",
	})
	require.NoError(t, err)

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, []string{"0001", "0002"}, listIDs(c))
	assert.Equal(t, template.Template{ID: "0002", Title: "My Check", Description: "d", Protocol: protocol.TCP}, created)

	got, ok := c.GetTemplate("0002")
	require.True(t, ok)
	assert.Equal(t, created, got)
}

func TestSubmitCreateDuplicateStaysCreating(t *testing.T) {
	c := NewController(template.NewSeededRegistry())
	require.NoError(t, c.BeginCreate())

	_, err := c.SubmitCreate(template.Candidate{ID: "0001", Title: "Dup", Protocol: "http"})

	var dupErr *template.DuplicateIDError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, Creating, c.State())
	assert.Len(t, c.ListTemplates(), 1)
}

func TestSubmitCreateValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		candidate template.Candidate
		target    any
	}{
		{"empty title", template.Candidate{ID: "9", Title: "  ", Protocol: "http"}, new(*template.EmptyTitleError)},
		{"unknown protocol", template.Candidate{ID: "9", Title: "t", Protocol: "gopher"}, new(*template.UnknownProtocolError)},
		{"missing id", template.Candidate{Title: "t", Protocol: "http"}, new(*template.MissingIDError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(template.NewSeededRegistry())
			require.NoError(t, c.BeginCreate())

			_, err := c.SubmitCreate(tt.candidate)
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "got %T: %v", err, err)
			assert.Equal(t, Creating, c.State())
			assert.Len(t, c.ListTemplates(), 1)
		})
	}
}

func TestRetryAfterFailure(t *testing.T) {
	c := NewController(template.NewSeededRegistry())
	require.NoError(t, c.BeginCreate())

	_, err := c.SubmitCreate(template.Candidate{ID: "0001", Title: "Dup", Protocol: "http"})
	require.Error(t, err)

	_, err = c.SubmitCreate(template.Candidate{ID: "0002", Title: "Dup", Protocol: "http"})
	require.NoError(t, err)
	assert.Equal(t, Idle, c.State())
}

func TestCancelCreateLeavesRegistry(t *testing.T) {
	c := NewController(template.NewSeededRegistry())
	require.NoError(t, c.BeginCreate())
	require.NoError(t, c.CancelCreate())

	assert.Equal(t, Idle, c.State())
	assert.Len(t, c.ListTemplates(), 1)

	// the flow can be re-entered any number of times
	for i := 0; i < 3; i++ {
		require.NoError(t, c.BeginCreate())
		require.NoError(t, c.CancelCreate())
	}
}

func TestIllegalTransitions(t *testing.T) {
	c := NewController(template.NewSeededRegistry())

	var tErr *TransitionError
	require.ErrorAs(t, c.CancelCreate(), &tErr)
	assert.Equal(t, Idle, tErr.State)

	_, err := c.SubmitCreate(template.Candidate{ID: "0002", Title: "t", Protocol: "tcp"})
	require.ErrorAs(t, err, &tErr)
	assert.Len(t, c.ListTemplates(), 1)

	require.NoError(t, c.BeginCreate())
	require.ErrorAs(t, c.BeginCreate(), &tErr)
	assert.Equal(t, Creating, c.State())
	assert.Equal(t, "cannot begin create while creating", tErr.Error())
}

func TestSubmitCreateProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := NewController(template.NewSeededRegistry())
		seen := map[string]bool{"0001": true}

		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.StringMatching(`000[0-9]`).Draw(rt, "id")
			title := rapid.SampledFrom([]string{"", "  ", "Check", " Padded "}).Draw(rt, "title")
			proto := rapid.SampledFrom([]string{"http", "tcp", "icmp", "bogus"}).Draw(rt, "protocol")

			if c.State() == Idle {
				if err := c.BeginCreate(); err != nil {
					rt.Fatalf("begin: %v", err)
				}
			}
			before := len(c.ListTemplates())

			_, err := c.SubmitCreate(template.Candidate{ID: id, Title: title, Protocol: proto})
			wantOK := !seen[id] && title != "" && title != "  " && proto != "bogus"
			if wantOK != (err == nil) {
				rt.Fatalf("submit(%q,%q,%q) err=%v, want ok=%v", id, title, proto, err, wantOK)
			}
			if err != nil {
				if c.State() != Creating || len(c.ListTemplates()) != before {
					rt.Fatalf("failed submit changed state or registry")
				}
				continue
			}
			seen[id] = true
			if c.State() != Idle || len(c.ListTemplates()) != before+1 {
				rt.Fatalf("successful submit: state=%s len=%d", c.State(), len(c.ListTemplates()))
			}
		}
		if fmt.Sprint(c.ListTemplates()) != fmt.Sprint(c.ListTemplates()) {
			rt.Fatalf("ListTemplates is not idempotent")
		}
	})
}
