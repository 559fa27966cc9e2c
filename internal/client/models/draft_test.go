package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketSpecs = []FieldSpec{
	{Name: "title", Label: "Title", Kind: FieldText, Required: true},
	{Name: "description", Label: "Description", Kind: FieldText},
	{Name: "priority", Label: "Priority", Kind: FieldText},
	{Name: "ticket_type_id", Label: "Ticket type", Kind: FieldNumber},
}

func TestDraftFromRecord_SeedsWireValues(t *testing.T) {
	d, err := DraftFromRecord(ticketSpecs, Ticket{
		Title:        "VPN down",
		Description:  "cannot connect",
		Priority:     "High",
		TicketTypeID: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "VPN down", d.Get("title"))
	assert.Equal(t, "cannot connect", d.Get("description"))
	assert.Equal(t, "High", d.Get("priority"))
	assert.Equal(t, "3", d.Get("ticket_type_id"))
}

func TestSet_LeavesSiblingsIntact(t *testing.T) {
	record := Ticket{Title: "VPN down", Description: "cannot connect", Priority: "High", TicketTypeID: 3}
	d, err := DraftFromRecord(ticketSpecs, record)
	require.NoError(t, err)

	d.Set("priority", "Low")

	// Only the edited key differs from the seeded record.
	assert.Equal(t, "Low", d.Get("priority"))
	assert.Equal(t, "VPN down", d.Get("title"))
	assert.Equal(t, "cannot connect", d.Get("description"))
	assert.Equal(t, "3", d.Get("ticket_type_id"))
}

func TestSet_IgnoresUnknownField(t *testing.T) {
	d := NewDraft(ticketSpecs)
	d.Set("nope", "x")
	assert.Empty(t, d.Get("nope"))
}

func TestValidate(t *testing.T) {
	specs := []FieldSpec{
		{Name: "rating", Label: "Rating", Kind: FieldNumber, Required: true, Min: 0, Max: 5},
		{Name: "comments", Label: "Comments", Kind: FieldText},
	}

	tests := []struct {
		name    string
		rating  string
		wantErr string
	}{
		{name: "in range", rating: "4"},
		{name: "lower bound", rating: "0"},
		{name: "above max", rating: "6", wantErr: "Rating must be between 0 and 5"},
		{name: "not a number", rating: "great", wantErr: "Rating must be a number"},
		{name: "missing required", rating: "", wantErr: "Rating is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft(specs)
			d.Set("rating", tt.rating)
			err := d.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestBody_TypesFields(t *testing.T) {
	specs := []FieldSpec{
		{Name: "title", Kind: FieldText},
		{Name: "sla_id", Kind: FieldNumber},
		{Name: "require_intake_form", Kind: FieldBool},
	}
	d := NewDraft(specs)
	d.Set("title", "Printer jam")
	d.Set("sla_id", "2")
	d.Set("require_intake_form", "true")

	assert.Equal(t, map[string]any{
		"title":               "Printer jam",
		"sla_id":              int64(2),
		"require_intake_form": true,
	}, d.Body())
}

func TestReset_RestoresTemplateValues(t *testing.T) {
	specs := []FieldSpec{
		{Name: "rating", Kind: FieldNumber},
		{Name: "comments", Kind: FieldText},
	}
	d := NewDraft(specs)
	d.Set("rating", "5")
	d.Set("comments", "great support")

	d.Reset()

	assert.Equal(t, "0", d.Get("rating"))
	assert.Empty(t, d.Get("comments"))
}
