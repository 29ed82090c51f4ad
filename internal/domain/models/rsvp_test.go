package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRsvpSubmission_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   RsvpSubmission
		wantErr string
	}{
		{
			name:  "valid",
			input: RsvpSubmission{Name: "Ann", Email: "ann@example.com", Attending: "yes"},
		},
		{
			name:    "missing fields listed",
			input:   RsvpSubmission{Name: "Ann"},
			wantErr: "Missing: email, attending",
		},
		{
			name:    "bad email",
			input:   RsvpSubmission{Name: "Ann", Email: "not-an-email", Attending: "no"},
			wantErr: "email is not a valid address",
		},
		{
			name:    "bad attending",
			input:   RsvpSubmission{Name: "Ann", Email: "ann@example.com", Attending: "maybe"},
			wantErr: "attending must be",
		},
		{
			name:    "negative guests",
			input:   RsvpSubmission{Name: "Ann", Email: "ann@example.com", Attending: "yes", Guests: -1},
			wantErr: "guests must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGuest_ValidateAndMatch(t *testing.T) {
	g := Guest{ID: 1, Name: "Ann", Email: "ann@example.com", PartnerName: "Bob", PartnerEmail: "bob@example.com"}
	require.NoError(t, g.Validate())

	m := g.Match()
	require.NotNil(t, m.Partner)
	assert.Equal(t, "Bob", m.Partner.Name)

	single := Guest{ID: 2, Name: "Cat"}
	assert.Nil(t, single.Match().Partner)

	bad := Guest{Name: "", PartnerEmail: "x@example.com"}
	err := bad.Validate()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "partner name is required")
}

func TestSiteDefaultsValidate(t *testing.T) {
	theme := DefaultTheme()
	assert.NoError(t, theme.Validate())

	theme.Colors.Accent = "blue"
	assert.ErrorIs(t, theme.Validate(), ErrValidation)

	form := FormSettings{NameLabel: "Your name"}.WithDefaults()
	assert.Equal(t, "Your name", form.NameLabel)
	assert.Equal(t, "Email", form.EmailLabel)

	settings := WeddingSettings{WeddingDate: "2025-13-01"}
	err := settings.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weddingDate must be YYYY-MM-DD")
	assert.Contains(t, err.Error(), "venueName is required")
}
