package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// RsvpSubmission is what a guest sends from the public RSVP form.
type RsvpSubmission struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Attending           string `json:"attending"`
	Guests              int    `json:"guests"`
	DietaryRequirements string `json:"dietary_requirements"`
	Song                string `json:"song"`
	IsVegetarian        string `json:"is_vegetarian"`
	FoodAllergies       string `json:"food_allergies"`
	Lodging             string `json:"lodging"`
	UsingTransport      string `json:"using_transport"`
	SpecialNotes        string `json:"special_notes"`
}

// RsvpResponse is a stored RSVP, one per guest name.
type RsvpResponse struct {
	ID int64 `json:"id"`
	RsvpSubmission
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r RsvpResponse) IsAttending() bool {
	return r.Attending == AnswerYes
}

func (s *RsvpSubmission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Attending = strings.ToLower(strings.TrimSpace(s.Attending))
}

// Validate reports missing required fields as a single "Missing: a, b" entry.
func (s *RsvpSubmission) Validate() error {
	var missing []string
	if s.Name == "" {
		missing = append(missing, "name")
	}
	if s.Email == "" {
		missing = append(missing, "email")
	}
	if s.Attending == "" {
		missing = append(missing, "attending")
	}
	if len(missing) > 0 {
		return &ValidationError{Errors: []string{"Missing: " + strings.Join(missing, ", ")}}
	}

	var validationErrors []string

	if !IsEmail(s.Email) {
		validationErrors = append(validationErrors, "email is not a valid address")
	}
	if s.Attending != AnswerYes && s.Attending != AnswerNo {
		validationErrors = append(validationErrors, fmt.Sprintf("attending must be '%s' or '%s'", AnswerYes, AnswerNo))
	}
	if s.Guests < 0 {
		validationErrors = append(validationErrors, "guests must not be negative")
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}
