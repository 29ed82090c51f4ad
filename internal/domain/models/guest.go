package models

import (
	"net/mail"
	"strings"
	"time"
)

const MaxGuestSearchResults = 5

type Guest struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PartnerName    string    `json:"partner_name"`
	PartnerEmail   string    `json:"partner_email"`
	PlusOneAllowed bool      `json:"plus_one_allowed"`
	CreatedAt      time.Time `json:"created_at"`
}

type GuestPartner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GuestMatch is a public search result.
type GuestMatch struct {
	ID      int64         `json:"id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Partner *GuestPartner `json:"partner"`
}

// GuestImportResult reports what a guest list upload changed.
type GuestImportResult struct {
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Skipped  []string `json:"skipped,omitempty"`
}

func (g Guest) Match() GuestMatch {
	m := GuestMatch{
		ID:    g.ID,
		Name:  g.Name,
		Email: g.Email,
	}
	if g.PartnerName != "" {
		m.Partner = &GuestPartner{Name: g.PartnerName, Email: g.PartnerEmail}
	}
	return m
}

func (g *Guest) Normalize() {
	g.Name = strings.TrimSpace(g.Name)
	g.Email = strings.TrimSpace(g.Email)
	g.PartnerName = strings.TrimSpace(g.PartnerName)
	g.PartnerEmail = strings.TrimSpace(g.PartnerEmail)
}

func (g *Guest) Validate() error {
	var validationErrors []string

	if g.Name == "" {
		validationErrors = append(validationErrors, "name is required")
	}
	if g.Email != "" && !IsEmail(g.Email) {
		validationErrors = append(validationErrors, "email is not a valid address")
	}
	if g.PartnerEmail != "" && !IsEmail(g.PartnerEmail) {
		validationErrors = append(validationErrors, "partner email is not a valid address")
	}
	if g.PartnerEmail != "" && g.PartnerName == "" {
		validationErrors = append(validationErrors, "partner name is required with partner email")
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
