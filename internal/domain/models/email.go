package models

import "time"

type TemplateType string

const (
	TemplateConfirmation TemplateType = "confirmation"
	TemplateBlast        TemplateType = "blast"
)

const FormDataPlaceholder = "[[form_data]]"

const (
	DefaultConfirmationSubject = "RSVP Confirmation"
	DefaultBlastSubject        = "Wedding Update"
)

const DefaultConfirmationTemplate = `<h2>Thank you for your RSVP!</h2>
<p>Here's a summary of your response:</p>
[[form_data]]
<p>If you need to make any changes to your RSVP, please contact us directly.</p>
<p>We look forward to celebrating with you!</p>`

const DefaultBlastTemplate = `<h2>Important Wedding Update</h2>
<p>Dear Wedding Guests,</p>
<p>We wanted to share some important information about our upcoming wedding celebration.</p>
<p>Please feel free to reach out if you have any questions.</p>
<p>Looking forward to celebrating with you!</p>`

type EmailTemplate struct {
	ID        int64        `json:"id"`
	Type      TemplateType `json:"template_type"`
	Subject   string       `json:"subject"`
	Body      string       `json:"template"`
	CreatedAt time.Time    `json:"created_at"`
}

func IsKnownTemplateType(t TemplateType) bool {
	return t == TemplateConfirmation || t == TemplateBlast
}

func DefaultTemplate(t TemplateType) EmailTemplate {
	if t == TemplateBlast {
		return EmailTemplate{Type: TemplateBlast, Subject: DefaultBlastSubject, Body: DefaultBlastTemplate}
	}
	return EmailTemplate{Type: TemplateConfirmation, Subject: DefaultConfirmationSubject, Body: DefaultConfirmationTemplate}
}

// EmailMessage is a fully rendered outgoing email.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

type BlastResult struct {
	Total int `json:"total"`
	Sent  int `json:"sent"`
}
