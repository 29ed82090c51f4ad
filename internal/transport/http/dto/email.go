package dto

import "wedding_site/internal/domain/models"

type EmailTemplateRequest struct {
	Type     models.TemplateType `json:"template_type,omitempty" validate:"omitempty,oneof=confirmation blast"`
	Subject  string              `json:"subject,omitempty" validate:"max=200"`
	Template string              `json:"template" validate:"required"`
}

// ToDomain преобразует DTO в доменную модель. Тип по умолчанию confirmation.
func (r EmailTemplateRequest) ToDomain() models.EmailTemplate {
	t := r.Type
	if t == "" {
		t = models.TemplateConfirmation
	}
	subject := r.Subject
	if subject == "" {
		subject = models.DefaultTemplate(t).Subject
	}
	return models.EmailTemplate{Type: t, Subject: subject, Body: r.Template}
}

type EmailPreviewRequest struct {
	Type     models.TemplateType `json:"template_type,omitempty" validate:"omitempty,oneof=confirmation blast"`
	Subject  string              `json:"subject,omitempty"`
	Template string              `json:"template,omitempty"`
}

type EmailBlastRequest struct {
	Subject  string `json:"subject,omitempty" validate:"max=200"`
	Template string `json:"template,omitempty"`
}

type TestEmailRequest struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}
