package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/htmlsanitize"
	"wedding_site/internal/lib/logger/sl"
	"wedding_site/internal/lib/mailer"
	"wedding_site/internal/metrics"
	"wedding_site/internal/repository"
)

const (
	kindConfirmation = "confirmation"
	kindTest         = "test"
	kindBlast        = "blast"
)

type EmailService struct {
	log        *slog.Logger
	templates  repository.EmailRepository
	guests     repository.GuestRepository
	rsvps      repository.RsvpRepository
	sender     mailer.Sender
	adminEmail string
}

func NewEmailService(
	log *slog.Logger,
	templates repository.EmailRepository,
	guests repository.GuestRepository,
	rsvps repository.RsvpRepository,
	sender mailer.Sender,
	adminEmail string,
) *EmailService {
	return &EmailService{
		log:        log,
		templates:  templates,
		guests:     guests,
		rsvps:      rsvps,
		sender:     sender,
		adminEmail: adminEmail,
	}
}

// Template returns the latest saved template of the type, or the built-in default.
func (s *EmailService) Template(ctx context.Context, t models.TemplateType) (models.EmailTemplate, error) {
	const op = "email_service.Template"
	log := s.log.With(slog.String("op", op), slog.String("type", string(t)))

	if !models.IsKnownTemplateType(t) {
		return models.EmailTemplate{}, models.NewValidationError("template_type must be confirmation or blast")
	}

	tpl, err := s.templates.LatestTemplate(ctx, t)
	if errors.Is(err, models.ErrNotFound) {
		return models.DefaultTemplate(t), nil
	}
	if err != nil {
		log.Error("failed to load template", sl.Err(err))
		return models.EmailTemplate{}, fmt.Errorf("%s: %w", op, err)
	}

	return tpl, nil
}

// SaveTemplate stores a new revision. The body is sanitized before it is stored.
func (s *EmailService) SaveTemplate(ctx context.Context, tpl models.EmailTemplate) (models.EmailTemplate, error) {
	const op = "email_service.SaveTemplate"
	log := s.log.With(slog.String("op", op), slog.String("type", string(tpl.Type)))

	tpl.Subject = strings.TrimSpace(tpl.Subject)
	tpl.Body = htmlsanitize.Sanitize(tpl.Body)

	var validationErrors []string
	if !models.IsKnownTemplateType(tpl.Type) {
		validationErrors = append(validationErrors, "template_type must be confirmation or blast")
	}
	if tpl.Subject == "" {
		validationErrors = append(validationErrors, "subject is required")
	}
	if strings.TrimSpace(tpl.Body) == "" {
		validationErrors = append(validationErrors, "template is required")
	}
	if len(validationErrors) > 0 {
		return models.EmailTemplate{}, &models.ValidationError{Errors: validationErrors}
	}

	saved, err := s.templates.SaveTemplate(ctx, tpl)
	if err != nil {
		log.Error("failed to save template", sl.Err(err))
		return models.EmailTemplate{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("email template saved", slog.Int64("id", saved.ID))

	return saved, nil
}

// Preview renders tpl against the most recent RSVP. An empty body falls back to the stored template.
func (s *EmailService) Preview(ctx context.Context, tpl models.EmailTemplate) (models.EmailMessage, error) {
	const op = "email_service.Preview"

	if tpl.Type == "" {
		tpl.Type = models.TemplateConfirmation
	}
	if strings.TrimSpace(tpl.Body) == "" {
		stored, err := s.Template(ctx, tpl.Type)
		if err != nil {
			return models.EmailMessage{}, fmt.Errorf("%s: %w", op, err)
		}
		tpl.Body = stored.Body
		if tpl.Subject == "" {
			tpl.Subject = stored.Subject
		}
	}
	tpl.Body = htmlsanitize.Sanitize(tpl.Body)

	sample, err := s.sampleRsvp(ctx)
	if err != nil {
		return models.EmailMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	msg, err := s.render(ctx, tpl, sample, tpl.Type == models.TemplateConfirmation)
	if err != nil {
		return models.EmailMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	return msg, nil
}

// SendConfirmation mails the confirmation template to the guest who submitted r.
func (s *EmailService) SendConfirmation(ctx context.Context, r models.RsvpResponse) error {
	const op = "email_service.SendConfirmation"
	log := s.log.With(slog.String("op", op), slog.Int64("rsvp_id", r.ID))

	tpl, err := s.Template(ctx, models.TemplateConfirmation)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg, err := s.render(ctx, tpl, r, true)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.send(ctx, kindConfirmation, msg); err != nil {
		log.Error("failed to send confirmation", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("confirmation sent")

	return nil
}

// SendTest mails the confirmation template rendered with sample data to `to`, or to the admin address.
func (s *EmailService) SendTest(ctx context.Context, to string) error {
	const op = "email_service.SendTest"
	log := s.log.With(slog.String("op", op))

	to = strings.TrimSpace(to)
	if to == "" {
		to = s.adminEmail
	}
	if to == "" {
		return models.NewValidationError("email is required")
	}
	if !models.IsEmail(to) {
		return models.NewValidationError("email is not a valid address")
	}

	tpl, err := s.Template(ctx, models.TemplateConfirmation)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sample, err := s.sampleRsvp(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg, err := s.render(ctx, tpl, sample, true)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	msg.To = to
	msg.ToName = ""
	msg.Subject = "[TEST] " + msg.Subject

	if err := s.send(ctx, kindTest, msg); err != nil {
		log.Error("failed to send test email", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("test email sent")

	return nil
}

// Blast sends a message to every guest with an email address. The stored blast template is
// used unless override carries a body; an override subject replaces the stored one.
// Individual failures are logged and do not stop the run.
func (s *EmailService) Blast(ctx context.Context, override models.EmailTemplate) (models.BlastResult, error) {
	const op = "email_service.Blast"
	log := s.log.With(slog.String("op", op))

	tpl, err := s.Template(ctx, models.TemplateBlast)
	if err != nil {
		return models.BlastResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if body := htmlsanitize.Sanitize(override.Body); strings.TrimSpace(body) != "" {
		tpl.Body = body
	}
	if subject := strings.TrimSpace(override.Subject); subject != "" {
		tpl.Subject = subject
	}

	guests, err := s.guests.ListGuestsWithEmail(ctx)
	if err != nil {
		log.Error("failed to list guests", sl.Err(err))
		return models.BlastResult{}, fmt.Errorf("%s: %w", op, err)
	}

	body := strings.ReplaceAll(tpl.Body, models.FormDataPlaceholder, "")
	result := models.BlastResult{Total: len(guests)}

	for _, g := range guests {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%s: %w", op, err)
		}

		msg := models.EmailMessage{
			To:      g.Email,
			ToName:  g.Name,
			Subject: tpl.Subject,
			HTML:    body,
		}
		if err := s.send(ctx, kindBlast, msg); err != nil {
			log.Warn("failed to send blast email", slog.Int64("guest_id", g.ID), sl.Err(err))
			continue
		}
		result.Sent++
	}

	log.Info("email blast finished", slog.Int("total", result.Total), slog.Int("sent", result.Sent))

	return result, nil
}

func (s *EmailService) send(ctx context.Context, kind string, msg models.EmailMessage) error {
	if msg.Text == "" {
		msg.Text = mailer.PlainText(msg.HTML)
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		metrics.EmailsSent.WithLabelValues(kind, "failed").Inc()
		return err
	}

	metrics.EmailsSent.WithLabelValues(kind, "sent").Inc()
	return nil
}

func (s *EmailService) sampleRsvp(ctx context.Context) (models.RsvpResponse, error) {
	r, err := s.rsvps.LatestRsvpWithEmail(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return models.RsvpResponse{
			RsvpSubmission: models.RsvpSubmission{
				Name:      "Test Guest",
				Email:     s.adminEmail,
				Attending: models.AnswerYes,
			},
		}, nil
	}
	if err != nil {
		return models.RsvpResponse{}, err
	}
	return r, nil
}

// render fills the template for r. withFormData replaces the placeholder with the response summary.
func (s *EmailService) render(ctx context.Context, tpl models.EmailTemplate, r models.RsvpResponse, withFormData bool) (models.EmailMessage, error) {
	subject := tpl.Subject
	if subject == "" {
		subject = models.DefaultTemplate(tpl.Type).Subject
	}

	summary := ""
	if withFormData {
		labels, err := s.formSettings(ctx)
		if err != nil {
			return models.EmailMessage{}, err
		}

		summary = formData(labels, r.RsvpSubmission)

		partner, err := s.partnerRsvp(ctx, r.Name)
		if err != nil {
			return models.EmailMessage{}, err
		}
		if partner != nil {
			summary += "<h3>Partner's Information</h3>" + formData(labels, partner.RsvpSubmission)
		}
	}

	return models.EmailMessage{
		To:      r.Email,
		ToName:  r.Name,
		Subject: subject,
		HTML:    strings.ReplaceAll(tpl.Body, models.FormDataPlaceholder, summary),
	}, nil
}

func (s *EmailService) formSettings(ctx context.Context) (models.FormSettings, error) {
	fs, found, err := s.templates.GetFormSettings(ctx)
	if err != nil {
		return models.FormSettings{}, err
	}
	if !found {
		return models.DefaultFormSettings(), nil
	}
	return fs.WithDefaults(), nil
}

// partnerRsvp returns the partner's RSVP when the guest has a linked partner who has responded.
func (s *EmailService) partnerRsvp(ctx context.Context, name string) (*models.RsvpResponse, error) {
	if name == "" {
		return nil, nil
	}

	guest, err := s.guests.FindGuestByName(ctx, name)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if guest.PartnerName == "" {
		return nil, nil
	}

	partner, err := s.rsvps.FindRsvpByName(ctx, guest.PartnerName)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &partner, nil
}

// formData renders the submission as an HTML list labelled by the form settings.
func formData(labels models.FormSettings, r models.RsvpSubmission) string {
	var b strings.Builder

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<li><strong>%s:</strong> %s</li>", html.EscapeString(label), html.EscapeString(value))
	}

	b.WriteString("<ul>")
	row(labels.NameLabel, r.Name)
	row(labels.EmailLabel, r.Email)
	row(labels.AttendanceQuestion, yesNo(r.Attending))

	if r.Attending == models.AnswerYes {
		row(labels.AdditionalGuestsLabel, strconv.Itoa(r.Guests))
		row(labels.VegetarianQuestion, yesNo(r.IsVegetarian))
		row(labels.FoodAllergiesLabel, r.FoodAllergies)
		row("Dietary requirements", r.DietaryRequirements)
		row(labels.LodgingQuestion, yesNo(r.Lodging))
		row(labels.TransportQuestion, yesNo(r.UsingTransport))
		row(labels.SongRequestLabel, r.Song)
	}

	row(labels.SpecialNotesLabel, r.SpecialNotes)
	b.WriteString("</ul>")

	return b.String()
}

func yesNo(v string) string {
	switch strings.ToLower(v) {
	case models.AnswerYes:
		return "Yes"
	case models.AnswerNo:
		return "No"
	default:
		return v
	}
}
