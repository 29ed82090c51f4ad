package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/logger/sl"
	"wedding_site/internal/metrics"
	"wedding_site/internal/repository"
)

const plusOneDenied = "Additional guests are not permitted for this invitation"

// Confirmer mails the confirmation for a stored RSVP.
type Confirmer interface {
	SendConfirmation(ctx context.Context, r models.RsvpResponse) error
}

type RsvpService struct {
	log     *slog.Logger
	guests  repository.GuestRepository
	rsvps   repository.RsvpRepository
	confirm Confirmer
}

func NewRsvpService(
	log *slog.Logger,
	guests repository.GuestRepository,
	rsvps repository.RsvpRepository,
	confirm Confirmer,
) *RsvpService {
	return &RsvpService{
		log:     log,
		guests:  guests,
		rsvps:   rsvps,
		confirm: confirm,
	}
}

// Submit records the guest's response. Only names on the guest list may respond, and the
// response replaces any earlier one for the same name. A failed confirmation email is logged only.
func (s *RsvpService) Submit(ctx context.Context, in models.RsvpSubmission) (models.RsvpResponse, error) {
	const op = "rsvp_service.Submit"
	log := s.log.With(slog.String("op", op))

	in.Normalize()
	if err := in.Validate(); err != nil {
		metrics.RsvpSubmissions.WithLabelValues("invalid").Inc()
		return models.RsvpResponse{}, err
	}

	guest, err := s.guests.FindGuestByName(ctx, in.Name)
	if errors.Is(err, models.ErrNotFound) {
		metrics.RsvpSubmissions.WithLabelValues("guest_not_found").Inc()
		log.Info("rsvp from unknown guest rejected")
		return models.RsvpResponse{}, models.ErrGuestNotFound
	}
	if err != nil {
		log.Error("failed to look up guest", sl.Err(err))
		return models.RsvpResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if !guest.PlusOneAllowed && in.Guests > 0 {
		metrics.RsvpSubmissions.WithLabelValues("plus_one_denied").Inc()
		log.Info("rsvp with additional guests rejected", slog.Int64("guest_id", guest.ID))
		return models.RsvpResponse{}, &models.ForbiddenError{Reason: plusOneDenied}
	}

	saved, err := s.rsvps.UpsertRsvp(ctx, in)
	if err != nil {
		log.Error("failed to save rsvp", sl.Err(err))
		return models.RsvpResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RsvpSubmissions.WithLabelValues("accepted").Inc()
	log.Info("rsvp saved", slog.Int64("rsvp_id", saved.ID), slog.String("attending", saved.Attending))

	if err := s.confirm.SendConfirmation(ctx, saved); err != nil {
		log.Warn("confirmation email not sent", slog.Int64("rsvp_id", saved.ID), sl.Err(err))
	}

	return saved, nil
}

// List returns every response, newest first.
func (s *RsvpService) List(ctx context.Context) ([]models.RsvpResponse, error) {
	const op = "rsvp_service.List"

	list, err := s.rsvps.ListRsvps(ctx)
	if err != nil {
		s.log.Error("failed to list rsvps", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

func (s *RsvpService) Delete(ctx context.Context, id int64) error {
	const op = "rsvp_service.Delete"
	log := s.log.With(slog.String("op", op), slog.Int64("rsvp_id", id))

	if err := s.rsvps.DeleteRsvp(ctx, id); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Error("failed to delete rsvp", sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("rsvp deleted")

	return nil
}
