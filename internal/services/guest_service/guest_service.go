package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"wedding_site/internal/domain/models"
	"wedding_site/internal/lib/logger/sl"
	"wedding_site/internal/repository"
)

type GuestService struct {
	log    *slog.Logger
	guests repository.GuestRepository
}

func NewGuestService(log *slog.Logger, guests repository.GuestRepository) *GuestService {
	return &GuestService{
		log:    log,
		guests: guests,
	}
}

// List returns the guest list ordered by name.
func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	const op = "guest_service.List"

	guests, err := s.guests.ListGuests(ctx)
	if err != nil {
		s.log.Error("failed to list guests", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return guests, nil
}

// Create adds a guest. A name already on the list, in any case, is a conflict.
func (s *GuestService) Create(ctx context.Context, g models.Guest) (models.Guest, error) {
	const op = "guest_service.Create"
	log := s.log.With(slog.String("op", op))

	g.Normalize()
	if err := g.Validate(); err != nil {
		return models.Guest{}, err
	}

	created, err := s.guests.CreateGuest(ctx, g)
	if err != nil {
		if !errors.Is(err, models.ErrConflict) {
			log.Error("failed to create guest", sl.Err(err))
		}
		return models.Guest{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("guest created", slog.Int64("guest_id", created.ID))

	return created, nil
}

func (s *GuestService) Update(ctx context.Context, id int64, g models.Guest) (models.Guest, error) {
	const op = "guest_service.Update"
	log := s.log.With(slog.String("op", op), slog.Int64("guest_id", id))

	g.ID = id
	g.Normalize()
	if err := g.Validate(); err != nil {
		return models.Guest{}, err
	}

	if err := s.guests.UpdateGuest(ctx, g); err != nil {
		if !errors.Is(err, models.ErrNotFound) && !errors.Is(err, models.ErrConflict) {
			log.Error("failed to update guest", sl.Err(err))
		}
		return models.Guest{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.guests.GetGuest(ctx, id)
	if err != nil {
		return models.Guest{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("guest updated")

	return updated, nil
}

func (s *GuestService) Delete(ctx context.Context, id int64) error {
	const op = "guest_service.Delete"
	log := s.log.With(slog.String("op", op), slog.Int64("guest_id", id))

	if err := s.guests.DeleteGuest(ctx, id); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Error("failed to delete guest", sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("guest deleted")

	return nil
}

// Search finds guests whose name or partner name contains fragment, partnered guests first.
func (s *GuestService) Search(ctx context.Context, fragment string) ([]models.GuestMatch, error) {
	const op = "guest_service.Search"

	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, models.NewValidationError("name is required")
	}

	guests, err := s.guests.SearchGuests(ctx, fragment, models.MaxGuestSearchResults)
	if err != nil {
		s.log.Error("failed to search guests", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	matches := make([]models.GuestMatch, 0, len(guests))
	for _, g := range guests {
		matches = append(matches, g.Match())
	}

	return matches, nil
}

// Import upserts guests from a CSV file with a header row. The name column is required;
// email, partner_name, partner_email and plus_one_allowed are optional.
func (s *GuestService) Import(ctx context.Context, r io.Reader) (models.GuestImportResult, error) {
	const op = "guest_service.Import"
	log := s.log.With(slog.String("op", op))

	rows, skipped, err := parseGuestCSV(r)
	if err != nil {
		return models.GuestImportResult{}, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.guest.Name)
	}

	existing, err := s.guests.FindGuestsByNames(ctx, names)
	if err != nil {
		log.Error("failed to look up guests", sl.Err(err))
		return models.GuestImportResult{}, fmt.Errorf("%s: %w", op, err)
	}

	result := models.GuestImportResult{Skipped: skipped}

	for _, row := range rows {
		g := row.guest

		if current, ok := existing[strings.ToLower(g.Name)]; ok {
			g.ID = current.ID
			g.Name = current.Name
			if !row.hasEmail {
				g.Email = current.Email
			}
			if !row.hasPartnerName {
				g.PartnerName = current.PartnerName
			}
			if !row.hasPartnerEmail && g.PartnerName != "" {
				g.PartnerEmail = current.PartnerEmail
			}
			if !row.hasPlusOne {
				g.PlusOneAllowed = current.PlusOneAllowed
			}
			if err := s.guests.UpdateGuest(ctx, g); err != nil {
				log.Error("failed to update guest", slog.Int("row", row.line), sl.Err(err))
				return result, fmt.Errorf("%s: row %d (%s): %w", op, row.line, g.Name, err)
			}
			result.Updated++
			continue
		}

		if _, err := s.guests.CreateGuest(ctx, g); err != nil {
			log.Error("failed to create guest", slog.Int("row", row.line), sl.Err(err))
			return result, fmt.Errorf("%s: row %d (%s): %w", op, row.line, g.Name, err)
		}
		result.Inserted++
	}

	log.Info("guest list imported",
		slog.Int("inserted", result.Inserted),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

type importRow struct {
	line            int
	guest           models.Guest
	hasEmail        bool
	hasPartnerName  bool
	hasPartnerEmail bool
	hasPlusOne      bool
}

func parseGuestCSV(r io.Reader) ([]importRow, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, models.NewValidationError("No valid records found in CSV")
	}
	if err != nil {
		return nil, nil, models.NewValidationError("Failed to parse CSV: " + err.Error())
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, nil, models.NewValidationError("Missing required columns: name")
	}

	field := func(record []string, name string) (string, bool) {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}

	var rows []importRow
	var skipped []string
	seen := make(map[string]int)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, models.NewValidationError("Failed to parse CSV: " + err.Error())
		}

		name, _ := field(record, "name")
		if name == "" {
			if !blankRecord(record) {
				skipped = append(skipped, fmt.Sprintf("row %d: name is required", line))
			}
			continue
		}

		g := models.Guest{Name: name}
		row := importRow{line: line}
		g.Email, row.hasEmail = field(record, "email")
		g.PartnerName, row.hasPartnerName = field(record, "partner_name")
		g.PartnerEmail, row.hasPartnerEmail = field(record, "partner_email")

		if v, ok := field(record, "plus_one_allowed"); ok && v != "" {
			allowed, err := parseFlag(v)
			if err != nil {
				skipped = append(skipped, fmt.Sprintf("row %d: plus_one_allowed must be true or false", line))
				continue
			}
			g.PlusOneAllowed = allowed
			row.hasPlusOne = true
		}

		g.Normalize()
		if err := g.Validate(); err != nil {
			var ve *models.ValidationError
			if errors.As(err, &ve) {
				skipped = append(skipped, fmt.Sprintf("row %d: %s", line, strings.Join(ve.Errors, "; ")))
			}
			continue
		}

		row.guest = g

		// A later row for the same name wins.
		key := strings.ToLower(g.Name)
		if i, ok := seen[key]; ok {
			rows[i] = row
			continue
		}
		seen[key] = len(rows)
		rows = append(rows, row)
	}

	if len(rows) == 0 && len(skipped) == 0 {
		return nil, nil, models.NewValidationError("No valid records found in CSV")
	}

	return rows, skipped, nil
}

func parseFlag(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(v)
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
