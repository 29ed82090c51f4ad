package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
	slugPattern    = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Page is the canonical record of a builder page.
type Page struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Order        int              `json:"order"`
	Version      int64            `json:"version"`
	Sections     []ContentSection `json:"sections"`
	CreatedAt    time.Time        `json:"createdAt"`
	LastModified time.Time        `json:"lastModified"`
}

// PageIndexEntry is the summary of a page kept in the pages index.
type PageIndexEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Order        int       `json:"order"`
	LastModified time.Time `json:"lastModified"`
}

// PageIndex is the persisted, versioned list of page summaries.
type PageIndex struct {
	Version int64            `json:"version"`
	Pages   []PageIndexEntry `json:"pages"`
}

// PagePatch carries the fields of a partial page update; nil means unchanged.
// ExpectedVersion, when set, must equal the stored version.
type PagePatch struct {
	Name            *string
	Slug            *string
	Order           *int
	Sections        []ContentSection
	ExpectedVersion *int64
}

func (p Page) IndexEntry() PageIndexEntry {
	return PageIndexEntry{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Order:        p.Order,
		LastModified: p.LastModified,
	}
}

// Slugify lowercases s, turns whitespace runs into dashes and drops everything outside [a-z0-9-].
func Slugify(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	return slugInvalid.ReplaceAllString(slug, "")
}

func (p *Page) Validate() error {
	var validationErrors []string

	if strings.TrimSpace(p.Name) == "" {
		validationErrors = append(validationErrors, "page name is required")
	}
	if !slugPattern.MatchString(p.Slug) {
		validationErrors = append(validationErrors, "slug must contain only lowercase letters, digits and dashes")
	}

	seen := make(map[string]struct{}, len(p.Sections))
	for _, s := range p.Sections {
		if _, dup := seen[s.ID]; dup {
			validationErrors = append(validationErrors, fmt.Sprintf("duplicate section id '%s'", s.ID))
			continue
		}
		seen[s.ID] = struct{}{}
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	for _, s := range p.Sections {
		if err := s.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// SectionIndex returns the position of the section with the given id, or -1.
func (p *Page) SectionIndex(sectionID string) int {
	for i, s := range p.Sections {
		if s.ID == sectionID {
			return i
		}
	}
	return -1
}
