package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ContentSection is one typed block on a page.
type ContentSection struct {
	ID         string         `json:"id"`
	Type       SectionType    `json:"type"`
	Properties map[string]any `json:"properties"`
}

func NewSectionID() string {
	return "section_" + strings.ToLower(ulid.Make().String())
}

// NewSection builds a section of the given type with every property set to its default.
func NewSection(t SectionType) (ContentSection, error) {
	schema, ok := LookupSectionSchema(t)
	if !ok {
		return ContentSection{}, fmt.Errorf("%w: %s", ErrUnknownSectionType, t)
	}

	props := make(map[string]any, len(schema.Properties))
	for _, p := range schema.Properties {
		props[p.Name] = cloneValue(p.Default)
	}

	return ContentSection{
		ID:         NewSectionID(),
		Type:       t,
		Properties: props,
	}, nil
}

// WithDefaults returns a copy of the section with missing declared properties set to their defaults.
func (s ContentSection) WithDefaults() ContentSection {
	schema, ok := LookupSectionSchema(s.Type)
	if !ok {
		return s
	}

	props := make(map[string]any, len(schema.Properties))
	for k, v := range s.Properties {
		props[k] = v
	}
	for _, p := range schema.Properties {
		if _, exists := props[p.Name]; !exists {
			props[p.Name] = cloneValue(p.Default)
		}
	}
	s.Properties = props

	return s
}

// Validate checks the section against the schema of its type.
func (s ContentSection) Validate() error {
	schema, ok := LookupSectionSchema(s.Type)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSectionType, s.Type)
	}

	var validationErrors []string

	if s.ID == "" {
		validationErrors = append(validationErrors, "section id is required")
	}

	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		prop, declared := schema.Property(key)
		if !declared {
			validationErrors = append(validationErrors, fmt.Sprintf("unknown property '%s'", key))
			continue
		}
		if msg := checkProperty(prop, s.Properties[key]); msg != "" {
			validationErrors = append(validationErrors, msg)
		}
	}

	if len(validationErrors) > 0 {
		return &SectionValidationError{
			SectionID: s.ID,
			Type:      s.Type,
			Errors:    validationErrors,
		}
	}

	return nil
}

func checkProperty(p PropertySchema, v any) string {
	switch p.Kind {
	case KindText, KindRichText:
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("property '%s' must be a string", p.Name)
		}
	case KindImage:
		if v == nil {
			return ""
		}
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("property '%s' must be an image id or null", p.Name)
		}
	case KindSelect:
		str, ok := v.(string)
		if !ok || !slices.Contains(p.Options, str) {
			return fmt.Sprintf("property '%s' must be one of: %s", p.Name, strings.Join(p.Options, ", "))
		}
	case KindGallery:
		if !isStringList(v) {
			return fmt.Sprintf("property '%s' must be a list of image ids", p.Name)
		}
	case KindArray:
		if !isObjectList(v) {
			return fmt.Sprintf("property '%s' must be a list of objects", p.Name)
		}
	}
	return ""
}

func isStringList(v any) bool {
	switch list := v.(type) {
	case []string:
		return true
	case []any:
		for _, item := range list {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func isObjectList(v any) bool {
	switch list := v.(type) {
	case []map[string]any:
		return true
	case []any:
		for _, item := range list {
			if _, ok := item.(map[string]any); !ok {
				return false
			}
		}
		return true
	}
	return false
}

// MapRichText applies fn to every richtext property and to the content of array items.
func (s ContentSection) MapRichText(fn func(string) string) ContentSection {
	schema, ok := LookupSectionSchema(s.Type)
	if !ok {
		return s
	}

	props := make(map[string]any, len(s.Properties))
	for k, v := range s.Properties {
		props[k] = v
		p, declared := schema.Property(k)
		if !declared {
			continue
		}
		switch p.Kind {
		case KindRichText:
			if str, ok := v.(string); ok {
				props[k] = fn(str)
			}
		case KindArray:
			props[k] = mapObjectContent(v, fn)
		}
	}
	s.Properties = props

	return s
}

func mapObjectContent(v any, fn func(string) string) any {
	switch list := v.(type) {
	case []map[string]any:
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			out = append(out, mapContentField(item, fn))
		}
		return out
	case []any:
		out := make([]any, 0, len(list))
		for _, item := range list {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, mapContentField(obj, fn))
				continue
			}
			out = append(out, item)
		}
		return out
	}
	return v
}

func mapContentField(obj map[string]any, fn func(string) string) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	if content, ok := out["content"].(string); ok {
		out["content"] = fn(content)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []string:
		return append([]string{}, val...)
	case []map[string]any:
		out := make([]map[string]any, 0, len(val))
		for _, item := range val {
			out = append(out, cloneValue(item).(map[string]any))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, cloneValue(item))
		}
		return out
	}
	return v
}
