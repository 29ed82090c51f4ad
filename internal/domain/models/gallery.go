package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	ThumbnailWidth = 200
	MediumWidth    = 800
)

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// GalleryImage is the metadata record of an uploaded image. ID is the content hash of the bytes.
type GalleryImage struct {
	ID          string         `json:"id"`
	Key         string         `json:"r2_key"`
	FileExt     string         `json:"file_ext"`
	ContentType string         `json:"content_type"`
	Size        int64          `json:"size"`
	Alt         string         `json:"alt,omitempty"`
	Caption     string         `json:"caption,omitempty"`
	Variants    *ImageVariants `json:"variants,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ImageVariants struct {
	Original  string `json:"original"`
	Medium    string `json:"medium"`
	Thumbnail string `json:"thumbnail"`
}

// GalleryItem is a gallery image together with its position in the display order.
type GalleryItem struct {
	GalleryImage
	Position int    `json:"position"`
	URL      string `json:"url"`
}

// ImageMetadata is the editable part of a gallery image.
type ImageMetadata struct {
	Caption *string `json:"caption"`
	Alt     *string `json:"alt"`
}

// ExtensionFor returns the file extension used for the given content type.
func ExtensionFor(contentType string) (string, bool) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	return ext, ok
}

func ThumbnailKey(key string) string {
	return key + "_thumb"
}

func MediumKey(key string) string {
	return key + "_medium"
}

func (g *GalleryImage) Validate() error {
	var validationErrors []string

	if g.ID == "" {
		validationErrors = append(validationErrors, "image id is required")
	}
	if g.Key == "" {
		validationErrors = append(validationErrors, "storage key is required")
	}
	if _, ok := ExtensionFor(g.ContentType); !ok {
		validationErrors = append(validationErrors,
			fmt.Sprintf("unsupported content type '%s'", g.ContentType))
	}
	if g.Size <= 0 {
		validationErrors = append(validationErrors, "file size must be positive")
	}
	if len(g.Caption) > 500 {
		validationErrors = append(validationErrors, "caption must be 500 characters or less")
	}
	if len(g.Alt) > 500 {
		validationErrors = append(validationErrors, "alt text must be 500 characters or less")
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// OrderedList is the persisted form of an ordered collection. Position of an id is its index plus one.
type OrderedList struct {
	Version int64    `json:"version"`
	IDs     []string `json:"ids"`
}

type Positioned struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// VariantReport summarises a bulk variant generation run.
type VariantReport struct {
	Processed int            `json:"processed"`
	Skipped   int            `json:"skipped"`
	Errors    []VariantError `json:"errors"`
}

type VariantError struct {
	ImageID string `json:"imageId"`
	Error   string `json:"error"`
}
