package dto

import "wedding_site/internal/domain/models"

// ReorderImage элемент нового порядка галереи. Остальные поля изображения игнорируются.
type ReorderImage struct {
	ID string `json:"id" validate:"required"`
}

// ReorderRequest новый порядок галереи. Пустой массив допустим, отсутствие массива нет.
type ReorderRequest struct {
	Images          []ReorderImage `json:"images" validate:"required,dive"`
	ExpectedVersion *int64         `json:"expectedVersion,omitempty"`
}

func (r ReorderRequest) IDs() []string {
	ids := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		ids = append(ids, img.ID)
	}
	return ids
}

type MetadataRequest struct {
	Caption *string `json:"caption,omitempty" validate:"omitempty,max=500"`
	Alt     *string `json:"alt,omitempty" validate:"omitempty,max=500"`
}

// ToDomain преобразует DTO в доменную модель
func (r MetadataRequest) ToDomain() models.ImageMetadata {
	return models.ImageMetadata{Caption: r.Caption, Alt: r.Alt}
}

type AssignRequest struct {
	LocationID string `json:"locationId" validate:"required"`
	ImageID    string `json:"imageId" validate:"required"`
}

type UnassignRequest struct {
	LocationID string `json:"locationId" validate:"required"`
}

// GalleryResponse ответ со списком изображений галереи в порядке показа
type GalleryResponse struct {
	Images  []models.GalleryItem `json:"images"`
	Version int64                `json:"version,omitempty"`
}

type UploadResponse struct {
	Image   models.GalleryItem `json:"image"`
	Created bool               `json:"created"`
}
