package dto

import "wedding_site/internal/domain/models"

// PageRequest тело запроса на создание и изменение страницы. Отсутствующие поля не меняются.
type PageRequest struct {
	Name     *string                 `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Slug     *string                 `json:"slug,omitempty" validate:"omitempty,max=200"`
	Order    *int                    `json:"order,omitempty" validate:"omitempty,min=0"`
	Sections []models.ContentSection `json:"sections,omitempty"`
}

// ToDomain преобразует DTO в доменную модель
func (r PageRequest) ToDomain() models.PagePatch {
	return models.PagePatch{
		Name:     r.Name,
		Slug:     r.Slug,
		Order:    r.Order,
		Sections: r.Sections,
	}
}

// UpdatePageRequest тело запроса на изменение страницы: изменения во вложенном объекте page.
// ExpectedVersion, если задана, должна совпадать с текущей версией страницы.
type UpdatePageRequest struct {
	Page            *PageRequest `json:"page" validate:"required"`
	ExpectedVersion *int64       `json:"expectedVersion,omitempty" validate:"omitempty,min=0"`
}

// ToDomain преобразует DTO в доменную модель
func (r UpdatePageRequest) ToDomain() models.PagePatch {
	patch := r.Page.ToDomain()
	patch.ExpectedVersion = r.ExpectedVersion
	return patch
}

type PageOrderRequest struct {
	Order *int `json:"order" validate:"required,min=0"`
}

type AddSectionRequest struct {
	Type     models.SectionType `json:"type" validate:"required"`
	Position *int               `json:"position,omitempty" validate:"omitempty,min=1"`
}

type UpdateSectionRequest struct {
	Properties map[string]any `json:"properties" validate:"required"`
}

type MoveRequest struct {
	Position *int `json:"position" validate:"required,min=1"`
}

type AddSectionResponse struct {
	Page    models.Page           `json:"page"`
	Section models.ContentSection `json:"section"`
}
