package dto

import "wedding_site/internal/domain/models"

type GuestRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	PartnerName    string `json:"partner_name,omitempty" validate:"max=200"`
	PartnerEmail   string `json:"partner_email,omitempty" validate:"omitempty,email"`
	PlusOneAllowed bool   `json:"plus_one_allowed"`
}

// ToDomain преобразует DTO в доменную модель
func (r GuestRequest) ToDomain() models.Guest {
	return models.Guest{
		Name:           r.Name,
		Email:          r.Email,
		PartnerName:    r.PartnerName,
		PartnerEmail:   r.PartnerEmail,
		PlusOneAllowed: r.PlusOneAllowed,
	}
}
