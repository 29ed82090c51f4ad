package request

import "wedding_site/internal/domain/models"

// RsvpRequest форма ответа гостя. Обязательные поля проверяет сервис, чтобы вернуть их одним списком.
type RsvpRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Attending           string `json:"attending"`
	Guests              int    `json:"guests"`
	DietaryRequirements string `json:"dietaryRequirements"`
	Song                string `json:"song"`
	IsVegetarian        string `json:"isVegetarian"`
	FoodAllergies       string `json:"foodAllergies"`
	Lodging             string `json:"lodging"`
	UsingTransport      string `json:"usingTransport"`
	SpecialNotes        string `json:"specialNotes"`
}

func (r RsvpRequest) ToDomain() models.RsvpSubmission {
	return models.RsvpSubmission{
		Name:                r.Name,
		Email:               r.Email,
		Attending:           r.Attending,
		Guests:              r.Guests,
		DietaryRequirements: r.DietaryRequirements,
		Song:                r.Song,
		IsVegetarian:        r.IsVegetarian,
		FoodAllergies:       r.FoodAllergies,
		Lodging:             r.Lodging,
		UsingTransport:      r.UsingTransport,
		SpecialNotes:        r.SpecialNotes,
	}
}
