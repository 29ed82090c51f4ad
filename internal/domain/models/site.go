package models

import (
	"regexp"
	"time"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type WeddingSettings struct {
	WeddingDate    string `json:"weddingDate"`
	WeddingTime    string `json:"weddingTime"`
	VenueName      string `json:"venueName"`
	VenueAddress   string `json:"venueAddress"`
	GroomName      string `json:"groomName"`
	BrideName      string `json:"brideName"`
	RsvpButtonText string `json:"rsvpButtonText"`
	RsvpButtonLink string `json:"rsvpButtonLink"`
}

// DefaultWeddingSettings places the wedding thirty days after now.
func DefaultWeddingSettings(now time.Time) WeddingSettings {
	return WeddingSettings{
		WeddingDate:    now.AddDate(0, 0, 30).Format(time.DateOnly),
		WeddingTime:    "16:00",
		VenueName:      "Wedding Venue",
		VenueAddress:   "123 Wedding Street, City, State ZIP",
		GroomName:      "Groom's Name",
		BrideName:      "Bride's Name",
		RsvpButtonText: "RSVP Now",
		RsvpButtonLink: "/rsvp",
	}
}

func (s *WeddingSettings) Validate() error {
	var validationErrors []string

	required := []struct {
		name  string
		value string
	}{
		{"weddingDate", s.WeddingDate},
		{"weddingTime", s.WeddingTime},
		{"venueName", s.VenueName},
		{"venueAddress", s.VenueAddress},
		{"groomName", s.GroomName},
		{"brideName", s.BrideName},
		{"rsvpButtonText", s.RsvpButtonText},
		{"rsvpButtonLink", s.RsvpButtonLink},
	}
	for _, f := range required {
		if f.value == "" {
			validationErrors = append(validationErrors, f.name+" is required")
		}
	}

	if s.WeddingDate != "" {
		if _, err := time.Parse(time.DateOnly, s.WeddingDate); err != nil {
			validationErrors = append(validationErrors, "weddingDate must be YYYY-MM-DD")
		}
	}
	if s.WeddingTime != "" {
		if _, err := time.Parse("15:04", s.WeddingTime); err != nil {
			validationErrors = append(validationErrors, "weddingTime must be HH:MM")
		}
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

type ThemeFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type Favicon struct {
	URL      string `json:"url"`
	Uploaded bool   `json:"uploaded"`
}

type Theme struct {
	Colors  ThemeColors `json:"colors"`
	Fonts   ThemeFonts  `json:"fonts"`
	Favicon Favicon     `json:"favicon"`
}

func DefaultTheme() Theme {
	return Theme{
		Colors: ThemeColors{
			Primary:    "#000000",
			Secondary:  "#666666",
			Accent:     "#f3f4f6",
			Text:       "#333333",
			Background: "#ffffff",
		},
		Fonts: ThemeFonts{
			Heading: "sans-serif",
			Body:    "sans-serif",
		},
		Favicon: Favicon{
			URL:      "/favicon.png",
			Uploaded: false,
		},
	}
}

func (t *Theme) Validate() error {
	var validationErrors []string

	colors := []struct {
		name  string
		value string
	}{
		{"primary", t.Colors.Primary},
		{"secondary", t.Colors.Secondary},
		{"accent", t.Colors.Accent},
		{"text", t.Colors.Text},
		{"background", t.Colors.Background},
	}
	for _, c := range colors {
		if !hexColor.MatchString(c.value) {
			validationErrors = append(validationErrors, "colors."+c.name+" must be a hex color")
		}
	}
	if t.Fonts.Heading == "" {
		validationErrors = append(validationErrors, "fonts.heading is required")
	}
	if t.Fonts.Body == "" {
		validationErrors = append(validationErrors, "fonts.body is required")
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// FormSettings holds the labels of the public RSVP form.
type FormSettings struct {
	NameLabel             string `json:"nameLabel"`
	EmailLabel            string `json:"emailLabel"`
	AttendanceQuestion    string `json:"attendanceQuestion"`
	AdditionalGuestsLabel string `json:"additionalGuestsLabel"`
	VegetarianQuestion    string `json:"vegetarianQuestion"`
	FoodAllergiesLabel    string `json:"foodAllergiesLabel"`
	LodgingQuestion       string `json:"lodgingQuestion"`
	TransportQuestion     string `json:"transportQuestion"`
	SongRequestLabel      string `json:"songRequestLabel"`
	SpecialNotesLabel     string `json:"specialNotesLabel"`
}

func DefaultFormSettings() FormSettings {
	return FormSettings{
		NameLabel:             "Full Name",
		EmailLabel:            "Email",
		AttendanceQuestion:    "Will you be attending?",
		AdditionalGuestsLabel: "Number of Additional Guests",
		VegetarianQuestion:    "Are you vegetarian?",
		FoodAllergiesLabel:    "Any food allergies?",
		LodgingQuestion:       "Are you planning on staying at the lodging?",
		TransportQuestion:     "Are you planning on joining the transport to and from our lodging?",
		SongRequestLabel:      "What song will get you on the dance floor?",
		SpecialNotesLabel:     "Any special note for the couple?",
	}
}

// WithDefaults fills blank labels from the defaults.
func (f FormSettings) WithDefaults() FormSettings {
	d := DefaultFormSettings()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&f.NameLabel, d.NameLabel)
	fill(&f.EmailLabel, d.EmailLabel)
	fill(&f.AttendanceQuestion, d.AttendanceQuestion)
	fill(&f.AdditionalGuestsLabel, d.AdditionalGuestsLabel)
	fill(&f.VegetarianQuestion, d.VegetarianQuestion)
	fill(&f.FoodAllergiesLabel, d.FoodAllergiesLabel)
	fill(&f.LodgingQuestion, d.LodgingQuestion)
	fill(&f.TransportQuestion, d.TransportQuestion)
	fill(&f.SongRequestLabel, d.SongRequestLabel)
	fill(&f.SpecialNotesLabel, d.SpecialNotesLabel)
	return f
}

// SiteContent is the public read model of the whole site.
type SiteContent struct {
	Settings     WeddingSettings  `json:"settings"`
	Theme        Theme            `json:"theme"`
	FormSettings FormSettings     `json:"formSettings"`
	Pages        []PageIndexEntry `json:"pages"`
}
