package models

// ImageLocation is a fixed place on the public site that can show an assigned image.
type ImageLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var ImageLocations = []ImageLocation{
	{ID: "story_how_we_met", Name: "Our Story - How We Met"},
	{ID: "story_proposal", Name: "Our Story - The Proposal"},
	{ID: "details_venue", Name: "Details - Wedding Venue"},
	{ID: "details_accommodation", Name: "Details - Accommodation"},
	{ID: "lodging_melrose", Name: "Lodging - Melrose River Club"},
	{ID: "lodging_crystal_river", Name: "Lodging - Crystal River Inn"},
	{ID: "registry_target", Name: "Registry - Target"},
	{ID: "registry_amazon", Name: "Registry - Amazon"},
	{ID: "registry_crate_barrel", Name: "Registry - Crate & Barrel"},
}

func IsKnownLocation(id string) bool {
	for _, l := range ImageLocations {
		if l.ID == id {
			return true
		}
	}
	return false
}

// ImageAssignments maps a location id to a gallery image id.
type ImageAssignments map[string]string

// LocationAssignment is one row of the admin assignment view.
type LocationAssignment struct {
	ImageLocation
	ImageID string        `json:"imageId,omitempty"`
	Image   *GalleryImage `json:"image,omitempty"`
}
