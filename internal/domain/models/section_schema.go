package models

type SectionType string

const (
	SectionText           SectionType = "text"
	SectionImage          SectionType = "image"
	SectionTextImageLeft  SectionType = "text_image_left"
	SectionTextImageRight SectionType = "text_image_right"
	SectionHero           SectionType = "hero"
	SectionGallery        SectionType = "gallery"
	SectionColumns        SectionType = "columns"
	SectionSpacer         SectionType = "spacer"
	SectionDivider        SectionType = "divider"
	SectionButton         SectionType = "button"
)

type PropertyKind string

const (
	KindText     PropertyKind = "text"
	KindRichText PropertyKind = "richtext"
	KindImage    PropertyKind = "image"
	KindSelect   PropertyKind = "select"
	KindArray    PropertyKind = "array"
	KindGallery  PropertyKind = "gallery"
)

type PropertySchema struct {
	Name    string       `json:"name"`
	Kind    PropertyKind `json:"type"`
	Default any          `json:"default"`
	Options []string     `json:"options,omitempty"`
}

type SectionSchema struct {
	Type        SectionType      `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Properties  []PropertySchema `json:"properties"`
}

// SectionTypeInfo is the catalog entry shown to the page builder.
type SectionTypeInfo struct {
	Type        SectionType `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
}

const defaultRichText = "<p>Enter your text here...</p>"

var (
	alignmentOptions = []string{"left", "center", "right"}
	spacingOptions   = []string{"small", "medium", "large"}
)

func textImageProperties() []PropertySchema {
	return []PropertySchema{
		{Name: "content", Kind: KindRichText, Default: defaultRichText},
		{Name: "imageId", Kind: KindImage, Default: nil},
		{Name: "caption", Kind: KindText, Default: ""},
		{Name: "imageWidth", Kind: KindSelect, Options: []string{"1/4", "1/3", "1/2", "2/3"}, Default: "1/2"},
		{Name: "verticalAlignment", Kind: KindSelect, Options: []string{"top", "center", "bottom"}, Default: "center"},
	}
}

var sectionSchemas = []SectionSchema{
	{
		Type:        SectionText,
		Name:        "Text Section",
		Description: "A simple text section with rich text formatting",
		Icon:        "text",
		Properties: []PropertySchema{
			{Name: "content", Kind: KindRichText, Default: defaultRichText},
		},
	},
	{
		Type:        SectionImage,
		Name:        "Image Section",
		Description: "A section with a single image",
		Icon:        "image",
		Properties: []PropertySchema{
			{Name: "imageId", Kind: KindImage, Default: nil},
			{Name: "caption", Kind: KindText, Default: ""},
			{Name: "alignment", Kind: KindSelect, Options: alignmentOptions, Default: "center"},
			{Name: "maxWidth", Kind: KindSelect, Options: []string{"small", "medium", "large", "full"}, Default: "medium"},
		},
	},
	{
		Type:        SectionTextImageLeft,
		Name:        "Text with Image (Left)",
		Description: "Text section with an image on the left",
		Icon:        "layout-left",
		Properties:  textImageProperties(),
	},
	{
		Type:        SectionTextImageRight,
		Name:        "Text with Image (Right)",
		Description: "Text section with an image on the right",
		Icon:        "layout-right",
		Properties:  textImageProperties(),
	},
	{
		Type:        SectionHero,
		Name:        "Hero Section",
		Description: "Full-width banner with text overlay",
		Icon:        "layout-hero",
		Properties: []PropertySchema{
			{Name: "heading", Kind: KindText, Default: "Hero Heading"},
			{Name: "subheading", Kind: KindText, Default: "Subheading text goes here"},
			{Name: "imageId", Kind: KindImage, Default: nil},
			{Name: "textColor", Kind: KindSelect, Options: []string{"light", "dark"}, Default: "light"},
			{Name: "height", Kind: KindSelect, Options: []string{"small", "medium", "large", "full"}, Default: "medium"},
			{Name: "textAlignment", Kind: KindSelect, Options: alignmentOptions, Default: "center"},
			{Name: "buttonText", Kind: KindText, Default: ""},
			{Name: "buttonLink", Kind: KindText, Default: ""},
		},
	},
	{
		Type:        SectionGallery,
		Name:        "Image Gallery",
		Description: "Grid of images",
		Icon:        "grid",
		Properties: []PropertySchema{
			{Name: "images", Kind: KindGallery, Default: []string{}},
			{Name: "columns", Kind: KindSelect, Options: []string{"2", "3", "4"}, Default: "3"},
			{Name: "spacing", Kind: KindSelect, Options: spacingOptions, Default: "medium"},
		},
	},
	{
		Type:        SectionColumns,
		Name:        "Text Columns",
		Description: "Multiple columns of text",
		Icon:        "columns",
		Properties: []PropertySchema{
			{Name: "columns", Kind: KindArray, Default: []map[string]any{
				{"content": "<p>Column 1 content</p>"},
				{"content": "<p>Column 2 content</p>"},
			}},
			{Name: "count", Kind: KindSelect, Options: []string{"2", "3", "4"}, Default: "2"},
			{Name: "spacing", Kind: KindSelect, Options: spacingOptions, Default: "medium"},
		},
	},
	{
		Type:        SectionSpacer,
		Name:        "Spacer",
		Description: "Add vertical space between sections",
		Icon:        "spacer",
		Properties: []PropertySchema{
			{Name: "height", Kind: KindSelect, Options: []string{"small", "medium", "large", "extra-large"}, Default: "medium"},
		},
	},
	{
		Type:        SectionDivider,
		Name:        "Divider",
		Description: "Horizontal line divider",
		Icon:        "divider",
		Properties: []PropertySchema{
			{Name: "style", Kind: KindSelect, Options: []string{"solid", "dashed", "dotted"}, Default: "solid"},
			{Name: "width", Kind: KindSelect, Options: []string{"narrow", "medium", "wide", "full"}, Default: "wide"},
			{Name: "color", Kind: KindSelect, Options: []string{"light", "medium", "dark", "accent", "primary"}, Default: "medium"},
		},
	},
	{
		Type:        SectionButton,
		Name:        "Button",
		Description: "Call-to-action button",
		Icon:        "button",
		Properties: []PropertySchema{
			{Name: "text", Kind: KindText, Default: "Click Here"},
			{Name: "link", Kind: KindText, Default: "#"},
			{Name: "alignment", Kind: KindSelect, Options: alignmentOptions, Default: "center"},
			{Name: "style", Kind: KindSelect, Options: []string{"primary", "secondary", "outline"}, Default: "primary"},
			{Name: "size", Kind: KindSelect, Options: []string{"small", "medium", "large"}, Default: "medium"},
		},
	},
}

// LookupSectionSchema returns the schema of a section type.
func LookupSectionSchema(t SectionType) (SectionSchema, bool) {
	for _, s := range sectionSchemas {
		if s.Type == t {
			return s, true
		}
	}
	return SectionSchema{}, false
}

// ListSectionTypes returns the catalog of section types in a stable order.
func ListSectionTypes() []SectionTypeInfo {
	out := make([]SectionTypeInfo, 0, len(sectionSchemas))
	for _, s := range sectionSchemas {
		out = append(out, SectionTypeInfo{
			Type:        s.Type,
			Name:        s.Name,
			Description: s.Description,
			Icon:        s.Icon,
		})
	}
	return out
}

func (s SectionSchema) Property(name string) (PropertySchema, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertySchema{}, false
}
