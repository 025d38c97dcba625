package models

type Tag struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Colour         string `json:"colour,omitempty"`
	Exportable     bool   `json:"exportable,omitempty"`
	HideTag        bool   `json:"hide_tag,omitempty"`
	IsGalaxy       bool   `json:"is_galaxy,omitempty"`
	AttributeCount string `json:"attribute_count,omitempty"`
}

type Taxonomy struct {
	ID          string `json:"id,omitempty"`
	Namespace   string `json:"namespace"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Enabled     bool   `json:"enabled,omitempty"`
}
