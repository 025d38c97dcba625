package models

// Sighting types, as MISP encodes them.
const (
	SightingTypeSighting      = "0"
	SightingTypeFalsePositive = "1"
	SightingTypeExpiration    = "2"
)

// Sighting records that an attribute's value was observed, was a false
// positive, or has expired. Sightings are created, never mutated or deleted,
// by this system.
type Sighting struct {
	ID           string `json:"id,omitempty"`
	AttributeID  string `json:"attribute_id,omitempty"`
	EventID      string `json:"event_id,omitempty"`
	Type         string `json:"type,omitempty"`
	Source       string `json:"source,omitempty"`
	DateSighting string `json:"date_sighting,omitempty"`
	UUID         string `json:"uuid,omitempty"`
}

// WarninglistMatch is a hit against a platform-maintained list of known
// benign values.
type WarninglistMatch struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}
