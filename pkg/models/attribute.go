package models

// Attribute is a single indicator of compromise belonging to an event.
// EventID must match the owning event when the attribute is nested under one.
type Attribute struct {
	ID                string             `json:"id,omitempty"`
	EventID           string             `json:"event_id,omitempty"`
	ObjectID          string             `json:"object_id,omitempty"`
	UUID              string             `json:"uuid,omitempty"`
	Type              string             `json:"type"`
	Category          string             `json:"category,omitempty"`
	Value             string             `json:"value"`
	ToIDS             bool               `json:"to_ids,omitempty"`
	Comment           string             `json:"comment,omitempty"`
	Distribution      string             `json:"distribution,omitempty"`
	Timestamp         string             `json:"timestamp,omitempty"`
	Tags              []Tag              `json:"Tag,omitempty"`
	RelatedAttributes []RelatedAttribute `json:"RelatedAttribute,omitempty"`
}

// RelatedAttribute is an entry from the platform's correlation index: another
// attribute in another event sharing this attribute's value.
type RelatedAttribute struct {
	ID      string `json:"id,omitempty"`
	EventID string `json:"event_id"`
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Info    string `json:"info,omitempty"`
}

// DetectionFlagged reports whether the attribute is marked for export into
// detection rules.
func (a *Attribute) DetectionFlagged() bool {
	return a.ToIDS
}
