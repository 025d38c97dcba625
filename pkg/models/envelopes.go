package models

// MISP wraps most payloads in nested envelopes whose shape depends on the
// endpoint. The types below mirror those shapes so decoding stays explicit.

// EventEnvelope wraps a single event, as returned by /events/view and
// /events/add.
type EventEnvelope struct {
	Event Event `json:"Event"`
}

// EventSearchResponse is the body of /events/restSearch.
type EventSearchResponse struct {
	Response []EventEnvelope `json:"response"`
}

// AttributeSearchResponse is the body of /attributes/restSearch.
type AttributeSearchResponse struct {
	Response struct {
		Attribute []Attribute `json:"Attribute"`
	} `json:"response"`
}

// AttributeEnvelope wraps a single attribute, as returned by /attributes/add.
type AttributeEnvelope struct {
	Attribute Attribute `json:"Attribute"`
}

// SightingEnvelope wraps a single sighting, as returned by /sightings/add.
type SightingEnvelope struct {
	Sighting Sighting `json:"Sighting"`
}

// TagListResponse is the body of /tags and /tags/search.
type TagListResponse struct {
	Tag []Tag `json:"Tag"`
}

// TaxonomyEnvelope wraps one taxonomy in the /taxonomies listing.
type TaxonomyEnvelope struct {
	Taxonomy Taxonomy `json:"Taxonomy"`
}

// WarninglistHits maps each queried value to the warninglists it appears on.
// Values with no hits are absent from the map.
type WarninglistHits map[string][]WarninglistMatch

// ServerMessage is the generic acknowledgment body MISP returns for actions
// without a richer payload (publish, tag attach/detach, delete).
type ServerMessage struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
	URL     string `json:"url,omitempty"`
	Saved   bool   `json:"saved,omitempty"`
	Success string `json:"success,omitempty"`
}
