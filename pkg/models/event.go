package models

// Event is the MISP representation of a reported incident or intelligence
// item. MISP encodes numeric identifiers and ordinals as JSON strings, so the
// fields follow the wire format rather than converting eagerly.
//
// AttributeCount is advisory metadata from the platform; when Attributes is
// loaded, len(Attributes) is authoritative.
type Event struct {
	ID             string         `json:"id,omitempty"`
	UUID           string         `json:"uuid,omitempty"`
	Info           string         `json:"info"`
	Date           string         `json:"date,omitempty"`
	ThreatLevelID  string         `json:"threat_level_id,omitempty"`
	Analysis       string         `json:"analysis,omitempty"`
	Distribution   string         `json:"distribution,omitempty"`
	Published      bool           `json:"published,omitempty"`
	AttributeCount string         `json:"attribute_count,omitempty"`
	Timestamp      string         `json:"timestamp,omitempty"`
	Org            *Org           `json:"Org,omitempty"`
	Orgc           *Org           `json:"Orgc,omitempty"`
	Tags           []Tag          `json:"Tag,omitempty"`
	Attributes     []Attribute    `json:"Attribute,omitempty"`
	Objects        []Object       `json:"Object,omitempty"`
	RelatedEvents  []RelatedEvent `json:"RelatedEvent,omitempty"`
}

type Org struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	UUID string `json:"uuid,omitempty"`
}

// RelatedEvent is a back-reference to another event the platform already
// linked to this one. MISP nests the payload under an "Event" key.
type RelatedEvent struct {
	Event EventSummary `json:"Event"`
}

// EventSummary is the reduced event body MISP returns in related-event
// back-references and search listings.
type EventSummary struct {
	ID            string `json:"id"`
	UUID          string `json:"uuid,omitempty"`
	Info          string `json:"info,omitempty"`
	Date          string `json:"date,omitempty"`
	ThreatLevelID string `json:"threat_level_id,omitempty"`
	Published     bool   `json:"published,omitempty"`
	OrgID         string `json:"org_id,omitempty"`
}

// Object is a composite MISP object grouping attributes that describe one
// thing (a file, an x509 certificate, ...).
type Object struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name,omitempty"`
	MetaCategory string     `json:"meta-category,omitempty"`
	Description string      `json:"description,omitempty"`
	EventID     string      `json:"event_id,omitempty"`
	UUID        string      `json:"uuid,omitempty"`
	Attributes  []Attribute `json:"Attribute,omitempty"`
}

// AttributeTotal returns the number of attributes actually present on the
// event, including those nested in objects. The attribute_count field is not
// consulted.
func (e *Event) AttributeTotal() int {
	n := len(e.Attributes)
	for _, obj := range e.Objects {
		n += len(obj.Attributes)
	}

	return n
}

func (e *Event) HasTag(name string) bool {
	for _, tag := range e.Tags {
		if tag.Name == name {
			return true
		}
	}

	return false
}
