package apiclient

// IntBool marshals as the 0/1 integers MISP expects for boolean search
// filters. The conversion happens at this boundary so callers keep using
// plain booleans.
type IntBool bool

func (b IntBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}

	return []byte("0"), nil
}

func (b *IntBool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "0", "false", `"0"`:
		*b = false
	default:
		*b = true
	}

	return nil
}

// EventSearchOpts are the /events/restSearch filters. Unset fields are
// omitted from the request body so the platform applies its own defaults.
type EventSearchOpts struct {
	Value     *string  `json:"value,omitempty"`
	Type      *string  `json:"type,omitempty"`
	Category  *string  `json:"category,omitempty"`
	EventInfo *string  `json:"eventinfo,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	From      *string  `json:"from,omitempty"`
	To        *string  `json:"to,omitempty"`
	Last      *string  `json:"last,omitempty"`
	Published *IntBool `json:"published,omitempty"`
	Limit     *int     `json:"limit,omitempty"`
	Page      *int     `json:"page,omitempty"`
	SearchAll *IntBool `json:"searchall,omitempty"`
}

// AttributeSearchOpts are the /attributes/restSearch filters.
type AttributeSearchOpts struct {
	Value               *string  `json:"value,omitempty"`
	Type                *string  `json:"type,omitempty"`
	Category            *string  `json:"category,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	EventID             *string  `json:"eventid,omitempty"`
	ToIDS               *IntBool `json:"to_ids,omitempty"`
	IncludeCorrelations *IntBool `json:"includeCorrelations,omitempty"`
	From                *string  `json:"from,omitempty"`
	To                  *string  `json:"to,omitempty"`
	Last                *string  `json:"last,omitempty"`
	Limit               *int     `json:"limit,omitempty"`
	Page                *int     `json:"page,omitempty"`
}
