package apiclient

import (
	"context"
	"net/http"

	"github.com/solomonneas/misp-mcp/pkg/models"
)

type SightingsService service

// SightingRequest targets an attribute either by identity or by literal
// value. Exactly one of the two must be set.
type SightingRequest struct {
	AttributeID string `json:"id,omitempty"`
	Value       string `json:"value,omitempty"`
	Source      string `json:"source,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Add creates a sighting. A request carrying neither an attribute id nor a
// value is rejected before any network call.
func (s *SightingsService) Add(ctx context.Context, sighting SightingRequest) (*models.Sighting, *Response, error) {
	if sighting.AttributeID == "" && sighting.Value == "" {
		return nil, nil, invalidRequest("sighting requires an attribute id or a value")
	}

	if sighting.AttributeID != "" && sighting.Value != "" {
		return nil, nil, invalidRequest("sighting takes an attribute id or a value, not both")
	}

	var envelope models.SightingEnvelope

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, "sightings/add", &sighting)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &envelope)
	if err != nil {
		return nil, resp, err
	}

	return &envelope.Sighting, resp, nil
}
