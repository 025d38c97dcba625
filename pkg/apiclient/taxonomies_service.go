package apiclient

import (
	"context"
	"net/http"

	"github.com/solomonneas/misp-mcp/pkg/models"
)

type TaxonomiesService service

func (s *TaxonomiesService) List(ctx context.Context) ([]models.Taxonomy, *Response, error) {
	var envelopes []models.TaxonomyEnvelope

	req, err := s.client.PrepareRequest(ctx, http.MethodGet, "taxonomies", nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &envelopes)
	if err != nil {
		return nil, resp, err
	}

	taxonomies := make([]models.Taxonomy, len(envelopes))
	for i, envelope := range envelopes {
		taxonomies[i] = envelope.Taxonomy
	}

	return taxonomies, resp, nil
}
