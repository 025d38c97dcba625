package apiclient

import (
	"context"
	"net/http"

	"github.com/solomonneas/misp-mcp/pkg/models"
)

type WarninglistsService service

// CheckValues asks the platform which warninglists the given values appear
// on. Values with no hits are absent from the returned map, so callers can
// tell "not checked" apart from "checked, clean".
func (s *WarninglistsService) CheckValues(ctx context.Context, values []string) (models.WarninglistHits, *Response, error) {
	if len(values) == 0 {
		return nil, nil, invalidRequest("no values to check against warninglists")
	}

	var hits models.WarninglistHits

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, "warninglists/checkValue", values)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &hits)
	if err != nil {
		return nil, resp, err
	}

	return hits, resp, nil
}
