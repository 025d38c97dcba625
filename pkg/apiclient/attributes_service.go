package apiclient

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/solomonneas/misp-mcp/pkg/models"
)

type AttributesService service

func (s *AttributesService) Search(ctx context.Context, opts AttributeSearchOpts) ([]models.Attribute, *Response, error) {
	var searchResp models.AttributeSearchResponse

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, "attributes/restSearch", &opts)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &searchResp)
	if err != nil {
		return nil, resp, err
	}

	return searchResp.Response.Attribute, resp, nil
}

func (s *AttributesService) Add(ctx context.Context, eventID string, attribute *models.Attribute) (*models.Attribute, *Response, error) {
	if err := validateEventIdentifier(eventID); err != nil {
		return nil, nil, err
	}

	var envelope models.AttributeEnvelope

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, "attributes/add/"+eventID, attribute)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &envelope)
	if err != nil {
		return nil, resp, err
	}

	return &envelope.Attribute, resp, nil
}

// AddWithTags mirrors EventsService.AddWithTags: create, attach tags one by
// one regardless of individual failures, refetch once only when tags were
// requested.
func (s *AttributesService) AddWithTags(ctx context.Context, eventID string, attribute *models.Attribute, tags []string) (*models.Attribute, *Response, error) {
	created, resp, err := s.Add(ctx, eventID, attribute)
	if err != nil {
		return nil, resp, err
	}

	if len(tags) == 0 {
		return created, resp, nil
	}

	for _, tag := range tags {
		if _, _, tagErr := s.client.Tags.AttachToObject(ctx, created.UUID, tag); tagErr != nil {
			log.Warningf("attribute %s created but tag %q could not be attached: %s", created.ID, tag, tagErr)
		}
	}

	return s.Get(ctx, created.ID)
}

func (s *AttributesService) Get(ctx context.Context, id string) (*models.Attribute, *Response, error) {
	var envelope models.AttributeEnvelope

	req, err := s.client.PrepareRequest(ctx, http.MethodGet, "attributes/view/"+id, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &envelope)
	if err != nil {
		return nil, resp, err
	}

	return &envelope.Attribute, resp, nil
}

// Tag attaches a tag to the attribute identified by uuid.
func (s *AttributesService) Tag(ctx context.Context, attributeUUID string, tag string) (*models.ServerMessage, *Response, error) {
	return s.client.Tags.AttachToObject(ctx, attributeUUID, tag)
}

// Untag removes a tag from the attribute identified by uuid.
func (s *AttributesService) Untag(ctx context.Context, attributeUUID string, tag string) (*models.ServerMessage, *Response, error) {
	return s.client.Tags.RemoveFromObject(ctx, attributeUUID, tag)
}

func (s *AttributesService) Delete(ctx context.Context, id string) (*models.ServerMessage, *Response, error) {
	var msg models.ServerMessage

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, "attributes/delete/"+id, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &msg)
	if err != nil {
		return nil, resp, err
	}

	return &msg, resp, nil
}

// AddBatch adds each attribute to the event independently, in input order.
// One attribute failing does not stop the rest; the report records the
// outcome of every item so the caller knows exactly which ones still need
// retrying.
func (s *AttributesService) AddBatch(ctx context.Context, eventID string, attributes []models.Attribute) (*BatchReport, error) {
	if err := validateEventIdentifier(eventID); err != nil {
		return nil, err
	}

	return RunBatch(ctx, attributes, func(ctx context.Context, attribute models.Attribute) (string, error) {
		created, _, err := s.Add(ctx, eventID, &attribute)
		if err != nil {
			return "", err
		}

		return created.ID, nil
	}), nil
}
