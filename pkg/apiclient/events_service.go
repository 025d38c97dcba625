package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/solomonneas/misp-mcp/pkg/models"
)

type EventsService service

var numericID = regexp.MustCompile(`^[0-9]+$`)

// validateEventIdentifier accepts a numeric event id or an event uuid, which
// MISP treats interchangeably in view/edit/publish routes.
func validateEventIdentifier(id string) error {
	if numericID.MatchString(id) {
		return nil
	}

	if err := uuid.Validate(id); err != nil {
		return invalidRequest("event identifier %q is neither a numeric id nor a uuid", id)
	}

	return nil
}

func (s *EventsService) Search(ctx context.Context, opts EventSearchOpts) ([]models.Event, *Response, error) {
	var searchResp models.EventSearchResponse

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, "events/restSearch", &opts)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &searchResp)
	if err != nil {
		return nil, resp, err
	}

	events := make([]models.Event, len(searchResp.Response))
	for i, envelope := range searchResp.Response {
		events[i] = envelope.Event
	}

	return events, resp, nil
}

func (s *EventsService) Get(ctx context.Context, id string) (*models.Event, *Response, error) {
	if err := validateEventIdentifier(id); err != nil {
		return nil, nil, err
	}

	var envelope models.EventEnvelope

	req, err := s.client.PrepareRequest(ctx, http.MethodGet, "events/view/"+id, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &envelope)
	if err != nil {
		return nil, resp, err
	}

	return &envelope.Event, resp, nil
}

func (s *EventsService) Add(ctx context.Context, event *models.Event) (*models.Event, *Response, error) {
	var envelope models.EventEnvelope

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, "events/add", event)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &envelope)
	if err != nil {
		return nil, resp, err
	}

	return &envelope.Event, resp, nil
}

// AddWithTags creates the event, then attaches each requested tag with one
// call per tag, in order. A failed tag attach is logged and does not abort
// the rest: the event already exists remotely and is never rolled back. When
// at least one tag was requested the event is re-fetched once so the returned
// representation reflects the applied tags; otherwise the create response is
// returned as is.
func (s *EventsService) AddWithTags(ctx context.Context, event *models.Event, tags []string) (*models.Event, *Response, error) {
	created, resp, err := s.Add(ctx, event)
	if err != nil {
		return nil, resp, err
	}

	if len(tags) == 0 {
		return created, resp, nil
	}

	for _, tag := range tags {
		if _, _, tagErr := s.client.Tags.AttachToObject(ctx, created.UUID, tag); tagErr != nil {
			log.Warningf("event %s created but tag %q could not be attached: %s", created.ID, tag, tagErr)
		}
	}

	return s.Get(ctx, created.ID)
}

// Tag attaches a tag to the event identified by uuid.
func (s *EventsService) Tag(ctx context.Context, eventUUID string, tag string) (*models.ServerMessage, *Response, error) {
	return s.client.Tags.AttachToObject(ctx, eventUUID, tag)
}

// Untag removes a tag from the event identified by uuid.
func (s *EventsService) Untag(ctx context.Context, eventUUID string, tag string) (*models.ServerMessage, *Response, error) {
	return s.client.Tags.RemoveFromObject(ctx, eventUUID, tag)
}

func (s *EventsService) Update(ctx context.Context, id string, event *models.Event) (*models.Event, *Response, error) {
	if err := validateEventIdentifier(id); err != nil {
		return nil, nil, err
	}

	var envelope models.EventEnvelope

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, "events/edit/"+id, event)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &envelope)
	if err != nil {
		return nil, resp, err
	}

	return &envelope.Event, resp, nil
}

func (s *EventsService) Publish(ctx context.Context, id string) (*models.ServerMessage, *Response, error) {
	if err := validateEventIdentifier(id); err != nil {
		return nil, nil, err
	}

	var msg models.ServerMessage

	u := fmt.Sprintf("events/publish/%s", id)

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &msg)
	if err != nil {
		return nil, resp, err
	}

	return &msg, resp, nil
}
