package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	qs "github.com/google/go-querystring/query"

	"github.com/solomonneas/misp-mcp/pkg/models"
)

type TagsService service

type TagsListOpts struct {
	Filter *string `url:"filter,omitempty"`
	Limit  *int    `url:"limit,omitempty"`
}

func (s *TagsService) List(ctx context.Context, opts TagsListOpts) ([]models.Tag, *Response, error) {
	var listResp models.TagListResponse

	params, err := qs.Values(opts)
	if err != nil {
		return nil, nil, err
	}

	u := "tags"
	if encoded := params.Encode(); encoded != "" {
		u = fmt.Sprintf("tags?%s", encoded)
	}

	req, err := s.client.PrepareRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &listResp)
	if err != nil {
		return nil, resp, err
	}

	return listResp.Tag, resp, nil
}

func (s *TagsService) Search(ctx context.Context, term string) ([]models.Tag, *Response, error) {
	if term == "" {
		return nil, nil, invalidRequest("tag search term is empty")
	}

	var listResp models.TagListResponse

	req, err := s.client.PrepareRequest(ctx, http.MethodGet, "tags/search/"+url.PathEscape(term), nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &listResp)
	if err != nil {
		return nil, resp, err
	}

	return listResp.Tag, resp, nil
}

type tagObjectRequest struct {
	UUID string `json:"uuid"`
	Tag  string `json:"tag"`
}

// AttachToObject tags an event or attribute by uuid. No local state check is
// done first: attaching a tag already present is delegated to the platform's
// own idempotence.
func (s *TagsService) AttachToObject(ctx context.Context, objectUUID string, tag string) (*models.ServerMessage, *Response, error) {
	return s.tagObject(ctx, "tags/attachTagToObject", objectUUID, tag)
}

// RemoveFromObject removes a tag from an event or attribute by uuid, with the
// same no-precheck policy as AttachToObject.
func (s *TagsService) RemoveFromObject(ctx context.Context, objectUUID string, tag string) (*models.ServerMessage, *Response, error) {
	return s.tagObject(ctx, "tags/removeTagFromObject", objectUUID, tag)
}

func (s *TagsService) tagObject(ctx context.Context, route string, objectUUID string, tag string) (*models.ServerMessage, *Response, error) {
	if objectUUID == "" {
		return nil, nil, invalidRequest("object uuid is empty")
	}

	if tag == "" {
		return nil, nil, invalidRequest("tag name is empty")
	}

	var msg models.ServerMessage

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, route, &tagObjectRequest{UUID: objectUUID, Tag: tag})
	if err != nil {
		return nil, nil, err
	}

	resp, err := s.client.Do(ctx, req, &msg)
	if err != nil {
		return nil, resp, err
	}

	return &msg, resp, nil
}
