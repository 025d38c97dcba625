package controllers

import (
	"context"
	"encoding/json"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
	"github.com/solomonneas/misp-mcp/pkg/models"
)

var sightingTypes = []string{
	models.SightingTypeSighting,
	models.SightingTypeFalsePositive,
	models.SightingTypeExpiration,
}

func (c *Controller) registerAttributeTools() {
	c.register(Tool{
		Name:        "search_attributes",
		Description: "Search attributes (IOCs) across events.",
		Params: []ParamDoc{
			{Name: "value", Type: "string"},
			{Name: "type", Type: "string"},
			{Name: "category", Type: "string"},
			{Name: "tags", Type: "[]string"},
			{Name: "event_id", Type: "string"},
			{Name: "to_ids", Type: "bool"},
			{Name: "last", Type: "string"},
			{Name: "limit", Type: "int"},
			{Name: "page", Type: "int"},
		},
		handler: c.searchAttributes,
	})
	c.register(Tool{
		Name:        "add_attribute",
		Description: "Add one attribute to an event, optionally tagging it.",
		Params: []ParamDoc{
			{Name: "event_id", Type: "string", Required: true},
			{Name: "type", Type: "string", Required: true},
			{Name: "value", Type: "string", Required: true},
			{Name: "category", Type: "string"},
			{Name: "to_ids", Type: "bool"},
			{Name: "comment", Type: "string"},
			{Name: "tags", Type: "[]string"},
		},
		handler: c.addAttribute,
	})
	c.register(Tool{
		Name:        "add_attributes_batch",
		Description: "Add several attributes to an event; each is committed or failed independently.",
		Params: []ParamDoc{
			{Name: "event_id", Type: "string", Required: true},
			{Name: "attributes", Type: "[]object", Required: true, Description: "type/value/category/to_ids/comment per item"},
		},
		handler: c.addAttributesBatch,
	})
	c.register(Tool{
		Name:        "delete_attribute",
		Description: "Delete one attribute.",
		Params: []ParamDoc{
			{Name: "attribute_id", Type: "string", Required: true},
		},
		handler: c.deleteAttribute,
	})
	c.register(Tool{
		Name:        "add_sighting",
		Description: "Record a sighting for an attribute, by id or by value (exactly one).",
		Params: []ParamDoc{
			{Name: "attribute_id", Type: "string"},
			{Name: "value", Type: "string"},
			{Name: "source", Type: "string"},
			{Name: "type", Type: "string", Enum: sightingTypes, Description: "0 sighting, 1 false positive, 2 expiration"},
		},
		handler: c.addSighting,
	})
	c.register(Tool{
		Name:        "check_warninglists",
		Description: "Check values against the platform's known-benign warninglists.",
		Params: []ParamDoc{
			{Name: "values", Type: "[]string", Required: true},
		},
		handler: c.checkWarninglists,
	})
}

func (c *Controller) searchAttributes(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		Value    string   `json:"value"`
		Type     string   `json:"type"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
		EventID  string   `json:"event_id"`
		ToIDS    *bool    `json:"to_ids"`
		Last     string   `json:"last"`
		Limit    int      `json:"limit"`
		Page     int      `json:"page"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	attributes, _, err := c.Client.Attributes.Search(ctx, apiclient.AttributeSearchOpts{
		Value:    optString(p.Value),
		Type:     optString(p.Type),
		Category: optString(p.Category),
		Tags:     p.Tags,
		EventID:  optString(p.EventID),
		ToIDS:    optIntBool(p.ToIDS),
		Last:     optString(p.Last),
		Limit:    optInt(p.Limit),
		Page:     optInt(p.Page),
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{"total": len(attributes), "attributes": attributes}, nil
}

type attributeParams struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Category string `json:"category"`
	ToIDS    bool   `json:"to_ids"`
	Comment  string `json:"comment"`
}

func (p *attributeParams) model() models.Attribute {
	return models.Attribute{
		Type:     p.Type,
		Value:    p.Value,
		Category: p.Category,
		ToIDS:    p.ToIDS,
		Comment:  p.Comment,
	}
}

func (c *Controller) addAttribute(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		attributeParams
		EventID string   `json:"event_id"`
		Tags    []string `json:"tags"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.EventID == "" || p.Type == "" || p.Value == "" {
		return nil, badParam("event_id, type and value are required")
	}

	attribute := p.model()

	created, _, err := c.Client.Attributes.AddWithTags(ctx, p.EventID, &attribute, p.Tags)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (c *Controller) addAttributesBatch(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		EventID    string            `json:"event_id"`
		Attributes []attributeParams `json:"attributes"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.EventID == "" {
		return nil, badParam("event_id is required")
	}

	if len(p.Attributes) == 0 {
		return nil, badParam("attributes is empty")
	}

	attributes := make([]models.Attribute, len(p.Attributes))

	for i, item := range p.Attributes {
		if item.Type == "" || item.Value == "" {
			return nil, badParam("attributes[%d]: type and value are required", i)
		}

		attributes[i] = item.model()
	}

	return c.Client.Attributes.AddBatch(ctx, p.EventID, attributes)
}

func (c *Controller) deleteAttribute(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		AttributeID string `json:"attribute_id"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.AttributeID == "" {
		return nil, badParam("attribute_id is required")
	}

	msg, _, err := c.Client.Attributes.Delete(ctx, p.AttributeID)
	if err != nil {
		return nil, err
	}

	return msg, nil
}

func (c *Controller) addSighting(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		AttributeID string `json:"attribute_id"`
		Value       string `json:"value"`
		Source      string `json:"source"`
		Type        string `json:"type"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.AttributeID == "" && p.Value == "" {
		return nil, badParam("either attribute_id or value is required")
	}

	if err := checkEnum("type", p.Type, sightingTypes); err != nil {
		return nil, err
	}

	sighting, _, err := c.Client.Sightings.Add(ctx, apiclient.SightingRequest{
		AttributeID: p.AttributeID,
		Value:       p.Value,
		Source:      p.Source,
		Type:        p.Type,
	})
	if err != nil {
		return nil, err
	}

	return sighting, nil
}

func (c *Controller) checkWarninglists(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		Values []string `json:"values"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if len(p.Values) == 0 {
		return nil, badParam("values is empty")
	}

	hits, _, err := c.Client.Warninglists.CheckValues(ctx, p.Values)
	if err != nil {
		return nil, err
	}

	return hits, nil
}
