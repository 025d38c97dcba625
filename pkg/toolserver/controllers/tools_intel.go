package controllers

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
)

func (c *Controller) registerIntelTools() {
	c.register(Tool{
		Name:        "correlate_value",
		Description: "Group every attribute matching a value by event and surface platform correlations.",
		Params: []ParamDoc{
			{Name: "value", Type: "string", Required: true},
		},
		handler: c.correlateValue,
	})
	c.register(Tool{
		Name:        "find_related_events",
		Description: "Rank events related to one event by overlapping detection-flagged IOCs.",
		Params: []ParamDoc{
			{Name: "event_id", Type: "string", Required: true},
		},
		handler: c.findRelatedEvents,
	})
	c.register(Tool{
		Name:        "list_tags",
		Description: "List instance tags, optionally filtered.",
		Params: []ParamDoc{
			{Name: "filter", Type: "string"},
			{Name: "limit", Type: "int"},
		},
		handler: c.listTags,
	})
	c.register(Tool{
		Name:        "list_taxonomies",
		Description: "List the taxonomies enabled on the instance.",
		handler:     c.listTaxonomies,
	})
	c.register(Tool{
		Name:        "export_events",
		Description: "Download an export in one of the platform's detection formats.",
		Params: []ParamDoc{
			{Name: "format", Type: "string", Required: true, Enum: apiclient.ExportFormats()},
			{Name: "event_id", Type: "string"},
			{Name: "type", Type: "string"},
			{Name: "tags", Type: "[]string"},
			{Name: "last", Type: "string"},
		},
		handler: c.exportEvents,
	})
}

func (c *Controller) correlateValue(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		Value string `json:"value"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.Value == "" {
		return nil, badParam("value is required")
	}

	return c.Engine.Correlate(ctx, p.Value)
}

func (c *Controller) findRelatedEvents(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		EventID string `json:"event_id"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.EventID == "" {
		return nil, badParam("event_id is required")
	}

	return c.Engine.FindRelated(ctx, p.EventID)
}

func (c *Controller) listTags(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		Filter string `json:"filter"`
		Limit  int    `json:"limit"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	tags, _, err := c.Client.Tags.List(ctx, apiclient.TagsListOpts{
		Filter: optString(p.Filter),
		Limit:  optInt(p.Limit),
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{"total": len(tags), "tags": tags}, nil
}

func (c *Controller) listTaxonomies(ctx context.Context, params json.RawMessage) (any, error) {
	taxonomies, _, err := c.Client.Taxonomies.List(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]any{"total": len(taxonomies), "taxonomies": taxonomies}, nil
}

func (c *Controller) exportEvents(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		Format  string   `json:"format"`
		EventID string   `json:"event_id"`
		Type    string   `json:"type"`
		Tags    []string `json:"tags"`
		Last    string   `json:"last"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.Format == "" {
		return nil, badParam("format is required")
	}

	var buf bytes.Buffer

	_, err := c.Client.Export.Download(ctx, apiclient.ExportOpts{
		ReturnFormat: p.Format,
		EventID:      optString(p.EventID),
		Type:         optString(p.Type),
		Tags:         p.Tags,
		Last:         optString(p.Last),
	}, &buf)
	if err != nil {
		return nil, err
	}

	return map[string]any{"format": p.Format, "content": buf.String()}, nil
}
