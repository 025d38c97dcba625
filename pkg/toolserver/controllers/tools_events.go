package controllers

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
	"github.com/solomonneas/misp-mcp/pkg/models"
)

var (
	threatLevels  = []string{"1", "2", "3", "4"}
	analysisList  = []string{"0", "1", "2"}
	distributions = []string{"0", "1", "2", "3", "4"}
)

func checkEnum(name, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}

	return badParam("%s must be one of %v, got %q", name, allowed, value)
}

func (c *Controller) registerEventTools() {
	c.register(Tool{
		Name:        "search_events",
		Description: "Search MISP events by value, type, tags or date window.",
		Params: []ParamDoc{
			{Name: "value", Type: "string"},
			{Name: "type", Type: "string"},
			{Name: "category", Type: "string"},
			{Name: "info", Type: "string"},
			{Name: "tags", Type: "[]string"},
			{Name: "from", Type: "string", Description: "YYYY-MM-DD"},
			{Name: "to", Type: "string", Description: "YYYY-MM-DD"},
			{Name: "last", Type: "string", Description: "relative window, e.g. 7d"},
			{Name: "published", Type: "bool"},
			{Name: "limit", Type: "int"},
			{Name: "page", Type: "int"},
		},
		handler: c.searchEvents,
	})
	c.register(Tool{
		Name:        "get_event",
		Description: "Fetch one event with attributes, objects and related events.",
		Params: []ParamDoc{
			{Name: "event_id", Type: "string", Required: true, Description: "numeric id or uuid"},
		},
		handler: c.getEvent,
	})
	c.register(Tool{
		Name:        "create_event",
		Description: "Create an event, optionally tagging it.",
		Params: []ParamDoc{
			{Name: "info", Type: "string", Required: true},
			{Name: "date", Type: "string"},
			{Name: "threat_level_id", Type: "string", Enum: threatLevels},
			{Name: "analysis", Type: "string", Enum: analysisList},
			{Name: "distribution", Type: "string", Enum: distributions},
			{Name: "tags", Type: "[]string"},
		},
		handler: c.createEvent,
	})
	c.register(Tool{
		Name:        "update_event",
		Description: "Edit an existing event's descriptive fields.",
		Params: []ParamDoc{
			{Name: "event_id", Type: "string", Required: true},
			{Name: "info", Type: "string"},
			{Name: "threat_level_id", Type: "string", Enum: threatLevels},
			{Name: "analysis", Type: "string", Enum: analysisList},
			{Name: "distribution", Type: "string", Enum: distributions},
		},
		handler: c.updateEvent,
	})
	c.register(Tool{
		Name:        "publish_event",
		Description: "Publish an event to the instance's sharing groups.",
		Params: []ParamDoc{
			{Name: "event_id", Type: "string", Required: true},
		},
		handler: c.publishEvent,
	})
	c.register(Tool{
		Name:        "tag_event",
		Description: "Attach a tag to an event.",
		Params: []ParamDoc{
			{Name: "uuid", Type: "string", Required: true},
			{Name: "tag", Type: "string", Required: true},
		},
		handler: c.tagEvent,
	})
	c.register(Tool{
		Name:        "untag_event",
		Description: "Remove a tag from an event.",
		Params: []ParamDoc{
			{Name: "uuid", Type: "string", Required: true},
			{Name: "tag", Type: "string", Required: true},
		},
		handler: c.untagEvent,
	})
}

type eventSearchParams struct {
	Value     string   `json:"value"`
	Type      string   `json:"type"`
	Category  string   `json:"category"`
	Info      string   `json:"info"`
	Tags      []string `json:"tags"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	Last      string   `json:"last"`
	Published *bool    `json:"published"`
	Limit     int      `json:"limit"`
	Page      int      `json:"page"`
}

func optString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func optInt(n int) *int {
	if n == 0 {
		return nil
	}

	return &n
}

func optIntBool(b *bool) *apiclient.IntBool {
	if b == nil {
		return nil
	}

	v := apiclient.IntBool(*b)

	return &v
}

func (c *Controller) searchEvents(ctx context.Context, params json.RawMessage) (any, error) {
	var p eventSearchParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	events, _, err := c.Client.Events.Search(ctx, apiclient.EventSearchOpts{
		Value:     optString(p.Value),
		Type:      optString(p.Type),
		Category:  optString(p.Category),
		EventInfo: optString(p.Info),
		Tags:      p.Tags,
		From:      optString(p.From),
		To:        optString(p.To),
		Last:      optString(p.Last),
		Published: optIntBool(p.Published),
		Limit:     optInt(p.Limit),
		Page:      optInt(p.Page),
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{"total": len(events), "events": events}, nil
}

func (c *Controller) getEvent(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		EventID string `json:"event_id"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.EventID == "" {
		return nil, badParam("event_id is required")
	}

	event, _, err := c.Client.Events.Get(ctx, p.EventID)
	if err != nil {
		return nil, err
	}

	return event, nil
}

type eventWriteParams struct {
	EventID       string   `json:"event_id"`
	Info          string   `json:"info"`
	Date          string   `json:"date"`
	ThreatLevelID string   `json:"threat_level_id"`
	Analysis      string   `json:"analysis"`
	Distribution  string   `json:"distribution"`
	Tags          []string `json:"tags"`
}

func (p *eventWriteParams) checkOrdinals() error {
	if err := checkEnum("threat_level_id", p.ThreatLevelID, threatLevels); err != nil {
		return err
	}

	if err := checkEnum("analysis", p.Analysis, analysisList); err != nil {
		return err
	}

	return checkEnum("distribution", p.Distribution, distributions)
}

func (c *Controller) createEvent(ctx context.Context, params json.RawMessage) (any, error) {
	var p eventWriteParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.Info == "" {
		return nil, badParam("info is required")
	}

	if err := p.checkOrdinals(); err != nil {
		return nil, err
	}

	event, _, err := c.Client.Events.AddWithTags(ctx, &models.Event{
		Info:          p.Info,
		Date:          p.Date,
		ThreatLevelID: p.ThreatLevelID,
		Analysis:      p.Analysis,
		Distribution:  p.Distribution,
	}, p.Tags)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (c *Controller) updateEvent(ctx context.Context, params json.RawMessage) (any, error) {
	var p eventWriteParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.EventID == "" {
		return nil, badParam("event_id is required")
	}

	if err := p.checkOrdinals(); err != nil {
		return nil, err
	}

	event, _, err := c.Client.Events.Update(ctx, p.EventID, &models.Event{
		Info:          p.Info,
		Date:          p.Date,
		ThreatLevelID: p.ThreatLevelID,
		Analysis:      p.Analysis,
		Distribution:  p.Distribution,
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (c *Controller) publishEvent(ctx context.Context, params json.RawMessage) (any, error) {
	var p struct {
		EventID string `json:"event_id"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.EventID == "" {
		return nil, badParam("event_id is required")
	}

	msg, _, err := c.Client.Events.Publish(ctx, p.EventID)
	if err != nil {
		return nil, err
	}

	return msg, nil
}

type tagObjectParams struct {
	UUID string `json:"uuid"`
	Tag  string `json:"tag"`
}

func (p *tagObjectParams) check() error {
	if p.UUID == "" {
		return badParam("uuid is required")
	}

	if p.Tag == "" {
		return badParam("tag is required")
	}

	return nil
}

func (c *Controller) tagEvent(ctx context.Context, params json.RawMessage) (any, error) {
	var p tagObjectParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if err := p.check(); err != nil {
		return nil, err
	}

	msg, _, err := c.Client.Events.Tag(ctx, p.UUID, p.Tag)
	if err != nil {
		return nil, err
	}

	return msg, nil
}

func (c *Controller) untagEvent(ctx context.Context, params json.RawMessage) (any, error) {
	var p tagObjectParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if err := p.check(); err != nil {
		return nil, err
	}

	msg, _, err := c.Client.Events.Untag(ctx, p.UUID, p.Tag)
	if err != nil {
		return nil, err
	}

	return msg, nil
}
