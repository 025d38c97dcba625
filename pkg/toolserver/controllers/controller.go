package controllers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
	"github.com/solomonneas/misp-mcp/pkg/correlation"
)

// Controller exposes the tool-calling boundary: each tool validates its named
// parameters, performs one core call, and shapes the response. No failure
// from the core ever propagates past this layer unrendered.
type Controller struct {
	Client *apiclient.ApiClient
	Engine *correlation.Engine

	tools map[string]Tool
	order []string
}

type toolHandler func(ctx context.Context, params json.RawMessage) (any, error)

// ParamDoc documents one named tool parameter.
type ParamDoc struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required,omitempty"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

type Tool struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Params      []ParamDoc `json:"params,omitempty"`

	handler toolHandler
}

func New(client *apiclient.ApiClient, engine *correlation.Engine) *Controller {
	c := &Controller{
		Client: client,
		Engine: engine,
		tools:  make(map[string]Tool),
	}

	c.registerEventTools()
	c.registerAttributeTools()
	c.registerIntelTools()

	return c
}

func (c *Controller) register(tool Tool) {
	c.tools[tool.Name] = tool
	c.order = append(c.order, tool.Name)
}

// Tools lists the registered descriptors in registration order.
func (c *Controller) Tools() []Tool {
	out := make([]Tool, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.tools[name])
	}

	return out
}

// decodeParams unmarshals the raw parameter object, treating an absent body
// as an empty one.
func decodeParams(params json.RawMessage, v any) error {
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	if err := json.Unmarshal(params, v); err != nil {
		return badParam("parameter object: %s", err)
	}

	return nil
}

func badParam(format string, args ...any) error {
	return &apiclient.APIError{Kind: apiclient.ErrInvalidRequest, Message: fmt.Sprintf(format, args...)}
}
