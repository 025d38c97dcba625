package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ListTools handles GET /tools.
func (c *Controller) ListTools(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, gin.H{"tools": c.Tools()})
}

// Invoke handles POST /tools/:name. The body is the tool's named parameter
// object; the response is either {"result": ...} or a structured error
// payload.
func (c *Controller) Invoke(gctx *gin.Context) {
	name := gctx.Param("name")

	tool, ok := c.tools[name]
	if !ok {
		ToolInvocations.WithLabelValues(name, "unknown").Inc()
		gctx.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"kind": "unknown_tool", "message": "no tool named " + name},
		})

		return
	}

	params, err := io.ReadAll(gctx.Request.Body)
	if err != nil {
		ToolInvocations.WithLabelValues(name, "error").Inc()
		c.RenderError(gctx, badParam("reading parameters: %s", err))

		return
	}

	result, err := tool.handler(gctx.Request.Context(), params)
	if err != nil {
		log.Debugf("tool %s failed: %s", name, err)
		ToolInvocations.WithLabelValues(name, "error").Inc()
		c.RenderError(gctx, err)

		return
	}

	ToolInvocations.WithLabelValues(name, "ok").Inc()
	gctx.JSON(http.StatusOK, gin.H{"result": result})
}
