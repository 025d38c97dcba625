package controllers

import (
	"github.com/prometheus/client_golang/prometheus"
)

var ToolInvocations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "misp_mcp_tool_invocations_total",
		Help: "Number of tool invocations, by tool name and outcome.",
	},
	[]string{"tool", "outcome"},
)

func RegisterMetrics() {
	prometheus.MustRegister(ToolInvocations)
}
