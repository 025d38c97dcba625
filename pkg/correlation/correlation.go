// Package correlation discovers cross-event relationships by fanning out
// value searches through the API client and aggregating the overlaps. All of
// it is read-only: results are built fresh per call and never cached.
package correlation

import (
	"context"
	"slices"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/crowdsecurity/go-cs-lib/ptr"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
	"github.com/solomonneas/misp-mcp/pkg/models"
)

// maxPivotValues caps the fan-out of FindRelated: each pivot value costs one
// remote search call.
const maxPivotValues = 20

type Engine struct {
	client *apiclient.ApiClient
}

func NewEngine(client *apiclient.ApiClient) *Engine {
	return &Engine{client: client}
}

// RelatedTuple is one entry from the platform's correlation index, surfaced
// as-is. The same tuple may appear several times when several source
// attributes reported it; that repetition indicates multiplicity of evidence
// and is preserved.
type RelatedTuple struct {
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	EventID string `json:"event_id"`
}

// EventGroup holds the matching attributes of one event, in response order.
type EventGroup struct {
	EventID    string             `json:"event_id"`
	Attributes []models.Attribute `json:"attributes"`
}

// CorrelationResult aggregates one value search. Correlations is nil, not
// empty, when the platform reported none: callers distinguish "field absent"
// from "field empty".
type CorrelationResult struct {
	Value           string         `json:"value"`
	TotalEvents     int            `json:"total_events"`
	TotalAttributes int            `json:"total_attributes"`
	Events          []EventGroup   `json:"events"`
	Correlations    []RelatedTuple `json:"correlations,omitempty"`
}

// RelatedEventEntry is a candidate related event with the values it overlaps
// on and its correlation count. The count tracks matching-attribute
// occurrences: an event where two different attributes match the same
// searched value counts twice, even though the value appears once in
// OverlappingIOCs.
type RelatedEventEntry struct {
	EventID          string   `json:"event_id"`
	Info             string   `json:"info,omitempty"`
	OverlappingIOCs  []string `json:"overlapping_iocs,omitempty"`
	CorrelationCount int      `json:"correlation_count"`
}

type RelatedFindings struct {
	EventID    string              `json:"event_id"`
	Candidates []RelatedEventEntry `json:"related_events"`
	Total      int                 `json:"total"`
}

// Correlate searches the platform for value with correlation expansion and
// aggregates the hits by owning event.
func (e *Engine) Correlate(ctx context.Context, value string) (*CorrelationResult, error) {
	if value == "" {
		return nil, &apiclient.APIError{Kind: apiclient.ErrInvalidRequest, Message: "no value to correlate"}
	}

	attributes, _, err := e.client.Attributes.Search(ctx, apiclient.AttributeSearchOpts{
		Value:               ptr.Of(value),
		IncludeCorrelations: ptr.Of(apiclient.IntBool(true)),
	})
	if err != nil {
		return nil, err
	}

	result := &CorrelationResult{Value: value}

	if len(attributes) == 0 {
		return result, nil
	}

	groupIdx := make(map[string]int)

	for _, attribute := range attributes {
		idx, seen := groupIdx[attribute.EventID]
		if !seen {
			idx = len(result.Events)
			groupIdx[attribute.EventID] = idx
			result.Events = append(result.Events, EventGroup{EventID: attribute.EventID})
		}

		result.Events[idx].Attributes = append(result.Events[idx].Attributes, attribute)
		result.TotalAttributes++

		// the platform may surface the same related tuple from several source
		// attributes; keep the repetition
		for _, related := range attribute.RelatedAttributes {
			result.Correlations = append(result.Correlations, RelatedTuple{
				Value:   related.Value,
				Type:    related.Type,
				EventID: related.EventID,
			})
		}
	}

	result.TotalEvents = len(result.Events)

	return result, nil
}

// FindRelated discovers events related to eventID in two phases: seed from
// the event's known back-references, then pivot on up to maxPivotValues
// detection-flagged attribute values, one search per value. Candidates are
// ranked by descending correlation count; ties keep first-seen order.
func (e *Engine) FindRelated(ctx context.Context, eventID string) (*RelatedFindings, error) {
	event, _, err := e.client.Events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	findings := &RelatedFindings{EventID: event.ID}

	if len(event.Attributes) == 0 {
		log.Debugf("event %s has no attributes, nothing to correlate", event.ID)
		return findings, nil
	}

	agg := newAggregator(event.ID)

	for _, related := range event.RelatedEvents {
		agg.seed(related.Event.ID, related.Event.Info)
	}

	for _, value := range pivotValues(event.Attributes) {
		matches, _, err := e.client.Attributes.Search(ctx, apiclient.AttributeSearchOpts{Value: ptr.Of(value)})
		if err != nil {
			return nil, err
		}

		for _, match := range matches {
			agg.record(match.EventID, value)
		}
	}

	findings.Candidates = agg.ranked()
	findings.Total = len(findings.Candidates)

	return findings, nil
}

// pivotValues selects the first maxPivotValues distinct detection-flagged
// values, in attribute order.
func pivotValues(attributes []models.Attribute) []string {
	var values []string

	seen := make(map[string]bool)

	for _, attribute := range attributes {
		if !attribute.DetectionFlagged() || seen[attribute.Value] {
			continue
		}

		seen[attribute.Value] = true
		values = append(values, attribute.Value)

		if len(values) == maxPivotValues {
			break
		}
	}

	return values
}

// aggregator accumulates candidate entries in discovery order, excluding the
// source event itself.
type aggregator struct {
	sourceID string
	order    []string
	entries  map[string]*RelatedEventEntry
}

func newAggregator(sourceID string) *aggregator {
	return &aggregator{
		sourceID: sourceID,
		entries:  make(map[string]*RelatedEventEntry),
	}
}

func (a *aggregator) seed(eventID string, info string) {
	if eventID == "" || eventID == a.sourceID {
		return
	}

	if _, ok := a.entries[eventID]; ok {
		return
	}

	a.order = append(a.order, eventID)
	a.entries[eventID] = &RelatedEventEntry{EventID: eventID, Info: info}
}

// record counts one matching attribute occurrence against the match's event.
// The overlap set is deduplicated per candidate, the count is not: two
// attributes of the same event matching one searched value count twice.
func (a *aggregator) record(eventID string, value string) {
	if eventID == "" || eventID == a.sourceID {
		return
	}

	entry, ok := a.entries[eventID]
	if !ok {
		entry = &RelatedEventEntry{EventID: eventID}
		a.entries[eventID] = entry
		a.order = append(a.order, eventID)
	}

	if !slices.Contains(entry.OverlappingIOCs, value) {
		entry.OverlappingIOCs = append(entry.OverlappingIOCs, value)
	}

	entry.CorrelationCount++
}

// ranked returns the candidates sorted by descending correlation count,
// stable over discovery order.
func (a *aggregator) ranked() []RelatedEventEntry {
	candidates := make([]RelatedEventEntry, 0, len(a.order))
	for _, eventID := range a.order {
		candidates = append(candidates, *a.entries[eventID])
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CorrelationCount > candidates[j].CorrelationCount
	})

	return candidates
}
