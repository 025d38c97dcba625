package apiclient

import (
	"context"
)

// BatchItem is the outcome of one unit operation, at its original position in
// the input.
type BatchItem struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type BatchReport struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Items     []BatchItem `json:"items"`
}

// RunBatch applies op to every item sequentially. Remote mutations are not
// transactional across items, so each item is committed or failed in
// isolation: a failure is recorded and the batch moves on. Items keep their
// input order in the report.
func RunBatch[T any](ctx context.Context, items []T, op func(context.Context, T) (string, error)) *BatchReport {
	report := &BatchReport{
		Total: len(items),
		Items: make([]BatchItem, 0, len(items)),
	}

	for i, item := range items {
		id, err := op(ctx, item)
		if err != nil {
			report.Failed++
			report.Items = append(report.Items, BatchItem{Index: i, Error: err.Error()})

			continue
		}

		report.Succeeded++
		report.Items = append(report.Items, BatchItem{Index: i, ID: id})
	}

	return report
}
