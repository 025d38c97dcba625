package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/ptr"

	"github.com/solomonneas/misp-mcp/pkg/models"
)

func TestAttributesSearchWithCorrelations(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/attributes/restSearch", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"value": "10.0.0.1", "includeCorrelations": 1}`, string(body))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"response": {"Attribute": [
			{"id": "101", "event_id": "42", "type": "ip-src", "value": "10.0.0.1", "to_ids": true,
			 "RelatedAttribute": [{"event_id": "43", "value": "10.0.0.1", "type": "ip-dst"}]}
		]}}`))
	})

	client := testClient(t, urlx)

	attributes, _, err := client.Attributes.Search(ctx, AttributeSearchOpts{
		Value:               ptr.Of("10.0.0.1"),
		IncludeCorrelations: ptr.Of(IntBool(true)),
	})
	require.NoError(t, err)
	require.Len(t, attributes, 1)
	assert.Equal(t, "42", attributes[0].EventID)
	assert.True(t, attributes[0].DetectionFlagged())
	require.Len(t, attributes[0].RelatedAttributes, 1)
	assert.Equal(t, "43", attributes[0].RelatedAttributes[0].EventID)
}

func TestAttributesAdd(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/attributes/add/42", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Attribute": {"id": "200", "event_id": "42", "type": "sha256", "value": "abc"}}`))
	})

	client := testClient(t, urlx)

	created, _, err := client.Attributes.Add(ctx, "42", &models.Attribute{Type: "sha256", Value: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "200", created.ID)
	assert.Equal(t, "42", created.EventID)
}

func TestAttributesDelete(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/attributes/delete/200", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": "Attribute deleted."}`))
	})

	client := testClient(t, urlx)

	msg, _, err := client.Attributes.Delete(ctx, "200")
	require.NoError(t, err)
	assert.Equal(t, "Attribute deleted.", msg.Message)
}

func TestAttributesTagUntag(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/tags/attachTagToObject", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"uuid": "5f1f64e8-1c3c-4d6a-ae05-a92f7d4e21d4", "tag": "tlp:amber"}`, string(body))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"saved": true, "success": "Tag tlp:amber(1) successfully attached to Attribute(200)."}`))
	})

	mux.HandleFunc("/tags/removeTagFromObject", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"saved": true, "success": "Tag tlp:amber(1) successfully removed from Attribute(200)."}`))
	})

	client := testClient(t, urlx)

	msg, _, err := client.Attributes.Tag(ctx, "5f1f64e8-1c3c-4d6a-ae05-a92f7d4e21d4", "tlp:amber")
	require.NoError(t, err)
	assert.True(t, msg.Saved)

	msg, _, err = client.Attributes.Untag(ctx, "5f1f64e8-1c3c-4d6a-ae05-a92f7d4e21d4", "tlp:amber")
	require.NoError(t, err)
	assert.Contains(t, msg.Success, "removed")
}

func TestAttributesAddBatchIsolation(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/attributes/add/42", func(w http.ResponseWriter, r *http.Request) {
		var attribute models.Attribute

		require.NoError(t, json.NewDecoder(r.Body).Decode(&attribute))

		// the second item is rejected, the others commit
		if attribute.Value == "bad" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message": "invalid attribute"}`))

			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"Attribute": {"id": "id-%s", "event_id": "42", "type": "ip-src", "value": "%s"}}`, attribute.Value, attribute.Value)
	})

	client := testClient(t, urlx)

	report, err := client.Attributes.AddBatch(ctx, "42", []models.Attribute{
		{Type: "ip-src", Value: "one"},
		{Type: "ip-src", Value: "bad"},
		{Type: "ip-src", Value: "three"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Items, 3)

	// input order preserved, outcomes recorded per item
	assert.Equal(t, "id-one", report.Items[0].ID)
	assert.Empty(t, report.Items[0].Error)
	assert.Empty(t, report.Items[1].ID)
	assert.Contains(t, report.Items[1].Error, "invalid attribute")
	assert.Equal(t, "id-three", report.Items[2].ID)
}

func TestRunBatchCounts(t *testing.T) {
	ctx := t.Context()

	tests := []struct {
		name    string
		results []error
	}{
		{"all succeed", []error{nil, nil, nil}},
		{"all fail", []error{ErrRemote, ErrRemote}},
		{"mixed", []error{nil, ErrRemote, nil, ErrRemote, ErrRemote}},
		{"empty", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items := make([]int, len(tc.results))
			for i := range items {
				items[i] = i
			}

			report := RunBatch(ctx, items, func(_ context.Context, i int) (string, error) {
				if tc.results[i] != nil {
					return "", tc.results[i]
				}

				return fmt.Sprintf("id-%d", i), nil
			})

			wantFailed := 0

			for _, err := range tc.results {
				if err != nil {
					wantFailed++
				}
			}

			assert.Equal(t, len(tc.results), report.Total)
			assert.Equal(t, len(tc.results)-wantFailed, report.Succeeded)
			assert.Equal(t, wantFailed, report.Failed)
			require.Len(t, report.Items, len(tc.results))

			for i, item := range report.Items {
				assert.Equal(t, i, item.Index)
			}
		})
	}
}
