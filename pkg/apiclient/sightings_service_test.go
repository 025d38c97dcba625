package apiclient

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/cstest"
)

func TestSightingsAddByValue(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/sightings/add", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Sighting": {"id": "9", "attribute_id": "101", "event_id": "42", "type": "0", "source": "honeypot"}}`))
	})

	client := testClient(t, urlx)

	sighting, _, err := client.Sightings.Add(ctx, SightingRequest{Value: "10.0.0.1", Source: "honeypot"})
	require.NoError(t, err)
	assert.Equal(t, "9", sighting.ID)
	assert.Equal(t, "42", sighting.EventID)
}

func TestSightingsAddRequiresTarget(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/sightings/add", func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call may happen for an invalid sighting request")
	})

	client := testClient(t, urlx)

	// neither id nor value
	_, _, err := client.Sightings.Add(ctx, SightingRequest{Source: "honeypot"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	cstest.RequireErrorContains(t, err, "attribute id or a value")

	// both at once
	_, _, err = client.Sightings.Add(ctx, SightingRequest{AttributeID: "101", Value: "10.0.0.1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
