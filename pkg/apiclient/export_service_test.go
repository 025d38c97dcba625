package apiclient

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/cstest"
	"github.com/crowdsecurity/go-cs-lib/ptr"
)

func TestExportDownloadOpaque(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	// suricata rules are not json, the body must pass through untouched
	const rules = `alert ip any any -> 10.0.0.1 any (msg:"MISP event 42";)` + "\n"

	mux.HandleFunc("/events/restSearch", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(rules))
	})

	client := testClient(t, urlx)

	var buf bytes.Buffer

	resp, err := client.Export.Download(ctx, ExportOpts{ReturnFormat: "suricata", EventID: ptr.Of("42")}, &buf)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Response.StatusCode)
	assert.Equal(t, rules, buf.String())
}

func TestExportDownloadUnknownFormat(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/events/restSearch", func(w http.ResponseWriter, r *http.Request) {
		t.Error("unknown formats are rejected before any network call")
	})

	client := testClient(t, urlx)

	var buf bytes.Buffer

	_, err := client.Export.Download(ctx, ExportOpts{ReturnFormat: "yaml"}, &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	cstest.RequireErrorContains(t, err, "unknown export format")
}

func TestWarninglistsCheckValues(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/warninglists/checkValue", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"8.8.8.8": [{"id": "3", "name": "List of known IPv4 public DNS resolvers"}]}`))
	})

	client := testClient(t, urlx)

	hits, _, err := client.Warninglists.CheckValues(ctx, []string{"8.8.8.8", "10.9.9.9"})
	require.NoError(t, err)

	// only values with hits are present, absence means clean
	require.Contains(t, hits, "8.8.8.8")
	assert.NotContains(t, hits, "10.9.9.9")
	assert.Equal(t, "List of known IPv4 public DNS resolvers", hits["8.8.8.8"][0].Name)

	_, _, err = client.Warninglists.CheckValues(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
