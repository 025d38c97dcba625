package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/cstest"
)

func TestCheckResponseStatusTable(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"method not allowed", http.StatusMethodNotAllowed, ErrMethodNotAllowed},
		{"teapot is remote", http.StatusTeapot, ErrRemote},
		{"server error is remote", http.StatusInternalServerError, ErrRemote},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tc.statusCode}
			err := CheckResponse(resp, []byte(`{"message": "nope"}`))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.statusCode, apiErr.StatusCode)
			assert.Equal(t, "nope", apiErr.Message)
		})
	}
}

func TestCheckResponseSuccessRange(t *testing.T) {
	for _, code := range []int{200, 201, 204, 299} {
		assert.NoError(t, CheckResponse(&http.Response{StatusCode: code}, nil))
	}
}

func TestCheckResponseDetailFallbacks(t *testing.T) {
	err := CheckResponse(&http.Response{StatusCode: 500}, []byte(`not json at all`))
	cstest.RequireErrorContains(t, err, "not json at all")

	err = CheckResponse(&http.Response{StatusCode: 500}, nil)
	cstest.RequireErrorContains(t, err, "http code 500, no response body")

	err = CheckResponse(&http.Response{StatusCode: 403}, []byte(`{"name": "Authorization required", "errors": {"value": ["missing"]}}`))
	cstest.RequireErrorContains(t, err, "Authorization required")
}

func TestDoMalformedResponse(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/taxonomies", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<html>this is not json</html>`))
	})

	client := testClient(t, urlx)

	// a 2xx with an unreadable body is a distinct failure, not an empty success
	_, _, err := client.Taxonomies.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.NotErrorIs(t, err, ErrTransport)
}

func TestDoTimeoutClassification(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	blocked := make(chan struct{})
	defer close(blocked)

	mux.HandleFunc("/taxonomies", func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	})

	apiURL, err := url.Parse(urlx + "/")
	require.NoError(t, err)

	auth := &APIKeyTransport{APIKey: "deadbeef"}
	httpClient := auth.Client()
	httpClient.Timeout = 50 * time.Millisecond

	client, err := NewDefaultClient(apiURL, "misp-mcp-test", httpClient)
	require.NoError(t, err)

	_, _, err = client.Taxonomies.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrTransport)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 50*time.Millisecond, apiErr.Duration)
}

func TestDoTransportFailure(t *testing.T) {
	ctx := t.Context()

	// nothing listens here
	apiURL, err := url.Parse("http://127.0.0.1:1/")
	require.NoError(t, err)

	auth := &APIKeyTransport{APIKey: "deadbeef"}

	client, err := NewDefaultClient(apiURL, "misp-mcp-test", auth.Client())
	require.NoError(t, err)

	_, _, err = client.Taxonomies.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestClassifyRequestErrorDeadline(t *testing.T) {
	err := classifyRequestError(context.DeadlineExceeded, 30*time.Second)
	assert.ErrorIs(t, err, ErrTimeout)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 30*time.Second, apiErr.Duration)
}
