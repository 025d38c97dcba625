package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

func (c *ApiClient) PrepareRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	u, err := c.BaseURL.Parse(strings.TrimPrefix(url, "/"))
	if err != nil {
		return nil, err
	}

	var buf io.ReadWriter

	if body != nil {
		buf = &bytes.Buffer{}
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)

		if err = enc.Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), buf)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Do runs one request, reads the body in full, classifies the outcome and
// decodes the payload into v. When v is an io.Writer the body is passed
// through untouched (export downloads are opaque text, not JSON).
func (c *ApiClient) Do(ctx context.Context, req *http.Request, v any) (*Response, error) {
	if ctx == nil {
		return nil, errors.New("context must be non-nil")
	}

	req = req.WithContext(ctx)

	if c.UserAgent != "" {
		req.Header.Add("User-Agent", c.UserAgent)
	}

	log.Debugf("[URL] %s %s", req.Method, req.URL)

	resp, err := c.client.Do(req)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}

	if err != nil {
		// If we got an error, and the context has been canceled,
		// the context's error is probably more useful.
		select {
		case <-ctx.Done():
			return nil, classifyRequestError(ctx.Err(), c.Timeout)
		default:
		}

		return nil, classifyRequestError(err, c.Timeout)
	}

	response := newResponse(resp)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return response, classifyRequestError(err, c.Timeout)
	}

	if err = CheckResponse(resp, data); err != nil {
		return response, err
	}

	if v != nil {
		if w, ok := v.(io.Writer); ok {
			if _, err = w.Write(data); err != nil {
				return response, err
			}

			return response, nil
		}

		if err = json.Unmarshal(data, v); err != nil {
			return response, malformedResponse(err)
		}
	}

	return response, nil
}
