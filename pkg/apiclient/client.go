package apiclient

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type ApiClient struct {
	/*The http client used to make requests*/
	client *http.Client
	/*Reuse a single struct instead of allocating one for each service on the heap.*/
	common service
	/*config stuff*/
	BaseURL   *url.URL
	UserAgent string
	Timeout   time.Duration
	/*exposed Services*/
	Events       *EventsService
	Attributes   *AttributesService
	Sightings    *SightingsService
	Warninglists *WarninglistsService
	Tags         *TagsService
	Taxonomies   *TaxonomiesService
	Export       *ExportService
}

type service struct {
	client *ApiClient
}

// NewClient builds a client for a MISP instance. Every request carries the
// configured key and is bounded by the configured timeout (30s when unset).
func NewClient(config *Config) (*ApiClient, error) {
	if config.URL == nil {
		return nil, fmt.Errorf("MISP URL is not set")
	}

	if config.APIKey == "" {
		return nil, fmt.Errorf("MISP API key is not set")
	}

	t := &APIKeyTransport{APIKey: string(config.APIKey)}

	if config.InsecureSkipVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		t.Transport = transport
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := t.Client()
	httpClient.Timeout = timeout

	return newClient(httpClient, config.URL, config.UserAgent, timeout), nil
}

// NewDefaultClient wires an externally built http.Client, the test entry
// point.
func NewDefaultClient(baseURL *url.URL, userAgent string, client *http.Client) (*ApiClient, error) {
	if client == nil {
		client = &http.Client{}
	}

	timeout := client.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return newClient(client, baseURL, userAgent, timeout), nil
}

func newClient(httpClient *http.Client, baseURL *url.URL, userAgent string, timeout time.Duration) *ApiClient {
	c := &ApiClient{client: httpClient, BaseURL: baseURL, UserAgent: userAgent, Timeout: timeout}
	c.common.client = c
	c.Events = (*EventsService)(&c.common)
	c.Attributes = (*AttributesService)(&c.common)
	c.Sightings = (*SightingsService)(&c.common)
	c.Warninglists = (*WarninglistsService)(&c.common)
	c.Tags = (*TagsService)(&c.common)
	c.Taxonomies = (*TaxonomiesService)(&c.common)
	c.Export = (*ExportService)(&c.common)

	return c
}

type Response struct {
	Response *http.Response
}

func newResponse(r *http.Response) *Response {
	return &Response{Response: r}
}
