package apiclient

import (
	"net/url"
	"time"

	"github.com/go-openapi/strfmt"
)

// DefaultTimeout bounds every remote call unless the configuration overrides
// it.
const DefaultTimeout = 30 * time.Second

type Config struct {
	URL                *url.URL
	APIKey             strfmt.Password
	UserAgent          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}
