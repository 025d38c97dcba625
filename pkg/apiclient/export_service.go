package apiclient

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
)

type ExportService service

// Export formats accepted by the platform's restSearch downloader. Export
// bodies are opaque text, never parsed as JSON.
var exportFormats = map[string]bool{
	"csv":      true,
	"stix":     true,
	"stix2":    true,
	"suricata": true,
	"snort":    true,
	"text":     true,
	"rpz":      true,
	"hashes":   true,
}

func ExportFormats() []string {
	formats := make([]string, 0, len(exportFormats))
	for f := range exportFormats {
		formats = append(formats, f)
	}

	sort.Strings(formats)

	return formats
}

type ExportOpts struct {
	ReturnFormat string   `json:"returnFormat"`
	EventID      *string  `json:"eventid,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Last         *string  `json:"last,omitempty"`
}

// Download streams one export into w.
func (s *ExportService) Download(ctx context.Context, opts ExportOpts, w io.Writer) (*Response, error) {
	format := strings.ToLower(opts.ReturnFormat)
	if !exportFormats[format] {
		return nil, invalidRequest("unknown export format %q", opts.ReturnFormat)
	}

	opts.ReturnFormat = format

	req, err := s.client.PrepareRequest(ctx, http.MethodPost, "events/restSearch", &opts)
	if err != nil {
		return nil, err
	}

	return s.client.Do(ctx, req, w)
}
