package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crowdsecurity/go-cs-lib/ptr"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
)

type cliExport struct {
	format  string
	eventID string
	last    string
	output  string
}

func NewCLIExport() *cliExport {
	return &cliExport{}
}

func (cli *cliExport) export() error {
	_, client, err := newClient()
	if err != nil {
		return err
	}

	opts := apiclient.ExportOpts{ReturnFormat: cli.format}

	if cli.eventID != "" {
		opts.EventID = ptr.Of(cli.eventID)
	}

	if cli.last != "" {
		opts.Last = ptr.Of(cli.last)
	}

	var w io.Writer = os.Stdout

	if cli.output != "" {
		f, err := os.Create(cli.output)
		if err != nil {
			return err
		}
		defer f.Close()

		w = f
	}

	if _, err := client.Export.Download(context.Background(), opts, w); err != nil {
		return err
	}

	return nil
}

func (cli *cliExport) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download an export in one of the platform formats",
		Example: fmt.Sprintf("misp-mcp export --format suricata --last 7d\n\nformats: %s",
			strings.Join(apiclient.ExportFormats(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cli.export()
		},
	}

	cmd.Flags().StringVarP(&cli.format, "format", "f", "", "export format")
	cmd.Flags().StringVarP(&cli.eventID, "event", "e", "", "restrict to one event")
	cmd.Flags().StringVar(&cli.last, "last", "", "relative window, e.g. 7d")
	cmd.Flags().StringVarP(&cli.output, "output", "o", "", "write to a file instead of stdout")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}
