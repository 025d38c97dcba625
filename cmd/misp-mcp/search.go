package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/crowdsecurity/go-cs-lib/ptr"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
)

type cliSearch struct {
	attrType string
	limit    int
}

func NewCLISearch() *cliSearch {
	return &cliSearch{}
}

func (cli *cliSearch) search(value string) error {
	_, client, err := newClient()
	if err != nil {
		return err
	}

	opts := apiclient.AttributeSearchOpts{Value: ptr.Of(value)}

	if cli.attrType != "" {
		opts.Type = ptr.Of(cli.attrType)
	}

	if cli.limit > 0 {
		opts.Limit = ptr.Of(cli.limit)
	}

	attributes, _, err := client.Attributes.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(attributes)
	}

	if len(attributes) == 0 {
		fmt.Printf("no attributes matching %q\n", value)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Event", "Type", "Category", "Value", "IDS"})

	for _, attribute := range attributes {
		t.AppendRow(table.Row{attribute.ID, attribute.EventID, attribute.Type, attribute.Category, attribute.Value, attribute.ToIDS})
	}

	t.Render()

	return nil
}

func (cli *cliSearch) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <value>",
		Short: "Search attributes by value",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cli.search(args[0])
		},
	}

	cmd.Flags().StringVarP(&cli.attrType, "type", "t", "", "restrict to one attribute type")
	cmd.Flags().IntVarP(&cli.limit, "limit", "l", 0, "maximum number of results")

	return cmd
}
