package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type cliCorrelate struct{}

func NewCLICorrelate() *cliCorrelate {
	return &cliCorrelate{}
}

func (cli *cliCorrelate) correlate(value string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	result, err := engine.Correlate(context.Background(), value)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(result)
	}

	fmt.Printf("%s: %d attribute(s) across %d event(s)\n", result.Value, result.TotalAttributes, result.TotalEvents)

	if result.TotalEvents > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Event", "Attributes", "Types"})

		for _, group := range result.Events {
			types := make(map[string]bool)
			for _, attribute := range group.Attributes {
				types[attribute.Type] = true
			}

			t.AppendRow(table.Row{group.EventID, len(group.Attributes), len(types)})
		}

		t.Render()
	}

	if result.Correlations != nil {
		fmt.Printf("%d platform correlation(s)\n", len(result.Correlations))
	}

	return nil
}

func (cli *cliCorrelate) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correlate <value>",
		Short: "Correlate an observable value across events",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cli.correlate(args[0])
		},
	}

	return cmd
}

type cliRelated struct{}

func NewCLIRelated() *cliRelated {
	return &cliRelated{}
}

func (cli *cliRelated) related(eventID string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	findings, err := engine.FindRelated(context.Background(), eventID)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(findings)
	}

	if findings.Total == 0 {
		fmt.Printf("no events related to %s\n", findings.EventID)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Event", "Correlations", "Overlapping IOCs", "Info"})

	for _, candidate := range findings.Candidates {
		t.AppendRow(table.Row{candidate.EventID, candidate.CorrelationCount, len(candidate.OverlappingIOCs), candidate.Info})
	}

	t.Render()

	return nil
}

func (cli *cliRelated) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "related <event-id>",
		Short: "Rank events related to an event by overlapping IOCs",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cli.related(args[0])
		},
	}

	return cmd
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
