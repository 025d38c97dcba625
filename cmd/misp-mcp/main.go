package main

import (
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
	"github.com/solomonneas/misp-mcp/pkg/bridgecfg"
	"github.com/solomonneas/misp-mcp/pkg/correlation"
)

var (
	configFilePath string
	logLevel       string
	outputJSON     bool
)

func newClient() (*bridgecfg.Config, *apiclient.ApiClient, error) {
	cfg, err := bridgecfg.NewConfig(configFilePath)
	if err != nil {
		return nil, nil, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.SetupLogger(); err != nil {
		return nil, nil, err
	}

	clientCfg, err := cfg.APIClientConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := apiclient.NewClient(clientCfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, client, nil
}

func newEngine() (*correlation.Engine, error) {
	_, client, err := newClient()
	if err != nil {
		return nil, err
	}

	return correlation.NewEngine(client), nil
}

func main() {
	cmd := &cobra.Command{
		Use:               "misp-mcp",
		Short:             "Expose a MISP instance as callable tools for an automated agent",
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "", "path to the configuration file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "machine readable output")

	cmd.AddCommand(NewCLIServe().NewCommand())
	cmd.AddCommand(NewCLICorrelate().NewCommand())
	cmd.AddCommand(NewCLIRelated().NewCommand())
	cmd.AddCommand(NewCLISearch().NewCommand())
	cmd.AddCommand(NewCLIExport().NewCommand())

	cc.Init(&cc.Config{
		RootCmd:       cmd,
		Headings:      cc.Yellow,
		Commands:      cc.HiBlue + cc.Bold,
		CmdShortDescr: cc.Cyan,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Flags:         cc.Bold,
	})

	if err := cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
