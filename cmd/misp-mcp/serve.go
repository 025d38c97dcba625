package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/solomonneas/misp-mcp/pkg/correlation"
	"github.com/solomonneas/misp-mcp/pkg/toolserver"
)

type cliServe struct{}

func NewCLIServe() *cliServe {
	return &cliServe{}
}

func (cli *cliServe) serve() error {
	cfg, client, err := newClient()
	if err != nil {
		return err
	}

	server, err := toolserver.NewServer(cfg, client, correlation.NewEngine(client))
	if err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigs
		log.Infof("received %s, shutting down", sig)

		if err := server.Shutdown(); err != nil {
			log.Errorf("shutdown: %s", err)
		}
	}()

	return server.Run()
}

func (cli *cliServe) NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cli.serve()
		},
	}

	return cmd
}
