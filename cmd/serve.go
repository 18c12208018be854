package cmd

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/etnz/recon/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr  string
	quiet bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "start the HTTP API" }
func (*serveCmd) Usage() string {
	return `rcs serve [-addr :8080]

  Serves the reconciliation API, see 'rcs topic api'.

`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on")
	f.BoolVar(&c.quiet, "q", false, "Do not log requests")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var logOutput io.Writer = os.Stderr
	if c.quiet {
		logOutput = nil
	}
	app := server.New(logOutput)

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("rcs API listening on %s", c.addr)
	if err := app.Listen(c.addr); err != nil {
		errorf("Error serving: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
