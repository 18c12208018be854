package cmd

import (
	"context"
	"flag"

	"github.com/etnz/recon"
	"github.com/google/subcommands"
)

type demoCmd struct {
	output outputFlags
}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "reconcile the built-in demo data set" }
func (*demoCmd) Usage() string {
	return `rcs demo [-type <type>] [-id <text>] [-o <breaks.csv>] [-json]

  Reconciles a small built-in data set: T001 matches, T002 has a different
  amount at the custodian and T003 is missing from the clearing house.

`
}

func (c *demoCmd) SetFlags(f *flag.FlagSet) { c.output.SetFlags(f) }

func (c *demoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.output.filter()
	if err != nil {
		errorf("Error parsing flags: %v", err)
		return subcommands.ExitUsageError
	}

	var log recon.ActivityLog
	report := recon.Demo()
	log.Add("Demo Data Loaded and Reconciled")

	if err := c.output.present(report, filter, "", &log); err != nil {
		errorf("Error writing report: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
