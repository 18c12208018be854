package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/recon"
	"github.com/google/subcommands"
)

type runCmd struct {
	sources sourceFlags
	output  outputFlags
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "reconcile the IM, custodian and clearing house files" }
func (*runCmd) Usage() string {
	return `rcs run [-im <file>] [-cust <file>] [-ch <file>] [-type <type>] [-id <text>] [-o <breaks.csv>] [-json]

  Reconciles the three sources on TradeID and reports the breaks: trades whose
  amounts differ (Mismatch) or that are missing from a source (Orphan).

  Sources omitted on the command line are taken from the profile (-config).
  See 'rcs topic formats' for the accepted files.

`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	c.sources.SetFlags(f)
	c.output.SetFlags(f)
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.output.filter()
	if err != nil {
		errorf("Error parsing flags: %v", err)
		return subcommands.ExitUsageError
	}
	profile, err := LoadProfile()
	if err != nil {
		errorf("Error loading profile: %v", err)
		return subcommands.ExitFailure
	}
	w, inputs, err := c.sources.inputs(profile)
	if err != nil {
		errorf("Error parsing flags: %v", err)
		return subcommands.ExitUsageError
	}

	var log recon.ActivityLog
	w, err = load(ctx, w, inputs, &log)
	if err != nil {
		errorf("Error loading sources: %v", err)
		return subcommands.ExitFailure
	}

	report, err := w.Reconcile()
	var perr *recon.PreconditionError
	if errors.As(err, &perr) {
		errorf("%v", perr)
		fmt.Fprintln(stderr, "Use -im, -cust and -ch, or a profile, to select the three files.")
		return subcommands.ExitFailure
	}
	if err != nil {
		errorf("Error reconciling: %v", err)
		return subcommands.ExitFailure
	}
	log.Add("Reconciliation Completed")

	if err := c.output.present(report, filter, profile.Currency, &log); err != nil {
		errorf("Error writing report: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
