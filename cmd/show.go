package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/recon"
	"github.com/etnz/recon/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	typ      string
	id       string
	currency string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display an exported break file" }
func (*showCmd) Usage() string {
	return `rcs show [-type <type>] [-id <text>] <breaks.csv>

  Displays the breaks exported by 'rcs run -o'.

`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", string(recon.AllTypes), "Breaks to show: All Types, Mismatch or Orphan")
	f.StringVar(&c.id, "id", "", "Only show TradeIDs containing this text, case-insensitive")
	f.StringVar(&c.currency, "currency", "", "ISO currency used to display amounts, defaults to the profile's")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	t, err := recon.ParseTypeFilter(c.typ)
	if err != nil {
		errorf("Error parsing flags: -type: %v", err)
		return subcommands.ExitUsageError
	}
	currency := c.currency
	if currency == "" {
		profile, err := LoadProfile()
		if err != nil {
			errorf("Error loading profile: %v", err)
			return subcommands.ExitFailure
		}
		currency = profile.Currency
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		errorf("Error opening break file: %v", err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	breaks, err := recon.ReadCSV(file)
	if err != nil {
		errorf("Error reading break file %q: %v", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	filter := recon.Filter{Type: t, TradeID: c.id}
	printMarkdown(fmt.Sprintf("# Breaks of %s\n\n%s", f.Arg(0), renderer.BreaksMarkdown(filter.Apply(breaks), currency)))
	return subcommands.ExitSuccess
}
