package cmd

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/recon"
	"github.com/etnz/recon/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// AssistCmd is the subcommand for the AI assistant.
type AssistCmd struct {
	sources  sourceFlags
	demo     bool
	currency string
}

// Name returns the name of the command.
func (*AssistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*AssistCmd) Synopsis() string { return "discuss a reconciliation with the AI assistant" }

// Usage returns a long-form usage string.
func (*AssistCmd) Usage() string {
	return `rcs assist [-demo] [-im <file>] [-cust <file>] [-ch <file>] [question]

  Reconciles the sources, then starts an interactive session with an assistant
  knowing the breaks. Requires a Gemini API key in GEMINI_API_KEY.

`
}

// SetFlags sets the flags for the command.
func (c *AssistCmd) SetFlags(f *flag.FlagSet) {
	c.sources.SetFlags(f)
	f.BoolVar(&c.demo, "demo", false, "Discuss the built-in demo data set")
	f.StringVar(&c.currency, "currency", "", "ISO currency used to display amounts, defaults to the profile's")
}

// Execute executes the command.
func (c *AssistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

	profile, err := LoadProfile()
	if err != nil {
		errorf("Error loading profile: %v", err)
		return subcommands.ExitFailure
	}
	currency := profile.Currency
	if c.currency != "" {
		currency = c.currency
	}

	report := recon.Demo()
	if !c.demo {
		w, inputs, err := c.sources.inputs(profile)
		if err != nil {
			errorf("Error parsing flags: %v", err)
			return subcommands.ExitUsageError
		}
		var log recon.ActivityLog
		if w, err = load(ctx, w, inputs, &log); err != nil {
			errorf("Error loading sources: %v", err)
			return subcommands.ExitFailure
		}
		if report, err = w.Reconcile(); err != nil {
			errorf("%v", err)
			return subcommands.ExitFailure
		}
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		errorf("Error initializing Gemini's client: %v", err)
		return subcommands.ExitFailure
	}

	a := agent.New(stdout, os.Stdin, agent.NewAuditor(report, currency))
	a.Render = renderAnswer
	if err := a.Run(ctx, client, initialPrompt); err != nil && !errors.Is(err, context.Canceled) {
		errorf("Agent failed: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// renderAnswer renders the assistant's markdown for the terminal.
func renderAnswer(md string) string {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		return md
	}
	return out
}
