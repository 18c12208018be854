// Package cmd implements the CLI application to reconcile trades.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/etnz/recon"
	"github.com/etnz/recon/config"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultFile, "Path to the YAML profile describing the sources")

// output streams, replaced by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// commands returns the subcommands and their group.
func commands() map[subcommands.Command]string {
	return map[subcommands.Command]string{
		&runCmd{}:    "reconciliation",
		&demoCmd{}:   "reconciliation",
		&checkCmd{}:  "reconciliation",
		&showCmd{}:   "reconciliation",
		&serveCmd{}:  "services",
		&AssistCmd{}: "services",
		&topicCmd{}:  "help",
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for cmd, group := range commands() {
		c.Register(cmd, group)
	}
}

// IsCommand reports whether name is a builtin subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for cmd := range commands() {
		if cmd.Name() == name {
			return true
		}
	}
	return false
}

// LoadProfile loads the profile named by the -config flag.
func LoadProfile() (*config.Profile, error) {
	return config.Load(*configFile)
}

// printMarkdown renders md for the terminal, and falls back to the raw text.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	labelStyle = lipgloss.NewStyle().Bold(true)
)

func warnf(format string, args ...any) {
	fmt.Fprintln(stderr, warnStyle.Render(fmt.Sprintf(format, args...)))
}

func errorf(format string, args ...any) {
	fmt.Fprintln(stderr, errStyle.Render(fmt.Sprintf(format, args...)))
}

func okf(format string, args ...any) {
	fmt.Fprintln(stderr, okStyle.Render(fmt.Sprintf(format, args...)))
}

// printSlots prints one status line per source of the workspace.
func printSlots(w recon.Workspace) {
	for _, id := range recon.Sources {
		slot := w.Slot(id)
		label := labelStyle.Render(fmt.Sprintf("%-18s", id.String()+":"))
		var status string
		switch {
		case slot.Err != nil:
			status = errStyle.Render(slot.Err.Error())
		case slot.Valid():
			status = okStyle.Render(fmt.Sprintf("%s (%d records)", slot.File.Name, len(slot.Records)))
		default:
			status = warnStyle.Render("no file")
		}
		fmt.Fprintln(stderr, label, status)
	}
}
