package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/recon"
	"github.com/etnz/recon/config"
	"github.com/etnz/recon/renderer"
)

// sourceFlags selects the three source files. Omitted flags fall back to the profile.
type sourceFlags struct {
	paths  [3]string
	delims [3]string
}

func (s *sourceFlags) SetFlags(f *flag.FlagSet) {
	for i, id := range recon.Sources {
		f.StringVar(&s.paths[i], id.Key(), "", fmt.Sprintf("%s source file (CSV or JSON)", id))
		f.StringVar(&s.delims[i], id.Key()+"-delim", "", fmt.Sprintf("%s delimiter: comma, pipe or tab", id))
	}
}

// inputs merges the flags into the profile.
func (s *sourceFlags) inputs(p *config.Profile) (recon.Workspace, [3]recon.Input, error) {
	w := p.Workspace()
	inputs := p.Inputs()
	for i, id := range recon.Sources {
		if s.delims[i] != "" {
			d, err := recon.ParseDelimiter(s.delims[i])
			if err != nil {
				return w, inputs, fmt.Errorf("-%s-delim: %w", id.Key(), err)
			}
			w = w.WithDelimiter(id, d)
		}
		if s.paths[i] != "" {
			inputs[i] = recon.Input{
				Path:     s.paths[i],
				Format:   recon.FormatOf(s.paths[i]),
				JSONPath: inputs[i].JSONPath,
			}
		}
	}
	return w, inputs, nil
}

// load reads the sources into a workspace, narrating it in log and on stderr.
func load(ctx context.Context, w recon.Workspace, inputs [3]recon.Input, log *recon.ActivityLog) (recon.Workspace, error) {
	w, warnings, err := recon.LoadFiles(ctx, w, inputs)
	if err != nil {
		return w, err
	}
	for _, warn := range warnings {
		warnf("%v", warn)
		log.Add("%v", warn)
	}
	for i, id := range recon.Sources {
		if inputs[i].Path == "" {
			continue
		}
		if slot := w.Slot(id); slot.Valid() {
			log.Add("%s File Uploaded: %s", strings.ToUpper(id.Key()), slot.File.Name)
		} else {
			log.Add("%v", slot.Err)
		}
	}
	printSlots(w)
	if w.Ready() {
		log.Add("Files Parsed Successfully")
	}
	return w, nil
}

// outputFlags controls how a report is presented.
type outputFlags struct {
	typ      string
	id       string
	out      string
	json     bool
	currency string
}

func (o *outputFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&o.typ, "type", string(recon.AllTypes), "Breaks to show: All Types, Mismatch or Orphan")
	f.StringVar(&o.id, "id", "", "Only show TradeIDs containing this text, case-insensitive")
	f.StringVar(&o.out, "o", "", "Export the shown breaks to this CSV file")
	f.BoolVar(&o.json, "json", false, "Print the report as JSON instead of Markdown")
	f.StringVar(&o.currency, "currency", "", "ISO currency used to display amounts, defaults to the profile's")
}

func (o *outputFlags) filter() (recon.Filter, error) {
	t, err := recon.ParseTypeFilter(o.typ)
	if err != nil {
		return recon.Filter{}, fmt.Errorf("-type: %w", err)
	}
	return recon.Filter{Type: t, TradeID: o.id}, nil
}

// present exports and prints a report. The currency flag wins over currency.
func (o *outputFlags) present(report recon.Report, f recon.Filter, currency string, log *recon.ActivityLog) error {
	if o.currency != "" {
		currency = o.currency
	}
	breaks := f.Apply(report.Breaks)
	if o.out != "" {
		if err := exportBreaks(o.out, breaks); err != nil {
			return err
		}
		log.Add("Breaks CSV Exported")
		okf("Exported %d breaks to %s", len(breaks), o.out)
	}
	if o.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report.Filtered(f))
	}
	printMarkdown(renderer.ReportMarkdown(report, renderer.Options{
		Currency: currency,
		Filter:   f,
		Activity: log.Entries(),
	}))
	return nil
}

func exportBreaks(path string, breaks []recon.Break) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create export file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("cannot close export file: %w", cerr)
		}
	}()
	return recon.WriteCSV(file, breaks)
}
