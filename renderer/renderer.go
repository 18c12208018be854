// Package renderer renders reconciliation results as Markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/recon"
	md "github.com/nao1215/markdown"
)

// Options configures the rendering of a report.
type Options struct {
	Currency string       // ISO code used to format amounts, plain numbers when empty
	Filter   recon.Filter // projection applied to the breaks table
	Activity []recon.Activity
}

// ReportMarkdown renders a report: its summary, the filtered breaks and the
// activity log when there is one.
func ReportMarkdown(r recon.Report, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("3-Way Reconciliation")
	if r.RunID != "" {
		doc.PlainText(fmt.Sprintf("Run %s", r.RunID))
	}
	writeSummary(doc, r.Summary)

	doc.H2("Breaks")
	if f := describeFilter(opts.Filter); f != "" {
		doc.PlainText(f)
	}
	writeBreaks(doc, opts.Filter.Apply(r.Breaks), opts.Currency, "No breaks found matching filters.")

	if len(r.Duplicates) > 0 {
		doc.H2("Duplicate TradeIDs")
		doc.PlainText("Only the first occurrence in each source was reconciled.")
		var items []string
		for _, src := range recon.Sources {
			for _, id := range r.Duplicates[src] {
				items = append(items, fmt.Sprintf("%s: %s", src, id))
			}
		}
		doc.BulletList(items...)
	}

	if len(opts.Activity) > 0 {
		doc.H2("Activity Log")
		items := make([]string, len(opts.Activity))
		for i, a := range opts.Activity {
			items[i] = a.String()
		}
		doc.BulletList(items...)
	}
	return doc.String()
}

// BreaksMarkdown renders a table of breaks.
func BreaksMarkdown(breaks []recon.Break, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	writeBreaks(doc, breaks, currency, "No breaks.")
	return doc.String()
}

func writeBreaks(doc *md.Markdown, breaks []recon.Break, currency, empty string) {
	if len(breaks) == 0 {
		doc.PlainText(empty)
		return
	}
	rows := make([][]string, 0, len(breaks))
	for _, b := range breaks {
		diff := "-"
		if !b.Difference.IsZero() {
			diff = formatAmount(&b.Difference, currency)
		}
		row := []string{b.TradeID, string(b.Type)}
		for _, id := range recon.Sources {
			row = append(row, formatAmount(b.Amount(id), currency))
		}
		rows = append(rows, append(row, diff))
	}
	doc.Table(md.TableSet{
		Header: []string{"TradeID", "Type", "IM Amount", "Cust Amount", "CH Amount", "Difference"},
		Rows:   rows,
	})
}

// formatAmount renders a source amount, "-" when the source lacks the TradeID.
func formatAmount(a *recon.Amount, currency string) string {
	if a == nil {
		return "-"
	}
	if currency == "" {
		return a.String()
	}
	return a.Format(currency)
}

func describeFilter(f recon.Filter) string {
	t := f.Type
	if t == "" {
		t = recon.AllTypes
	}
	if t == recon.AllTypes && f.TradeID == "" {
		return ""
	}
	if f.TradeID == "" {
		return fmt.Sprintf("Filtered on %s.", t)
	}
	return fmt.Sprintf("Filtered on %s with TradeID containing %q.", t, f.TradeID)
}
