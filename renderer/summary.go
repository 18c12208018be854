package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/recon"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the counts of a reconciliation run.
func SummaryMarkdown(s recon.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	writeSummary(doc, s)
	return doc.String()
}

func writeSummary(doc *md.Markdown, s recon.Summary) {
	doc.H2("Summary")
	doc.Table(md.TableSet{
		Header: []string{"Total Records", "Matched", "Missing / Orphans", "Amount Mismatches"},
		Rows: [][]string{{
			strconv.Itoa(s.TotalRecords),
			strconv.Itoa(s.Matched),
			strconv.Itoa(s.MissingOrphans),
			strconv.Itoa(s.AmountMismatches),
		}},
	})
	doc.PlainText(fmt.Sprintf("Match rate: %s", matchRate(s)))
}

// matchRate returns the share of matched TradeIDs, "-" for an empty run.
func matchRate(s recon.Summary) string {
	if s.TotalRecords == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", 100*float64(s.Matched)/float64(s.TotalRecords))
}
