package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/recon"
)

func TestReportMarkdown(t *testing.T) {
	report := recon.Demo()
	report.RunID = "run-1"
	got := ReportMarkdown(report, Options{Currency: "USD"})

	for _, want := range []string{
		"# 3-Way Reconciliation",
		"Run run-1",
		"## Summary",
		"Match rate: 33.33%",
		"## Breaks",
		"T002",
		"$2,050.00",
		"$50.00",
		"T003",
		"Orphan",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ReportMarkdown() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "T001") {
		t.Errorf("ReportMarkdown() lists the matched trade T001:\n%s", got)
	}
	if strings.Contains(got, "Activity Log") {
		t.Errorf("ReportMarkdown() renders an empty activity log:\n%s", got)
	}
}

func TestReportMarkdownFiltered(t *testing.T) {
	got := ReportMarkdown(recon.Demo(), Options{Filter: recon.Filter{Type: recon.OnlyMismatch, TradeID: "t003"}})
	for _, want := range []string{
		`Filtered on Mismatch with TradeID containing "t003".`,
		"No breaks found matching filters.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ReportMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestReportMarkdownDuplicatesAndActivity(t *testing.T) {
	report := recon.Demo()
	report.Duplicates = map[recon.SourceID][]string{recon.Cust: {"T002"}}
	at := time.Date(2025, 3, 4, 14, 30, 0, 0, time.UTC)
	got := ReportMarkdown(report, Options{Activity: []recon.Activity{
		{Time: at, Message: "Reconciliation Completed"},
	}})
	for _, want := range []string{
		"## Duplicate TradeIDs",
		"Custodian: T002",
		"## Activity Log",
		"14:30 - Reconciliation Completed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ReportMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestBreaksMarkdownMissingAmounts(t *testing.T) {
	report := recon.Demo()
	got := BreaksMarkdown(report.Breaks, "")
	if !strings.Contains(got, "3000") {
		t.Errorf("BreaksMarkdown() without currency does not contain plain amounts:\n%s", got)
	}
	// T003 is absent from the clearing house and has no difference.
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "T003") && strings.Count(line, "-") < 2 {
			t.Errorf("T003 row = %q, want placeholders for the missing amount and difference", line)
		}
	}
	if got := BreaksMarkdown(nil, "USD"); !strings.Contains(got, "No breaks.") {
		t.Errorf("BreaksMarkdown(nil) = %q", got)
	}
}

func TestMatchRate(t *testing.T) {
	if got := matchRate(recon.Summary{}); got != "-" {
		t.Errorf("matchRate(empty) = %q, want -", got)
	}
	if got := matchRate(recon.Summary{TotalRecords: 4, Matched: 3}); got != "75.00%" {
		t.Errorf("matchRate(3/4) = %q, want 75.00%%", got)
	}
}
