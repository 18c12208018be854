package recon

import (
	"slices"

	"github.com/google/uuid"
)

// Status is the classification of a TradeID after matching.
type Status string

const (
	Matched  Status = "Matched"
	Mismatch Status = "Mismatch"
	Orphan   Status = "Orphan"
)

// Break is a TradeID that is not identically present in all three sources.
type Break struct {
	TradeID    string
	Type       Status // Mismatch or Orphan
	IM         *Amount
	Cust       *Amount
	CH         *Amount
	Difference Amount // max-min across sources for a Mismatch, zero for an Orphan
}

// Amount returns the amount observed in a source, nil when the source lacks the id.
func (b Break) Amount(s SourceID) *Amount {
	switch s {
	case IM:
		return b.IM
	case Cust:
		return b.Cust
	case CH:
		return b.CH
	}
	return nil
}

// Summary holds the counts of one reconciliation run.
//
// TotalRecords is the number of distinct TradeIDs across the three sources,
// and always equals Matched+MissingOrphans+AmountMismatches.
type Summary struct {
	TotalRecords     int
	Matched          int
	MissingOrphans   int
	AmountMismatches int
}

// Report is the outcome of one reconciliation run.
type Report struct {
	RunID   string
	Summary Summary
	Breaks  []Break // sorted by TradeID

	// Duplicates lists, per source, the TradeIDs found more than once. Only the
	// first occurrence took part in the match.
	Duplicates map[SourceID][]string
}

// Match reconciles the records of the three sources.
//
// Every distinct TradeID is classified exactly once:
//   - Matched when present in all sources with strictly equal amounts,
//   - Mismatch when present in all sources with at least one differing amount,
//   - Orphan when absent from at least one source.
//
// Only the first record of a TradeID in a source is considered.
func Match(im, cust, ch []Record) Report {
	report := Report{
		RunID:      uuid.NewString(),
		Duplicates: make(map[SourceID][]string),
	}

	var index [3]map[string]Record
	var ids []string
	seen := make(map[string]bool)
	for i, records := range [3][]Record{im, cust, ch} {
		src := Sources[i]
		index[i] = make(map[string]Record, len(records))
		for _, r := range records {
			if _, dup := index[i][r.TradeID]; dup {
				if !slices.Contains(report.Duplicates[src], r.TradeID) {
					report.Duplicates[src] = append(report.Duplicates[src], r.TradeID)
				}
				continue
			}
			index[i][r.TradeID] = r
			if !seen[r.TradeID] {
				seen[r.TradeID] = true
				ids = append(ids, r.TradeID)
			}
		}
	}
	slices.Sort(ids)

	for _, id := range ids {
		var amounts [3]*Amount
		present := 0
		for i := range index {
			if r, ok := index[i][id]; ok {
				a := r.Amount
				amounts[i] = &a
				present++
			}
		}

		b := Break{TradeID: id, IM: amounts[0], Cust: amounts[1], CH: amounts[2], Difference: A(0)}
		switch {
		case present < len(index):
			b.Type = Orphan
			report.Summary.MissingOrphans++
		case amounts[0].Equal(*amounts[1]) && amounts[1].Equal(*amounts[2]):
			report.Summary.Matched++
			continue
		default:
			b.Type = Mismatch
			b.Difference = spread(amounts[:])
			report.Summary.AmountMismatches++
		}
		report.Breaks = append(report.Breaks, b)
	}
	report.Summary.TotalRecords = len(ids)
	return report
}

// spread returns max-min over the valid amounts, zero when fewer than two are valid.
func spread(amounts []*Amount) Amount {
	var lo, hi Amount
	n := 0
	for _, a := range amounts {
		if a == nil || !a.IsValid() {
			continue
		}
		if n == 0 || a.LessThan(lo) {
			lo = *a
		}
		if n == 0 || a.GreaterThan(hi) {
			hi = *a
		}
		n++
	}
	if n < 2 {
		return A(0)
	}
	return hi.Sub(lo)
}
