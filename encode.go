package recon

// JSON encodings of the reconciliation results. Keys are written in a fixed
// order so that reports diff cleanly.

func (b Break) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("tradeId", b.TradeID)
	w.Append("type", b.Type)
	w.Append("im", b.IM)
	w.Append("cust", b.Cust)
	w.Append("ch", b.CH)
	w.Append("difference", b.Difference)
	return w.MarshalJSON()
}

func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("totalRecords", s.TotalRecords)
	w.Append("matched", s.Matched)
	w.Append("missingOrphans", s.MissingOrphans)
	w.Append("amountMismatches", s.AmountMismatches)
	return w.MarshalJSON()
}

func (r Report) MarshalJSON() ([]byte, error) {
	breaks := r.Breaks
	if breaks == nil {
		breaks = []Break{}
	}
	dups := make(map[string][]string, len(r.Duplicates))
	for src, ids := range r.Duplicates {
		dups[src.Key()] = ids
	}

	var w jsonObjectWriter
	w.Optional("runId", r.RunID)
	w.Append("summary", r.Summary)
	w.Append("breaks", breaks)
	w.Optional("duplicates", dups)
	return w.MarshalJSON()
}
