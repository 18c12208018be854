package recon

import "strings"

// Record is one row of a source file.
//
// TradeID, Amount and Type are resolved from the columns of the same name
// (case-insensitive). Every column, those included, is kept as raw trimmed
// text in Fields under its original header name.
type Record struct {
	TradeID string
	Amount  Amount
	Type    string
	Fields  map[string]string
	Columns []string // header names in file order
}

// Get returns the raw value of a column, matching its name case-insensitively.
func (r Record) Get(column string) (string, bool) {
	if v, ok := r.Fields[column]; ok {
		return v, true
	}
	for _, c := range r.Columns {
		if strings.EqualFold(c, column) {
			v, ok := r.Fields[c]
			return v, ok
		}
	}
	return "", false
}

// newRecord builds a record from a header and the matching row values. Missing
// trailing values are empty strings, extra values are dropped.
func newRecord(header, values []string) Record {
	r := Record{
		Fields:  make(map[string]string, len(header)),
		Columns: header,
	}
	for i, h := range header {
		v := ""
		if i < len(values) {
			v = strings.TrimSpace(values[i])
		}
		// first column wins when the header repeats a name.
		if _, exists := r.Fields[h]; exists {
			continue
		}
		r.Fields[h] = v
	}
	r.TradeID, _ = r.Get("TradeID")
	amount, _ := r.Get("Amount")
	r.Amount = ParseAmount(amount)
	r.Type, _ = r.Get("Type")
	return r
}

// hasRequiredColumns reports whether the normalized header holds both tradeid
// and amount.
func hasRequiredColumns(header []string) bool {
	var id, amount bool
	for _, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "tradeid":
			id = true
		case "amount":
			amount = true
		}
	}
	return id && amount
}
