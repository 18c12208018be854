package recon

// demoRow is a compact literal for the demo fixture.
type demoRow struct {
	id     string
	amount int
	kind   string
}

var demoRows = [3][]demoRow{
	{ // IM
		{"T001", 1000, "Buy"},  // matched
		{"T002", 2000, "Sell"}, // mismatch
		{"T003", 3000, "Buy"},  // orphan, missing in CH
	},
	{ // Cust
		{"T001", 1000, "Buy"},
		{"T002", 2050, "Sell"},
		{"T003", 3000, "Buy"},
	},
	{ // CH
		{"T001", 1000, "Buy"},
		{"T002", 2000, "Sell"},
	},
}

// DemoRecords returns the built-in record sets of the three sources, in
// source order. They do not go through the parser.
func DemoRecords() [3][]Record {
	var out [3][]Record
	header := []string{"TradeID", "Amount", "Type"}
	for i, rows := range demoRows {
		for _, r := range rows {
			a := A(r.amount)
			out[i] = append(out[i], Record{
				TradeID: r.id,
				Amount:  a,
				Type:    r.kind,
				Fields:  map[string]string{"TradeID": r.id, "Amount": a.String(), "Type": r.kind},
				Columns: header,
			})
		}
	}
	return out
}

// Demo reconciles the built-in record sets.
func Demo() Report {
	d := DemoRecords()
	return Match(d[0], d[1], d[2])
}
