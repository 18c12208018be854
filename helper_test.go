package recon

import (
	"strings"

	"github.com/google/go-cmp/cmp"
)

// amountComparer lets cmp compare amounts by value.
var amountComparer = cmp.Comparer(func(a, b Amount) bool {
	if a.valid != b.valid {
		return false
	}
	return !a.valid || a.value.Equal(b.value)
})

// amt is a helper for tests to create an amount pointer from a constant.
func amt(v float64) *Amount {
	a := A(v)
	return &a
}

// rows is a helper for tests to build records from "TradeID:Amount" pairs.
func rows(pairs ...string) []Record {
	var out []Record
	for _, p := range pairs {
		id, amount, _ := strings.Cut(p, ":")
		out = append(out, newRecord([]string{"TradeID", "Amount"}, []string{id, amount}))
	}
	return out
}
