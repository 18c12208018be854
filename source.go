package recon

import (
	"fmt"
	"strings"
)

// SourceID identifies one of the three reconciliation channels.
// The zero value is "no source".
type SourceID int

const (
	IM   SourceID = iota + 1 // Investment Manager
	Cust                     // Custodian
	CH                       // Clearing House
)

// Sources lists the three channels in their canonical order.
var Sources = [3]SourceID{IM, Cust, CH}

var sourceKeys = [3]string{"im", "cust", "ch"}
var sourceNames = [3]string{"Investment Manager", "Custodian", "Clearing House"}

// Key returns the short id of the source: "im", "cust" or "ch".
func (s SourceID) Key() string {
	if s < IM || s > CH {
		return fmt.Sprintf("source(%d)", int(s))
	}
	return sourceKeys[s-1]
}

// index returns the position of the source in [Sources].
func (s SourceID) index() int { return int(s) - 1 }

// String returns the display name of the source.
func (s SourceID) String() string {
	if s < IM || s > CH {
		return s.Key()
	}
	return sourceNames[s-1]
}

// ParseSourceID returns the source for its short id, case-insensitive.
func ParseSourceID(s string) (SourceID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, k := range sourceKeys {
		if k == key {
			return SourceID(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown source %q, want one of im, cust, ch", s)
}

// Delimiter is the field separator of a delimited source.
type Delimiter rune

const (
	Comma Delimiter = ','
	Pipe  Delimiter = '|'
	Tab   Delimiter = '\t'
)

// ParseDelimiter accepts the literal character (",", "|", a tab), the escape
// `\t`, or one of the names comma, pipe, tab. The empty string is a comma.
func ParseDelimiter(s string) (Delimiter, error) {
	switch strings.ToLower(s) {
	case "", ",", "comma":
		return Comma, nil
	case "|", "pipe":
		return Pipe, nil
	case "\t", `\t`, "tab":
		return Tab, nil
	}
	return 0, fmt.Errorf("unsupported delimiter %q, want comma, pipe or tab", s)
}

// String returns the name of the delimiter.
func (d Delimiter) String() string {
	switch d {
	case Comma:
		return "comma"
	case Pipe:
		return "pipe"
	case Tab:
		return "tab"
	}
	return fmt.Sprintf("%q", rune(d))
}
