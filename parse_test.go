package recon

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		delimiter Delimiter
		want      []Record
	}{
		{
			name:      "comma with original header casing",
			input:     "tradeId, Amount ,type,Note\nT1,100.50,Buy,first\nT2,200,Sell,\n",
			delimiter: Comma,
			want: []Record{
				{
					TradeID: "T1", Amount: A(100.5), Type: "Buy",
					Fields:  map[string]string{"tradeId": "T1", "Amount": "100.50", "type": "Buy", "Note": "first"},
					Columns: []string{"tradeId", "Amount", "type", "Note"},
				},
				{
					TradeID: "T2", Amount: A(200), Type: "Sell",
					Fields:  map[string]string{"tradeId": "T2", "Amount": "200", "type": "Sell", "Note": ""},
					Columns: []string{"tradeId", "Amount", "type", "Note"},
				},
			},
		},
		{
			name:      "pipe with blank lines and CRLF",
			input:     "TradeID|Amount\r\n\r\nT1 | 10 \r\n   \r\nT2|20\r\n",
			delimiter: Pipe,
			want: []Record{
				{TradeID: "T1", Amount: A(10), Fields: map[string]string{"TradeID": "T1", "Amount": "10"}, Columns: []string{"TradeID", "Amount"}},
				{TradeID: "T2", Amount: A(20), Fields: map[string]string{"TradeID": "T2", "Amount": "20"}, Columns: []string{"TradeID", "Amount"}},
			},
		},
		{
			name:      "tab with an empty amount",
			input:     "TradeID\tAmount\tType\nT1\t\tBuy\n",
			delimiter: Tab,
			want: []Record{
				{TradeID: "T1", Amount: Amount{}, Type: "Buy", Fields: map[string]string{"TradeID": "T1", "Amount": "", "Type": "Buy"}, Columns: []string{"TradeID", "Amount", "Type"}},
			},
		},
		{
			name:      "non numeric amount and short row",
			input:     "TradeID,Amount,Type\nT1,abc\n",
			delimiter: Comma,
			want: []Record{
				{TradeID: "T1", Amount: Amount{}, Fields: map[string]string{"TradeID": "T1", "Amount": "abc", "Type": ""}, Columns: []string{"TradeID", "Amount", "Type"}},
			},
		},
		{
			name:      "unterminated quote stays on its line",
			input:     "TradeID,Amount,Type\nT1,100,\"Buy\nT2,200,Sell\nT3,300,Buy\n",
			delimiter: Comma,
			want: []Record{
				{TradeID: "T1", Amount: A(100), Type: "Buy", Fields: map[string]string{"TradeID": "T1", "Amount": "100", "Type": "Buy"}, Columns: []string{"TradeID", "Amount", "Type"}},
				{TradeID: "T2", Amount: A(200), Type: "Sell", Fields: map[string]string{"TradeID": "T2", "Amount": "200", "Type": "Sell"}, Columns: []string{"TradeID", "Amount", "Type"}},
				{TradeID: "T3", Amount: A(300), Type: "Buy", Fields: map[string]string{"TradeID": "T3", "Amount": "300", "Type": "Buy"}, Columns: []string{"TradeID", "Amount", "Type"}},
			},
		},
		{
			name:      "quoted delimiter within a line",
			input:     "TradeID,Amount,Note\nT1,5,\"a, b\"\n",
			delimiter: Comma,
			want: []Record{
				{TradeID: "T1", Amount: A(5), Fields: map[string]string{"TradeID": "T1", "Amount": "5", "Note": "a, b"}, Columns: []string{"TradeID", "Amount", "Note"}},
			},
		},
		{
			name:      "byte order mark before a padded header",
			input:     "\ufeff TradeID,Amount\nT1,5\n",
			delimiter: Comma,
			want: []Record{
				{TradeID: "T1", Amount: A(5), Fields: map[string]string{"TradeID": "T1", "Amount": "5"}, Columns: []string{"TradeID", "Amount"}},
			},
		},
		{
			name:      "header only",
			input:     "TradeID,Amount\n",
			delimiter: Comma,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input), tt.delimiter)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got, amountComparer); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		delimiter  Delimiter
		wantReason string
		wantLine   int
	}{
		{name: "empty file", input: "", delimiter: Comma, wantReason: reasonEmpty},
		{name: "only blank lines", input: "\n\n", delimiter: Comma, wantReason: reasonEmpty},
		{name: "missing amount", input: "TradeID,Value\nT1,1\n", delimiter: Comma, wantReason: reasonColumns, wantLine: 1},
		{name: "wrong delimiter", input: "TradeID|Amount\nT1|1\n", delimiter: Comma, wantReason: reasonColumns, wantLine: 1},
		{name: "missing trade id", input: "TradeID,Amount\nT1,10\n,20\n", delimiter: Comma, wantReason: reasonNoTradeID, wantLine: 3},
		{name: "lines counted after blanks", input: "\nTradeID,Amount\n\nT1,10\n,20\n", delimiter: Comma, wantReason: reasonNoTradeID, wantLine: 5},
		{name: "header after blank line", input: "\nID,Amount\nT1,10\n", delimiter: Comma, wantReason: reasonColumns, wantLine: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), tt.delimiter)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Parse() error = %v, want a *ValidationError", err)
			}
			if verr.Reason != tt.wantReason {
				t.Errorf("Parse() reason = %q, want %q", verr.Reason, tt.wantReason)
			}
			if verr.Line != tt.wantLine {
				t.Errorf("Parse() line = %d, want %d", verr.Line, tt.wantLine)
			}
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	for in, want := range map[string]Delimiter{"": Comma, ",": Comma, "comma": Comma, "|": Pipe, "PIPE": Pipe, "\t": Tab, `\t`: Tab, "tab": Tab} {
		got, err := ParseDelimiter(in)
		if err != nil || got != want {
			t.Errorf("ParseDelimiter(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseDelimiter(";"); err == nil {
		t.Error("ParseDelimiter(\";\") succeeded, want an error")
	}
}
