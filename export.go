package recon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ExportFilename is the name proposed for a downloaded break file.
const ExportFilename = "reconciliation_breaks.csv"

// ExportHeader is the fixed header of the break CSV export.
var ExportHeader = []string{"TradeID", "Type", "IM Amount", "Cust Amount", "CH Amount", "Difference"}

// WriteCSV writes breaks to w in the export format. A source lacking the
// TradeID renders as an empty value.
func WriteCSV(w io.Writer, breaks []Break) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, b := range breaks {
		row := []string{b.TradeID, string(b.Type)}
		for _, id := range Sources {
			row = append(row, exportAmount(b.Amount(id)))
		}
		row = append(row, b.Difference.String())
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write break %q: %w", b.TradeID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportAmount(a *Amount) string {
	if a == nil {
		return ""
	}
	return a.String()
}

// ReadCSV reads breaks back from the export format. Empty amounts are
// returned as nil.
func ReadCSV(r io.Reader) ([]Break, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(ExportHeader)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ValidationError{Reason: reasonEmpty}
	}
	if err != nil {
		return nil, &ValidationError{Reason: reasonRead, Err: err}
	}
	for i, h := range ExportHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), h) {
			return nil, &ValidationError{Line: 1, Reason: fmt.Sprintf("unexpected column %q, want %q", header[i], h)}
		}
	}

	var breaks []Break
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ValidationError{Reason: reasonRead, Err: err}
		}
		line, _ := cr.FieldPos(0)
		status := Status(strings.TrimSpace(row[1]))
		if status != Mismatch && status != Orphan {
			return nil, &ValidationError{Line: line, Reason: fmt.Sprintf("unknown break type %q", row[1])}
		}
		breaks = append(breaks, Break{
			TradeID:    strings.TrimSpace(row[0]),
			Type:       status,
			IM:         importAmount(row[2]),
			Cust:       importAmount(row[3]),
			CH:         importAmount(row[4]),
			Difference: ParseAmount(row[5]),
		})
	}
	return breaks, nil
}

func importAmount(s string) *Amount {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	a := ParseAmount(s)
	return &a
}
