package recon

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// maxLineSize bounds a single line of a source file.
const maxLineSize = 1 << 20

// Parse reads a delimited source into records.
//
// The first non-blank line is the header; it must name a TradeID and an Amount
// column (case-insensitive). Each line is split on its own: a quote never
// spans a line break. Blank lines are skipped and every value is trimmed.
// Failures are reported as [*ValidationError] with no source set.
func Parse(r io.Reader, d Delimiter) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var header []string
	var records []Record
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		values, err := splitLine(text, d)
		if err != nil {
			return nil, &ValidationError{Line: line, Reason: reasonRead, Err: err}
		}
		if isBlank(values) {
			continue
		}

		if header == nil {
			for i := range values {
				values[i] = strings.TrimSpace(values[i])
			}
			if !hasRequiredColumns(values) {
				return nil, &ValidationError{Line: line, Reason: reasonColumns}
			}
			header = values
			continue
		}

		rec := newRecord(header, values)
		if rec.TradeID == "" {
			return nil, &ValidationError{Line: line, Reason: reasonNoTradeID}
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, &ValidationError{Line: line + 1, Reason: reasonRead, Err: err}
	}
	if header == nil {
		return nil, &ValidationError{Reason: reasonEmpty}
	}
	return records, nil
}

// splitLine splits a single line on d. Quoted values are honoured within the
// line only, an unterminated quote runs to the end of the line.
func splitLine(text string, d Delimiter) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = rune(d)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	values, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	return values, err
}

// isBlank reports whether a row only holds whitespace, such as a line made
// only of delimiters.
func isBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
