package recon

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultJSONPath selects every element of a top-level JSON array.
const DefaultJSONPath = "$[*]"

// ParseJSON reads records from a JSON document.
//
// path is a JSONPath expression selecting the row objects, for instance
// "$.trades[*]" for {"trades":[{...},{...}]}. The header is the sorted union of
// the row keys and must hold a TradeID and an Amount like a delimited source.
// Numbers are kept with their exact text.
func ParseJSON(r io.Reader, path string) ([]Record, error) {
	if path == "" {
		path = DefaultJSONPath
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, &ValidationError{Reason: reasonEmpty}
		}
		return nil, &ValidationError{Reason: reasonBadJSON, Err: err}
	}

	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, &ValidationError{Reason: reasonBadJSON, Err: fmt.Errorf("path %q: %w", path, err)}
	}
	// jsonpath returns a list for wildcards and the bare value otherwise.
	var rows []any
	switch v := selected.(type) {
	case []any:
		rows = v
	case map[string]any:
		rows = []any{v}
	}
	if len(rows) == 0 {
		return nil, &ValidationError{Reason: reasonEmpty}
	}

	objects := make([]map[string]any, 0, len(rows))
	var header []string
	for i, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, &ValidationError{Reason: reasonBadJSONRow, Err: fmt.Errorf("row %d is %T", i, row)}
		}
		for k := range obj {
			if !slices.Contains(header, k) {
				header = append(header, k)
			}
		}
		objects = append(objects, obj)
	}
	slices.Sort(header)
	if !hasRequiredColumns(header) {
		return nil, &ValidationError{Reason: reasonColumns}
	}

	records := make([]Record, 0, len(objects))
	for i, obj := range objects {
		values := make([]string, len(header))
		for j, h := range header {
			values[j] = jsonText(obj[h])
		}
		rec := newRecord(header, values)
		if rec.TradeID == "" {
			return nil, &ValidationError{Reason: reasonNoTradeID, Err: fmt.Errorf("row %d", i)}
		}
		records = append(records, rec)
	}
	return records, nil
}

// jsonText renders a decoded JSON value as the raw text a delimited file would
// have held.
func jsonText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
