package recon

import (
	"fmt"
	"strings"
)

// ValidationError reports a source file that cannot be accepted.
//
// Read failures are reported as validation errors too: either way the slot is
// cleared and the user has to select a file again.
type ValidationError struct {
	Source SourceID // zero until the file is attached to a slot
	Line   int      // 1-based line in the file, 0 when not tied to a line
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Source != 0 {
		b.WriteString(e.Source.String())
		b.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// reasons used by the parsers.
const (
	reasonEmpty      = "File is empty"
	reasonColumns    = "Invalid columns. File must contain TradeID and Amount."
	reasonRead       = "Error reading file"
	reasonNoTradeID  = "missing TradeID"
	reasonBadJSON    = "Invalid JSON document"
	reasonBadJSONRow = "JSON row is not an object"
)

// DuplicateWarning is the advisory raised when the same file is attached to
// more than one source slot. It never blocks the selection.
type DuplicateWarning struct {
	Source SourceID // slot receiving the file
	Other  SourceID // slot already holding a file with the same identity
	File   FileIdentity
}

func (w *DuplicateWarning) Error() string {
	return fmt.Sprintf("Warning: %s is already uploaded in another slot (%s).", w.File.Name, w.Other)
}

// PreconditionError is returned when reconciliation is triggered before all
// three slots hold a validated file.
type PreconditionError struct {
	Sources []SourceID // the missing or invalid sources, in canonical order
}

func (e *PreconditionError) Error() string {
	names := make([]string, len(e.Sources))
	for i, s := range e.Sources {
		names[i] = s.String()
	}
	return "Please upload all three valid files: missing " + strings.Join(names, ", ")
}
