package recon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Slot is the state of one source in a [Workspace].
type Slot struct {
	File      FileIdentity // zero when no file is accepted
	Delimiter Delimiter
	Records   []Record
	Err       error // last validation error, nil if the slot is valid or empty
}

// Valid reports whether the slot holds an accepted file.
func (s Slot) Valid() bool { return !s.File.IsZero() && s.Err == nil }

// Workspace is the state of a reconciliation session: one slot per source.
//
// A Workspace is a value. Every method returns a new Workspace and leaves the
// receiver untouched, so the presentation layer holds the only mutable
// reference. Records are shared between copies and must not be modified.
type Workspace struct {
	slots [3]Slot
}

// NewWorkspace returns a workspace with three empty comma-delimited slots.
func NewWorkspace() Workspace {
	var w Workspace
	for i := range w.slots {
		w.slots[i].Delimiter = Comma
	}
	return w
}

// Slot returns the state of a source.
func (w Workspace) Slot(id SourceID) Slot { return w.slots[id.index()] }

// WithDelimiter returns a workspace where the source uses delimiter d for the
// next selected file. A file already accepted is kept as is.
func (w Workspace) WithDelimiter(id SourceID, d Delimiter) Workspace {
	w.slots[id.index()].Delimiter = d
	return w
}

// Select attaches a delimited file to a source slot.
//
// When the same file (see [FileIdentity]) is already held by another slot a
// [*DuplicateWarning] is returned but the file is still validated. On a
// validation failure the slot is cleared and keeps the error; the other slots
// are never affected.
func (w Workspace) Select(id SourceID, file FileIdentity, r io.Reader) (Workspace, *DuplicateWarning, error) {
	records, err := Parse(r, w.slots[id.index()].Delimiter)
	return w.accept(id, file, records, err)
}

// SelectJSON attaches a JSON file to a source slot, see [ParseJSON] for path.
func (w Workspace) SelectJSON(id SourceID, file FileIdentity, r io.Reader, path string) (Workspace, *DuplicateWarning, error) {
	records, err := ParseJSON(r, path)
	return w.accept(id, file, records, err)
}

// Fail records that the file selected for a source could not be read. The slot
// is cleared and holds the returned validation error.
func (w Workspace) Fail(id SourceID, err error) (Workspace, error) {
	w, _, err = w.accept(id, FileIdentity{}, nil, err)
	return w, err
}

// Clear empties a slot, keeping its delimiter.
func (w Workspace) Clear(id SourceID) Workspace {
	w.slots[id.index()] = Slot{Delimiter: w.slots[id.index()].Delimiter}
	return w
}

func (w Workspace) accept(id SourceID, file FileIdentity, records []Record, err error) (Workspace, *DuplicateWarning, error) {
	warn := w.duplicateOf(id, file)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Source = id
		} else {
			err = &ValidationError{Source: id, Reason: reasonRead, Err: err}
		}
		w = w.Clear(id)
		w.slots[id.index()].Err = err
		return w, warn, err
	}
	slot := &w.slots[id.index()]
	slot.File = file
	slot.Records = records
	slot.Err = nil
	return w, warn, nil
}

// Ready reports whether all three slots hold a validated file.
func (w Workspace) Ready() bool {
	for _, s := range w.slots {
		if !s.Valid() {
			return false
		}
	}
	return true
}

// Reconcile matches the three accepted sources.
//
// It refuses to run with a [*PreconditionError] naming the missing or invalid
// sources unless the workspace is [Workspace.Ready].
func (w Workspace) Reconcile() (Report, error) {
	var missing []SourceID
	for _, id := range Sources {
		if !w.slots[id.index()].Valid() {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return Report{}, &PreconditionError{Sources: missing}
	}
	return Match(w.slots[0].Records, w.slots[1].Records, w.slots[2].Records), nil
}

// Format is the encoding of a source file.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// ParseFormat accepts csv or json, case-insensitive. The empty string is csv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("unknown format %q, want csv or json", s)
}

// FormatOf guesses the format of a file from its extension.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return CSV
}

// Input describes a file to load into a source slot.
type Input struct {
	Path     string
	Format   Format
	JSONPath string // only for JSON inputs
}

// LoadFiles reads the three inputs concurrently and selects them, in source
// order, into w.
//
// A read failure only invalidates its own slot. An empty path leaves the slot
// untouched. The returned warnings list every duplicate file detected.
func LoadFiles(ctx context.Context, w Workspace, inputs [3]Input) (Workspace, []*DuplicateWarning, error) {
	type loaded struct {
		file    FileIdentity
		content []byte
		err     error
	}
	var files [3]loaded

	g, ctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		if in.Path == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(in.Path)
			if err != nil {
				files[i].err = err
				return nil
			}
			files[i] = loaded{
				file:    FileIdentity{Name: filepath.Base(in.Path), Size: int64(len(content))},
				content: content,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return w, nil, err
	}

	var warnings []*DuplicateWarning
	for i, in := range inputs {
		if in.Path == "" {
			continue
		}
		id := Sources[i]
		var warn *DuplicateWarning
		switch {
		case files[i].err != nil:
			w, _ = w.Fail(id, files[i].err)
		case in.Format == JSON:
			w, warn, _ = w.SelectJSON(id, files[i].file, bytes.NewReader(files[i].content), in.JSONPath)
		default:
			w, warn, _ = w.Select(id, files[i].file, bytes.NewReader(files[i].content))
		}
		if warn != nil {
			warnings = append(warnings, warn)
		}
	}
	return w, warnings, nil
}
