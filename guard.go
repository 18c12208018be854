package recon

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileIdentity is the heuristic identity of a physical file: its base name
// and byte size. Contents are not hashed.
type FileIdentity struct {
	Name string
	Size int64
}

// IsZero reports whether no file is identified.
func (f FileIdentity) IsZero() bool { return f == FileIdentity{} }

// IdentityOf returns the identity of the file at path.
func IdentityOf(path string) (FileIdentity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileIdentity{}, fmt.Errorf("cannot stat %q: %w", path, err)
	}
	return FileIdentity{Name: filepath.Base(path), Size: info.Size()}, nil
}

// duplicateOf returns the first other slot already holding a file with the
// same identity, or nil.
func (w Workspace) duplicateOf(id SourceID, f FileIdentity) *DuplicateWarning {
	if f.IsZero() {
		return nil
	}
	for _, other := range Sources {
		if other == id {
			continue
		}
		if w.slots[other.index()].File == f {
			return &DuplicateWarning{Source: id, Other: other, File: f}
		}
	}
	return nil
}
