package entity

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// UnitRecord is a parsed unit file stored in the catalog.
type UnitRecord struct {
	Name        string       `json:"name"`
	SourcePath  string       `json:"sourcePath"`
	Description string       `json:"description"`
	File        *SystemdFile `json:"file"`
	Checksum    string       `json:"checksum"`
	ImportedAt  time.Time    `json:"importedAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

var ErrInvalidUnitRecord = errors.New("invalid unit record")

// UnitNameFromPath derives the catalog name from a unit file path ("/etc/x/foo.service" -> "foo.service").
func UnitNameFromPath(path string) string {
	return filepath.Base(strings.TrimSpace(path))
}

func (r *UnitRecord) Validate() error {
	if r == nil || r.File == nil {
		return ErrInvalidUnitRecord
	}
	if r.Name == "" || r.Name == "." || strings.ContainsRune(r.Name, filepath.Separator) {
		return ErrInvalidUnitRecord
	}
	return nil
}
