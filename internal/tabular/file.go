package tabular

import (
	"context"
	"path/filepath"
	"strings"
)

// Format selects the on-disk representation of a table.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatXLSX {
		return ".xlsx"
	}
	return ".csv"
}

// Read loads a table, choosing the parser by file extension.
func Read(ctx context.Context, path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}
	return ReadCSV(ctx, path)
}

// Write stores a table, choosing the encoder by file extension.
func Write(path string, t *Table) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return WriteXLSX(path, name, t)
	}
	return WriteCSV(path, t)
}
