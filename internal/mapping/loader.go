// Package mapping loads the old-value to new-value translation table that drives a
// custom field migration.
package mapping

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// OldValueColumnName is the header naming the source enum option identifier column.
	OldValueColumnName = "old_value"
	// NewValueColumnName is the header naming the target enum option identifier column.
	NewValueColumnName = "new_value"

	loadErrorTemplateConstant       = "unable to load mapping %s: %v"
	missingColumnTemplateConstant   = "header is missing column %q"
	emptyMappingFileMessageConstant = "mapping file has no header row"
	byteOrderMarkConstant           = "\ufeff"
)

// Table maps old enum option identifiers to new enum option identifiers.
type Table map[string]string

// Lookup returns the new identifier registered for oldValue.
func (table Table) Lookup(oldValue string) (string, bool) {
	newValue, found := table[oldValue]
	return newValue, found
}

// LoadError reports a mapping file that could not be read or parsed.
type LoadError struct {
	Path  string
	Cause error
}

// Error describes the load failure.
func (loadError LoadError) Error() string {
	return fmt.Sprintf(loadErrorTemplateConstant, loadError.Path, loadError.Cause)
}

// Unwrap exposes the underlying cause.
func (loadError LoadError) Unwrap() error {
	return loadError.Cause
}

// LoadFile reads the CSV mapping file at filePath.
func LoadFile(filePath string) (Table, error) {
	mappingFile, openError := os.Open(filePath)
	if openError != nil {
		return nil, LoadError{Path: filePath, Cause: openError}
	}
	defer mappingFile.Close()

	table, parseError := Parse(mappingFile)
	if parseError != nil {
		return nil, LoadError{Path: filePath, Cause: parseError}
	}
	return table, nil
}

// Parse reads CSV data whose header contains old_value and new_value columns.
// Rows with an empty old_value are ignored, cell values are trimmed, and a later row
// replaces an earlier row with the same old_value.
func Parse(reader io.Reader) (Table, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	header, headerError := csvReader.Read()
	if errors.Is(headerError, io.EOF) {
		return nil, errors.New(emptyMappingFileMessageConstant)
	}
	if headerError != nil {
		return nil, headerError
	}

	oldValueIndex, newValueIndex := -1, -1
	for columnIndex, columnName := range header {
		normalizedName := strings.TrimSpace(strings.TrimPrefix(columnName, byteOrderMarkConstant))
		switch {
		case normalizedName == OldValueColumnName && oldValueIndex < 0:
			oldValueIndex = columnIndex
		case normalizedName == NewValueColumnName && newValueIndex < 0:
			newValueIndex = columnIndex
		}
	}
	if oldValueIndex < 0 {
		return nil, fmt.Errorf(missingColumnTemplateConstant, OldValueColumnName)
	}
	if newValueIndex < 0 {
		return nil, fmt.Errorf(missingColumnTemplateConstant, NewValueColumnName)
	}

	table := Table{}
	for {
		record, recordError := csvReader.Read()
		if errors.Is(recordError, io.EOF) {
			break
		}
		if recordError != nil {
			return nil, recordError
		}

		oldValue := cell(record, oldValueIndex)
		if len(oldValue) == 0 {
			continue
		}
		table[oldValue] = cell(record, newValueIndex)
	}

	return table, nil
}

func cell(record []string, columnIndex int) string {
	if columnIndex >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[columnIndex])
}
