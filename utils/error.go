package utils

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from an input dataset.
// It names every missing column so the user can fix the file in one pass.
type SchemaError struct {
	Dataset        string
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s file missing columns: [%s]", e.Dataset, strings.Join(e.MissingColumns, ", "))
}

func NewSchemaError(dataset string, missing []string) *SchemaError {
	return &SchemaError{Dataset: dataset, MissingColumns: missing}
}

// IsSchemaError reports whether err (or anything it wraps) is a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
