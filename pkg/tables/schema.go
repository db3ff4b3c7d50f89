package tables

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Column defines a table column
type Column struct {
	Name     string
	Required bool
}

// TableSchema defines the structure of a CSV table
type TableSchema struct {
	Name    string
	Columns []Column
}

// SchemaFromModel builds a TableSchema by reflecting on a row struct.
// Fields must carry a `csv:"column"` tag; `validate:"required"` marks the
// column as required. Fields tagged `csv:"-"` are ignored.
func SchemaFromModel(model interface{}) (TableSchema, error) {
	t := reflect.TypeOf(model)

	// Handle pointer to struct
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return TableSchema{}, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}

	columns := make([]Column, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		name, _, _ := strings.Cut(field.Tag.Get("csv"), ",")
		if name == "" {
			return TableSchema{}, fmt.Errorf("field %s.%s missing 'csv' tag", t.Name(), field.Name)
		}
		if name == "-" {
			continue
		}

		rules := strings.Split(field.Tag.Get("validate"), ",")
		columns = append(columns, Column{
			Name:     name,
			Required: slices.Contains(rules, "required"),
		})
	}

	if len(columns) == 0 {
		return TableSchema{}, fmt.Errorf("struct %s has no columns", t.Name())
	}

	return TableSchema{
		Name:    t.Name(),
		Columns: columns,
	}, nil
}

// RequiredColumns returns the names of the required columns
func (ts TableSchema) RequiredColumns() []string {
	var required []string
	for _, column := range ts.Columns {
		if column.Required {
			required = append(required, column.Name)
		}
	}
	return required
}

// Verify checks that a header row contains every required column.
// Header cells are compared after trimming whitespace.
func (ts TableSchema) Verify(header []string) error {
	present := make(map[string]bool, len(header))
	for _, cell := range header {
		present[strings.TrimSpace(cell)] = true
	}

	var missing []string
	for _, name := range ts.RequiredColumns() {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}
