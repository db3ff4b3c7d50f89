// Package tables reads the CSV input tables of an exam run and writes the
// seating, duty and report outputs.
package tables

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

var (
	// ErrMissingInput is returned when a required input table is absent or empty
	ErrMissingInput = errors.New("missing input table")

	// ErrMissingColumn is returned when an input table lacks a required column
	ErrMissingColumn = errors.New("missing required column")
)

// Output file names
const (
	DutyFileName     = "invigilation_assignments.csv"
	ConflictFileName = "conflicts_by_session.txt"
	ManifestFileName = "run.yaml"
	seatFilePrefix   = "assignments_"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func init() {
	gocsv.SetHeaderNormalizer(strings.TrimSpace)
}

// Files names the input tables within the input directory
type Files struct {
	Rooms    string
	Students string
	Schedule string
	Faculty  string
}

// Options configures a Store
type Options struct {
	InputDir  string
	OutputDir string
	Files     Files

	// Delimiter separates CSV fields (0 means ',')
	Delimiter rune

	// SortRoomsByCapacity orders rooms by total seats, largest first (stable)
	SortRoomsByCapacity bool
}

// Store reads input tables and writes output tables on the local filesystem
type Store struct {
	opts     Options
	logger   *zap.Logger
	validate *validator.Validate
}

// NewStore creates a Store
func NewStore(opts Options, logger *zap.Logger) *Store {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	return &Store{
		opts:     opts,
		logger:   logger,
		validate: validator.New(),
	}
}

// OutputDir returns the directory outputs are written to
func (s *Store) OutputDir() string {
	return s.opts.OutputDir
}

// InputPath returns the full path of an input table
func (s *Store) InputPath(name string) string {
	return filepath.Join(s.opts.InputDir, name)
}

// OutputPath returns the full path of an output file
func (s *Store) OutputPath(name string) string {
	return filepath.Join(s.opts.OutputDir, name)
}

func (s *Store) newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = s.opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

func (s *Store) newWriter(w io.Writer) *gocsv.SafeCSVWriter {
	writer := csv.NewWriter(w)
	writer.Comma = s.opts.Delimiter
	return gocsv.NewSafeCSVWriter(writer)
}

// readTable loads every row of a CSV table into row structs of type T.
// The header must contain all required columns of T.
func readTable[T any](s *Store, path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var model T
	schema, err := SchemaFromModel(model)
	if err != nil {
		return nil, err
	}

	header, err := s.newReader(bytes.NewReader(data)).Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s is empty", ErrMissingInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if err := schema.Verify(header); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var rows []T
	if err := gocsv.UnmarshalCSV(s.newReader(bytes.NewReader(data)), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return rows, nil
}

// validRows trims every string field and drops rows that fail struct validation
func validRows[T any](s *Store, table string, rows []T) []T {
	valid := make([]T, 0, len(rows))
	for i := range rows {
		trimStrings(&rows[i])
		if err := s.validate.Struct(rows[i]); err != nil {
			// Row numbers are 1-based and skip the header
			s.logger.Warn("Skipping malformed row",
				zap.String("table", table),
				zap.Int("row", i+2),
				zap.Error(err))
			continue
		}
		valid = append(valid, rows[i])
	}
	return valid
}

func trimStrings(row interface{}) {
	v := reflect.ValueOf(row).Elem()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.String && field.CanSet() {
			field.SetString(strings.TrimSpace(field.String()))
		}
	}
}

// writeTable marshals rows to a CSV file in the output directory
func writeTable[T any](s *Store, name string, rows []T) (string, error) {
	if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := s.OutputPath(name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalCSV(rows, s.newWriter(file)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, file.Close()
}

// WriteText writes a plain text report to the output directory
func (s *Store) WriteText(name, content string) (string, error) {
	if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := s.OutputPath(name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ReadOutput returns the content of an output file
func (s *Store) ReadOutput(name string) ([]byte, error) {
	data, err := os.ReadFile(s.OutputPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read output %s: %w", name, err)
	}
	return data, nil
}

// ListOutputs returns the names of the generated files present in the output
// directory, sorted. The run manifest is not included.
func (s *Store) ListOutputs() ([]string, error) {
	entries, err := os.ReadDir(s.opts.OutputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list output directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !isGeneratedOutput(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names, nil
}

// ResetOutputs removes files produced by a previous run. Other files in the
// output directory are left alone.
func (s *Store) ResetOutputs() error {
	names, err := s.ListOutputs()
	if err != nil {
		return err
	}
	names = append(names, ManifestFileName)
	for _, name := range names {
		if err := os.Remove(s.OutputPath(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

func isGeneratedOutput(name string) bool {
	if name == DutyFileName || name == ConflictFileName {
		return true
	}
	return strings.HasPrefix(name, seatFilePrefix) && strings.HasSuffix(name, ".csv")
}
