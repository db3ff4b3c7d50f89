package tables

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/invigilation"
)

// Manifest summarises one planning run
type Manifest struct {
	RunID       string    `yaml:"runId"`
	Env         string    `yaml:"env"`
	GeneratedAt time.Time `yaml:"generatedAt"`

	Inputs   InputCounts      `yaml:"inputs"`
	Sessions []SessionSummary `yaml:"sessions"`
	Duties   DutyCounts       `yaml:"duties"`

	Load      invigilation.LoadSummary `yaml:"load"`
	Conflicts int                      `yaml:"conflicts"`
	Outputs   []string                 `yaml:"outputs"`
}

// InputCounts records how many records each input table contributed
type InputCounts struct {
	Rooms    int `yaml:"rooms"`
	Students int `yaml:"students"`
	Courses  int `yaml:"courses"`
	Faculty  int `yaml:"faculty"`

	// FacultyFromCoordinators is set when the roster was built from course coordinators
	FacultyFromCoordinators bool `yaml:"facultyFromCoordinators,omitempty"`
}

// SessionSummary records the seating result of one session
type SessionSummary struct {
	Date     string `yaml:"date"`
	Slot     string `yaml:"slot"`
	Courses  int    `yaml:"courses"`
	Students int    `yaml:"students"`
	Capacity int    `yaml:"capacity,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// DutyCounts tallies duty outcomes
type DutyCounts struct {
	Total           int `yaml:"total"`
	AssignedDirect  int `yaml:"assignedDirect"`
	AssignedByShift int `yaml:"assignedByShift"`
	ShiftedByRepair int `yaml:"shiftedByRepair"`
	Unassigned      int `yaml:"unassigned,omitempty"`
	UnassignedFinal int `yaml:"unassignedFinal"`
	NoStudents      int `yaml:"noStudents"`
}

// WriteManifest writes the run manifest to the output directory
func (s *Store) WriteManifest(manifest *Manifest) (string, error) {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	return s.WriteText(ManifestFileName, string(data))
}

// ReadManifest reads the manifest of the previous run
func (s *Store) ReadManifest() (*Manifest, error) {
	data, err := os.ReadFile(s.OutputPath(ManifestFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &manifest, nil
}
