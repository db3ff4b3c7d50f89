package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/invigilation"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

const (
	configFileBase = "exam_plan_config"

	// EnvPrefix prefixes every environment override, e.g. EXAMPLAN_INPUT_DIR
	EnvPrefix = "EXAMPLAN_"
)

// Config represents the application configuration
type Config struct {
	InputDir     string `yaml:"inputDir" env:"INPUT_DIR" validate:"required"`
	RoomsFile    string `yaml:"roomsFile" env:"ROOMS_FILE" validate:"required"`
	StudentsFile string `yaml:"studentsFile" env:"STUDENTS_FILE" validate:"required"`
	ScheduleFile string `yaml:"scheduleFile" env:"SCHEDULE_FILE" validate:"required"`
	FacultyFile  string `yaml:"facultyFile,omitempty" env:"FACULTY_FILE"`
	OutputDir    string `yaml:"outputDir" env:"OUTPUT_DIR" validate:"required"`

	// SlotOrder lists the daily slot labels in chronological order
	SlotOrder []string `yaml:"slotOrder" env:"SLOT_ORDER" envSeparator:"," validate:"len=4,unique,dive,required"`

	// CoordinatorRoomThreshold is the room count above which a coordinator
	// may not invigilate their own course's session
	CoordinatorRoomThreshold int `yaml:"coordinatorRoomThreshold" env:"COORDINATOR_ROOM_THRESHOLD" validate:"min=1"`

	// ReserveCoordinatorSessions keeps coordinators free around their own course sessions
	ReserveCoordinatorSessions bool `yaml:"reserveCoordinatorSessions,omitempty" env:"RESERVE_COORDINATOR_SESSIONS"`

	SortRoomsByCapacity bool `yaml:"sortRoomsByCapacity" env:"SORT_ROOMS_BY_CAPACITY"`

	// ExamCalendar is an RRULE matching the dates exams may be held on.
	// Schedule rows on other dates are skipped. Empty means every date.
	ExamCalendar string `yaml:"examCalendar,omitempty" env:"EXAM_CALENDAR"`

	CSVDelimiter string `yaml:"csvDelimiter,omitempty" env:"CSV_DELIMITER" validate:"omitempty,len=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used for keys a config file leaves out
func Default() Config {
	return Config{
		InputDir:                 "data",
		RoomsFile:                "rooms.csv",
		StudentsFile:             "students.csv",
		ScheduleFile:             "schedule.csv",
		FacultyFile:              "faculty.csv",
		OutputDir:                "schedule",
		SlotOrder:                []string(model.DefaultSlotOrder),
		CoordinatorRoomThreshold: invigilation.DefaultCoordinatorRoomThreshold,
		SortRoomsByCapacity:      true,
	}
}

// Load loads and validates the configuration from exam_plan_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for the given environment.
// exam_plan_config.<env>.yaml is preferred over exam_plan_config.yaml when env is set.
func LoadWithEnv(envName string) (*Config, error) {
	configPath, err := findConfigFile(envName)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// EXAMPLAN_* environment variables override values from the file.
func LoadFromPath(path string) (*Config, error) {
	return loadFromPath(path, nil)
}

func loadFromPath(path string, environment map[string]string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	opts := env.Options{Prefix: EnvPrefix, Environment: environment}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.ExamCalendar != "" {
		if _, err := rrule.StrToRRule(cfg.ExamCalendar); err != nil {
			return fmt.Errorf("invalid rrule in examCalendar: %w", err)
		}
	}

	return nil
}

// Slots returns the configured slot order
func (c *Config) Slots() model.SlotOrder {
	return model.SlotOrder(c.SlotOrder)
}

// Delimiter returns the CSV field separator (0 when unset)
func (c *Config) Delimiter() rune {
	if c.CSVDelimiter == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}

// findConfigFile searches the current directory and then the home directory.
// For a named env the env-specific file wins within each directory.
func findConfigFile(envName string) (string, error) {
	names := []string{configFileBase + ".yaml"}
	if envName != "" {
		names = append([]string{fmt.Sprintf("%s.%s.yaml", configFileBase, envName)}, names...)
	}

	// Check current directory
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, name := range names {
		homeConfigPath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homeConfigPath); err == nil {
			return homeConfigPath, nil
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
