package services

import (
	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/internal/config"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/tables"
)

// NewStore creates the table store described by the configuration
func NewStore(cfg *config.Config, logger *zap.Logger) *tables.Store {
	return newStoreAt(cfg, cfg.OutputDir, logger)
}

// newStoreAt creates a store that reads the configured inputs but writes to outputDir
func newStoreAt(cfg *config.Config, outputDir string, logger *zap.Logger) *tables.Store {
	return tables.NewStore(tables.Options{
		InputDir:  cfg.InputDir,
		OutputDir: outputDir,
		Files: tables.Files{
			Rooms:    cfg.RoomsFile,
			Students: cfg.StudentsFile,
			Schedule: cfg.ScheduleFile,
			Faculty:  cfg.FacultyFile,
		},
		Delimiter:           cfg.Delimiter(),
		SortRoomsByCapacity: cfg.SortRoomsByCapacity,
	}, logger)
}
