package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/internal/config"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/services"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/tables"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env    string
	Cfg    *config.Config
	Store  *tables.Store
	Logger *zap.Logger
	Ctx    context.Context

	// LastPlan is the result of the most recent planning command, kept for interactive views
	LastPlan *services.PlanResult
}
