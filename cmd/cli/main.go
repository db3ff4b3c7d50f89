package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/cmd/cli/commands"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/internal/config"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/services"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/utils/logging"
)

var (
	env        string
	configPath string
	logsDir    string
	verbose    bool
	app        *commands.AppContext
)

func main() {
	app = &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Exam planner CLI - Seat students and assign invigilators",
		Long:  `A CLI tool for seating registered students into exam rooms and assigning invigilation duties per session.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: exam_plan_config[.<env>].yaml in cwd or home)")
	rootCmd.PersistentFlags().StringVar(&logsDir, "logs-dir", logging.DefaultLogsDir, "Directory for run logs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")

	rootCmd.AddCommand(commands.PlanCmd(app))
	rootCmd.AddCommand(commands.SeatsCmd(app))
	rootCmd.AddCommand(commands.DutiesCmd(app))
	rootCmd.AddCommand(commands.ConflictsCmd(app))
	rootCmd.AddCommand(commands.AuditCmd(app))
	rootCmd.AddCommand(commands.ListFacultyCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the table store
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLoggerInDir(logsDir, env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("input_dir", app.Cfg.InputDir),
		zap.String("output_dir", app.Cfg.OutputDir),
		zap.Strings("slot_order", app.Cfg.SlotOrder))

	app.Store = services.NewStore(app.Cfg, app.Logger)

	return nil
}
