package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/internal/config"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/invigilation"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/seating"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/tables"
)

// PlanStore defines the table operations needed to plan an exam period
type PlanStore interface {
	InputStore
	ResetOutputs() error
	WriteSeatTable(session model.Session, rows []tables.SeatRow) (string, error)
	WriteDutyTable(rows []tables.DutyRow) (string, error)
	WriteText(name, content string) (string, error)
	WriteManifest(manifest *tables.Manifest) (string, error)
}

// PlanOptions controls which stages of a run are executed
type PlanOptions struct {
	// Env is recorded in the run manifest
	Env string

	// SkipDuties stops after seating and the conflict report
	SkipDuties bool

	// SkipRepair leaves blocks the greedy pass could not staff as unassigned
	SkipRepair bool
}

// PlanResult contains the results of a planning run
type PlanResult struct {
	RunID string

	Inputs *PlanInputs

	// Plans are the seating plans of the sessions that could be seated
	Plans []*seating.SessionPlan

	// Failures are the sessions that could not be seated
	Failures []seating.SessionFailure

	Conflicts []SessionConflicts

	// Roster is the invigilation roster used for duties
	Roster []invigilation.Faculty

	// RosterFromCoordinators is set when no faculty roster was supplied
	RosterFromCoordinators bool

	// Duties is nil when duties were skipped
	Duties *invigilation.AllocationOutcome

	// Outputs are the files written, in write order
	Outputs []string

	Manifest *tables.Manifest
}

// Success reports whether every session was seated and every occupied block staffed
func (r *PlanResult) Success() bool {
	if len(r.Failures) > 0 {
		return false
	}
	return r.Duties == nil || r.Duties.Success
}

// PlanExams runs the whole pipeline: seat every session, report student
// conflicts, assign invigilators and write the run manifest.
// Outputs of a previous run are removed first.
func PlanExams(ctx context.Context, store PlanStore, cfg *config.Config, logger *zap.Logger, opts PlanOptions) (*PlanResult, error) {
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	logger.Debug("Starting planExams",
		zap.Bool("skip_duties", opts.SkipDuties),
		zap.Bool("skip_repair", opts.SkipRepair))

	// Step 1: Load inputs
	inputs, err := LoadPlanInputs(ctx, store, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := store.ResetOutputs(); err != nil {
		return nil, fmt.Errorf("failed to clear previous outputs: %w", err)
	}

	result := &PlanResult{RunID: runID, Inputs: inputs}
	slots := cfg.Slots()

	// Step 2: Seat every session independently
	sessionInputs := BuildSessionInputs(inputs.Courses, inputs.Students, slots, logger)
	result.Plans, result.Failures = seating.AllocateSessions(sessionInputs, inputs.Rooms)

	for _, failure := range result.Failures {
		logger.Warn("Session could not be seated",
			zap.String("session", failure.Session.String()),
			zap.Error(failure.Err))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	courseCodes := make(map[string]string, len(inputs.Courses))
	for _, course := range inputs.Courses {
		courseCodes[course.ID] = course.Code
	}

	demands := make(map[model.Session][]seating.CourseDemand, len(sessionInputs))
	for _, input := range sessionInputs {
		demands[input.Session] = input.Demands
	}

	var seats []model.SeatAssignment
	for _, plan := range result.Plans {
		for _, verr := range seating.ValidatePlan(plan, demands[plan.Session]) {
			logger.Error("Seating plan violation",
				zap.String("session", verr.Session.String()),
				zap.String("room", verr.Room),
				zap.String("block", string(verr.Block)),
				zap.String("description", verr.Description))
		}

		planSeats := plan.Seats()
		seats = append(seats, planSeats...)

		path, err := store.WriteSeatTable(plan.Session, tables.SeatRows(planSeats, courseCodes))
		if err != nil {
			return nil, fmt.Errorf("failed to write seat table for %s: %w", plan.Session, err)
		}
		result.Outputs = append(result.Outputs, path)

		logger.Debug("Session seated",
			zap.String("session", plan.Session.String()),
			zap.Int("capacity", plan.Capacity()),
			zap.Int("blocks", len(plan.OccupiedBlocks())))
	}

	// Step 3: Students with more than one seat in a session
	result.Conflicts = FindStudentConflicts(seats, slots)
	path, err := store.WriteText(tables.ConflictFileName, ConflictReport(result.Conflicts, inputs.Courses))
	if err != nil {
		return nil, err
	}
	result.Outputs = append(result.Outputs, path)
	if len(result.Conflicts) > 0 {
		logger.Warn("Students seated in more than one course per session", zap.Int("sessions", len(result.Conflicts)))
	}

	// Step 4: Invigilation duties
	if !opts.SkipDuties {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := allocateDuties(store, cfg, logger, opts, result); err != nil {
			return nil, err
		}
	}

	// Step 5: Manifest
	result.Manifest = buildManifest(result, opts.Env)
	if _, err := store.WriteManifest(result.Manifest); err != nil {
		return nil, err
	}

	logger.Info("Planning complete",
		zap.Int("sessions", len(result.Plans)),
		zap.Int("failed_sessions", len(result.Failures)),
		zap.Bool("success", result.Success()))

	return result, nil
}

// allocateDuties assigns invigilators to the occupied blocks of every seated session
func allocateDuties(store PlanStore, cfg *config.Config, logger *zap.Logger, opts PlanOptions, result *PlanResult) error {
	courses := courseInfos(result.Inputs.Courses)

	result.Roster = invigilation.NewRoster(result.Inputs.FacultyNames)
	if len(result.Roster) == 0 {
		result.Roster = invigilation.CoordinatorRoster(courses)
		result.RosterFromCoordinators = true
		logger.Info("No faculty roster, using course coordinators", zap.Int("faculty", len(result.Roster)))
	}

	var blocks []model.OccupiedBlock
	for _, plan := range result.Plans {
		blocks = append(blocks, plan.OccupiedBlocks()...)
	}

	outcome, err := invigilation.Allocate(invigilation.AllocationConfig{
		Criteria:   buildCriteria(cfg),
		Roster:     result.Roster,
		Blocks:     blocks,
		Courses:    courses,
		Slots:      cfg.Slots(),
		SkipRepair: opts.SkipRepair,
	})
	if err != nil {
		return fmt.Errorf("failed to allocate duties: %w", err)
	}
	result.Duties = outcome

	for _, duty := range outcome.Unassigned {
		logger.Warn("No eligible faculty for block",
			zap.String("session", duty.Session.String()),
			zap.String("room", duty.Room),
			zap.String("block", string(duty.Block)),
			zap.String("sNo", duty.CourseID))
	}
	for _, verr := range outcome.ValidationErrors {
		logger.Error("Duty violation",
			zap.String("criterion", verr.CriterionName),
			zap.String("session", verr.Session.String()),
			zap.String("description", verr.Description))
	}

	path, err := store.WriteDutyTable(DutyRows(outcome))
	if err != nil {
		return err
	}
	result.Outputs = append(result.Outputs, path)

	logger.Info("Duties allocated",
		zap.Int("duties", len(outcome.Duties)),
		zap.Int("shifts", len(outcome.Shifts)),
		zap.Int("unassigned", len(outcome.Unassigned)))

	return nil
}

// buildCriteria returns the duty criteria selected by the configuration
func buildCriteria(cfg *config.Config) []invigilation.Criterion {
	criteria := invigilation.DefaultCriteria(cfg.CoordinatorRoomThreshold)
	if cfg.ReserveCoordinatorSessions {
		criteria = append(criteria, invigilation.NewCoordinatorReservationCriterion())
	}
	return criteria
}

func courseInfos(courses []model.Course) []invigilation.CourseInfo {
	infos := make([]invigilation.CourseInfo, len(courses))
	for i, course := range courses {
		infos[i] = invigilation.CourseInfo{ID: course.ID, Coordinator: course.Coordinator}
	}
	return infos
}

// DutyRows converts the duty table into output rows, faculty by display name
func DutyRows(outcome *invigilation.AllocationOutcome) []tables.DutyRow {
	rows := make([]tables.DutyRow, len(outcome.Duties))
	for i, duty := range outcome.Duties {
		rows[i] = tables.DutyRow{
			Date:      duty.Session.Date,
			Slot:      duty.Session.Slot,
			CourseSNo: duty.CourseID,
			Room:      duty.Room,
			Block:     string(duty.Block),
			Students:  duty.Count,
			Faculty:   outcome.State.DisplayName(duty.Faculty),
			Note:      string(duty.Outcome),
		}
	}
	return rows
}

func buildManifest(result *PlanResult, env string) *tables.Manifest {
	manifest := &tables.Manifest{
		RunID:       result.RunID,
		Env:         env,
		GeneratedAt: time.Now().UTC(),
		Inputs: tables.InputCounts{
			Rooms:                   len(result.Inputs.Rooms),
			Students:                len(result.Inputs.Students),
			Courses:                 len(result.Inputs.Courses),
			Faculty:                 len(result.Roster),
			FacultyFromCoordinators: result.RosterFromCoordinators,
		},
		Sessions:  []tables.SessionSummary{},
		Conflicts: len(result.Conflicts),
		Outputs:   []string{},
	}

	for _, plan := range result.Plans {
		summary := tables.SessionSummary{Date: plan.Session.Date, Slot: plan.Session.Slot}
		for _, block := range plan.OccupiedBlocks() {
			summary.Students += block.Count
		}
		summary.Courses = countCourses(plan.OccupiedBlocks())
		manifest.Sessions = append(manifest.Sessions, summary)
	}
	for _, failure := range result.Failures {
		manifest.Sessions = append(manifest.Sessions, tables.SessionSummary{
			Date:  failure.Session.Date,
			Slot:  failure.Session.Slot,
			Error: failure.Err.Error(),
		})
	}

	for _, path := range result.Outputs {
		manifest.Outputs = append(manifest.Outputs, filepath.Base(path))
	}

	if result.Duties != nil {
		manifest.Duties.Total = len(result.Duties.Duties)
		for _, duty := range result.Duties.Duties {
			switch duty.Outcome {
			case model.OutcomeAssignedDirect:
				manifest.Duties.AssignedDirect++
			case model.OutcomeAssignedByShift:
				manifest.Duties.AssignedByShift++
			case model.OutcomeShiftedByRepair:
				manifest.Duties.ShiftedByRepair++
			case model.OutcomeUnassigned:
				manifest.Duties.Unassigned++
			case model.OutcomeUnassignedFinal:
				manifest.Duties.UnassignedFinal++
			case model.OutcomeNoStudents:
				manifest.Duties.NoStudents++
			}
		}
		manifest.Load = invigilation.SummarizeLoad(result.Duties.State)
	}

	return manifest
}

func countCourses(blocks []model.OccupiedBlock) int {
	seen := make(map[string]bool)
	for _, block := range blocks {
		seen[block.CourseID] = true
	}
	return len(seen)
}
