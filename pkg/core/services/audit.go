package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/internal/config"
)

// OutputStore defines the read operations needed to compare run outputs
type OutputStore interface {
	ListOutputs() ([]string, error)
	ReadOutput(name string) ([]byte, error)
}

// FileDiff is the unified diff of one output file
type FileDiff struct {
	Name string
	Diff string
}

// AuditResult contains the comparison of the existing outputs with a fresh run
type AuditResult struct {
	// Compared lists every output file name looked at
	Compared []string

	// Diffs holds the files whose content changed
	Diffs []FileDiff

	// PreviousRunID is the run id recorded in the existing manifest, if any
	PreviousRunID string
}

// Identical reports whether the fresh run reproduced every output byte for byte
func (r *AuditResult) Identical() bool {
	return len(r.Diffs) == 0
}

// AuditRun re-plans the exam period into a scratch directory and diffs every
// generated file against the outputs already on disk. The existing outputs
// are not modified.
func AuditRun(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts PlanOptions) (*AuditResult, error) {
	scratch, err := os.MkdirTemp("", "examplan-audit-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	logger.Debug("Re-running plan for audit", zap.String("scratch", scratch))

	fresh := newStoreAt(cfg, scratch, logger)
	if _, err := PlanExams(ctx, fresh, cfg, logger, opts); err != nil {
		return nil, fmt.Errorf("audit run failed: %w", err)
	}

	existing := NewStore(cfg, logger)
	result, err := CompareOutputs(existing, fresh)
	if err != nil {
		return nil, err
	}

	if manifest, err := existing.ReadManifest(); err != nil {
		logger.Warn("No readable manifest for the existing outputs", zap.Error(err))
	} else {
		result.PreviousRunID = manifest.RunID
	}

	return result, nil
}

// CompareOutputs diffs the generated files of two output directories
func CompareOutputs(existing, fresh OutputStore) (*AuditResult, error) {
	existingNames, err := existing.ListOutputs()
	if err != nil {
		return nil, err
	}
	freshNames, err := fresh.ListOutputs()
	if err != nil {
		return nil, err
	}

	names := append(slices.Clone(existingNames), freshNames...)
	slices.Sort(names)
	names = slices.Compact(names)

	result := &AuditResult{Compared: names, Diffs: []FileDiff{}}
	for _, name := range names {
		before, err := readOptional(existing, name, existingNames)
		if err != nil {
			return nil, err
		}
		after, err := readOptional(fresh, name, freshNames)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(before, after) {
			continue
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(before)),
			B:        difflib.SplitLines(string(after)),
			FromFile: name + " (existing)",
			ToFile:   name + " (rerun)",
			Context:  3,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to diff %s: %w", name, err)
		}
		result.Diffs = append(result.Diffs, FileDiff{Name: name, Diff: diff})
	}

	return result, nil
}

// readOptional returns nil content for a file the store does not have
func readOptional(store OutputStore, name string, present []string) ([]byte, error) {
	if !slices.Contains(present, name) {
		return nil, nil
	}
	data, err := store.ReadOutput(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}
