package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lisanmuaddib/twfriends/pkg/friends"
)

// saveTimeout bounds a save once it is detached from the run context.
const saveTimeout = 10 * time.Second

// RunStore persists SyncRuns.
type RunStore struct {
	db     *gorm.DB
	logger *logrus.Logger
	now    func() time.Time
}

// NewRunStore creates a RunStore backed by db.
func NewRunStore(db *gorm.DB, logger *logrus.Logger) *RunStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &RunStore{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// RecordExport saves the outcome of an export started at startedAt.
// The run is saved even when ctx is already cancelled.
func (s *RunStore) RecordExport(ctx context.Context, startedAt time.Time, result friends.ExportResult) (*SyncRun, error) {
	run := NewExportRun(result, startedAt, s.now())
	if err := s.save(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// RecordImport saves the outcome of an import started at startedAt.
// The run is saved even when ctx is already cancelled.
func (s *RunStore) RecordImport(ctx context.Context, startedAt time.Time, result friends.ImportResult, remainingPath string) (*SyncRun, error) {
	run := NewImportRun(result, remainingPath, startedAt, s.now())
	if err := s.save(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *RunStore) save(ctx context.Context, run *SyncRun) error {
	log := s.logger.WithFields(logrus.Fields{
		"screen_name": run.Owner,
		"run_id":      run.ID.String(),
		"kind":        run.Kind,
	})

	// An interrupted run still has to be recorded
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		log.WithError(err).Error("Failed to record run")
		return fmt.Errorf("failed to record %s run: %w", run.Kind, err)
	}

	log.WithField("ok", run.OK).Debug("Recorded run")
	return nil
}

// Recent returns the last n runs of owner, newest first.
func (s *RunStore) Recent(ctx context.Context, owner string, n int) ([]SyncRun, error) {
	if n <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	var runs []SyncRun
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("started_at DESC").
		Limit(n).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs of %s: %w", owner, err)
	}
	return runs, nil
}
