package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// backupLayout names backup directories, e.g. database-backup_2024-05-01_T09H-30M-00S
const backupLayout = "2006-01-02_T15H-04M-05S"

// Backup writes a consistent copy of the database into a new timestamped
// directory under the backup dir and returns that directory
func (s *Store) Backup(ctx context.Context) (string, error) {
	dir := filepath.Join(s.backupDir, "database-backup_"+time.Now().Format(backupLayout))
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.log.WithError(err).WithField("dir", dir).Error("Failed to create backup directory")
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	dest := filepath.Join(dir, filepath.Base(s.path))
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("backup %s already exists", dest)
	}

	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		s.log.WithError(err).WithField("dest", dest).Error("Failed to copy database")
		return "", fmt.Errorf("copy database: %w", err)
	}

	s.log.WithField("dir", dir).Info("Database backup successfully completed")
	return dir, nil
}

// Optimize runs the maintenance done when the app closes: refresh query
// planner statistics, reclaim free pages and truncate the WAL
func (s *Store) Optimize(ctx context.Context) error {
	steps := []struct {
		pragma string
		what   string
	}{
		{`PRAGMA optimize`, "optimize database"},
		{`PRAGMA incremental_vacuum(0)`, "incrementally vacuum database"},
		{`PRAGMA wal_checkpoint(TRUNCATE)`, "flush WAL"},
	}
	for _, step := range steps {
		if _, err := s.db.ExecContext(ctx, step.pragma); err != nil {
			s.log.WithError(err).Warnf("Failed to %s", step.what)
			return fmt.Errorf("%s: %w", step.what, err)
		}
	}
	return nil
}

// RunOptimizer runs PRAGMA optimize every interval until ctx is done.
// Failures are logged and do not stop the loop.
func (s *Store) RunOptimizer(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.db.ExecContext(ctx, `PRAGMA optimize`); err != nil && ctx.Err() == nil {
				s.log.WithError(err).Warn("Periodic database optimization failed")
			}
		}
	}
}
