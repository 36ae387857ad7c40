package services

import (
	"fmt"
	"time"
)

type SnapshotPruner interface {
	DeleteCapturedBefore(cutoff time.Time) (int64, error)
}

// RetentionService optionally prunes the append-only snapshot cache. With a
// retention of zero (the default) the cache is kept forever, preserving the
// historical log; a positive retention turns the cache into a rolling window.
type RetentionService struct {
	snapshots SnapshotPruner
	retention time.Duration
	now       func() time.Time
}

func NewRetentionService(snapshots SnapshotPruner, retention time.Duration) *RetentionService {
	return &RetentionService{
		snapshots: snapshots,
		retention: retention,
		now:       time.Now,
	}
}

// Enabled reports whether a retention window is configured.
func (service *RetentionService) Enabled() bool {
	return service.retention > 0
}

// PruneExpired removes snapshots older than the retention window and returns
// how many rows were removed. It is a no-op when retention is disabled.
func (service *RetentionService) PruneExpired() (int64, error) {
	if !service.Enabled() {
		return 0, nil
	}
	cutoff := service.now().UTC().Add(-service.retention)
	removed, err := service.snapshots.DeleteCapturedBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return removed, nil
}
