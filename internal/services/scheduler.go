package services

import (
	"context"
	"time"

	"govforms/internal/config"
	"govforms/internal/repository"

	"go.uber.org/zap"
)

type Scheduler struct {
	log    *zap.Logger
	syncer *SheetSyncer
}

func NewScheduler(log *zap.Logger, syncer *SheetSyncer) *Scheduler {
	return &Scheduler{
		log:    log,
		syncer: syncer,
	}
}

// Start runs the scheduler in a goroutine.
func (s *Scheduler) Start() {
	s.log.Info("Starting sheet sync scheduler...")
	go func() {
		// Ticker will fire on every minute.
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			s.runSyncCheck()
		}
	}()
}

func (s *Scheduler) runSyncCheck() {
	interval := time.Duration(config.Conf.Sheets.SyncIntervalMinutes) * time.Minute
	cutoff := time.Now().UTC().Add(-interval)
	s.log.Debug("Running sheet sync check", zap.Time("cutoff", cutoff))

	ctx := context.Background()
	conns, err := repository.ListAutoSyncConnections(ctx, cutoff)
	if err != nil {
		s.log.Error("Failed to list connections due for sync", zap.Error(err))
		return
	}

	for _, conn := range conns {
		conn := conn
		go func() {
			if _, err := s.syncer.Sync(ctx, &conn); err != nil {
				s.log.Error("Background sheet sync failed",
					zap.String("connection", conn.Name),
					zap.Error(err))
			}
		}()
	}
}
