package audit

import (
	"context"
	"time"

	"go-compliance/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type AuditService interface {
	LogChange(ctx context.Context, action AuditAction, entity, recordID, actorID string, changes map[string]Change) error
}

type AuditServiceImpl struct {
	AuditRepo AuditRepository
	Logger    *zap.Logger
}

func NewAuditService(auditRepo AuditRepository, logger *zap.Logger) AuditService {
	return &AuditServiceImpl{AuditRepo: auditRepo, Logger: logger}
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action AuditAction, entity, recordID, actorID string, changes map[string]Change) error {
	err := s.AuditRepo.Insert(ctx, &AuditLog{
		Action:   action,
		Entity:   entity,
		RecordID: recordID,
		ActorID:  actorID,
		Changes:  changes,
	})
	if err != nil {
		// An unreachable audit store must not fail the user's operation
		s.Logger.Error("failed to write audit entry", zap.String("entity", entity), zap.Error(err))
	}
	return err
}

// RetentionScheduler purges audit entries past the configured age once
// a day.
type RetentionScheduler struct {
	cron      *cron.Cron
	auditRepo AuditRepository
	retention time.Duration
	logger    *zap.Logger
}

func NewRetentionScheduler(auditRepo AuditRepository, cfg *config.Config, logger *zap.Logger) *RetentionScheduler {
	return &RetentionScheduler{
		cron:      cron.New(),
		auditRepo: auditRepo,
		retention: time.Duration(cfg.AuditRetentionDays) * 24 * time.Hour,
		logger:    logger,
	}
}

func (s *RetentionScheduler) Start() error {
	_, err := s.cron.AddFunc("@daily", s.purge)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *RetentionScheduler) Stop() error {
	s.cron.Stop()
	return nil
}

func (s *RetentionScheduler) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.retention)
	deleted, err := s.auditRepo.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("audit retention purge failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		s.logger.Info("purged expired audit entries", zap.Int64("deleted", deleted))
	}
}
