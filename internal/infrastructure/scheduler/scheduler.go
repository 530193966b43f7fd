// Package scheduler runs the periodic VRP result cache sweep SPEC_FULL.md
// §C.6 requires, grounded on the loyverse integration's cron.Manager
// (integrations/loyverse/internal/sync/manager.go): a robfig/cron job backed
// by a Redis SETNX lock so only one running instance performs the sweep.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/Luks9/geo-rota/internal/domain/repository"
	"github.com/Luks9/geo-rota/pkg/logger"
)

const lockKey = "geo-rota:scheduler:vrp-cache-sweep:lock"

// Scheduler owns the cron job that evicts stale VRP result cache rows.
type Scheduler struct {
	cron    *cron.Cron
	cache   repository.VRPResultCacheRepository
	redis   *redis.Client
	ttl     time.Duration
	log     logger.Logger
}

func New(cache repository.VRPResultCacheRepository, redisClient *redis.Client, ttl time.Duration, log logger.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		cache: cache,
		redis: redisClient,
		ttl:   ttl,
		log:   log,
	}
}

// Start schedules the sweep to run every 15 minutes and starts the cron
// dispatcher. Cancelling ctx does not stop the dispatcher: later ticks still
// fire and run the sweep with the cancelled ctx. Stop halts the dispatcher
// and waits out any sweep already in flight.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc("*/15 * * * *", func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling vrp cache sweep: %w", err)
	}
	s.cron.Start()
	s.log.Info("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// runSweep deletes cache rows older than ttl, guarded by a distributed lock
// so a multi-instance deployment only runs the sweep once per tick.
func (s *Scheduler) runSweep(ctx context.Context) {
	locked, err := s.redis.SetNX(ctx, lockKey, "1", 5*time.Minute).Result()
	if err != nil {
		s.log.WithField("error", err).Error("acquiring vrp cache sweep lock")
		return
	}
	if !locked {
		s.log.Debug("vrp cache sweep already running on another instance")
		return
	}
	defer s.redis.Del(ctx, lockKey)

	cutoff := time.Now().Add(-s.ttl)
	removed, err := s.cache.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.log.WithField("error", err).Error("vrp cache sweep failed")
		return
	}
	s.log.WithField("removed", removed).Info("vrp cache sweep completed")
}
