package processor

import (
	"context"
	"fmt"

	"perfumeshop/pkg/logger"
	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/service"

	"github.com/robfig/cron/v3"
)

// StatsScheduler периодически пересчитывает количество записей
// и выставляет gauge shop_entity_rows
type StatsScheduler struct {
	cron     *cron.Cron
	statsSvc service.StatsServiceInterface
}

func NewStatsScheduler(statsSvc service.StatsServiceInterface) *StatsScheduler {
	c := cron.New(cron.WithLogger(cronLogger{}))

	return &StatsScheduler{
		cron:     c,
		statsSvc: statsSvc,
	}
}

// Start регистрирует задачу по расписанию (cron-выражение или @every 1m)
// и сразу выполняет первое обновление
func (s *StatsScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting stats scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.Refresh(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to refresh entity stats")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid stats schedule %q: %w", schedule, err)
	}

	s.cron.Start()

	if err := s.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed initial entity stats refresh")
	}

	return nil
}

// Refresh считает записи и обновляет метрики
func (s *StatsScheduler) Refresh(ctx context.Context) error {
	counts, err := s.statsSvc.Counts(ctx)
	if err != nil {
		return err
	}

	metrics.EntityRows.WithLabelValues("users").Set(float64(counts.Users))
	metrics.EntityRows.WithLabelValues("products").Set(float64(counts.Products))
	metrics.EntityRows.WithLabelValues("brands").Set(float64(counts.Brands))
	metrics.EntityRows.WithLabelValues("countries").Set(float64(counts.Countries))
	metrics.EntityRows.WithLabelValues("carts").Set(float64(counts.Carts))

	logger.Debug().
		Int64("users", counts.Users).
		Int64("products", counts.Products).
		Int64("carts", counts.Carts).
		Msg("Entity stats refreshed")

	return nil
}

func (s *StatsScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Stats scheduler stopped")
}

func (s *StatsScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}

// cronLogger направляет внутренние сообщения cron в zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
