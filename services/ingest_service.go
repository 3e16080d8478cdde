// services/ingest_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"aisolutions-backend/generator"
	"aisolutions-backend/models"
	"aisolutions-backend/store"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const batchTimeout = 30 * time.Second

// Mirror receives a copy of every stored batch.
type Mirror interface {
	Save(ctx context.Context, records []models.Record) error
}

type GormMirror struct {
	DB *gorm.DB
}

func (m GormMirror) Save(ctx context.Context, records []models.Record) error {
	rows := make([]models.Record, len(records))
	copy(rows, records)
	return m.DB.WithContext(ctx).CreateInBatches(rows, 100).Error
}

// IngestService synthesizes records on a schedule and appends them to the store.
type IngestService struct {
	gen   *generator.Generator
	store *store.CSVStore
	log   *slog.Logger

	Mirror   Mirror
	Notifier Notifier
	Metrics  *Metrics

	mu   sync.Mutex
	cron *cron.Cron
}

func NewIngestService(gen *generator.Generator, st *store.CSVStore, log *slog.Logger) *IngestService {
	return &IngestService{
		gen:      gen,
		store:    st,
		log:      log,
		Notifier: NopNotifier{},
	}
}

// RunBatch synthesizes n records and appends them to the store. The CSV store
// is written first; a mirror failure is reported after the append succeeded.
func (s *IngestService) RunBatch(ctx context.Context, n int) ([]models.Record, error) {
	if n < 1 {
		return nil, errors.New("batch size must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	records := s.gen.Batch(n)
	if err := s.store.Append(records...); err != nil {
		return nil, fmt.Errorf("append batch: %w", err)
	}
	s.Metrics.Observe(records, time.Since(start))

	var failed []models.Record
	for _, r := range records {
		if r.ProductStatus == models.StatusFailed {
			failed = append(failed, r)
		}
	}
	if len(failed) > 0 {
		if err := s.Notifier.NotifyFailures(ctx, failed); err != nil {
			s.log.Error("failure alert not sent", "err", err)
		}
	}

	if s.Mirror != nil {
		if err := s.Mirror.Save(ctx, records); err != nil {
			return records, fmt.Errorf("mirror batch: %w", err)
		}
	}

	s.log.Info("batch stored", "records", len(records), "failed", len(failed), "store", s.store.Path())
	return records, nil
}

// Start runs a batch of the given size on every tick of the cron spec.
func (s *IngestService) Start(spec string, batch int) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
		defer cancel()
		if _, err := s.RunBatch(ctx, batch); err != nil {
			s.log.Error("scheduled batch failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}
	s.cron = c
	c.Start()
	s.log.Info("ingest scheduler started", "schedule", spec, "batch", batch)
	return nil
}

// Stop halts the scheduler and waits for a running batch to finish.
func (s *IngestService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info("ingest scheduler stopped")
}
