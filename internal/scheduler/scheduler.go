package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-reporter/internal/store"
	"github.com/i474232898/weather-reporter/internal/weather"
)

// Saver receives freshly loaded datasets.
type Saver interface {
	Save(ds store.Dataset)
}

// Scheduler periodically reloads weather logs from their sources.
type Scheduler struct {
	scheduler *gocron.Scheduler
	saver     Saver
	sources   []weather.Source
	opts      weather.NormalizeOptions
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(sources []weather.Source, interval time.Duration, opts weather.NormalizeOptions, saver Saver) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		saver:     saver,
		sources:   sources,
		opts:      opts,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic reload and starts the underlying scheduler.
// The first reload runs immediately.
func (s *Scheduler) Start() error {
	if len(s.sources) == 0 {
		log.Info().Msg("scheduler: no datasets configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Debug().Msg("scheduler: running weather log reload")
		s.ReloadAll(context.Background())
		log.Debug().Msg("scheduler: completed weather log reload")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// ReloadAll loads every source concurrently. A source that fails keeps its
// previously stored table.
func (s *Scheduler) ReloadAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, src := range s.sources {
		src := src
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			if err := s.Reload(ctx, src); err != nil {
				log.Error().Err(err).Str("Dataset", src.Name()).Msg("scheduler: reload failed; keeping previous table")
			}
		}()
	}
	wg.Wait()
}

// Reload loads one source and replaces its stored dataset.
func (s *Scheduler) Reload(ctx context.Context, src weather.Source) error {
	table, err := weather.Load(ctx, src, s.opts)
	if err != nil {
		return err
	}

	s.saver.Save(store.Dataset{
		ID:       src.Name(),
		Name:     src.Name(),
		Source:   fmt.Sprint(src),
		LoadedAt: time.Now().UTC(),
		Table:    table,
	})
	log.Info().Str("Dataset", src.Name()).Int("Records", table.Len()).Msg("scheduler: weather log loaded")
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
