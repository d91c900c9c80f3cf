package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/airport-weather/internal/loader"
	"github.com/i474232898/airport-weather/internal/weather"
)

// Config selects which jobs run. A zero interval disables a job.
type Config struct {
	FetchAirports []string
	FetchInterval time.Duration

	AirportsFile   string
	ReloadInterval time.Duration

	HealthInterval time.Duration
}

// Scheduler runs the periodic background jobs of the service.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	health    *weather.Health
	cfg       Config
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(cfg Config, service *weather.Service, health *weather.Health, logger *slog.Logger) *Scheduler {
	gs := gocron.NewScheduler(time.UTC)
	gs.SingletonModeAll()
	s := &Scheduler{
		scheduler: gs,
		service:   service,
		health:    health,
		cfg:       cfg,
		logger:    logger,
	}
	// gocron keeps one process-wide handler; without it a job panic kills the server
	gocron.SetPanicHandler(s.recoverJob)
	return s
}

// Start schedules the configured jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cfg.FetchAirports) > 0 && s.cfg.FetchInterval > 0 {
		if _, err := s.scheduler.Every(s.cfg.FetchInterval).Do(s.refreshAirports); err != nil {
			return err
		}
	} else {
		s.logger.Info("scheduler: no airports to refresh")
	}

	if s.cfg.AirportsFile != "" && s.cfg.ReloadInterval > 0 {
		// the file was already loaded at startup
		_, err := s.scheduler.Every(s.cfg.ReloadInterval).WaitForSchedule().Do(s.reloadAirports)
		if err != nil {
			return err
		}
	}

	if s.cfg.HealthInterval > 0 {
		if _, err := s.scheduler.Every(s.cfg.HealthInterval).WaitForSchedule().Do(s.logHealth); err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) recoverJob(jobName string, recovered any) {
	s.logger.Error("scheduler: job panicked", "job", jobName, "panic", recovered)
}

func (s *Scheduler) refreshAirports() {
	s.logger.Debug("scheduler: refreshing airports", "count", len(s.cfg.FetchAirports))

	var wg sync.WaitGroup
	for _, iata := range s.cfg.FetchAirports {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := s.service.Refresh(ctx, iata); err != nil {
				s.logger.Warn("scheduler: refresh failed", "iata", iata, "error", err)
			}
		}()
	}
	wg.Wait()
}

func (s *Scheduler) reloadAirports() {
	airports, err := loader.LoadFile(s.cfg.AirportsFile)
	if err != nil {
		s.logger.Error("scheduler: airport reload failed", "file", s.cfg.AirportsFile, "error", err)
		return
	}
	if err := s.service.ReplaceAirports(airports); err != nil {
		s.logger.Error("scheduler: airport reload rejected", "file", s.cfg.AirportsFile, "error", err)
		return
	}
	s.logger.Info("scheduler: airports reloaded", "count", len(airports))
}

func (s *Scheduler) logHealth() {
	report := s.health.Snapshot(time.Now())
	s.logger.Info("health",
		"datasize", report.DataSize,
		"airports", len(s.service.Airports()),
		"queried_airports", len(report.IATAFreq),
	)
}
