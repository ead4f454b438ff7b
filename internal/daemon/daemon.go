package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fsd_recorder/internal/config"
	"fsd_recorder/internal/database"
	"fsd_recorder/internal/fsdclient"
	"fsd_recorder/internal/models"
	"fsd_recorder/internal/publish"
	"fsd_recorder/internal/scheduler"
	"fsd_recorder/internal/tasks"
)

const (
	lineBuffer        = 1000
	retentionInterval = time.Hour
)

// archive is a long term store written alongside SQLite
type archive interface {
	database.MessageSink
	Close() error
}

// Daemon connects to an FSD server and records everything it receives
type Daemon struct {
	cfg       *config.Config
	db        *database.DB
	archive   archive
	publisher *publish.Publisher
	client    *fsdclient.Client
	collector *tasks.Collector
	tracker   *tasks.StationTracker
	lines     chan models.Line
	tasks     []scheduler.Task
}

// New opens the stores and builds every component from cfg. Nothing is
// started until Run.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg.FSD.Addr == "" {
		return nil, fmt.Errorf("fsd.addr is required")
	}

	db, err := database.New(cfg.DB.Driver, cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	d := &Daemon{
		cfg:   cfg,
		db:    db,
		lines: make(chan models.Line, lineBuffer),
	}

	if d.archive, err = openArchive(ctx, cfg.Archive); err != nil {
		d.closeStores()
		return nil, err
	}

	if cfg.NATS.URL != "" {
		nc, err := publish.Connect(cfg.NATS.URL, "fsd_recorder")
		if err != nil {
			d.closeStores()
			return nil, err
		}
		if d.publisher, err = publish.NewPublisher(nc, cfg.NATS.Subject, cfg.NATS.Encoding); err != nil {
			nc.Close()
			d.closeStores()
			return nil, err
		}
	}

	var sink database.MessageSink = db.MessageRepository()
	if d.archive != nil {
		sink = database.Fanout{sink, d.archive}
	}

	batchTimeout := time.Duration(cfg.BatchTimeout) * time.Second
	d.tracker = tasks.NewStationTracker(db.StationRepository(), cfg.StationLimit, time.Duration(cfg.StationTTL)*time.Second)
	d.collector = tasks.NewCollectorWithConfig(sink, d.lines, cfg.BatchSize, batchTimeout).
		WithObserver(d.tracker)
	if d.publisher != nil {
		d.collector.WithPublisher(d.publisher)
	}

	d.client = fsdclient.New(cfg.FSD.Addr, cfg.FSD.Hello)

	d.tasks = append(d.tasks, tasks.NewStationFlushTask(d.tracker, batchTimeout))
	if cfg.RetentionHours > 0 {
		d.tasks = append(d.tasks, tasks.NewRetentionTask(db.MessageRepository(),
			time.Duration(cfg.RetentionHours)*time.Hour, retentionInterval))
	}
	if cfg.StatsInterval > 0 {
		var pubStats tasks.PublisherStats
		if d.publisher != nil {
			pubStats = d.publisher
		}
		d.tasks = append(d.tasks, tasks.NewStatsTask(db.MessageRepository(),
			time.Duration(cfg.StatsInterval)*time.Second, d.collector, pubStats, d.tracker))
	}
	if cfg.FSD.Callsign != "" {
		d.tasks = append(d.tasks, tasks.NewPingTask(d.client, cfg.FSD.Callsign,
			time.Duration(cfg.FSD.PingInterval)*time.Second))
	}

	return d, nil
}

func openArchive(ctx context.Context, cfg config.ArchiveConfig) (archive, error) {
	switch cfg.Driver {
	case config.ArchivePostgres:
		a, err := database.OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres archive: %w", err)
		}
		return a, nil
	case config.ArchiveClickHouse:
		a, err := database.OpenClickHouse(ctx, database.ClickHouseConfig{
			Addr:     cfg.Addr,
			Database: cfg.Database,
			User:     cfg.User,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open clickhouse archive: %w", err)
		}
		return a, nil
	}
	return nil, nil
}

// Run streams, records and runs scheduled tasks until ctx is cancelled,
// then flushes and closes everything. Cancellation is not an error.
func (d *Daemon) Run(ctx context.Context) error {
	slog.Info("Starting daemon", "fsd_addr", d.cfg.FSD.Addr, "db_driver", d.cfg.DB.Driver,
		"archive", d.cfg.Archive.Driver, "nats", d.publisher != nil)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.client.Stream(gctx, d.lines)
	})

	g.Go(func() error {
		return d.collector.Start(gctx)
	})

	sched := scheduler.New(gctx)
	for _, task := range d.tasks {
		sched.AddTask(task)
	}
	sched.Start()

	g.Go(func() error {
		<-gctx.Done()
		sched.Stop()
		return nil
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		err = nil
	}

	d.shutdown()
	return err
}

// shutdown writes the final station state and closes every connection
func (d *Daemon) shutdown() {
	slog.Info("Stopping daemon")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.tracker.Flush(ctx); err != nil {
		slog.Error("Error flushing stations", "error", err)
	}

	if err := d.client.Close(); err != nil {
		slog.Error("Error closing FSD client", "error", err)
	}

	if d.publisher != nil {
		if err := d.publisher.Close(); err != nil {
			slog.Error("Error closing NATS publisher", "error", err)
		}
	}

	d.closeStores()
	slog.Info("Daemon stopped")
}

func (d *Daemon) closeStores() {
	if d.archive != nil {
		if err := d.archive.Close(); err != nil {
			slog.Error("Error closing archive", "error", err)
		}
	}
	if err := d.db.Close(); err != nil {
		slog.Error("Error closing database", "error", err)
	}
}
