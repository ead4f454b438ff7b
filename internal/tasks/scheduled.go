package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"fsd_recorder/internal/database"
	"fsd_recorder/internal/fsd"
	"fsd_recorder/internal/fsdclient"
)

// RetentionTask deletes stored records older than the retention window
type RetentionTask struct {
	repo      database.MessageRepository
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewRetentionTask(repo database.MessageRepository, retention, interval time.Duration) *RetentionTask {
	return &RetentionTask{repo: repo, retention: retention, interval: interval, now: time.Now}
}

func (t *RetentionTask) Name() string            { return "retention" }
func (t *RetentionTask) Interval() time.Duration { return t.interval }

func (t *RetentionTask) Run(ctx context.Context) error {
	cutoff := t.now().Add(-t.retention)
	n, err := t.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("retention: %w", err)
	}
	if n > 0 {
		slog.Info("Deleted expired records", "count", n, "cutoff", cutoff.UTC().Format(time.RFC3339))
	}
	return nil
}

// PublisherStats reports bus delivery totals
type PublisherStats interface {
	Stats() (sent, failed uint64)
}

// StatsTask logs per kind counts for the last interval along with the
// collector and publisher totals
type StatsTask struct {
	repo      database.MessageRepository
	interval  time.Duration
	collector *Collector
	publisher PublisherStats
	tracker   *StationTracker
	now       func() time.Time
}

// NewStatsTask creates a stats task. collector, publisher and tracker may
// be nil.
func NewStatsTask(repo database.MessageRepository, interval time.Duration, collector *Collector, publisher PublisherStats, tracker *StationTracker) *StatsTask {
	return &StatsTask{
		repo:      repo,
		interval:  interval,
		collector: collector,
		publisher: publisher,
		tracker:   tracker,
		now:       time.Now,
	}
}

func (t *StatsTask) Name() string            { return "stats" }
func (t *StatsTask) Interval() time.Duration { return t.interval }

func (t *StatsTask) Run(ctx context.Context) error {
	counts, err := t.repo.CountByKind(ctx, t.now().Add(-t.interval))
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	slog.Info("Recorded messages", t.attrs(counts)...)
	return nil
}

func (t *StatsTask) attrs(counts map[string]int64) []any {
	kinds := make([]string, 0, len(counts))
	var total int64
	for k, n := range counts {
		kinds = append(kinds, k)
		total += n
	}
	sort.Strings(kinds)

	attrs := []any{"window", t.interval.String(), "total", total}
	for _, k := range kinds {
		attrs = append(attrs, k, counts[k])
	}

	if t.collector != nil {
		s := t.collector.Stats()
		attrs = append(attrs, slog.Group("collector",
			"received", s.Received,
			"rejected", s.Rejected,
			"stored", s.Stored,
			"published", s.Published,
		))
	}
	if t.publisher != nil {
		sent, failed := t.publisher.Stats()
		attrs = append(attrs, slog.Group("nats", "sent", sent, "failed", failed))
	}
	if t.tracker != nil {
		attrs = append(attrs, "stations", t.tracker.Len())
	}
	return attrs
}

// MessageSender writes a message to the FSD server
type MessageSender interface {
	Send(msg fsd.Message) error
}

// PingTask sends a $PI to the server so idle connections are noticed
type PingTask struct {
	sender   MessageSender
	callsign string
	interval time.Duration
	now      func() time.Time
}

func NewPingTask(sender MessageSender, callsign string, interval time.Duration) *PingTask {
	return &PingTask{sender: sender, callsign: callsign, interval: interval, now: time.Now}
}

func (t *PingTask) Name() string            { return "ping" }
func (t *PingTask) Interval() time.Duration { return t.interval }

func (t *PingTask) Run(ctx context.Context) error {
	ping := fsd.NewPing(t.callsign, fsd.ServerCallsign, uint64(t.now().Unix()))
	err := t.sender.Send(ping)
	if errors.Is(err, fsdclient.ErrNotConnected) {
		slog.Debug("Skipping ping, not connected")
		return nil
	}
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// StationFlushTask writes tracked station changes on a schedule
type StationFlushTask struct {
	tracker  *StationTracker
	interval time.Duration
}

func NewStationFlushTask(tracker *StationTracker, interval time.Duration) *StationFlushTask {
	return &StationFlushTask{tracker: tracker, interval: interval}
}

func (t *StationFlushTask) Name() string            { return "station_flush" }
func (t *StationFlushTask) Interval() time.Duration { return t.interval }

func (t *StationFlushTask) Run(ctx context.Context) error {
	return t.tracker.Flush(ctx)
}
