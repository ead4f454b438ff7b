package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"fsd_recorder/internal/database"
	"fsd_recorder/internal/fsd"
	"fsd_recorder/internal/models"
)

// RecordPublisher forwards single records to a message bus
type RecordPublisher interface {
	Publish(rec *models.Record) error
}

// StationObserver is told about every decoded message
type StationObserver interface {
	Observe(msg fsd.Message, seen time.Time)
}

// CollectorStats are running totals since the collector started
type CollectorStats struct {
	Received  uint64
	Rejected  uint64
	Stored    uint64
	Published uint64
}

// Collector decodes received lines and commits them to the sink in batches
type Collector struct {
	sink          database.MessageSink
	lines         <-chan models.Line
	publisher     RecordPublisher
	observer      StationObserver
	batchSize     int           // maximum number of records in a batch before committing
	flushInterval time.Duration // time to flush batch even if not full

	received  atomic.Uint64
	rejected  atomic.Uint64
	stored    atomic.Uint64
	published atomic.Uint64
}

// Default batch size is 100 records and flush interval is 1 second
func NewCollector(sink database.MessageSink, lines <-chan models.Line) *Collector {
	return NewCollectorWithConfig(sink, lines, 100, 1*time.Second)
}

// NewCollectorWithConfig creates a collector with custom batch settings
func NewCollectorWithConfig(sink database.MessageSink, lines <-chan models.Line, batchSize int, flushInterval time.Duration) *Collector {
	return &Collector{
		sink:          sink,
		lines:         lines,
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

// WithPublisher publishes every record as it is decoded
func (c *Collector) WithPublisher(p RecordPublisher) *Collector {
	c.publisher = p
	return c
}

// WithObserver passes every decoded message to o
func (c *Collector) WithObserver(o StationObserver) *Collector {
	c.observer = o
	return c
}

func (c *Collector) Stats() CollectorStats {
	return CollectorStats{
		Received:  c.received.Load(),
		Rejected:  c.rejected.Load(),
		Stored:    c.stored.Load(),
		Published: c.published.Load(),
	}
}

// Start collects lines until ctx is cancelled or the channel is closed.
// Batches are flushed when they reach batchSize or when flushInterval has
// passed since the last flush.
func (c *Collector) Start(ctx context.Context) error {
	batch := make([]*models.Record, 0, c.batchSize)

	flushBatch := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		if err := c.sink.InsertBatch(ctx, batch); err != nil {
			slog.Error("Error inserting batch of records", "batch_size", len(batch), "error", err)
		} else {
			c.stored.Add(uint64(len(batch)))
			slog.Debug("Inserted batch of records", "batch_size", len(batch))
		}
		// The sink may keep the slice, so start a fresh one
		batch = make([]*models.Record, 0, c.batchSize)
	}

	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Lines already buffered were received and go into the final flush
			for drained := false; !drained; {
				select {
				case line, ok := <-c.lines:
					if !ok {
						drained = true
						break
					}
					batch = append(batch, c.handle(line))
				default:
					drained = true
				}
			}
			flushBatch(context.WithoutCancel(ctx))
			return ctx.Err()

		case <-ticker.C:
			flushBatch(ctx)

		case line, ok := <-c.lines:
			if !ok {
				flushBatch(ctx)
				return nil
			}

			batch = append(batch, c.handle(line))
			if len(batch) >= c.batchSize {
				flushBatch(ctx)
			}
		}
	}
}

// handle decodes one line and hands it to the publisher and observer
func (c *Collector) handle(line models.Line) *models.Record {
	c.received.Add(1)
	rec, msg := models.DecodeLine(line)

	if msg == nil {
		c.rejected.Add(1)
		slog.Debug("Rejected line", "raw", line.Raw, "error", rec.Error)
	} else if c.observer != nil {
		c.observer.Observe(msg, line.ReceivedAt)
	}

	if c.publisher != nil {
		if err := c.publisher.Publish(rec); err != nil {
			slog.Warn("Failed to publish record", "kind", rec.Kind, "error", err)
		} else {
			c.published.Add(1)
		}
	}
	return rec
}
