package database

import (
	"context"
	"errors"

	"fsd_recorder/internal/models"
)

// Fanout writes every batch to each of its sinks. A failing sink does not
// stop the others; all errors are returned joined.
type Fanout []MessageSink

func (f Fanout) InsertBatch(ctx context.Context, recs []*models.Record) error {
	var errs []error
	for _, s := range f {
		if err := s.InsertBatch(ctx, recs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
