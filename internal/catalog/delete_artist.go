package catalog

import (
	"album-catalog/internal/dynamo"
	"album-catalog/internal/retry"
	cl "album-catalog/pkg/catelog"
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/twitsprout/tools/requestid"
)

var errUnprocessed = errors.New("batch delete left unprocessed items")

// DeleteArtist removes every album of the artist in bulk-delete batches of at
// most dynamo.BatchLimit keys. Keys the store leaves unprocessed are retried
// per s.Retry. Keys still unprocessed after that are logged and, unless
// PartialMode is PartialFailureReport, do not fail the operation.
func (s *Service) DeleteArtist(ctx context.Context, req cl.DeleteArtistReq) (cl.DeleteArtistRes, error) {
	var res cl.DeleteArtistRes
	if req.Artist == "" {
		return res, cl.ErrMissingArtist
	}

	albums, err := s.Store.QueryAlbums(ctx, req.Artist)
	if err != nil {
		return res, errors.Wrap(err, "query artist albums")
	}
	if len(albums) == 0 {
		res.Message = artistNotFoundMessage(req.Artist)
		return res, nil
	}
	res.Found = true

	keys := lo.Map(albums, func(a cl.Album, _ int) cl.AlbumKey { return a.Key() })
	for _, batch := range lo.Chunk(keys, dynamo.BatchLimit) {
		left, err := s.deleteBatch(ctx, batch)
		if err != nil {
			return res, err
		}
		res.Deleted += len(batch) - len(left)
		res.Unprocessed = append(res.Unprocessed, left...)
	}

	switch {
	case !res.Partial():
		res.Message = artistDeletedMessage(req.Artist)
	case s.PartialMode == PartialFailureReport:
		res.Message = artistPartiallyDeletedMessage(req.Artist, len(res.Unprocessed))
	default:
		res.Message = artistDeletedMessage(req.Artist)
		res.Unprocessed = nil
	}
	return res, nil
}

// deleteBatch submits one batch and retries whatever the store leaves
// unprocessed. It returns the keys that are still unprocessed once the retry
// policy is exhausted. Store failures abort immediately.
func (s *Service) deleteBatch(ctx context.Context, batch []cl.AlbumKey) ([]cl.AlbumKey, error) {
	reqID := requestid.Get(ctx)
	pending := batch
	err := s.Retry.Do(ctx, func() error {
		left, err := s.Store.BatchDeleteAlbums(ctx, pending)
		if err != nil {
			return retry.Permanent(err)
		}
		pending = left
		if len(pending) > 0 {
			return errUnprocessed
		}
		return nil
	}, func(err error, n int, d time.Duration) {
		s.Logger.Debug("[DeleteArtist] retrying unprocessed albums",
			"request_id", reqID,
			"retry", n,
			"delay", d.String(),
			"unprocessed", len(pending),
		)
	})

	switch {
	case err == nil:
		return nil, nil
	case errors.Is(err, errUnprocessed):
		s.Logger.Warn("[DeleteArtist] albums left unprocessed after retries",
			"request_id", reqID,
			"retries", s.Retry.MaxRetries,
			"unprocessed", pending,
		)
		return pending, nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return nil, errors.Wrap(cl.ErrTimeout, "delete artist batch")
	default:
		return nil, errors.Wrap(err, "delete artist batch")
	}
}
