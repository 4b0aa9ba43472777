// Package catalog implements the album catalog operations shared by the
// synchronous HTTP surface and the asynchronous queue workers.
package catalog

import (
	"album-catalog/internal"
	"album-catalog/internal/retry"
	cl "album-catalog/pkg/catelog"
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
)

var _ internal.Catalog = (*Service)(nil)

// PartialFailureMode controls how DeleteArtist reports albums the store
// refused to delete after all retries.
type PartialFailureMode string

const (
	// PartialFailureIgnore logs the leftovers and reports success.
	PartialFailureIgnore PartialFailureMode = "ignore"
	// PartialFailureReport returns the leftovers to the caller.
	PartialFailureReport PartialFailureMode = "report"
)

// ParsePartialFailureMode returns the PartialFailureMode named by s.
func ParsePartialFailureMode(s string) (PartialFailureMode, error) {
	switch mode := PartialFailureMode(s); mode {
	case PartialFailureIgnore, PartialFailureReport:
		return mode, nil
	default:
		return "", errors.Errorf("unknown partial failure mode %q", s)
	}
}

// Service is the catalog. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	Store       internal.AlbumStore
	Logger      tools.Logger
	Retry       retry.Policy
	PartialMode PartialFailureMode
}

// New returns a Service using the default retry policy and ignoring partial
// batch failures.
func New(store internal.AlbumStore, logger tools.Logger) *Service {
	return &Service{
		Store:       store,
		Logger:      logger,
		Retry:       retry.DefaultPolicy,
		PartialMode: PartialFailureIgnore,
	}
}

// CreateAlbum stores a, replacing any album with the same key.
func (s *Service) CreateAlbum(ctx context.Context, a cl.Album) error {
	if err := cl.ValidateKey(a.Artist, a.Album); err != nil {
		return err
	}
	return errors.Wrap(s.Store.PutAlbum(ctx, a), "create album")
}

// DeleteAlbum removes a single album, returning ErrNotFound when nothing was
// stored under the key.
func (s *Service) DeleteAlbum(ctx context.Context, req cl.DeleteAlbumReq) (cl.DeleteAlbumRes, error) {
	var res cl.DeleteAlbumRes
	if err := cl.ValidateKey(req.Artist, req.Album); err != nil {
		return res, err
	}
	prev, err := s.Store.DeleteAlbum(ctx, req.Artist, req.Album)
	if err != nil {
		return res, errors.Wrap(err, "delete album")
	}
	if prev == nil {
		return res, errors.Wrapf(cl.ErrNotFound, "album '%s' of artist '%s'", req.Album, req.Artist)
	}
	return cl.DeleteAlbumRes{Artist: prev.Artist, Album: prev.Album}, nil
}

// ListAlbums returns the whole catalog. An empty catalog yields an empty,
// non-nil list.
func (s *Service) ListAlbums(ctx context.Context) (cl.ListAlbumsRes, error) {
	albums, err := s.Store.ScanAlbums(ctx)
	if err != nil {
		return cl.ListAlbumsRes{Albums: []cl.Album{}}, errors.Wrap(err, "list albums")
	}
	return cl.ListAlbumsRes{Albums: cl.NormalizeAlbums(albums)}, nil
}

func artistNotFoundMessage(artist string) string {
	return fmt.Sprintf("Artist '%s' was not found.", artist)
}

func artistDeletedMessage(artist string) string {
	return fmt.Sprintf("Artist '%s' was deleted successfully.", artist)
}

func artistPartiallyDeletedMessage(artist string, n int) string {
	return fmt.Sprintf("Artist '%s' was partially deleted, %d albums could not be removed.", artist, n)
}
