package mock

import (
	"album-catalog/internal"
	cl "album-catalog/pkg/catelog"
	"context"
)

var _ internal.AlbumStore = (*AlbumStore)(nil)
var _ internal.Catalog = (*Catalog)(nil)

// AlbumStore implements the internal AlbumStore interface for mocking purposes.
type AlbumStore struct {
	PutAlbumFn          func(ctx context.Context, a cl.Album) error
	DeleteAlbumFn       func(ctx context.Context, artist, album string) (*cl.Album, error)
	QueryAlbumsFn       func(ctx context.Context, artist string) ([]cl.Album, error)
	ScanAlbumsFn        func(ctx context.Context) ([]cl.Album, error)
	BatchDeleteAlbumsFn func(ctx context.Context, keys []cl.AlbumKey) ([]cl.AlbumKey, error)
}

// PutAlbum calls the AlbumStore's PutAlbumFn.
func (s *AlbumStore) PutAlbum(ctx context.Context, a cl.Album) error {
	return s.PutAlbumFn(ctx, a)
}

// DeleteAlbum calls the AlbumStore's DeleteAlbumFn.
func (s *AlbumStore) DeleteAlbum(ctx context.Context, artist, album string) (*cl.Album, error) {
	return s.DeleteAlbumFn(ctx, artist, album)
}

// QueryAlbums calls the AlbumStore's QueryAlbumsFn.
func (s *AlbumStore) QueryAlbums(ctx context.Context, artist string) ([]cl.Album, error) {
	return s.QueryAlbumsFn(ctx, artist)
}

// ScanAlbums calls the AlbumStore's ScanAlbumsFn.
func (s *AlbumStore) ScanAlbums(ctx context.Context) ([]cl.Album, error) {
	return s.ScanAlbumsFn(ctx)
}

// BatchDeleteAlbums calls the AlbumStore's BatchDeleteAlbumsFn.
func (s *AlbumStore) BatchDeleteAlbums(ctx context.Context, keys []cl.AlbumKey) ([]cl.AlbumKey, error) {
	return s.BatchDeleteAlbumsFn(ctx, keys)
}

// Catalog implements the internal Catalog interface for mocking purposes.
type Catalog struct {
	CreateAlbumFn  func(ctx context.Context, a cl.Album) error
	DeleteAlbumFn  func(ctx context.Context, req cl.DeleteAlbumReq) (cl.DeleteAlbumRes, error)
	DeleteArtistFn func(ctx context.Context, req cl.DeleteArtistReq) (cl.DeleteArtistRes, error)
	ListAlbumsFn   func(ctx context.Context) (cl.ListAlbumsRes, error)
}

// CreateAlbum proxies the request to the injected CreateAlbumFn.
func (c *Catalog) CreateAlbum(ctx context.Context, a cl.Album) error {
	return c.CreateAlbumFn(ctx, a)
}

// DeleteAlbum proxies the request to the injected DeleteAlbumFn.
func (c *Catalog) DeleteAlbum(ctx context.Context, req cl.DeleteAlbumReq) (cl.DeleteAlbumRes, error) {
	return c.DeleteAlbumFn(ctx, req)
}

// DeleteArtist proxies the request to the injected DeleteArtistFn.
func (c *Catalog) DeleteArtist(ctx context.Context, req cl.DeleteArtistReq) (cl.DeleteArtistRes, error) {
	return c.DeleteArtistFn(ctx, req)
}

// ListAlbums proxies the request to the injected ListAlbumsFn.
func (c *Catalog) ListAlbums(ctx context.Context) (cl.ListAlbumsRes, error) {
	return c.ListAlbumsFn(ctx)
}
