package internal

import (
	cl "album-catalog/pkg/catelog"
	"context"
)

// AlbumStore is the typed access layer over the catalog table.
type AlbumStore interface {
	PutAlbum(ctx context.Context, a cl.Album) error
	DeleteAlbum(ctx context.Context, artist, album string) (*cl.Album, error)
	QueryAlbums(ctx context.Context, artist string) ([]cl.Album, error)
	ScanAlbums(ctx context.Context) ([]cl.Album, error)
	BatchDeleteAlbums(ctx context.Context, keys []cl.AlbumKey) ([]cl.AlbumKey, error)
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u cl.User) (cl.User, error)
}

// Catalog is the set of operations exposed to every ingress transport.
type Catalog interface {
	CreateAlbum(ctx context.Context, a cl.Album) error
	DeleteAlbum(ctx context.Context, req cl.DeleteAlbumReq) (cl.DeleteAlbumRes, error)
	DeleteArtist(ctx context.Context, req cl.DeleteArtistReq) (cl.DeleteArtistRes, error)
	ListAlbums(ctx context.Context) (cl.ListAlbumsRes, error)
}

// Users is the account registration surface.
type Users interface {
	CreateUser(ctx context.Context, req cl.CreateUserRequest) (cl.CreateUserResponse, error)
}

// Publisher hands a catalog operation to an asynchronous transport,
// returning the transport's message id.
type Publisher interface {
	Publish(ctx context.Context, op cl.Operation, body []byte) (string, error)
}
