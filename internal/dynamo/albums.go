package dynamo

import (
	"album-catalog/internal/awsutil"
	cl "album-catalog/pkg/catelog"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

// PutAlbum writes the album, replacing any record with the same key.
func (s *Store) PutAlbum(ctx context.Context, a cl.Album) error {
	if err := cl.ValidateKey(a.Artist, a.Album); err != nil {
		return err
	}
	item, err := marshalAlbum(a)
	if err != nil {
		return err
	}
	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return awsutil.Error(err, "put album")
}

// DeleteAlbum atomically removes the album and returns the record that
// existed before, or nil if there was none.
func (s *Store) DeleteAlbum(ctx context.Context, artist, album string) (*cl.Album, error) {
	if err := cl.ValidateKey(artist, album); err != nil {
		return nil, err
	}
	out, err := s.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.table),
		Key:          keyOf(artist, album),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, awsutil.Error(err, "delete album")
	}
	if len(out.Attributes) == 0 {
		return nil, nil
	}
	prev, err := unmarshalAlbum(out.Attributes)
	if err != nil {
		s.logger.Error("[DeleteAlbum] corrupt record removed",
			"artist", artist,
			"album", album,
			"details", err.Error(),
		)
		return nil, err
	}
	return &prev, nil
}

// QueryAlbums returns every album of the artist, following continuation
// keys until the result set is exhausted.
func (s *Store) QueryAlbums(ctx context.Context, artist string) ([]cl.Album, error) {
	if artist == "" {
		return nil, cl.ErrMissingArtist
	}
	p := dynamodb.NewQueryPaginator(s.api, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("#artist = :artist"),
		ExpressionAttributeNames: map[string]string{
			"#artist": attrArtist,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":artist": &types.AttributeValueMemberS{Value: artist},
		},
	})

	albums := []cl.Album{}
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, awsutil.Error(err, "query albums")
		}
		albums, err = unmarshalAlbums(out.Items, albums)
		if err != nil {
			s.logger.Error("[QueryAlbums] corrupt record",
				"artist", artist,
				"details", err.Error(),
			)
			return nil, err
		}
	}
	return albums, nil
}

// ScanAlbums returns every album in the table, paging through the full
// result set.
func (s *Store) ScanAlbums(ctx context.Context) ([]cl.Album, error) {
	p := dynamodb.NewScanPaginator(s.api, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	albums := []cl.Album{}
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, awsutil.Error(err, "scan albums")
		}
		albums, err = unmarshalAlbums(out.Items, albums)
		if err != nil {
			s.logger.Error("[ScanAlbums] corrupt record",
				"details", err.Error(),
			)
			return nil, err
		}
	}
	return albums, nil
}

// BatchDeleteAlbums issues one bulk delete for at most BatchLimit keys and
// returns the keys the store left unprocessed.
func (s *Store) BatchDeleteAlbums(ctx context.Context, keys []cl.AlbumKey) ([]cl.AlbumKey, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	if len(keys) > BatchLimit {
		return nil, errors.Errorf("batch delete: %d keys exceeds limit of %d", len(keys), BatchLimit)
	}

	reqs := make([]types.WriteRequest, 0, len(keys))
	for _, k := range keys {
		if err := cl.ValidateKey(k.Artist, k.Album); err != nil {
			return nil, err
		}
		reqs = append(reqs, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: keyOf(k.Artist, k.Album)},
		})
	}

	out, err := s.api.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{s.table: reqs},
	})
	if err != nil {
		return nil, awsutil.Error(err, "batch delete albums")
	}

	var unprocessed []cl.AlbumKey
	for _, wr := range out.UnprocessedItems[s.table] {
		if wr.DeleteRequest == nil {
			continue
		}
		k, err := keyFrom(wr.DeleteRequest.Key)
		if err != nil {
			return nil, err
		}
		unprocessed = append(unprocessed, k)
	}
	return unprocessed, nil
}
