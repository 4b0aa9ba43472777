package dynamo

import (
	cl "album-catalog/pkg/catelog"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

const (
	attrArtist = "Artist"
	attrAlbum  = "Album"
)

// albumItem is the stored layout of an album. Tracks is omitted when empty.
type albumItem struct {
	Artist string      `dynamodbav:"Artist"`
	Album  string      `dynamodbav:"Album"`
	Tracks []trackItem `dynamodbav:"Tracks,omitempty"`
}

type trackItem struct {
	Title  string `dynamodbav:"Title"`
	Length string `dynamodbav:"Length"`
}

func marshalAlbum(a cl.Album) (map[string]types.AttributeValue, error) {
	item := albumItem{Artist: a.Artist, Album: a.Album}
	for _, t := range a.Tracks {
		item.Tracks = append(item.Tracks, trackItem{Title: t.Title, Length: t.Length})
	}
	av, err := attributevalue.MarshalMap(item)
	return av, errors.Wrap(err, "marshal album item")
}

func unmarshalAlbum(av map[string]types.AttributeValue) (cl.Album, error) {
	var item albumItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return cl.Album{}, errors.Wrap(cl.ErrCorruptRecord, err.Error())
	}
	if item.Artist == "" || item.Album == "" {
		return cl.Album{}, errors.Wrap(cl.ErrCorruptRecord, "missing key attribute")
	}
	a := cl.Album{
		Artist: item.Artist,
		Album:  item.Album,
		Tracks: make([]cl.Track, 0, len(item.Tracks)),
	}
	for _, t := range item.Tracks {
		a.Tracks = append(a.Tracks, cl.Track{Title: t.Title, Length: t.Length})
	}
	return a, nil
}

func unmarshalAlbums(items []map[string]types.AttributeValue, dst []cl.Album) ([]cl.Album, error) {
	for _, av := range items {
		a, err := unmarshalAlbum(av)
		if err != nil {
			return dst, err
		}
		dst = append(dst, a)
	}
	return dst, nil
}

func keyOf(artist, album string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrArtist: &types.AttributeValueMemberS{Value: artist},
		attrAlbum:  &types.AttributeValueMemberS{Value: album},
	}
}

func keyFrom(av map[string]types.AttributeValue) (cl.AlbumKey, error) {
	artist, ok := av[attrArtist].(*types.AttributeValueMemberS)
	if !ok {
		return cl.AlbumKey{}, errors.Wrap(cl.ErrCorruptRecord, "artist key is not a string")
	}
	album, ok := av[attrAlbum].(*types.AttributeValueMemberS)
	if !ok {
		return cl.AlbumKey{}, errors.Wrap(cl.ErrCorruptRecord, "album key is not a string")
	}
	return cl.AlbumKey{Artist: artist.Value, Album: album.Value}, nil
}
