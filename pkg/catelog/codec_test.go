package catelog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestDecodeCreateAlbum(t *testing.T) {
	table := []struct {
		label    string
		body     string
		expAlbum Album
		expErr   bool
		expMsg   string
	}{
		{
			label:  "should fail on bad json",
			body:   `{badjson`,
			expErr: true,
		},
		{
			label:  "should fail on missing artist",
			body:   `{"album":"X"}`,
			expErr: true,
			expMsg: "artist must be provided",
		},
		{
			label:  "should fail on empty album",
			body:   `{"artist":"A","album":""}`,
			expErr: true,
			expMsg: "album must be provided",
		},
		{
			label:    "should default absent tracks to empty",
			body:     `{"artist":"A","album":"X"}`,
			expAlbum: Album{Artist: "A", Album: "X", Tracks: []Track{}},
		},
		{
			label:    "should default null tracks to empty",
			body:     `{"artist":"A","album":"X","tracks":null}`,
			expAlbum: Album{Artist: "A", Album: "X", Tracks: []Track{}},
		},
		{
			label: "should keep track order and lengths as given",
			body:  `{"artist":"A","album":"X","tracks":[{"title":"B","length":"weird"},{"title":"A","length":"3:00"}]}`,
			expAlbum: Album{Artist: "A", Album: "X", Tracks: []Track{
				{Title: "B", Length: "weird"},
				{Title: "A", Length: "3:00"},
			}},
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			a, err := DecodeCreateAlbum([]byte(ts.body))
			if ts.expErr {
				if !IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if ts.expMsg != "" && err.Error() != ts.expMsg {
					t.Fatalf("unexpected error returned: %s", cmp.Diff(ts.expMsg, err.Error()))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error returned: %s", err.Error())
			}
			if !cmp.Equal(a, ts.expAlbum) {
				t.Fatalf("unexpected album returned: %s", cmp.Diff(ts.expAlbum, a))
			}
		})
	}
}

func TestDecodeErrorDropsInput(t *testing.T) {
	body := `{"artist":"A","album":"X","tracks":[` + strings.Repeat(`{"title":"secret"},`, 100) + `}`
	_, err := DecodeCreateAlbum([]byte(body))
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if strings.Contains(err.Error(), "secret") || strings.Contains(err.Error(), "'{") {
		t.Fatalf("decode error echoes the request body: %s", err.Error())
	}
	if !strings.HasPrefix(err.Error(), "json: ") {
		t.Fatalf("unexpected error returned: %s", err.Error())
	}
}

func TestDecodeDeletes(t *testing.T) {
	req, err := DecodeDeleteAlbum([]byte(`{"artist":"A","album":"X"}`))
	if err != nil || req != (DeleteAlbumReq{Artist: "A", Album: "X"}) {
		t.Fatalf("unexpected delete album decode: %+v %v", req, err)
	}
	if _, err := DecodeDeleteAlbum([]byte(`{"artist":"A"}`)); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	artist, err := DecodeDeleteArtist([]byte(`{"artist":"B"}`))
	if err != nil || artist.Artist != "B" {
		t.Fatalf("unexpected delete artist decode: %+v %v", artist, err)
	}
	if _, err := DecodeDeleteArtist([]byte(`{}`)); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOpenEnvelope(t *testing.T) {
	table := []struct {
		label      string
		body       string
		def        Operation
		expOp      Operation
		expPayload string
		expErr     bool
	}{
		{
			label:      "raw body uses the default",
			body:       `{"artist":"A"}`,
			def:        OperationDeleteArtist,
			expOp:      OperationDeleteArtist,
			expPayload: `{"artist":"A"}`,
		},
		{
			label:  "raw body without a default fails",
			body:   `{"artist":"A"}`,
			expErr: true,
		},
		{
			label:      "notification attribute wins over the default",
			body:       `{"Type":"Notification","Message":"{\"artist\":\"A\",\"album\":\"X\"}","MessageAttributes":{"http":{"Type":"String","Value":"DeleteAlbum"}}}`,
			def:        OperationPostAlbum,
			expOp:      OperationDeleteAlbum,
			expPayload: `{"artist":"A","album":"X"}`,
		},
		{
			label:      "notification without attribute uses the default",
			body:       `{"Type":"Notification","Message":"{}"}`,
			def:        OperationPostAlbum,
			expOp:      OperationPostAlbum,
			expPayload: `{}`,
		},
		{
			label:  "unknown operation fails",
			body:   `{"Type":"Notification","Message":"{}","MessageAttributes":{"http":{"Type":"String","Value":"GetAlbum"}}}`,
			expErr: true,
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			op, payload, err := OpenEnvelope([]byte(ts.body), ts.def)
			if ts.expErr {
				if !IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error returned: %s", err.Error())
			}
			if op != ts.expOp || string(payload) != ts.expPayload {
				t.Fatalf("unexpected result: %s %s", op, payload)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	table := []struct {
		err error
		exp bool
	}{
		{errors.Wrap(ErrStoreUnavailable, "put"), true},
		{errors.Wrap(ErrTimeout, "scan"), true},
		{ErrNotFound, false},
		{ErrCorruptRecord, false},
		{ErrMissingArtist, false},
	}
	for _, ts := range table {
		if got := IsRetryable(ts.err); got != ts.exp {
			t.Fatalf("IsRetryable(%v) = %t, want %t", ts.err, got, ts.exp)
		}
	}
}
