package users

import (
	"album-catalog/internal/mock"
	cl "album-catalog/pkg/catelog"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	tm "github.com/twitsprout/tools/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	now := time.Date(2024, 5, 6, 20, 11, 4, 272642000, time.UTC)

	table := []struct {
		label  string
		req    cl.CreateUserRequest
		err    error
		expErr error
	}{
		{
			label:  "should fail on missing username",
			req:    cl.CreateUserRequest{Password: "pw", Email: "a@b.c"},
			expErr: cl.ErrMissingUsername,
		},
		{
			label:  "should fail on blank email",
			req:    cl.CreateUserRequest{Username: "ana", Password: "pw", Email: "  "},
			expErr: cl.ErrMissingEmail,
		},
		{
			label:  "should fail on missing password",
			req:    cl.CreateUserRequest{Username: "ana", Email: "a@b.c"},
			expErr: cl.ErrMissingPassword,
		},
		{
			label:  "should pass through store conflicts",
			req:    cl.CreateUserRequest{Username: "ana", Password: "pw", Email: "a@b.c"},
			err:    errors.Wrap(cl.ErrConflict, "insert"),
			expErr: cl.ErrConflict,
		},
		{
			label: "should store a hashed password",
			req:   cl.CreateUserRequest{Username: " ana ", Password: "s3cret", Email: "a@b.c"},
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			var stored *cl.User
			s := New(&mock.UserStore{
				CreateUserFn: func(ctx context.Context, u cl.User) (cl.User, error) {
					stored = &u
					return u, ts.err
				},
			}, tm.NopLogger)
			s.Clock = &tm.Clock{NowFn: func() time.Time { return now }}
			s.Cost = bcrypt.MinCost

			res, err := s.CreateUser(context.Background(), ts.req)
			if ts.expErr != nil {
				if !errors.Is(err, ts.expErr) {
					t.Fatalf("unexpected error returned: %v", err)
				}
				if cl.IsValidation(ts.expErr) && stored != nil {
					t.Fatalf("store must not be called on invalid input")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error returned: %s", err.Error())
			}

			if _, err := uuid.Parse(res.User.ID); err != nil {
				t.Fatalf("expected uuid user id, got %q", res.User.ID)
			}
			if res.User.Username != "ana" {
				t.Fatalf("expected trimmed username, got %q", res.User.Username)
			}
			expCreated := now.Truncate(time.Millisecond)
			if !cmp.Equal(res.User.CreatedAt, expCreated) {
				t.Fatalf("unexpected created_at: %s", cmp.Diff(expCreated, res.User.CreatedAt))
			}
			if strings.Contains(stored.PasswordHash, ts.req.Password) {
				t.Fatalf("password stored in plaintext")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(ts.req.Password)); err != nil {
				t.Fatalf("stored hash does not match password: %s", err.Error())
			}
		})
	}
}
