package postgres

import (
	cl "album-catalog/pkg/catelog"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var accountsReturnCols = []string{"user_id", "username", "password", "email", "created_at", "last_login"}

func TestBuildCreateUserQuery(t *testing.T) {
	now := time.Date(2024, 5, 6, 20, 11, 4, 0, time.UTC)
	qv, err := buildCreateUserQuery(cl.User{ID: "id", Username: "ana", PasswordHash: "hash", Email: "e", CreatedAt: now})
	if err != nil {
		t.Fatalf("unexpected error building query: %s", err.Error())
	}
	if !strings.HasPrefix(qv.query, "INSERT INTO accounts") {
		t.Fatalf("unexpected query: %s", qv.query)
	}
	if !strings.Contains(qv.query, `RETURNING accounts."user_id"`) {
		t.Fatalf("expected returning clause, got: %s", qv.query)
	}
	expArgs := []interface{}{"id", "ana", "hash", "e", now}
	if !cmp.Equal(qv.args, expArgs) {
		t.Fatalf("unexpected args: %s", cmp.Diff(expArgs, qv.args))
	}
}

func TestCreateUser(t *testing.T) {
	now := time.Date(2024, 5, 6, 20, 11, 4, 0, time.UTC)
	user := cl.User{
		ID:           "2b1c8f0e-1111-4c3a-9f7e-1d2c3b4a5f6e",
		Username:     "ana",
		Email:        "ana@example.com",
		PasswordHash: "$2a$04$hash",
		CreatedAt:    now,
	}

	table := []struct {
		label   string
		rows    *sqlmock.Rows
		err     error
		expUser cl.User
		expErr  error
	}{
		{
			label:   "should return the stored row",
			rows:    sqlmock.NewRows(accountsReturnCols).AddRow(user.ID, user.Username, user.PasswordHash, user.Email, now, nil),
			expUser: user,
		},
		{
			label:  "should map unique violations to conflict",
			err:    &pq.Error{Code: "23505", Constraint: "accounts_username_key"},
			expErr: cl.ErrConflict,
		},
		{
			label:  "should map other failures to store unavailable",
			err:    errors.New("connection refused"),
			expErr: cl.ErrStoreUnavailable,
		},
		{
			label:  "should map deadlines to timeout",
			err:    context.DeadlineExceeded,
			expErr: cl.ErrTimeout,
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			defer db.Close()

			exp := mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO accounts`)).
				WithArgs(user.ID, user.Username, user.PasswordHash, user.Email, now)
			if ts.err != nil {
				exp.WillReturnError(ts.err)
			} else {
				exp.WillReturnRows(ts.rows)
			}

			got, err := NewWithDB(db).CreateUser(context.Background(), user)
			if ts.expErr != nil {
				if !errors.Is(err, ts.expErr) {
					t.Fatalf("unexpected error returned: %v", err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error returned: %s", err.Error())
				}
				if !cmp.Equal(got, ts.expUser) {
					t.Fatalf("unexpected user returned: %s", cmp.Diff(ts.expUser, got))
				}
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}
