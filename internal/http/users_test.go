package http

import (
	"album-catalog/internal/mock"
	cl "album-catalog/pkg/catelog"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	jsonutils "github.com/twitsprout/tools/json"
	tm "github.com/twitsprout/tools/mock"
)

func TestCreateUser(t *testing.T) {
	user := cl.User{
		ID:        "2b1c8f0e-1111-4c3a-9f7e-1d2c3b4a5f6e",
		Username:  "ana",
		Email:     "ana@example.com",
		CreatedAt: time.Date(2024, 5, 6, 20, 11, 4, 0, time.UTC),
	}
	table := []struct {
		label        string
		body         string
		createUserFn func(ctx context.Context, r cl.CreateUserRequest) (cl.CreateUserResponse, error)
		expCode      int
		expRes       interface{}
	}{
		{
			label:   "should fail if there's an error decoding json",
			body:    `{badjson`,
			expCode: http.StatusBadRequest,
		},
		{
			label: "should fail on missing fields",
			body:  `{"username":"ana"}`,
			createUserFn: func(ctx context.Context, r cl.CreateUserRequest) (cl.CreateUserResponse, error) {
				return cl.CreateUserResponse{}, cl.ErrMissingPassword
			},
			expCode: http.StatusBadRequest,
			expRes:  cl.ErrorRes{Error: errBadInput, Message: "password must be provided"},
		},
		{
			label: "should fail on duplicates",
			body:  `{"username":"ana","password":"pw","email":"ana@example.com"}`,
			createUserFn: func(ctx context.Context, r cl.CreateUserRequest) (cl.CreateUserResponse, error) {
				return cl.CreateUserResponse{}, errors.Wrap(cl.ErrConflict, "insert account")
			},
			expCode: http.StatusConflict,
			expRes:  cl.ErrorRes{Error: errConflict},
		},
		{
			label: "should pass with all valid fields",
			body:  `{"username":"ana","password":"pw","email":"ana@example.com"}`,
			createUserFn: func(ctx context.Context, r cl.CreateUserRequest) (cl.CreateUserResponse, error) {
				return cl.CreateUserResponse{User: &user}, nil
			},
			expCode: http.StatusCreated,
			expRes:  user,
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			h := Handler{
				Catalog: &mock.Catalog{},
				Users:   &mock.Users{CreateUserFn: ts.createUserFn},
				Logger:  tm.NopLogger,
			}

			h.Handler()
			wr := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/user", strings.NewReader(ts.body))
			h.router.ServeHTTP(wr, req)

			if wr.Code != ts.expCode {
				t.Fatalf("unexpected response code returned: %s %s", cmp.Diff(ts.expCode, wr.Code), wr.Body.String())
			}
			if wr.Code == http.StatusCreated {
				if strings.Contains(wr.Body.String(), "password") {
					t.Fatalf("password leaked in response: %s", wr.Body.String())
				}
				var res cl.User
				if err := jsonutils.Decode(wr.Body, &res); err != nil {
					t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
				}
				if !cmp.Equal(res, ts.expRes) {
					t.Fatalf("unexpected response returned: %s", cmp.Diff(ts.expRes, res))
				}
				return
			}

			var res cl.ErrorRes
			if err := jsonutils.Decode(wr.Body, &res); err != nil {
				t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
			}
			if ts.expRes != nil && !cmp.Equal(res, ts.expRes) {
				t.Fatalf("unexpected response returned: %s", cmp.Diff(ts.expRes, res))
			}
		})
	}
}
