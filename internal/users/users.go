// Package users registers catalog accounts.
package users

import (
	"album-catalog/internal"
	cl "album-catalog/pkg/catelog"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/clock"
	"github.com/twitsprout/tools/requestid"
	"golang.org/x/crypto/bcrypt"
)

var _ internal.Users = (*Service)(nil)

type Service struct {
	Store  internal.UserStore
	Clock  clock.Clock
	Logger tools.Logger
	// Cost is the bcrypt work factor.
	Cost int
}

func New(store internal.UserStore, logger tools.Logger) *Service {
	return &Service{
		Store:  store,
		Clock:  &clock.Default{},
		Logger: logger,
		Cost:   bcrypt.DefaultCost,
	}
}

// CreateUser validates the request, hashes the password and stores the
// account. The plaintext password is never persisted.
func (s *Service) CreateUser(ctx context.Context, req cl.CreateUserRequest) (cl.CreateUserResponse, error) {
	var res cl.CreateUserResponse

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	switch {
	case username == "":
		return res, cl.ErrMissingUsername
	case email == "":
		return res, cl.ErrMissingEmail
	case req.Password == "":
		return res, cl.ErrMissingPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return res, cl.NewValidationError("password is too long")
		}
		return res, errors.Wrap(err, "hash password")
	}

	u := cl.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		// accounts.created_at is TIMESTAMP(3).
		CreatedAt: s.Clock.Now().UTC().Truncate(time.Millisecond),
	}
	created, err := s.Store.CreateUser(ctx, u)
	if err != nil {
		return res, errors.Wrap(err, "create user")
	}

	s.Logger.Info("[CreateUser] user created",
		"request_id", requestid.Get(ctx),
		"user_id", created.ID,
	)
	return cl.CreateUserResponse{User: &created}, nil
}
