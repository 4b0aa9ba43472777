package mock

import (
	"album-catalog/internal"
	cl "album-catalog/pkg/catelog"
	"context"
)

var _ internal.UserStore = (*UserStore)(nil)
var _ internal.Users = (*Users)(nil)
var _ internal.Publisher = (*Publisher)(nil)

// UserStore implements the internal UserStore interface for mocking purposes.
type UserStore struct {
	CreateUserFn func(ctx context.Context, u cl.User) (cl.User, error)
}

// CreateUser calls the UserStore's CreateUserFn.
func (s *UserStore) CreateUser(ctx context.Context, u cl.User) (cl.User, error) {
	return s.CreateUserFn(ctx, u)
}

// Users implements the internal Users interface for mocking purposes.
type Users struct {
	CreateUserFn func(ctx context.Context, req cl.CreateUserRequest) (cl.CreateUserResponse, error)
}

// CreateUser calls the Users' CreateUserFn.
func (u *Users) CreateUser(ctx context.Context, req cl.CreateUserRequest) (cl.CreateUserResponse, error) {
	return u.CreateUserFn(ctx, req)
}

// Publisher implements the internal Publisher interface for mocking purposes.
type Publisher struct {
	PublishFn func(ctx context.Context, op cl.Operation, body []byte) (string, error)
}

// Publish calls the Publisher's PublishFn.
func (p *Publisher) Publish(ctx context.Context, op cl.Operation, body []byte) (string, error) {
	return p.PublishFn(ctx, op, body)
}
