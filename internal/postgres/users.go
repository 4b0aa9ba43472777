package postgres

import (
	"album-catalog/internal"
	cl "album-catalog/pkg/catelog"
	"context"

	"github.com/pkg/errors"
)

var _ internal.UserStore = (*Postgres)(nil)

const tableAccounts = "accounts"

const (
	accountsColumnUserID    = `"user_id"`
	accountsColumnUsername  = `"username"`
	accountsColumnPassword  = `"password"`
	accountsColumnEmail     = `"email"`
	accountsColumnCreatedAt = `"created_at"`
	accountsColumnLastLogin = `"last_login"`
)

var accountsColumns = []string{
	accountsColumnUserID,
	accountsColumnUsername,
	accountsColumnPassword,
	accountsColumnEmail,
	accountsColumnCreatedAt,
	accountsColumnLastLogin,
}

// CreateUser inserts the account and returns the stored row. A duplicate
// username or email yields ErrConflict.
func (p *Postgres) CreateUser(ctx context.Context, u cl.User) (cl.User, error) {
	var res cl.User

	qv, err := buildCreateUserQuery(u)
	if err != nil {
		return res, errors.Wrap(err, "build create user query")
	}
	err = p.sqldb.GetContext(ctx, &res, qv.query, qv.args...)
	if err != nil {
		return res, storeError(err, "execute create user query")
	}
	return res, nil
}

func buildCreateUserQuery(u cl.User) (QueryValues, error) {
	q, args, err := psql.
		Insert(tableAccounts).
		Columns(
			accountsColumnUserID,
			accountsColumnUsername,
			accountsColumnPassword,
			accountsColumnEmail,
			accountsColumnCreatedAt,
		).
		Values(u.ID, u.Username, u.PasswordHash, u.Email, u.CreatedAt).
		Suffix(returning(tableAccounts, accountsColumns)).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "create user build query into SQL string")
}
