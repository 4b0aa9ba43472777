package postgres

import (
	cl "album-catalog/pkg/catelog"
	"context"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

// storeError classifies a database error into the catalog error taxonomy.
func storeError(err error, op string) error {
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pqErr) && pqErr.Code == uniqueViolation:
		return errors.Wrapf(cl.ErrConflict, "%s: %s", op, pqErr.Constraint)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errors.Wrapf(cl.ErrTimeout, "%s: %s", op, err.Error())
	default:
		return errors.Wrapf(cl.ErrStoreUnavailable, "%s: %s", op, err.Error())
	}
}
