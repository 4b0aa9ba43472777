package awsutil

import (
	cl "album-catalog/pkg/catelog"
	"context"

	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
)

// Client fault codes that say nothing about the request's content: the
// service is throttling, or the deployment itself is misconfigured.
var unavailableCodes = map[string]bool{
	"ProvisionedThroughputExceededException":  true,
	"RequestLimitExceeded":                    true,
	"ThrottlingException":                     true,
	"Throttling":                              true,
	"TooManyRequestsException":                true,
	"LimitExceededException":                  true,
	"ResourceNotFoundException":               true,
	"AccessDeniedException":                   true,
	"AuthorizationError":                      true,
	"UnrecognizedClientException":             true,
	"InvalidSignatureException":               true,
	"ExpiredTokenException":                   true,
	"NotFound":                                true,
	"AWS.SimpleQueueService.NonExistentQueue": true,
}

// Error maps an SDK error onto the catalog error taxonomy. Deadline expiry
// becomes ErrTimeout. A client fault caused by the request's content, such as
// an item over the size limit, becomes a ValidationError. Every other failure,
// throttling included, becomes ErrStoreUnavailable.
func Error(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errors.Wrap(cl.ErrTimeout, op)
	}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		if ae.ErrorFault() == smithy.FaultClient && !unavailableCodes[ae.ErrorCode()] {
			return errors.Wrap(cl.NewValidationError(ae.ErrorMessage()), op)
		}
		return errors.Wrapf(cl.ErrStoreUnavailable, "%s: %s: %s", op, ae.ErrorCode(), ae.ErrorMessage())
	}
	return errors.Wrapf(cl.ErrStoreUnavailable, "%s: %s", op, err.Error())
}
