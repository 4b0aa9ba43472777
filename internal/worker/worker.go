// Package worker applies catalog operations delivered as queue messages.
package worker

import (
	"album-catalog/internal"
	"album-catalog/internal/catalog"
	cl "album-catalog/pkg/catelog"
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/queue"
)

var _ queue.Handler = (*Worker)(nil)

// Worker processes every message on its own. A failed message never stops the
// others; it is left for redelivery instead.
type Worker struct {
	Catalog internal.Catalog
	Logger  tools.Logger
	// Operation applies to messages that do not name one, i.e. raw bodies on
	// a queue dedicated to a single operation.
	Operation cl.Operation
	// Timeout bounds the processing of one message. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration
}

func New(c internal.Catalog, logger tools.Logger, op cl.Operation) *Worker {
	return &Worker{Catalog: c, Logger: logger, Operation: op}
}

// NewCatalog returns the catalog a worker runs against. Albums left behind by
// an artist delete are always reported, so the message fails and is
// redelivered until they are gone.
func NewCatalog(store internal.AlbumStore, logger tools.Logger) *catalog.Service {
	s := catalog.New(store, logger)
	s.PartialMode = catalog.PartialFailureReport
	return s
}

// logFailure logs a failed message. Transient failures are expected to clear
// on redelivery and are only warned about.
func (w *Worker) logFailure(id string, attempts int, err error) {
	retryable := cl.IsRetryable(err)
	log := w.Logger.Error
	if retryable {
		log = w.Logger.Warn
	}
	log("[Worker] error processing message",
		"message_id", id,
		"attempts", attempts,
		"retryable", retryable,
		"details", err.Error(),
	)
}

// Handle implements queue.Handler. Successful messages are acknowledged;
// failed ones are not and reappear once their visibility timeout lapses.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) queue.HandleResult {
	if err := w.Process(ctx, msg.Body, ""); err != nil {
		w.logFailure(msg.ID, msg.Attempts, err)
		return queue.NewHandleResult()
	}
	return queue.NewHandleResult().AckMessage(true)
}

// HandleSQSEvent processes a Lambda SQS batch and reports the id of every
// message that failed so only those are redelivered.
func (w *Worker) HandleSQSEvent(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	res := events.SQSEventResponse{BatchItemFailures: []events.SQSBatchItemFailure{}}
	for _, m := range ev.Records {
		var op cl.Operation
		if attr, ok := m.MessageAttributes[cl.OperationAttribute]; ok && attr.StringValue != nil {
			op = cl.Operation(*attr.StringValue)
		}
		if err := w.Process(ctx, []byte(m.Body), op); err != nil {
			attempts, _ := strconv.Atoi(m.Attributes["ApproximateReceiveCount"])
			w.logFailure(m.MessageId, attempts, err)
			res.BatchItemFailures = append(res.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: m.MessageId})
		}
	}
	return res, nil
}

// Process applies one message body. op, when set, overrides both the
// envelope's operation and the worker default.
func (w *Worker) Process(ctx context.Context, body []byte, op cl.Operation) error {
	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}

	def := w.Operation
	if op != "" {
		def = op
	}
	envOp, payload, err := cl.OpenEnvelope(body, def)
	if err != nil {
		return err
	}
	if op == "" {
		op = envOp
	} else if _, err := cl.ParseOperation(string(op)); err != nil {
		return err
	}

	switch op {
	case cl.OperationPostAlbum:
		a, err := cl.DecodeCreateAlbum(payload)
		if err != nil {
			return err
		}
		return w.Catalog.CreateAlbum(ctx, a)

	case cl.OperationDeleteAlbum:
		req, err := cl.DecodeDeleteAlbum(payload)
		if err != nil {
			return err
		}
		_, err = w.Catalog.DeleteAlbum(ctx, req)
		if errors.Is(err, cl.ErrNotFound) {
			// Already gone, e.g. a redelivery of a processed message.
			w.Logger.Info("[Worker] album to delete not found",
				"artist", req.Artist,
				"album", req.Album,
			)
			return nil
		}
		return err

	case cl.OperationDeleteArtist:
		req, err := cl.DecodeDeleteArtist(payload)
		if err != nil {
			return err
		}
		res, err := w.Catalog.DeleteArtist(ctx, req)
		if err != nil {
			return err
		}
		if res.Partial() {
			return errors.Wrapf(cl.ErrStoreUnavailable, "artist '%s': %d albums left unprocessed", req.Artist, len(res.Unprocessed))
		}
		return nil

	default:
		return cl.NewValidationError("unsupported operation '" + string(op) + "'")
	}
}
