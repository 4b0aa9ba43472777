// Package sqs adapts an SQS queue to the queue consumer and to the catalog's
// async publisher.
package sqs

import (
	"album-catalog/internal"
	"album-catalog/internal/awsutil"
	cl "album-catalog/pkg/catelog"
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools/json"
	"github.com/twitsprout/tools/queue"
)

const (
	maxMessages = 10
	maxWaitTime = 20 * time.Second
)

// API is the subset of the SQS client used by this package.
type API interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	ChangeMessageVisibility(ctx context.Context, params *sqs.ChangeMessageVisibilityInput, optFns ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

var _ API = (*sqs.Client)(nil)
var _ queue.Queue = (*Queue)(nil)

// Queue implements queue.Queue over SQS. QueueID is the queue URL.
type Queue struct {
	api API
}

// NewClient builds an SQS client, optionally against a custom endpoint.
func NewClient(cfg aws.Config, endpoint string) *sqs.Client {
	return sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

func New(api API) *Queue {
	return &Queue{api: api}
}

// GetMessages long-polls for up to r.MessageCount messages, capped at the
// SQS limits of 10 messages and 20 seconds.
func (q *Queue) GetMessages(ctx context.Context, r queue.GetMessagesRequest) ([]queue.Message, error) {
	in := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(r.QueueID),
		MaxNumberOfMessages: int32(clamp(r.MessageCount, 1, maxMessages)),
		WaitTimeSeconds:     int32(seconds(min(r.WaitTime, maxWaitTime))),
		MessageSystemAttributeNames: []types.MessageSystemAttributeName{
			types.MessageSystemAttributeNameApproximateReceiveCount,
		},
	}
	if r.VisibilityTimeout > 0 {
		in.VisibilityTimeout = int32(seconds(r.VisibilityTimeout))
	}
	out, err := q.api.ReceiveMessage(ctx, in)
	if err != nil {
		return nil, awsutil.Error(err, "receive messages")
	}

	msgs := make([]queue.Message, 0, len(out.Messages))
	for _, m := range out.Messages {
		attempts, _ := strconv.Atoi(m.Attributes[string(types.MessageSystemAttributeNameApproximateReceiveCount)])
		msgs = append(msgs, queue.Message{
			Attempts:      attempts,
			Body:          []byte(aws.ToString(m.Body)),
			ID:            aws.ToString(m.MessageId),
			ReceiptHandle: aws.ToString(m.ReceiptHandle),
		})
	}
	return msgs, nil
}

func (q *Queue) AckMessage(ctx context.Context, r queue.AckMessageRequest) error {
	_, err := q.api.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(r.QueueID),
		ReceiptHandle: aws.String(r.ReceiptHandle),
	})
	return awsutil.Error(err, "delete message")
}

func (q *Queue) UpdateVisibility(ctx context.Context, r queue.UpdateVisibilityRequest) error {
	_, err := q.api.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
		QueueUrl:          aws.String(r.QueueID),
		ReceiptHandle:     aws.String(r.ReceiptHandle),
		VisibilityTimeout: int32(seconds(r.VisibilityTimeout)),
	})
	return awsutil.Error(err, "change message visibility")
}

var _ internal.Publisher = (*Publisher)(nil)

// Publisher sends catalog operations to a single queue. Each body is wrapped
// in a notification envelope and tagged with the operation attribute so one
// queue can carry every operation.
type Publisher struct {
	api      API
	queueURL string
}

func NewPublisher(api API, queueURL string) *Publisher {
	return &Publisher{api: api, queueURL: queueURL}
}

// Publish returns the SQS message id.
func (p *Publisher) Publish(ctx context.Context, op cl.Operation, body []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Encode(&buf, cl.NewEnvelope(op, body), ""); err != nil {
		return "", errors.Wrap(err, "encode envelope")
	}
	out, err := p.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(buf.String()),
		MessageAttributes: map[string]types.MessageAttributeValue{
			cl.OperationAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(op)),
			},
		},
	})
	if err != nil {
		return "", awsutil.Error(err, "send message")
	}
	return aws.ToString(out.MessageId), nil
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
